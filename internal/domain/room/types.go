package room

// BookingMode determines how a room is reserved: small rooms are taken
// as a whole, large rooms seat by seat.
type BookingMode string

const (
	ModeWholeRoom BookingMode = "whole_room"
	ModePerSeat   BookingMode = "per_seat"
)

// SeatBookingCapacityThreshold is the capacity at which a room switches
// from whole-room booking to per-seat booking. Single source of truth;
// every capacity decision in the system goes through Room.BookingMode.
const SeatBookingCapacityThreshold = 10

// MaxSeatsPerBooking caps how many seats one request may reserve in a
// per-seat room.
const MaxSeatsPerBooking = 3

func (m BookingMode) String() string {
	return string(m)
}

// ModeForCapacity applies the threshold rule. Room.BookingMode and any
// read-side capacity check both go through here.
func ModeForCapacity(capacity int) BookingMode {
	if capacity < SeatBookingCapacityThreshold {
		return ModeWholeRoom
	}
	return ModePerSeat
}
