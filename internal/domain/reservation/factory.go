package reservation

import (
	"errors"

	"studysync-api/internal/domain/room"
	"studysync-api/internal/domain/seat"
	"studysync-api/internal/pkg/clock"

	"github.com/google/uuid"
)

var (
	ErrNoSeatsSelected   = errors.New("at least one seat must be selected")
	ErrTooManySeats      = errors.New("too many seats selected for one booking")
	ErrDuplicateSeats    = errors.New("duplicate seats in selection")
	ErrSeatNotInRoom     = errors.New("seat does not belong to the room")
	ErrSeatInactive      = errors.New("seat is not active")
	ErrBookingCapReached = errors.New("active reservation limit reached")
)

// Factory turns a booking request into the ledger rows it produces:
// one room-mode row for small rooms, one row per selected seat for
// large rooms.
type Factory struct {
	Clock clock.Clock
}

func NewFactory(clock clock.Clock) *Factory {
	return &Factory{Clock: clock}
}

// CreateBooking validates the request against the room's booking mode
// and the user's booking cap. selectedSeats are the seat entities
// resolved from the request; for whole-room bookings any selection is
// ignored per the booking rules.
func (f *Factory) CreateBooking(
	roomID uuid.UUID,
	roomCapacity int,
	selectedSeats []*seat.Seat,
	userID uuid.UUID,
	slot TimeSlot,
	purpose Purpose,
	activeReservations int,
) ([]*Reservation, error) {
	if err := slot.ValidateNotPastAt(f.Clock.Now()); err != nil {
		return nil, err
	}

	if room.ModeForCapacity(roomCapacity) == room.ModeWholeRoom {
		if activeReservations+1 > MaxActiveReservationsPerUser {
			return nil, ErrBookingCapReached
		}
		return []*Reservation{
			NewRoomReservation(roomID, userID, slot, purpose, roomCapacity),
		}, nil
	}

	if len(selectedSeats) == 0 {
		return nil, ErrNoSeatsSelected
	}
	if len(selectedSeats) > room.MaxSeatsPerBooking {
		return nil, ErrTooManySeats
	}
	if activeReservations+len(selectedSeats) > MaxActiveReservationsPerUser {
		return nil, ErrBookingCapReached
	}

	seen := make(map[uuid.UUID]struct{}, len(selectedSeats))
	rows := make([]*Reservation, 0, len(selectedSeats))
	for _, s := range selectedSeats {
		if s.RoomID() != roomID {
			return nil, ErrSeatNotInRoom
		}
		if !s.IsActive() {
			return nil, ErrSeatInactive
		}
		if _, dup := seen[s.ID()]; dup {
			return nil, ErrDuplicateSeats
		}
		seen[s.ID()] = struct{}{}
		rows = append(rows, NewSeatReservation(roomID, s.ID(), userID, slot, purpose, roomCapacity))
	}
	return rows, nil
}
