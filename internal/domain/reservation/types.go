package reservation

type Status string

const (
	// StatusReserved is a booking whose window has not started yet.
	StatusReserved Status = "reserved"
	// StatusOccupied is a booking whose window is in progress.
	StatusOccupied Status = "occupied"
	// StatusCompleted is a booking whose window has elapsed.
	StatusCompleted Status = "completed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusReserved, StatusOccupied, StatusCompleted:
		return true
	default:
		return false
	}
}

// IsActive reports whether the reservation still blocks its room or
// seat. Completed rows never conflict.
func (s Status) IsActive() bool {
	return s == StatusReserved || s == StatusOccupied
}

// MaxActiveReservationsPerUser is the system-wide booking cap.
const MaxActiveReservationsPerUser = 5
