package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus = errors.New("invalid reservation status")
	ErrNotActive     = errors.New("reservation is no longer active")
)

// Reservation is one ledger row. Room-mode rows carry a nil seat ID and
// occupy the whole room; seat-mode rows each bind a single seat.
type Reservation struct {
	id           uuid.UUID
	roomID       uuid.UUID
	seatID       *uuid.UUID
	userID       uuid.UUID
	slot         TimeSlot
	purpose      Purpose
	status       Status
	roomCapacity int
	createdAt    time.Time
	updatedAt    time.Time
}

func NewRoomReservation(roomID, userID uuid.UUID, slot TimeSlot, purpose Purpose, roomCapacity int) *Reservation {
	return &Reservation{
		id:           uuid.New(),
		roomID:       roomID,
		userID:       userID,
		slot:         slot,
		purpose:      purpose,
		status:       StatusReserved,
		roomCapacity: roomCapacity,
	}
}

func NewSeatReservation(roomID, seatID, userID uuid.UUID, slot TimeSlot, purpose Purpose, roomCapacity int) *Reservation {
	sid := seatID
	return &Reservation{
		id:           uuid.New(),
		roomID:       roomID,
		seatID:       &sid,
		userID:       userID,
		slot:         slot,
		purpose:      purpose,
		status:       StatusReserved,
		roomCapacity: roomCapacity,
	}
}

func ReconstructReservation(
	id, roomID uuid.UUID,
	seatID *uuid.UUID,
	userID uuid.UUID,
	slot TimeSlot,
	purpose Purpose,
	status Status,
	roomCapacity int,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:           id,
		roomID:       roomID,
		seatID:       seatID,
		userID:       userID,
		slot:         slot,
		purpose:      purpose,
		status:       status,
		roomCapacity: roomCapacity,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (r *Reservation) IsRoomMode() bool {
	return r.seatID == nil
}

func (r *Reservation) IsActive() bool {
	return r.status.IsActive()
}

func (r *Reservation) HasExpired(now time.Time) bool {
	return !now.Before(r.slot.End())
}

// ConflictsWith reports whether two ledger rows block each other:
// same room in room-mode, or same seat in seat-mode, with both rows
// active and their windows overlapping.
func (r *Reservation) ConflictsWith(other *Reservation) bool {
	if !r.IsActive() || !other.IsActive() {
		return false
	}
	if r.roomID != other.roomID {
		return false
	}
	if !r.slot.Overlaps(other.slot) {
		return false
	}
	if r.IsRoomMode() || other.IsRoomMode() {
		return true
	}
	return *r.seatID == *other.seatID
}

func (r *Reservation) ID() uuid.UUID        { return r.id }
func (r *Reservation) RoomID() uuid.UUID    { return r.roomID }
func (r *Reservation) SeatID() *uuid.UUID   { return r.seatID }
func (r *Reservation) UserID() uuid.UUID    { return r.userID }
func (r *Reservation) Slot() TimeSlot       { return r.slot }
func (r *Reservation) Purpose() Purpose     { return r.purpose }
func (r *Reservation) Status() Status       { return r.status }
func (r *Reservation) RoomCapacity() int    { return r.roomCapacity }
func (r *Reservation) CreatedAt() time.Time { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time { return r.updatedAt }
