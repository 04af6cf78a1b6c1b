package request

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	RoomID        uuid.UUID   `json:"room_id" binding:"required"`
	StartTime     time.Time   `json:"start_time" binding:"required"`
	EndTime       time.Time   `json:"end_time" binding:"required"`
	Purpose       *string     `json:"purpose,omitempty"`
	SelectedSeats []uuid.UUID `json:"selected_seats,omitempty"`
	// RoomCapacity is accepted for older clients but ignored; the
	// server always reads capacity from the room row.
	RoomCapacity *int `json:"room_capacity,omitempty"`
}

func (r CreateReservationRequest) GetPurpose() string {
	if r.Purpose == nil {
		return ""
	}
	return strings.TrimSpace(*r.Purpose)
}

type CheckAvailabilityRequest struct {
	StartTime time.Time `form:"start_time" binding:"required"`
	EndTime   time.Time `form:"end_time" binding:"required"`
}
