package response

import (
	"time"

	"studysync-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID           uuid.UUID  `json:"id"`
	RoomID       uuid.UUID  `json:"roomId"`
	RoomName     string     `json:"roomName"`
	RoomLabel    string     `json:"roomLabel"`
	SeatID       *uuid.UUID `json:"seatId,omitempty"`
	SeatNumber   *int       `json:"seatNumber,omitempty"`
	UserID       uuid.UUID  `json:"userId"`
	StartTime    time.Time  `json:"startTime"`
	EndTime      time.Time  `json:"endTime"`
	Purpose      *string    `json:"purpose,omitempty"`
	Status       string     `json:"status"`
	RoomCapacity int        `json:"roomCapacity"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type AvailabilityResponse struct {
	Available bool `json:"available"`
}

type BookedSeatsResponse struct {
	BookedSeatIDs []uuid.UUID `json:"bookedSeatIds"`
}

type SweepResponse struct {
	Occupied  int64 `json:"occupied"`
	Completed int64 `json:"completed"`
}

func FromReservationView(rm *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:           rm.ID,
		RoomID:       rm.RoomID,
		RoomName:     rm.RoomName,
		RoomLabel:    rm.RoomLabel,
		SeatID:       rm.SeatID,
		SeatNumber:   rm.SeatNumber,
		UserID:       rm.UserID,
		StartTime:    rm.StartTime,
		EndTime:      rm.EndTime,
		Purpose:      rm.Purpose,
		Status:       rm.Status,
		RoomCapacity: rm.RoomCapacity,
		CreatedAt:    rm.CreatedAt,
		UpdatedAt:    rm.UpdatedAt,
	}
}

func FromReservationViews(rms []*queries.ReservationView) []*ReservationResponse {
	out := make([]*ReservationResponse, len(rms))
	for i, rm := range rms {
		out[i] = FromReservationView(rm)
	}
	return out
}
