package response

import (
	"time"

	"studysync-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type RoomListItemResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Label       string    `json:"label"`
	RoomNumber  int       `json:"roomNumber"`
	FloorNumber int       `json:"floorNumber"`
	Capacity    int       `json:"capacity"`
	BookingMode string    `json:"bookingMode"`
	Features    []string  `json:"features"`
	SizeSqft    *int      `json:"sizeSqft,omitempty"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	Available   *bool     `json:"available,omitempty"`
}

type RoomResponse struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	Label       string         `json:"label"`
	RoomNumber  int            `json:"roomNumber"`
	FloorNumber int            `json:"floorNumber"`
	Capacity    int            `json:"capacity"`
	BookingMode string         `json:"bookingMode"`
	Features    []string       `json:"features"`
	SizeSqft    *int           `json:"sizeSqft,omitempty"`
	ImageURL    *string        `json:"imageUrl,omitempty"`
	Seats       []SeatResponse `json:"seats,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

type SeatResponse struct {
	ID             uuid.UUID `json:"id"`
	RoomID         uuid.UUID `json:"roomId"`
	SeatNumber     int       `json:"seatNumber"`
	PositionX      int       `json:"positionX"`
	PositionY      int       `json:"positionY"`
	HasComputer    bool      `json:"hasComputer"`
	HasPowerOutlet bool      `json:"hasPowerOutlet"`
	IsAccessible   bool      `json:"isAccessible"`
	IsActive       bool      `json:"isActive"`
}

type SeatWithReservationsResponse struct {
	SeatResponse
	Reservations []SeatReservationResponse `json:"reservations"`
}

type SeatReservationResponse struct {
	ID        uuid.UUID `json:"id"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Status    string    `json:"status"`
}

func FromRoomListItem(rm *queries.RoomListItem) *RoomListItemResponse {
	return &RoomListItemResponse{
		ID:          rm.ID,
		Name:        rm.Name,
		Label:       rm.Label,
		RoomNumber:  rm.RoomNumber,
		FloorNumber: rm.FloorNumber,
		Capacity:    rm.Capacity,
		BookingMode: rm.BookingMode,
		Features:    rm.Features,
		SizeSqft:    rm.SizeSqft,
		ImageURL:    rm.ImageURL,
		Available:   rm.Available,
	}
}

func FromRoomListItems(rms []*queries.RoomListItem) []*RoomListItemResponse {
	out := make([]*RoomListItemResponse, len(rms))
	for i, rm := range rms {
		out[i] = FromRoomListItem(rm)
	}
	return out
}

func FromRoomView(rm *queries.RoomView) *RoomResponse {
	seats := make([]SeatResponse, len(rm.Seats))
	for i, s := range rm.Seats {
		seats[i] = fromSeatView(&s)
	}
	return &RoomResponse{
		ID:          rm.ID,
		Name:        rm.Name,
		Label:       rm.Label,
		RoomNumber:  rm.RoomNumber,
		FloorNumber: rm.FloorNumber,
		Capacity:    rm.Capacity,
		BookingMode: rm.BookingMode,
		Features:    rm.Features,
		SizeSqft:    rm.SizeSqft,
		ImageURL:    rm.ImageURL,
		Seats:       seats,
		CreatedAt:   rm.CreatedAt,
		UpdatedAt:   rm.UpdatedAt,
	}
}

func fromSeatView(rm *queries.SeatView) SeatResponse {
	return SeatResponse{
		ID:             rm.ID,
		RoomID:         rm.RoomID,
		SeatNumber:     rm.SeatNumber,
		PositionX:      rm.PositionX,
		PositionY:      rm.PositionY,
		HasComputer:    rm.HasComputer,
		HasPowerOutlet: rm.HasPowerOutlet,
		IsAccessible:   rm.IsAccessible,
		IsActive:       rm.IsActive,
	}
}

func FromSeatView(rm *queries.SeatView) *SeatResponse {
	resp := fromSeatView(rm)
	return &resp
}

func FromSeatViews(rms []*queries.SeatView) []*SeatResponse {
	out := make([]*SeatResponse, len(rms))
	for i, rm := range rms {
		out[i] = FromSeatView(rm)
	}
	return out
}

func FromSeatWithReservations(rm *queries.SeatWithReservations) *SeatWithReservationsResponse {
	reservations := make([]SeatReservationResponse, len(rm.Reservations))
	for i, r := range rm.Reservations {
		reservations[i] = SeatReservationResponse{
			ID:        r.ID,
			StartTime: r.StartTime,
			EndTime:   r.EndTime,
			Status:    r.Status,
		}
	}
	return &SeatWithReservationsResponse{
		SeatResponse: fromSeatView(&rm.SeatView),
		Reservations: reservations,
	}
}

func FromSeatsWithReservations(rms []*queries.SeatWithReservations) []*SeatWithReservationsResponse {
	out := make([]*SeatWithReservationsResponse, len(rms))
	for i, rm := range rms {
		out[i] = FromSeatWithReservations(rm)
	}
	return out
}
