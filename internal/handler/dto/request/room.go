package request

import (
	"studysync-api/internal/domain/room"
	"studysync-api/internal/domain/seat"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	Name        string   `json:"name" binding:"required,max=200"`
	RoomNumber  int      `json:"room_number" binding:"required,min=1"`
	FloorNumber int      `json:"floor_number" binding:"required,min=1"`
	Capacity    int      `json:"capacity" binding:"required,min=1"`
	Features    []string `json:"features,omitempty"`
	SizeSqft    *int     `json:"size_sqft,omitempty" binding:"omitempty,min=1"`
	ImageURL    *string  `json:"image_url,omitempty" binding:"omitempty,url"`
}

func (r *CreateRoomRequest) ToDomain() (*room.Room, error) {
	return room.NewRoom(r.Name, r.RoomNumber, r.FloorNumber, r.Capacity, r.Features, r.SizeSqft, r.ImageURL)
}

type UpdateRoomRequest struct {
	Name     *string  `json:"name,omitempty" binding:"omitempty,max=200"`
	Capacity *int     `json:"capacity,omitempty" binding:"omitempty,min=1"`
	Features []string `json:"features,omitempty"`
	SizeSqft *int     `json:"size_sqft,omitempty" binding:"omitempty,min=1"`
	ImageURL *string  `json:"image_url,omitempty" binding:"omitempty,url"`
}

type CreateSeatRequest struct {
	SeatNumber     int  `json:"seat_number" binding:"required,min=1"`
	PositionX      int  `json:"position_x" binding:"min=0"`
	PositionY      int  `json:"position_y" binding:"min=0"`
	HasComputer    bool `json:"has_computer"`
	HasPowerOutlet bool `json:"has_power_outlet"`
	IsAccessible   bool `json:"is_accessible"`
}

type CreateSeatsRequest struct {
	Seats []CreateSeatRequest `json:"seats" binding:"required,min=1,dive"`
}

func (r *CreateSeatsRequest) ToDomain(roomID uuid.UUID) ([]*seat.Seat, error) {
	seats := make([]*seat.Seat, 0, len(r.Seats))
	for _, s := range r.Seats {
		entity, err := seat.NewSeat(roomID, s.SeatNumber, s.PositionX, s.PositionY, s.HasComputer, s.HasPowerOutlet, s.IsAccessible)
		if err != nil {
			return nil, err
		}
		seats = append(seats, entity)
	}
	return seats, nil
}
