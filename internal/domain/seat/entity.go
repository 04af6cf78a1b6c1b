package seat

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidSeatNumber = errors.New("seat number must be positive")
	ErrInvalidPosition   = errors.New("seat position cannot be negative")
)

type Seat struct {
	id             uuid.UUID
	roomID         uuid.UUID
	seatNumber     int
	positionX      int
	positionY      int
	hasComputer    bool
	hasPowerOutlet bool
	isAccessible   bool
	isActive       bool
	createdAt      time.Time
	updatedAt      time.Time
}

func NewSeat(roomID uuid.UUID, seatNumber, positionX, positionY int, hasComputer, hasPowerOutlet, isAccessible bool) (*Seat, error) {
	if seatNumber <= 0 {
		return nil, ErrInvalidSeatNumber
	}
	if positionX < 0 || positionY < 0 {
		return nil, ErrInvalidPosition
	}
	return &Seat{
		id:             uuid.New(),
		roomID:         roomID,
		seatNumber:     seatNumber,
		positionX:      positionX,
		positionY:      positionY,
		hasComputer:    hasComputer,
		hasPowerOutlet: hasPowerOutlet,
		isAccessible:   isAccessible,
		isActive:       true,
	}, nil
}

func ReconstructSeat(
	id, roomID uuid.UUID,
	seatNumber, positionX, positionY int,
	hasComputer, hasPowerOutlet, isAccessible, isActive bool,
	createdAt, updatedAt time.Time,
) *Seat {
	return &Seat{
		id:             id,
		roomID:         roomID,
		seatNumber:     seatNumber,
		positionX:      positionX,
		positionY:      positionY,
		hasComputer:    hasComputer,
		hasPowerOutlet: hasPowerOutlet,
		isAccessible:   isAccessible,
		isActive:       isActive,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (s *Seat) ID() uuid.UUID        { return s.id }
func (s *Seat) RoomID() uuid.UUID    { return s.roomID }
func (s *Seat) SeatNumber() int      { return s.seatNumber }
func (s *Seat) PositionX() int       { return s.positionX }
func (s *Seat) PositionY() int       { return s.positionY }
func (s *Seat) HasComputer() bool    { return s.hasComputer }
func (s *Seat) HasPowerOutlet() bool { return s.hasPowerOutlet }
func (s *Seat) IsAccessible() bool   { return s.isAccessible }
func (s *Seat) IsActive() bool       { return s.isActive }
func (s *Seat) CreatedAt() time.Time { return s.createdAt }
func (s *Seat) UpdatedAt() time.Time { return s.updatedAt }
