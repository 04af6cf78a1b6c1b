package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type RoomListItem struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	RoomNumber  int       `json:"room_number"`
	FloorNumber int       `json:"floor_number"`
	Label       string    `json:"label"`
	Capacity    int       `json:"capacity"`
	BookingMode string    `json:"booking_mode"`
	Features    []string  `json:"features"`
	SizeSqft    *int      `json:"size_sqft,omitempty"`
	ImageURL    *string   `json:"image_url,omitempty"`
	// Available is only populated when the listing was filtered by a
	// time window.
	Available *bool `json:"available,omitempty"`
}

type RoomView struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	RoomNumber  int        `json:"room_number"`
	FloorNumber int        `json:"floor_number"`
	Label       string     `json:"label"`
	Capacity    int        `json:"capacity"`
	BookingMode string     `json:"booking_mode"`
	Features    []string   `json:"features"`
	SizeSqft    *int       `json:"size_sqft,omitempty"`
	ImageURL    *string    `json:"image_url,omitempty"`
	Seats       []SeatView `json:"seats,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type SeatView struct {
	ID             uuid.UUID `json:"id"`
	RoomID         uuid.UUID `json:"room_id"`
	SeatNumber     int       `json:"seat_number"`
	PositionX      int       `json:"position_x"`
	PositionY      int       `json:"position_y"`
	HasComputer    bool      `json:"has_computer"`
	HasPowerOutlet bool      `json:"has_power_outlet"`
	IsAccessible   bool      `json:"is_accessible"`
	IsActive       bool      `json:"is_active"`
}

type SeatWithReservations struct {
	SeatView
	Reservations []ReservationListItem `json:"reservations"`
}

type ReservationView struct {
	ID           uuid.UUID  `json:"id"`
	RoomID       uuid.UUID  `json:"room_id"`
	RoomName     string     `json:"room_name"`
	RoomLabel    string     `json:"room_label"`
	SeatID       *uuid.UUID `json:"seat_id,omitempty"`
	SeatNumber   *int       `json:"seat_number,omitempty"`
	UserID       uuid.UUID  `json:"user_id"`
	StartTime    time.Time  `json:"start_time"`
	EndTime      time.Time  `json:"end_time"`
	Purpose      *string    `json:"purpose,omitempty"`
	Status       string     `json:"status"`
	RoomCapacity int        `json:"room_capacity"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type ReservationListItem struct {
	ID         uuid.UUID  `json:"id"`
	RoomID     uuid.UUID  `json:"room_id"`
	SeatID     *uuid.UUID `json:"seat_id,omitempty"`
	UserID     uuid.UUID  `json:"user_id"`
	StartTime  time.Time  `json:"start_time"`
	EndTime    time.Time  `json:"end_time"`
	Status     string     `json:"status"`
}

type AvailabilityView struct {
	Available bool `json:"available"`
}

type BookedSeatsView struct {
	BookedSeatIDs []uuid.UUID `json:"booked_seat_ids"`
}

type PracticeAttemptView struct {
	CardIndex   int       `json:"card_index"`
	FlashcardID uuid.UUID `json:"flashcard_id"`
	Correct     bool      `json:"correct"`
	ResponseMs  int       `json:"response_ms"`
	CreatedAt   time.Time `json:"created_at"`
}

type PracticeSessionView struct {
	ID            uuid.UUID             `json:"id"`
	UserID        uuid.UUID             `json:"user_id"`
	SetName       string                `json:"set_name"`
	CardCount     int                   `json:"card_count"`
	Status        string                `json:"status"`
	StartedAt     time.Time             `json:"started_at"`
	CompletedAt   *time.Time            `json:"completed_at,omitempty"`
	PausedTotalMs int64                 `json:"paused_total_ms"`
	ActiveMs      *int64                `json:"active_ms,omitempty"`
	CorrectCount  *int                  `json:"correct_count,omitempty"`
	Accuracy      *float64              `json:"accuracy,omitempty"`
	Attempts      []PracticeAttemptView `json:"attempts"`
}

type AuthorizedUserView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
}
