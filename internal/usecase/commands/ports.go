package commands

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// BookingEvent is the payload published to the broker when a booking is
// confirmed or canceled. It carries enough for downstream consumers
// (notifications, analytics) without a database round trip.
type BookingEvent struct {
	ReservationIDs []uuid.UUID `json:"reservation_ids"`
	RoomID         uuid.UUID   `json:"room_id"`
	RoomName       string      `json:"room_name"`
	UserID         uuid.UUID   `json:"user_id"`
	SeatIDs        []uuid.UUID `json:"seat_ids,omitempty"`
	StartTime      time.Time   `json:"start_time"`
	EndTime        time.Time   `json:"end_time"`
	OccurredAt     time.Time   `json:"occurred_at"`
}

// EventPublisher delivers booking lifecycle events after commit.
// Publishing is best-effort; implementations log and swallow broker
// failures so the request flow is never interrupted.
type EventPublisher interface {
	PublishBookingConfirmed(ctx context.Context, event BookingEvent)
	PublishBookingCanceled(ctx context.Context, event BookingEvent)
}

// AvailabilityInvalidator drops cached availability answers for a room
// after its ledger changed.
type AvailabilityInvalidator interface {
	InvalidateRoom(ctx context.Context, roomID uuid.UUID)
}
