package shared

import (
	"context"
	"time"

	"studysync-api/internal/domain/practice"
	"studysync-api/internal/domain/reservation"
	"studysync-api/internal/domain/room"
	"studysync-api/internal/domain/seat"
	"studysync-api/internal/domain/user"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: full transaction for write operations with retry on
	// serialization failures.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Rooms() RoomRepository
	Seats() SeatRepository
	Reservations() ReservationRepository
	Practice() PracticeRepository
	Users() UserRepository
}

// RoomSnapshot is the minimal room state a booking transaction needs.
type RoomSnapshot struct {
	ID       uuid.UUID
	Name     string
	Capacity int
}

type RoomRepository interface {
	Create(ctx context.Context, r *room.Room) error
	Update(ctx context.Context, r *room.Room) error
	// LockForBooking takes a row lock on the room, serializing
	// concurrent booking attempts against it for the duration of the
	// transaction.
	LockForBooking(ctx context.Context, roomID uuid.UUID) (*RoomSnapshot, error)
	FindEntity(ctx context.Context, roomID uuid.UUID) (*room.Room, error)
}

type SeatRepository interface {
	CreateBatch(ctx context.Context, seats []*seat.Seat) error
	// FindForRoom resolves the given seat IDs within a room; missing
	// IDs surface as a NOT_FOUND repository error.
	FindForRoom(ctx context.Context, roomID uuid.UUID, seatIDs []uuid.UUID) ([]*seat.Seat, error)
}

type ReservationRepository interface {
	// CreateBatch inserts every row or none; it runs inside the
	// surrounding transaction.
	CreateBatch(ctx context.Context, rows []*reservation.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	Delete(ctx context.Context, id uuid.UUID) error
	HasRoomConflict(ctx context.Context, roomID uuid.UUID, slot reservation.TimeSlot) (bool, error)
	BookedSeatIDs(ctx context.Context, roomID uuid.UUID, slot reservation.TimeSlot) ([]uuid.UUID, error)
	CountActiveByUser(ctx context.Context, userID uuid.UUID) (int, error)
	// MarkOccupied flips reserved rows whose window has started and
	// returns the room ID of every flipped row.
	MarkOccupied(ctx context.Context, now time.Time) ([]uuid.UUID, error)
	// MarkCompleted flips active rows whose window has elapsed and
	// returns the room ID of every flipped row.
	MarkCompleted(ctx context.Context, now time.Time) ([]uuid.UUID, error)
}

type PracticeRepository interface {
	CreateSession(ctx context.Context, s *practice.Session) error
	// FindSessionForUpdate locks the session row for the transaction.
	FindSessionForUpdate(ctx context.Context, id uuid.UUID) (*practice.Session, error)
	UpdateSession(ctx context.Context, s *practice.Session) error
	// UpsertAttempt inserts or replaces the attempt for its card index.
	UpsertAttempt(ctx context.Context, a *practice.Attempt) error
	CountCorrect(ctx context.Context, sessionID uuid.UUID) (int, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	UpdateLastLogin(ctx context.Context, userID uuid.UUID) error
}
