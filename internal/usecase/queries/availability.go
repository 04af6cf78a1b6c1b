package queries

import (
	"context"
	"log/slog"

	"studysync-api/internal/domain/reservation"
	"studysync-api/internal/domain/room"
	"studysync-api/internal/infra"
	"studysync-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrRoomNotFound       = errs.New("room not found")
	ErrAvailabilityLookup = errs.New("availability lookup failed")
)

// AvailabilityReadStore answers conflict questions against the
// reservation ledger. Only active (reserved|occupied) rows count.
type AvailabilityReadStore interface {
	// HasRoomConflict reports whether any active reservation for the
	// room overlaps the slot, regardless of row shape.
	HasRoomConflict(ctx context.Context, roomID uuid.UUID, slot reservation.TimeSlot) (bool, error)
	// BookedSeatIDs returns the distinct seats with an active
	// reservation overlapping the slot.
	BookedSeatIDs(ctx context.Context, roomID uuid.UUID, slot reservation.TimeSlot) ([]uuid.UUID, error)
	// CountActiveSeats returns how many bookable seats the room has.
	CountActiveSeats(ctx context.Context, roomID uuid.UUID) (int, error)
}

// AvailabilityCache is a best-effort read-through cache. A miss or a
// cache error falls through to the read store; lookups never invent an
// answer (fail-closed).
type AvailabilityCache interface {
	GetRoom(ctx context.Context, roomID uuid.UUID, slot reservation.TimeSlot) (available bool, ok bool)
	SetRoom(ctx context.Context, roomID uuid.UUID, slot reservation.TimeSlot, available bool)
	GetBookedSeats(ctx context.Context, roomID uuid.UUID, slot reservation.TimeSlot) ([]uuid.UUID, bool)
	SetBookedSeats(ctx context.Context, roomID uuid.UUID, slot reservation.TimeSlot, seatIDs []uuid.UUID)
}

type AvailabilityQueries interface {
	// CheckRoom reports whether the room can take a new booking for the
	// slot: whole-room rooms need a conflict-free window, per-seat rooms
	// need at least one free active seat.
	CheckRoom(ctx context.Context, roomID uuid.UUID, slot reservation.TimeSlot) (*AvailabilityView, error)
	// BookedSeats lists seats the client should gray out for the slot.
	BookedSeats(ctx context.Context, roomID uuid.UUID, slot reservation.TimeSlot) (*BookedSeatsView, error)
}

type availabilityQueriesImpl struct {
	rooms RoomReadStore
	store AvailabilityReadStore
	cache AvailabilityCache
}

func NewAvailabilityQueries(rooms RoomReadStore, store AvailabilityReadStore, cache AvailabilityCache) AvailabilityQueries {
	return &availabilityQueriesImpl{rooms: rooms, store: store, cache: cache}
}

func (q *availabilityQueriesImpl) CheckRoom(ctx context.Context, roomID uuid.UUID, slot reservation.TimeSlot) (*AvailabilityView, error) {
	if q.cache != nil {
		if available, ok := q.cache.GetRoom(ctx, roomID, slot); ok {
			return &AvailabilityView{Available: available}, nil
		}
	}

	roomView, err := q.rooms.FindByID(ctx, roomID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, errs.Mark(err, ErrAvailabilityLookup)
	}

	var available bool
	if room.ModeForCapacity(roomView.Capacity) == room.ModeWholeRoom {
		conflict, err := q.store.HasRoomConflict(ctx, roomID, slot)
		if err != nil {
			return nil, errs.Mark(err, ErrAvailabilityLookup)
		}
		available = !conflict
	} else {
		booked, err := q.store.BookedSeatIDs(ctx, roomID, slot)
		if err != nil {
			return nil, errs.Mark(err, ErrAvailabilityLookup)
		}
		total, err := q.store.CountActiveSeats(ctx, roomID)
		if err != nil {
			return nil, errs.Mark(err, ErrAvailabilityLookup)
		}
		available = len(booked) < total
	}

	if q.cache != nil {
		q.cache.SetRoom(ctx, roomID, slot, available)
	}
	return &AvailabilityView{Available: available}, nil
}

func (q *availabilityQueriesImpl) BookedSeats(ctx context.Context, roomID uuid.UUID, slot reservation.TimeSlot) (*BookedSeatsView, error) {
	if q.cache != nil {
		if seatIDs, ok := q.cache.GetBookedSeats(ctx, roomID, slot); ok {
			return &BookedSeatsView{BookedSeatIDs: seatIDs}, nil
		}
	}

	seatIDs, err := q.store.BookedSeatIDs(ctx, roomID, slot)
	if err != nil {
		slog.Warn("booked seat lookup failed", "room_id", roomID, "error", err.Error())
		return nil, errs.Mark(err, ErrAvailabilityLookup)
	}

	if q.cache != nil {
		q.cache.SetBookedSeats(ctx, roomID, slot, seatIDs)
	}
	return &BookedSeatsView{BookedSeatIDs: seatIDs}, nil
}
