package readstore

import (
	"context"

	"studysync-api/internal/domain/reservation"
	"studysync-api/internal/infra"
	"studysync-api/internal/infra/db"

	"github.com/google/uuid"
)

// AvailabilityReadStore answers overlap questions straight from the
// reservation ledger. Overlap is half-open: [start, end) windows
// conflict when start < other.end AND end > other.start, so
// back-to-back bookings never collide.
type AvailabilityReadStore struct {
	db db.DBTX
}

func NewAvailabilityReadStore(db db.DBTX) *AvailabilityReadStore {
	return &AvailabilityReadStore{db: db}
}

func (a *AvailabilityReadStore) HasRoomConflict(ctx context.Context, roomID uuid.UUID, slot reservation.TimeSlot) (bool, error) {
	var conflict bool
	err := a.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM reservations
			WHERE room_id = $1
			  AND status IN ('reserved', 'occupied')
			  AND start_time < $3
			  AND end_time > $2
		)`, roomID, slot.Start(), slot.End()).Scan(&conflict)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check room conflict", err)
	}
	return conflict, nil
}

func (a *AvailabilityReadStore) BookedSeatIDs(ctx context.Context, roomID uuid.UUID, slot reservation.TimeSlot) ([]uuid.UUID, error) {
	rows, err := a.db.Query(ctx, `
		SELECT DISTINCT seat_id FROM reservations
		WHERE room_id = $1
		  AND seat_id IS NOT NULL
		  AND status IN ('reserved', 'occupied')
		  AND start_time < $3
		  AND end_time > $2`, roomID, slot.Start(), slot.End())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list booked seats", err)
	}
	defer rows.Close()

	var seatIDs []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booked seat", err)
		}
		seatIDs = append(seatIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booked seats", err)
	}
	return seatIDs, nil
}

func (a *AvailabilityReadStore) CountActiveSeats(ctx context.Context, roomID uuid.UUID) (int, error) {
	var count int
	err := a.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM seats WHERE room_id = $1 AND is_active`, roomID).Scan(&count)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count active seats", err)
	}
	return count, nil
}
