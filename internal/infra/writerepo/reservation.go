package writerepo

import (
	"context"
	"errors"
	"time"

	"studysync-api/internal/domain/reservation"
	"studysync-api/internal/infra"
	"studysync-api/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ReservationRepository struct {
	db db.DBTX
}

func NewReservationRepository(db db.DBTX) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// CreateBatch inserts every row of a booking. It relies on the caller's
// transaction for atomicity; any failed insert aborts the whole batch.
func (r *ReservationRepository) CreateBatch(ctx context.Context, rows []*reservation.Reservation) error {
	for _, row := range rows {
		var purpose *string
		if !row.Purpose().IsEmpty() {
			p := row.Purpose().String()
			purpose = &p
		}
		_, err := r.db.Exec(ctx, `
			INSERT INTO reservations (id, room_id, seat_id, user_id, start_time, end_time, purpose, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			row.ID(), row.RoomID(), row.SeatID(), row.UserID(),
			row.Slot().Start(), row.Slot().End(), purpose, row.Status().String(),
		)
		if err != nil {
			return wrapWriteErr("failed to create reservation", err)
		}
	}
	return nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	row := r.db.QueryRow(ctx, `
		SELECT r.id, r.room_id, r.seat_id, r.user_id, r.start_time, r.end_time,
		       r.purpose, r.status, rm.capacity, r.created_at, r.updated_at
		FROM reservations r
		JOIN rooms rm ON rm.id = r.room_id
		WHERE r.id = $1`, id)

	var (
		rID, roomID          uuid.UUID
		seatID               *uuid.UUID
		userID               uuid.UUID
		startTime, endTime   time.Time
		purpose              *string
		status               string
		roomCapacity         int
		createdAt, updatedAt time.Time
	)
	err := row.Scan(&rID, &roomID, &seatID, &userID, &startTime, &endTime, &purpose, &status, &roomCapacity, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation", err)
	}

	slot, err := reservation.NewTimeSlot(startTime, endTime)
	if err != nil {
		return nil, infra.WrapRepoErr("inconsistent reservation window", err)
	}
	purposeVal := ""
	if purpose != nil {
		purposeVal = *purpose
	}
	purposeVO, err := reservation.NewPurpose(purposeVal)
	if err != nil {
		return nil, infra.WrapRepoErr("inconsistent reservation purpose", err)
	}
	statusVO := reservation.Status(status)
	if !statusVO.IsValid() {
		return nil, infra.WrapRepoErr("inconsistent reservation status", reservation.ErrInvalidStatus)
	}

	return reservation.ReconstructReservation(rID, roomID, seatID, userID, slot, purposeVO, statusVO, roomCapacity, createdAt, updatedAt), nil
}

func (r *ReservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return wrapWriteErr("failed to delete reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ReservationRepository) HasRoomConflict(ctx context.Context, roomID uuid.UUID, slot reservation.TimeSlot) (bool, error) {
	var conflict bool
	err := r.db.QueryRow(ctx, `
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

func (r *ReservationRepository) BookedSeatIDs(ctx context.Context, roomID uuid.UUID, slot reservation.TimeSlot) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `
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

func (r *ReservationRepository) CountActiveByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM reservations
		WHERE user_id = $1 AND status IN ('reserved', 'occupied')`, userID).Scan(&count)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count active reservations", err)
	}
	return count, nil
}

func (r *ReservationRepository) MarkOccupied(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `
		UPDATE reservations
		SET status = 'occupied', updated_at = now()
		WHERE status = 'reserved' AND start_time <= $1 AND end_time > $1
		RETURNING room_id`, now)
	if err != nil {
		return nil, wrapWriteErr("failed to mark reservations occupied", err)
	}
	return scanRoomIDs(rows, "failed to collect occupied rooms")
}

func (r *ReservationRepository) MarkCompleted(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `
		UPDATE reservations
		SET status = 'completed', updated_at = now()
		WHERE status IN ('reserved', 'occupied') AND end_time <= $1
		RETURNING room_id`, now)
	if err != nil {
		return nil, wrapWriteErr("failed to mark reservations completed", err)
	}
	return scanRoomIDs(rows, "failed to collect completed rooms")
}

func scanRoomIDs(rows pgx.Rows, msg string) ([]uuid.UUID, error) {
	defer rows.Close()

	var roomIDs []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr(msg, err)
		}
		roomIDs = append(roomIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}
	return roomIDs, nil
}
