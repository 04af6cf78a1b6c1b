package readstore

import (
	"context"
	"errors"

	"studysync-api/internal/domain/room"
	"studysync-api/internal/infra"
	"studysync-api/internal/infra/db"
	"studysync-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const reservationViewQuery = `
	SELECT r.id, r.room_id, rm.name, rm.floor_number, rm.room_number, rm.capacity,
	       r.seat_id, s.seat_number,
	       r.user_id, r.start_time, r.end_time, r.purpose, r.status,
	       r.created_at, r.updated_at
	FROM reservations r
	JOIN rooms rm ON rm.id = r.room_id
	LEFT JOIN seats s ON s.id = r.seat_id`

type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(db db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: db}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row := r.db.QueryRow(ctx, reservationViewQuery+` WHERE r.id = $1`, id)

	view, err := scanReservationView(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	return view, nil
}

func (r *ReservationReadStore) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*queries.ReservationView, error) {
	rows, err := r.db.Query(ctx, reservationViewQuery+` WHERE r.user_id = $1 ORDER BY r.start_time DESC`, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations by user", err)
	}
	defer rows.Close()

	var result []*queries.ReservationView
	for rows.Next() {
		view, err := scanReservationView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation row", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reservation rows", err)
	}
	return result, nil
}

func scanReservationView(row pgx.Row) (*queries.ReservationView, error) {
	var (
		view        queries.ReservationView
		floorNumber int
		roomNumber  int
	)
	err := row.Scan(
		&view.ID, &view.RoomID, &view.RoomName, &floorNumber, &roomNumber, &view.RoomCapacity,
		&view.SeatID, &view.SeatNumber,
		&view.UserID, &view.StartTime, &view.EndTime, &view.Purpose, &view.Status,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	view.RoomLabel = room.FormatLabel(floorNumber, roomNumber)
	return &view, nil
}
