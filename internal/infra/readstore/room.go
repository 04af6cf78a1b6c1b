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

const roomColumns = `id, name, room_number, floor_number, capacity, features, size_sqft, image_url, created_at, updated_at`

type RoomReadStore struct {
	db db.DBTX
}

func NewRoomReadStore(db db.DBTX) *RoomReadStore {
	return &RoomReadStore{db: db}
}

func (r *RoomReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RoomView, error) {
	row := r.db.QueryRow(ctx, `SELECT `+roomColumns+` FROM rooms WHERE id = $1`, id)

	var view queries.RoomView
	err := row.Scan(
		&view.ID, &view.Name, &view.RoomNumber, &view.FloorNumber, &view.Capacity,
		&view.Features, &view.SizeSqft, &view.ImageURL, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room by ID", err)
	}

	view.Label = room.FormatLabel(view.FloorNumber, view.RoomNumber)
	view.BookingMode = room.ModeForCapacity(view.Capacity).String()
	return &view, nil
}

func (r *RoomReadStore) FindAll(ctx context.Context) ([]*queries.RoomListItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, room_number, floor_number, capacity, features, size_sqft, image_url
		FROM rooms
		ORDER BY floor_number, room_number`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list rooms", err)
	}
	defer rows.Close()

	var result []*queries.RoomListItem
	for rows.Next() {
		var item queries.RoomListItem
		err := rows.Scan(
			&item.ID, &item.Name, &item.RoomNumber, &item.FloorNumber, &item.Capacity,
			&item.Features, &item.SizeSqft, &item.ImageURL,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan room row", err)
		}
		item.Label = room.FormatLabel(item.FloorNumber, item.RoomNumber)
		item.BookingMode = room.ModeForCapacity(item.Capacity).String()
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate room rows", err)
	}
	return result, nil
}
