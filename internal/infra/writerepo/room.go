package writerepo

import (
	"context"
	"errors"
	"time"

	"studysync-api/internal/domain/room"
	"studysync-api/internal/infra"
	"studysync-api/internal/infra/db"
	"studysync-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type RoomRepository struct {
	db db.DBTX
}

func NewRoomRepository(db db.DBTX) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) Create(ctx context.Context, entity *room.Room) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO rooms (id, name, room_number, floor_number, capacity, features, size_sqft, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		entity.ID(), entity.Name(), entity.RoomNumber(), entity.FloorNumber(),
		entity.Capacity(), entity.Features(), entity.SizeSqft(), entity.ImageURL(),
	)
	if err != nil {
		return wrapWriteErr("failed to create room", err)
	}
	return nil
}

func (r *RoomRepository) Update(ctx context.Context, entity *room.Room) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE rooms
		SET name = $2, capacity = $3, features = $4, size_sqft = $5, image_url = $6, updated_at = now()
		WHERE id = $1`,
		entity.ID(), entity.Name(), entity.Capacity(), entity.Features(), entity.SizeSqft(), entity.ImageURL(),
	)
	if err != nil {
		return wrapWriteErr("failed to update room", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *RoomRepository) LockForBooking(ctx context.Context, roomID uuid.UUID) (*shared.RoomSnapshot, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, name, capacity FROM rooms WHERE id = $1 FOR UPDATE`, roomID)

	var snap shared.RoomSnapshot
	if err := row.Scan(&snap.ID, &snap.Name, &snap.Capacity); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock room", err)
	}
	return &snap, nil
}

func (r *RoomRepository) FindEntity(ctx context.Context, roomID uuid.UUID) (*room.Room, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, name, room_number, floor_number, capacity, features, size_sqft, image_url, created_at, updated_at
		FROM rooms WHERE id = $1`, roomID)

	var (
		id                                uuid.UUID
		name                              string
		roomNumber, floorNumber, capacity int
		features                          []string
		sizeSqft                          *int
		imageURL                          *string
		createdAt, updatedAt              time.Time
	)
	err := row.Scan(&id, &name, &roomNumber, &floorNumber, &capacity, &features, &sizeSqft, &imageURL, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room", err)
	}
	return room.ReconstructRoom(id, name, roomNumber, floorNumber, capacity, features, sizeSqft, imageURL, createdAt, updatedAt), nil
}
