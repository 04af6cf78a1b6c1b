package writerepo

import (
	"context"
	"time"

	"studysync-api/internal/domain/seat"
	"studysync-api/internal/infra"
	"studysync-api/internal/infra/db"

	"github.com/google/uuid"
)

type SeatRepository struct {
	db db.DBTX
}

func NewSeatRepository(db db.DBTX) *SeatRepository {
	return &SeatRepository{db: db}
}

func (s *SeatRepository) CreateBatch(ctx context.Context, seats []*seat.Seat) error {
	for _, entity := range seats {
		_, err := s.db.Exec(ctx, `
			INSERT INTO seats (id, room_id, seat_number, position_x, position_y, has_computer, has_power_outlet, is_accessible, is_active)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			entity.ID(), entity.RoomID(), entity.SeatNumber(), entity.PositionX(), entity.PositionY(),
			entity.HasComputer(), entity.HasPowerOutlet(), entity.IsAccessible(), entity.IsActive(),
		)
		if err != nil {
			return wrapWriteErr("failed to create seat", err)
		}
	}
	return nil
}

func (s *SeatRepository) FindForRoom(ctx context.Context, roomID uuid.UUID, seatIDs []uuid.UUID) ([]*seat.Seat, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, room_id, seat_number, position_x, position_y,
		       has_computer, has_power_outlet, is_accessible, is_active, created_at, updated_at
		FROM seats
		WHERE room_id = $1 AND id = ANY($2)`, roomID, seatIDs)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find seats", err)
	}
	defer rows.Close()

	var result []*seat.Seat
	for rows.Next() {
		var (
			id, rID                                  uuid.UUID
			seatNumber, posX, posY                   int
			computer, power, accessible, active      bool
			createdAt, updatedAt                     time.Time
		)
		err := rows.Scan(&id, &rID, &seatNumber, &posX, &posY, &computer, &power, &accessible, &active, &createdAt, &updatedAt)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan seat row", err)
		}
		result = append(result, seat.ReconstructSeat(id, rID, seatNumber, posX, posY, computer, power, accessible, active, createdAt, updatedAt))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate seat rows", err)
	}

	if len(result) != len(seatIDs) {
		return nil, infra.WrapRepoErr("some seats were not found in the room", nil, infra.KindNotFound)
	}
	return result, nil
}
