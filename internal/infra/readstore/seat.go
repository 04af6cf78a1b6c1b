package readstore

import (
	"context"

	"studysync-api/internal/infra"
	"studysync-api/internal/infra/db"
	"studysync-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type SeatReadStore struct {
	db db.DBTX
}

func NewSeatReadStore(db db.DBTX) *SeatReadStore {
	return &SeatReadStore{db: db}
}

func (s *SeatReadStore) FindByRoom(ctx context.Context, roomID uuid.UUID) ([]*queries.SeatView, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, room_id, seat_number, position_x, position_y,
		       has_computer, has_power_outlet, is_accessible, is_active
		FROM seats
		WHERE room_id = $1
		ORDER BY seat_number`, roomID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list seats", err)
	}
	defer rows.Close()

	var result []*queries.SeatView
	for rows.Next() {
		var view queries.SeatView
		err := rows.Scan(
			&view.ID, &view.RoomID, &view.SeatNumber, &view.PositionX, &view.PositionY,
			&view.HasComputer, &view.HasPowerOutlet, &view.IsAccessible, &view.IsActive,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan seat row", err)
		}
		result = append(result, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate seat rows", err)
	}
	return result, nil
}

// FindByRoomWithReservations returns the room's seats, each with its
// active reservations attached so the floor map can render occupancy.
func (s *SeatReadStore) FindByRoomWithReservations(ctx context.Context, roomID uuid.UUID) ([]*queries.SeatWithReservations, error) {
	seats, err := s.FindByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, room_id, seat_id, user_id, start_time, end_time, status
		FROM reservations
		WHERE room_id = $1 AND seat_id IS NOT NULL AND status IN ('reserved', 'occupied')
		ORDER BY start_time`, roomID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list seat reservations", err)
	}
	defer rows.Close()

	bySeat := make(map[uuid.UUID][]queries.ReservationListItem)
	for rows.Next() {
		var item queries.ReservationListItem
		err := rows.Scan(&item.ID, &item.RoomID, &item.SeatID, &item.UserID, &item.StartTime, &item.EndTime, &item.Status)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation row", err)
		}
		if item.SeatID != nil {
			bySeat[*item.SeatID] = append(bySeat[*item.SeatID], item)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reservation rows", err)
	}

	result := make([]*queries.SeatWithReservations, len(seats))
	for i, seat := range seats {
		reservations := bySeat[seat.ID]
		if reservations == nil {
			reservations = []queries.ReservationListItem{}
		}
		result[i] = &queries.SeatWithReservations{
			SeatView:     *seat,
			Reservations: reservations,
		}
	}
	return result, nil
}
