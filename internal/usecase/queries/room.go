package queries

import (
	"context"
	"sort"
	"strings"

	"studysync-api/internal/domain/reservation"
	"studysync-api/internal/infra"
	"studysync-api/internal/pkg/errs"

	"github.com/google/uuid"
)

type RoomReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RoomView, error)
	FindAll(ctx context.Context) ([]*RoomListItem, error)
}

type SeatReadStore interface {
	FindByRoom(ctx context.Context, roomID uuid.UUID) ([]*SeatView, error)
	FindByRoomWithReservations(ctx context.Context, roomID uuid.UUID) ([]*SeatWithReservations, error)
}

// RoomFilter narrows the candidate list shown to the user. All filters
// are optional; empty values match everything.
type RoomFilter struct {
	// Query matches case-insensitively against name and label.
	Query string
	// MinCapacity drops rooms below the floor.
	MinCapacity int
	// Features must all be present on the room.
	Features []string
	// RoomType matches a substring of the room name ("group", "silent").
	RoomType string
	// Window, when set, annotates each room with its availability.
	Window *reservation.TimeSlot
}

type RoomQueries interface {
	List(ctx context.Context, filter RoomFilter) ([]*RoomListItem, error)
	GetByID(ctx context.Context, id uuid.UUID) (*RoomView, error)
	SeatsForRoom(ctx context.Context, roomID uuid.UUID) ([]*SeatWithReservations, error)
}

type roomQueriesImpl struct {
	rooms        RoomReadStore
	seats        SeatReadStore
	availability AvailabilityQueries
}

func NewRoomQueries(rooms RoomReadStore, seats SeatReadStore, availability AvailabilityQueries) RoomQueries {
	return &roomQueriesImpl{rooms: rooms, seats: seats, availability: availability}
}

// List fetches every room and filters in memory. The catalog is small
// and static, so a linear scan beats maintaining a search index.
func (q *roomQueriesImpl) List(ctx context.Context, filter RoomFilter) ([]*RoomListItem, error) {
	rooms, err := q.rooms.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]*RoomListItem, 0, len(rooms))
	for _, r := range rooms {
		if !matchesFilter(r, filter) {
			continue
		}
		filtered = append(filtered, r)
	}

	// Zero-padded floor+room labels sort lexicographically in walking
	// order.
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].Label < filtered[j].Label
	})

	if filter.Window != nil {
		for _, r := range filtered {
			view, err := q.availability.CheckRoom(ctx, r.ID, *filter.Window)
			if err != nil {
				return nil, err
			}
			available := view.Available
			r.Available = &available
		}
	}

	return filtered, nil
}

func (q *roomQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*RoomView, error) {
	roomView, err := q.rooms.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, errs.Wrap(err, "failed to load room")
	}

	seats, err := q.seats.FindByRoom(ctx, id)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load seats")
	}
	roomView.Seats = make([]SeatView, len(seats))
	for i, s := range seats {
		roomView.Seats[i] = *s
	}
	return roomView, nil
}

func (q *roomQueriesImpl) SeatsForRoom(ctx context.Context, roomID uuid.UUID) ([]*SeatWithReservations, error) {
	if _, err := q.rooms.FindByID(ctx, roomID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, errs.Wrap(err, "failed to load room")
	}
	return q.seats.FindByRoomWithReservations(ctx, roomID)
}

func matchesFilter(r *RoomListItem, filter RoomFilter) bool {
	if filter.MinCapacity > 0 && r.Capacity < filter.MinCapacity {
		return false
	}

	if q := strings.ToLower(strings.TrimSpace(filter.Query)); q != "" {
		name := strings.ToLower(r.Name)
		if !strings.Contains(name, q) && !strings.Contains(r.Label, q) {
			return false
		}
	}

	if t := strings.ToLower(strings.TrimSpace(filter.RoomType)); t != "" {
		if !strings.Contains(strings.ToLower(r.Name), t) {
			return false
		}
	}

	for _, want := range filter.Features {
		want = strings.ToLower(strings.TrimSpace(want))
		if want == "" {
			continue
		}
		found := false
		for _, f := range r.Features {
			if f == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}
