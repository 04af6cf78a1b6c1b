//go:build unit

package queries_test

import (
	"context"
	"testing"

	"studysync-api/internal/domain/room"
	"studysync-api/internal/infra"
	"studysync-api/internal/usecase/queries"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSeatStore struct {
	seats   []*queries.SeatView
	withRes []*queries.SeatWithReservations
	err     error
}

func (s *stubSeatStore) FindByRoom(_ context.Context, _ uuid.UUID) ([]*queries.SeatView, error) {
	return s.seats, s.err
}

func (s *stubSeatStore) FindByRoomWithReservations(_ context.Context, _ uuid.UUID) ([]*queries.SeatWithReservations, error) {
	return s.withRes, s.err
}

func listItem(name string, floor, number, capacity int, features ...string) *queries.RoomListItem {
	return &queries.RoomListItem{
		ID:          uuid.New(),
		Name:        name,
		RoomNumber:  number,
		FloorNumber: floor,
		Label:       room.FormatLabel(floor, number),
		Capacity:    capacity,
		BookingMode: room.ModeForCapacity(capacity).String(),
		Features:    features,
	}
}

func TestRoomList(t *testing.T) {
	catalog := []*queries.RoomListItem{
		listItem("Silent Study Hall", 3, 1, 40, "whiteboard"),
		listItem("Group Room A", 1, 2, 6, "whiteboard", "projector"),
		listItem("Group Room B", 1, 1, 8),
		listItem("Media Lab", 2, 5, 12, "computer"),
	}

	newQueries := func() queries.RoomQueries {
		return queries.NewRoomQueries(&stubRoomStore{list: catalog}, &stubSeatStore{}, nil)
	}

	t.Run("no filter returns all rooms in walking order", func(t *testing.T) {
		got, err := newQueries().List(context.Background(), queries.RoomFilter{})
		require.NoError(t, err)

		want := []*queries.RoomListItem{catalog[2], catalog[1], catalog[3], catalog[0]}
		if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("room list mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("filters", func(t *testing.T) {
		cases := []struct {
			name   string
			filter queries.RoomFilter
			want   []string
		}{
			{
				name:   "min capacity",
				filter: queries.RoomFilter{MinCapacity: 10},
				want:   []string{"Media Lab", "Silent Study Hall"},
			},
			{
				name:   "query matches name case-insensitively",
				filter: queries.RoomFilter{Query: "group"},
				want:   []string{"Group Room B", "Group Room A"},
			},
			{
				name:   "query matches label",
				filter: queries.RoomFilter{Query: "301"},
				want:   []string{"Silent Study Hall"},
			},
			{
				name:   "room type substring",
				filter: queries.RoomFilter{RoomType: "silent"},
				want:   []string{"Silent Study Hall"},
			},
			{
				name:   "all features must match",
				filter: queries.RoomFilter{Features: []string{"whiteboard", "projector"}},
				want:   []string{"Group Room A"},
			},
			{
				name:   "no match",
				filter: queries.RoomFilter{Query: "auditorium"},
				want:   []string{},
			},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				got, err := newQueries().List(context.Background(), tc.filter)
				require.NoError(t, err)

				names := make([]string, 0, len(got))
				for _, r := range got {
					names = append(names, r.Name)
				}
				assert.ElementsMatch(t, tc.want, names)
			})
		}
	})

	t.Run("window annotates availability", func(t *testing.T) {
		q := queries.NewRoomQueries(
			&stubRoomStore{list: catalog[:1], rooms: map[uuid.UUID]*queries.RoomView{
				catalog[0].ID: {ID: catalog[0].ID, Capacity: catalog[0].Capacity},
			}},
			&stubSeatStore{},
			queries.NewAvailabilityQueries(
				&stubRoomStore{rooms: map[uuid.UUID]*queries.RoomView{
					catalog[0].ID: {ID: catalog[0].ID, Capacity: catalog[0].Capacity},
				}},
				&stubAvailabilityStore{bookedSeats: nil, activeSeats: 10},
				nil,
			),
		)

		got, err := q.List(context.Background(), queries.RoomFilter{Window: &testWindow})
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.NotNil(t, got[0].Available)
		assert.True(t, *got[0].Available)
	})
}

func TestRoomGetByID(t *testing.T) {
	roomID := uuid.New()
	seatViews := []*queries.SeatView{
		{ID: uuid.New(), RoomID: roomID, SeatNumber: 1, IsActive: true},
		{ID: uuid.New(), RoomID: roomID, SeatNumber: 2, IsActive: true},
	}

	t.Run("loads room with seats", func(t *testing.T) {
		q := queries.NewRoomQueries(
			&stubRoomStore{rooms: map[uuid.UUID]*queries.RoomView{roomID: largeRoom(roomID)}},
			&stubSeatStore{seats: seatViews},
			nil,
		)

		got, err := q.GetByID(context.Background(), roomID)
		require.NoError(t, err)
		assert.Len(t, got.Seats, 2)
	})

	t.Run("unknown room", func(t *testing.T) {
		q := queries.NewRoomQueries(
			&stubRoomStore{rooms: map[uuid.UUID]*queries.RoomView{}},
			&stubSeatStore{},
			nil,
		)

		_, err := q.GetByID(context.Background(), uuid.New())
		assert.ErrorIs(t, err, queries.ErrRoomNotFound)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		q := queries.NewRoomQueries(
			&stubRoomStore{err: infra.WrapRepoErr("connection lost", nil)},
			&stubSeatStore{},
			nil,
		)

		_, err := q.GetByID(context.Background(), roomID)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, queries.ErrRoomNotFound)
	})
}
