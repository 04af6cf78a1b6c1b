//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"studysync-api/internal/domain/reservation"
	"studysync-api/internal/infra"
	"studysync-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testWindow = mustSlot(
	time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
	time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC),
)

func mustSlot(start, end time.Time) reservation.TimeSlot {
	s, err := reservation.NewTimeSlot(start, end)
	if err != nil {
		panic(err)
	}
	return s
}

type stubRoomStore struct {
	rooms map[uuid.UUID]*queries.RoomView
	list  []*queries.RoomListItem
	err   error
}

func (s *stubRoomStore) FindByID(_ context.Context, id uuid.UUID) (*queries.RoomView, error) {
	if s.err != nil {
		return nil, s.err
	}
	r, ok := s.rooms[id]
	if !ok {
		return nil, infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
	}
	return r, nil
}

func (s *stubRoomStore) FindAll(_ context.Context) ([]*queries.RoomListItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.list, nil
}

type stubAvailabilityStore struct {
	roomConflict bool
	bookedSeats  []uuid.UUID
	activeSeats  int
	err          error
}

func (s *stubAvailabilityStore) HasRoomConflict(_ context.Context, _ uuid.UUID, _ reservation.TimeSlot) (bool, error) {
	return s.roomConflict, s.err
}

func (s *stubAvailabilityStore) BookedSeatIDs(_ context.Context, _ uuid.UUID, _ reservation.TimeSlot) ([]uuid.UUID, error) {
	return s.bookedSeats, s.err
}

func (s *stubAvailabilityStore) CountActiveSeats(_ context.Context, _ uuid.UUID) (int, error) {
	return s.activeSeats, s.err
}

type recordingCache struct {
	roomHit     *bool
	seatsHit    []uuid.UUID
	roomStores  int
	seatsStores int
}

func (c *recordingCache) GetRoom(_ context.Context, _ uuid.UUID, _ reservation.TimeSlot) (bool, bool) {
	if c.roomHit == nil {
		return false, false
	}
	return *c.roomHit, true
}

func (c *recordingCache) SetRoom(_ context.Context, _ uuid.UUID, _ reservation.TimeSlot, _ bool) {
	c.roomStores++
}

func (c *recordingCache) GetBookedSeats(_ context.Context, _ uuid.UUID, _ reservation.TimeSlot) ([]uuid.UUID, bool) {
	if c.seatsHit == nil {
		return nil, false
	}
	return c.seatsHit, true
}

func (c *recordingCache) SetBookedSeats(_ context.Context, _ uuid.UUID, _ reservation.TimeSlot, _ []uuid.UUID) {
	c.seatsStores++
}

func smallRoom(id uuid.UUID) *queries.RoomView {
	return &queries.RoomView{ID: id, Name: "Huddle Room", Capacity: 4}
}

func largeRoom(id uuid.UUID) *queries.RoomView {
	return &queries.RoomView{ID: id, Name: "Reading Hall", Capacity: 40}
}

func TestCheckRoom(t *testing.T) {
	roomID := uuid.New()

	t.Run("whole-room mode follows the conflict check", func(t *testing.T) {
		cases := []struct {
			name      string
			conflict  bool
			available bool
		}{
			{name: "free window", conflict: false, available: true},
			{name: "conflicting window", conflict: true, available: false},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				q := queries.NewAvailabilityQueries(
					&stubRoomStore{rooms: map[uuid.UUID]*queries.RoomView{roomID: smallRoom(roomID)}},
					&stubAvailabilityStore{roomConflict: tc.conflict},
					nil,
				)

				view, err := q.CheckRoom(context.Background(), roomID, testWindow)
				require.NoError(t, err)
				assert.Equal(t, tc.available, view.Available)
			})
		}
	})

	t.Run("per-seat mode needs a free seat", func(t *testing.T) {
		seatA, seatB := uuid.New(), uuid.New()
		cases := []struct {
			name      string
			booked    []uuid.UUID
			total     int
			available bool
		}{
			{name: "all seats free", booked: nil, total: 2, available: true},
			{name: "one seat left", booked: []uuid.UUID{seatA}, total: 2, available: true},
			{name: "fully booked", booked: []uuid.UUID{seatA, seatB}, total: 2, available: false},
			{name: "no active seats", booked: nil, total: 0, available: false},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				q := queries.NewAvailabilityQueries(
					&stubRoomStore{rooms: map[uuid.UUID]*queries.RoomView{roomID: largeRoom(roomID)}},
					&stubAvailabilityStore{bookedSeats: tc.booked, activeSeats: tc.total},
					nil,
				)

				view, err := q.CheckRoom(context.Background(), roomID, testWindow)
				require.NoError(t, err)
				assert.Equal(t, tc.available, view.Available)
			})
		}
	})

	t.Run("unknown room", func(t *testing.T) {
		q := queries.NewAvailabilityQueries(
			&stubRoomStore{rooms: map[uuid.UUID]*queries.RoomView{}},
			&stubAvailabilityStore{},
			nil,
		)

		_, err := q.CheckRoom(context.Background(), uuid.New(), testWindow)
		assert.ErrorIs(t, err, queries.ErrRoomNotFound)
	})

	t.Run("store failure is an error, never a yes", func(t *testing.T) {
		q := queries.NewAvailabilityQueries(
			&stubRoomStore{rooms: map[uuid.UUID]*queries.RoomView{roomID: smallRoom(roomID)}},
			&stubAvailabilityStore{err: infra.WrapRepoErr("connection lost", nil)},
			nil,
		)

		view, err := q.CheckRoom(context.Background(), roomID, testWindow)
		assert.Nil(t, view)
		assert.ErrorIs(t, err, queries.ErrAvailabilityLookup)
	})

	t.Run("cache hit skips the store", func(t *testing.T) {
		hit := true
		cache := &recordingCache{roomHit: &hit}
		q := queries.NewAvailabilityQueries(
			&stubRoomStore{rooms: map[uuid.UUID]*queries.RoomView{}},
			&stubAvailabilityStore{err: infra.WrapRepoErr("must not be called", nil)},
			cache,
		)

		view, err := q.CheckRoom(context.Background(), roomID, testWindow)
		require.NoError(t, err)
		assert.True(t, view.Available)
		assert.Zero(t, cache.roomStores)
	})

	t.Run("cache miss populates the cache", func(t *testing.T) {
		cache := &recordingCache{}
		q := queries.NewAvailabilityQueries(
			&stubRoomStore{rooms: map[uuid.UUID]*queries.RoomView{roomID: smallRoom(roomID)}},
			&stubAvailabilityStore{},
			cache,
		)

		_, err := q.CheckRoom(context.Background(), roomID, testWindow)
		require.NoError(t, err)
		assert.Equal(t, 1, cache.roomStores)
	})
}

func TestBookedSeats(t *testing.T) {
	roomID := uuid.New()

	t.Run("returns distinct booked seats", func(t *testing.T) {
		booked := []uuid.UUID{uuid.New(), uuid.New()}
		q := queries.NewAvailabilityQueries(
			&stubRoomStore{},
			&stubAvailabilityStore{bookedSeats: booked},
			nil,
		)

		view, err := q.BookedSeats(context.Background(), roomID, testWindow)
		require.NoError(t, err)
		assert.Equal(t, booked, view.BookedSeatIDs)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		q := queries.NewAvailabilityQueries(
			&stubRoomStore{},
			&stubAvailabilityStore{err: infra.WrapRepoErr("connection lost", nil)},
			nil,
		)

		_, err := q.BookedSeats(context.Background(), roomID, testWindow)
		assert.ErrorIs(t, err, queries.ErrAvailabilityLookup)
	})

	t.Run("cache hit short-circuits", func(t *testing.T) {
		cached := []uuid.UUID{uuid.New()}
		cache := &recordingCache{seatsHit: cached}
		q := queries.NewAvailabilityQueries(
			&stubRoomStore{},
			&stubAvailabilityStore{err: infra.WrapRepoErr("must not be called", nil)},
			cache,
		)

		view, err := q.BookedSeats(context.Background(), roomID, testWindow)
		require.NoError(t, err)
		assert.Equal(t, cached, view.BookedSeatIDs)
		assert.Zero(t, cache.seatsStores)
	})
}
