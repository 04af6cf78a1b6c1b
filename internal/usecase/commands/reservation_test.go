//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"studysync-api/internal/domain/reservation"
	"studysync-api/internal/domain/room"
	"studysync-api/internal/domain/seat"
	"studysync-api/internal/domain/user"
	reqdto "studysync-api/internal/handler/dto/request"
	"studysync-api/internal/infra"
	"studysync-api/internal/pkg/clock"
	"studysync-api/internal/usecase/commands"
	"studysync-api/internal/usecase/queries"
	"studysync-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

// fakeTx wires in-memory repositories through the UnitOfWork contract.
type fakeTx struct {
	rooms        *fakeRoomRepo
	seats        *fakeSeatRepo
	reservations *fakeReservationRepo
	practice     *fakePracticeRepo
}

func (t *fakeTx) Rooms() shared.RoomRepository               { return t.rooms }
func (t *fakeTx) Seats() shared.SeatRepository               { return t.seats }
func (t *fakeTx) Reservations() shared.ReservationRepository { return t.reservations }
func (t *fakeTx) Practice() shared.PracticeRepository        { return t.practice }
func (t *fakeTx) Users() shared.UserRepository               { return nil }

type fakeUoW struct {
	tx *fakeTx
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, u.tx)
}

type fakeRoomRepo struct {
	snapshot *shared.RoomSnapshot
	locks    int
}

func (r *fakeRoomRepo) Create(context.Context, *room.Room) error { return nil }
func (r *fakeRoomRepo) Update(context.Context, *room.Room) error { return nil }
func (r *fakeRoomRepo) FindEntity(context.Context, uuid.UUID) (*room.Room, error) {
	return nil, infra.WrapRepoErr("not implemented", nil)
}

func (r *fakeRoomRepo) LockForBooking(_ context.Context, roomID uuid.UUID) (*shared.RoomSnapshot, error) {
	r.locks++
	if r.snapshot == nil || r.snapshot.ID != roomID {
		return nil, infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
	}
	return r.snapshot, nil
}

type fakeSeatRepo struct {
	seats map[uuid.UUID]*seat.Seat
}

func (s *fakeSeatRepo) CreateBatch(context.Context, []*seat.Seat) error { return nil }

func (s *fakeSeatRepo) FindForRoom(_ context.Context, roomID uuid.UUID, seatIDs []uuid.UUID) ([]*seat.Seat, error) {
	out := make([]*seat.Seat, 0, len(seatIDs))
	for _, id := range seatIDs {
		st, ok := s.seats[id]
		if !ok || st.RoomID() != roomID {
			return nil, infra.WrapRepoErr("some seats were not found in the room", nil, infra.KindNotFound)
		}
		out = append(out, st)
	}
	return out, nil
}

type fakeReservationRepo struct {
	rows         map[uuid.UUID]*reservation.Reservation
	activeCount  int
	roomConflict bool
	bookedSeats  []uuid.UUID
	inserted     []*reservation.Reservation
}

func (r *fakeReservationRepo) CreateBatch(_ context.Context, rows []*reservation.Reservation) error {
	r.inserted = append(r.inserted, rows...)
	for _, row := range rows {
		r.rows[row.ID()] = row
	}
	return nil
}

func (r *fakeReservationRepo) FindByID(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return row, nil
}

func (r *fakeReservationRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.rows[id]; !ok {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	delete(r.rows, id)
	return nil
}

func (r *fakeReservationRepo) HasRoomConflict(_ context.Context, roomID uuid.UUID, slot reservation.TimeSlot) (bool, error) {
	if r.roomConflict {
		return true, nil
	}
	for _, row := range r.rows {
		if row.RoomID() == roomID && row.IsActive() && row.Slot().Overlaps(slot) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeReservationRepo) BookedSeatIDs(context.Context, uuid.UUID, reservation.TimeSlot) ([]uuid.UUID, error) {
	return r.bookedSeats, nil
}

func (r *fakeReservationRepo) CountActiveByUser(context.Context, uuid.UUID) (int, error) {
	return r.activeCount, nil
}

func (r *fakeReservationRepo) MarkOccupied(_ context.Context, at time.Time) ([]uuid.UUID, error) {
	var roomIDs []uuid.UUID
	for id, row := range r.rows {
		if row.Status() == reservation.StatusReserved && !row.Slot().Start().After(at) && row.Slot().End().After(at) {
			r.rows[id] = withStatus(row, reservation.StatusOccupied)
			roomIDs = append(roomIDs, row.RoomID())
		}
	}
	return roomIDs, nil
}

func (r *fakeReservationRepo) MarkCompleted(_ context.Context, at time.Time) ([]uuid.UUID, error) {
	var roomIDs []uuid.UUID
	for id, row := range r.rows {
		if row.IsActive() && !row.Slot().End().After(at) {
			r.rows[id] = withStatus(row, reservation.StatusCompleted)
			roomIDs = append(roomIDs, row.RoomID())
		}
	}
	return roomIDs, nil
}

func withStatus(row *reservation.Reservation, status reservation.Status) *reservation.Reservation {
	return reservation.ReconstructReservation(
		row.ID(), row.RoomID(), row.SeatID(), row.UserID(),
		row.Slot(), row.Purpose(), status, row.RoomCapacity(),
		row.CreatedAt(), row.UpdatedAt(),
	)
}

type fakeReadStore struct{}

func (fakeReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	return &queries.ReservationView{ID: id}, nil
}

func (fakeReadStore) FindByUserID(context.Context, uuid.UUID) ([]*queries.ReservationView, error) {
	return nil, nil
}

type recordingPublisher struct {
	confirmed []commands.BookingEvent
	canceled  []commands.BookingEvent
}

func (p *recordingPublisher) PublishBookingConfirmed(_ context.Context, e commands.BookingEvent) {
	p.confirmed = append(p.confirmed, e)
}

func (p *recordingPublisher) PublishBookingCanceled(_ context.Context, e commands.BookingEvent) {
	p.canceled = append(p.canceled, e)
}

type recordingInvalidator struct {
	rooms []uuid.UUID
}

func (i *recordingInvalidator) InvalidateRoom(_ context.Context, roomID uuid.UUID) {
	i.rooms = append(i.rooms, roomID)
}

type bookingEnv struct {
	commands    commands.ReservationCommands
	tx          *fakeTx
	publisher   *recordingPublisher
	invalidator *recordingInvalidator
	clock       *clock.MockClock
	roomID      uuid.UUID
	userID      uuid.UUID
	seatIDs     []uuid.UUID
}

func newBookingEnv(t *testing.T, capacity, seatCount int) *bookingEnv {
	t.Helper()
	roomID := uuid.New()

	seatRepo := &fakeSeatRepo{seats: make(map[uuid.UUID]*seat.Seat)}
	seatIDs := make([]uuid.UUID, 0, seatCount)
	for i := 1; i <= seatCount; i++ {
		st, err := seat.NewSeat(roomID, i, i, 0, false, false, false)
		require.NoError(t, err)
		seatRepo.seats[st.ID()] = st
		seatIDs = append(seatIDs, st.ID())
	}

	tx := &fakeTx{
		rooms:        &fakeRoomRepo{snapshot: &shared.RoomSnapshot{ID: roomID, Name: "Room", Capacity: capacity}},
		seats:        seatRepo,
		reservations: &fakeReservationRepo{rows: make(map[uuid.UUID]*reservation.Reservation)},
	}
	publisher := &recordingPublisher{}
	invalidator := &recordingInvalidator{}
	mock := clock.NewMockClock(now)

	return &bookingEnv{
		commands: commands.NewReservationCommands(
			&fakeUoW{tx: tx},
			fakeReadStore{},
			reservation.NewFactory(mock),
			publisher,
			invalidator,
			mock,
		),
		tx:          tx,
		publisher:   publisher,
		invalidator: invalidator,
		clock:       mock,
		roomID:      roomID,
		userID:      uuid.New(),
		seatIDs:     seatIDs,
	}
}

func (e *bookingEnv) request(seats []uuid.UUID) reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		RoomID:        e.roomID,
		StartTime:     now.Add(time.Hour),
		EndTime:       now.Add(3 * time.Hour),
		SelectedSeats: seats,
	}
}

func TestCreateBooking(t *testing.T) {
	t.Run("whole-room booking inserts one row", func(t *testing.T) {
		env := newBookingEnv(t, 6, 0)

		views, err := env.commands.CreateBooking(context.Background(), env.request(nil), env.userID)
		require.NoError(t, err)
		assert.Len(t, views, 1)
		require.Len(t, env.tx.reservations.inserted, 1)
		assert.Nil(t, env.tx.reservations.inserted[0].SeatID())
		assert.Equal(t, 1, env.tx.rooms.locks)
		assert.Equal(t, []uuid.UUID{env.roomID}, env.invalidator.rooms)
		require.Len(t, env.publisher.confirmed, 1)
		assert.Len(t, env.publisher.confirmed[0].ReservationIDs, 1)
	})

	t.Run("per-seat booking inserts one row per seat", func(t *testing.T) {
		env := newBookingEnv(t, 20, 3)

		views, err := env.commands.CreateBooking(context.Background(), env.request(env.seatIDs[:2]), env.userID)
		require.NoError(t, err)
		assert.Len(t, views, 2)
		for _, row := range env.tx.reservations.inserted {
			assert.NotNil(t, row.SeatID())
		}
	})

	t.Run("room conflict rejects the whole booking", func(t *testing.T) {
		env := newBookingEnv(t, 6, 0)
		env.tx.reservations.roomConflict = true

		_, err := env.commands.CreateBooking(context.Background(), env.request(nil), env.userID)
		assert.ErrorIs(t, err, commands.ErrSlotConflict)
		assert.Empty(t, env.tx.reservations.inserted)
		assert.Empty(t, env.publisher.confirmed)
	})

	t.Run("one taken seat rejects the whole batch", func(t *testing.T) {
		env := newBookingEnv(t, 20, 3)
		env.tx.reservations.bookedSeats = []uuid.UUID{env.seatIDs[1]}

		_, err := env.commands.CreateBooking(context.Background(), env.request(env.seatIDs), env.userID)
		assert.ErrorIs(t, err, commands.ErrSlotConflict)
		assert.Empty(t, env.tx.reservations.inserted)
	})

	t.Run("unknown room", func(t *testing.T) {
		env := newBookingEnv(t, 6, 0)
		req := env.request(nil)
		req.RoomID = uuid.New()

		_, err := env.commands.CreateBooking(context.Background(), req, env.userID)
		assert.ErrorIs(t, err, commands.ErrRoomNotFound)
	})

	t.Run("unknown seat in selection", func(t *testing.T) {
		env := newBookingEnv(t, 20, 2)

		_, err := env.commands.CreateBooking(context.Background(), env.request([]uuid.UUID{uuid.New()}), env.userID)
		assert.ErrorIs(t, err, commands.ErrSeatNotFound)
	})

	t.Run("per-seat room requires a selection", func(t *testing.T) {
		env := newBookingEnv(t, 20, 2)

		_, err := env.commands.CreateBooking(context.Background(), env.request(nil), env.userID)
		assert.ErrorIs(t, err, commands.ErrSeatSelectionInvalid)
	})

	t.Run("booking cap", func(t *testing.T) {
		env := newBookingEnv(t, 6, 0)
		env.tx.reservations.activeCount = reservation.MaxActiveReservationsPerUser

		_, err := env.commands.CreateBooking(context.Background(), env.request(nil), env.userID)
		assert.ErrorIs(t, err, commands.ErrBookingCapExceeded)
	})

	t.Run("invalid window", func(t *testing.T) {
		env := newBookingEnv(t, 6, 0)
		req := env.request(nil)
		req.EndTime = req.StartTime

		_, err := env.commands.CreateBooking(context.Background(), req, env.userID)
		assert.ErrorIs(t, err, commands.ErrInvalidTimeSlot)
	})

	t.Run("window in the past", func(t *testing.T) {
		env := newBookingEnv(t, 6, 0)
		req := env.request(nil)
		req.StartTime = now.Add(-2 * time.Hour)
		req.EndTime = now.Add(-time.Hour)

		_, err := env.commands.CreateBooking(context.Background(), req, env.userID)
		assert.ErrorIs(t, err, commands.ErrInvalidTimeSlot)
	})
}

func TestCancel(t *testing.T) {
	seedReservation := func(t *testing.T, env *bookingEnv) uuid.UUID {
		t.Helper()
		views, err := env.commands.CreateBooking(context.Background(), env.request(nil), env.userID)
		require.NoError(t, err)
		return views[0].ID
	}

	t.Run("owner can cancel", func(t *testing.T) {
		env := newBookingEnv(t, 6, 0)
		id := seedReservation(t, env)

		err := env.commands.Cancel(context.Background(), id, env.userID, user.RoleStudent)
		require.NoError(t, err)
		assert.Empty(t, env.tx.reservations.rows)
		require.Len(t, env.publisher.canceled, 1)
	})

	t.Run("stranger cannot cancel", func(t *testing.T) {
		env := newBookingEnv(t, 6, 0)
		id := seedReservation(t, env)

		err := env.commands.Cancel(context.Background(), id, uuid.New(), user.RoleStudent)
		assert.ErrorIs(t, err, commands.ErrNotReservationOwner)
		assert.Len(t, env.tx.reservations.rows, 1)
	})

	t.Run("librarian can cancel any reservation", func(t *testing.T) {
		env := newBookingEnv(t, 6, 0)
		id := seedReservation(t, env)

		err := env.commands.Cancel(context.Background(), id, uuid.New(), user.RoleLibrarian)
		assert.NoError(t, err)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		env := newBookingEnv(t, 6, 0)

		err := env.commands.Cancel(context.Background(), uuid.New(), env.userID, user.RoleStudent)
		assert.ErrorIs(t, err, commands.ErrReservationNotFound)
	})

	t.Run("canceling frees the window for the next booking", func(t *testing.T) {
		env := newBookingEnv(t, 6, 0)
		id := seedReservation(t, env)

		_, err := env.commands.CreateBooking(context.Background(), env.request(nil), uuid.New())
		assert.ErrorIs(t, err, commands.ErrSlotConflict)

		require.NoError(t, env.commands.Cancel(context.Background(), id, env.userID, user.RoleStudent))

		views, err := env.commands.CreateBooking(context.Background(), env.request(nil), uuid.New())
		require.NoError(t, err)
		assert.Len(t, views, 1)
	})
}

func TestSweepStatuses(t *testing.T) {
	t.Run("walks a booking through its lifecycle", func(t *testing.T) {
		env := newBookingEnv(t, 6, 0)
		views, err := env.commands.CreateBooking(context.Background(), env.request(nil), env.userID)
		require.NoError(t, err)
		id := views[0].ID

		// Window starts at now+1h; nothing to flip yet.
		result, err := env.commands.SweepStatuses(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(0), result.Occupied)
		assert.Equal(t, int64(0), result.Completed)

		env.clock.Add(90 * time.Minute)
		result, err = env.commands.SweepStatuses(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(1), result.Occupied)
		assert.Equal(t, int64(0), result.Completed)
		assert.Equal(t, reservation.StatusOccupied, env.tx.reservations.rows[id].Status())

		env.clock.Add(3 * time.Hour)
		result, err = env.commands.SweepStatuses(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(0), result.Occupied)
		assert.Equal(t, int64(1), result.Completed)
		assert.Equal(t, reservation.StatusCompleted, env.tx.reservations.rows[id].Status())
	})

	t.Run("second sweep changes nothing", func(t *testing.T) {
		env := newBookingEnv(t, 6, 0)
		_, err := env.commands.CreateBooking(context.Background(), env.request(nil), env.userID)
		require.NoError(t, err)

		env.clock.Add(90 * time.Minute)
		result, err := env.commands.SweepStatuses(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(1), result.Occupied)

		result, err = env.commands.SweepStatuses(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(0), result.Occupied)
		assert.Equal(t, int64(0), result.Completed)
	})

	t.Run("invalidates the cache for flipped rooms only", func(t *testing.T) {
		env := newBookingEnv(t, 6, 0)
		_, err := env.commands.CreateBooking(context.Background(), env.request(nil), env.userID)
		require.NoError(t, err)
		seeded := len(env.invalidator.rooms)

		env.clock.Add(90 * time.Minute)
		_, err = env.commands.SweepStatuses(context.Background())
		require.NoError(t, err)
		require.Len(t, env.invalidator.rooms, seeded+1)
		assert.Equal(t, env.roomID, env.invalidator.rooms[seeded])

		// An idle sweep must not churn the cache.
		_, err = env.commands.SweepStatuses(context.Background())
		require.NoError(t, err)
		assert.Len(t, env.invalidator.rooms, seeded+1)
	})
}
