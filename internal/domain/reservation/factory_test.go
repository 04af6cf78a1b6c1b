//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"studysync-api/internal/domain/reservation"
	"studysync-api/internal/domain/room"
	"studysync-api/internal/domain/seat"
	"studysync-api/internal/pkg/clock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingFixture struct {
	roomID       uuid.UUID
	userID       uuid.UUID
	roomCapacity int
	seats        []*seat.Seat
	slot         reservation.TimeSlot
	active       int
}

func newFixture(t *testing.T, capacity, seatCount int) *bookingFixture {
	t.Helper()
	roomID := uuid.New()
	seats := make([]*seat.Seat, 0, seatCount)
	for i := 1; i <= seatCount; i++ {
		s, err := seat.NewSeat(roomID, i, i, 0, false, true, false)
		require.NoError(t, err)
		seats = append(seats, s)
	}
	ts, err := reservation.NewTimeSlot(base.Add(time.Hour), base.Add(3*time.Hour))
	require.NoError(t, err)
	return &bookingFixture{
		roomID:       roomID,
		userID:       uuid.New(),
		roomCapacity: capacity,
		seats:        seats,
		slot:         ts,
	}
}

func (f *bookingFixture) create(factory *reservation.Factory) ([]*reservation.Reservation, error) {
	return factory.CreateBooking(f.roomID, f.roomCapacity, f.seats, f.userID, f.slot, reservation.Purpose{}, f.active)
}

func TestFactoryCreateBooking(t *testing.T) {
	factory := reservation.NewFactory(clock.NewMockClock(base))

	t.Run("small room books as a whole", func(t *testing.T) {
		f := newFixture(t, 6, 0)

		rows, err := f.create(factory)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Nil(t, rows[0].SeatID())
		assert.Equal(t, f.roomID, rows[0].RoomID())
		assert.Equal(t, f.userID, rows[0].UserID())
		assert.Equal(t, reservation.StatusReserved, rows[0].Status())
	})

	t.Run("small room ignores seat selection", func(t *testing.T) {
		f := newFixture(t, room.SeatBookingCapacityThreshold-1, 2)

		rows, err := f.create(factory)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Nil(t, rows[0].SeatID())
	})

	t.Run("large room produces one row per seat", func(t *testing.T) {
		f := newFixture(t, 20, 3)

		rows, err := f.create(factory)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		for i, row := range rows {
			require.NotNil(t, row.SeatID())
			assert.Equal(t, f.seats[i].ID(), *row.SeatID())
		}
	})

	t.Run("validation failures", func(t *testing.T) {
		cases := []struct {
			name   string
			mutate func(t *testing.T, f *bookingFixture)
			errIs  error
		}{
			{
				name:   "large room with no seats",
				mutate: func(_ *testing.T, f *bookingFixture) { f.seats = nil },
				errIs:  reservation.ErrNoSeatsSelected,
			},
			{
				name: "too many seats",
				mutate: func(t *testing.T, f *bookingFixture) {
					extra := newFixture(t, 20, room.MaxSeatsPerBooking+1)
					f.roomID = extra.roomID
					f.seats = extra.seats
				},
				errIs: reservation.ErrTooManySeats,
			},
			{
				name: "duplicate seats in selection",
				mutate: func(_ *testing.T, f *bookingFixture) {
					f.seats = append(f.seats[:1], f.seats[0], f.seats[0])
				},
				errIs: reservation.ErrDuplicateSeats,
			},
			{
				name: "seat from another room",
				mutate: func(t *testing.T, f *bookingFixture) {
					other, err := seat.NewSeat(uuid.New(), 1, 0, 0, false, false, false)
					require.NoError(t, err)
					f.seats[0] = other
				},
				errIs: reservation.ErrSeatNotInRoom,
			},
			{
				name: "inactive seat",
				mutate: func(_ *testing.T, f *bookingFixture) {
					f.seats[0] = seat.ReconstructSeat(
						uuid.New(), f.roomID, 9, 0, 0, false, false, false, false,
						base, base,
					)
				},
				errIs: reservation.ErrSeatInactive,
			},
			{
				name: "booking cap reached for seats",
				mutate: func(_ *testing.T, f *bookingFixture) {
					f.active = reservation.MaxActiveReservationsPerUser - 1
				},
				errIs: reservation.ErrBookingCapReached,
			},
			{
				name: "slot in the past",
				mutate: func(t *testing.T, f *bookingFixture) {
					past, err := reservation.NewTimeSlot(base.Add(-2*time.Hour), base.Add(-time.Hour))
					require.NoError(t, err)
					f.slot = past
				},
				errIs: reservation.ErrWindowInPast,
			},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				f := newFixture(t, 20, 2)
				tc.mutate(t, f)

				_, err := f.create(factory)
				assert.ErrorIs(t, err, tc.errIs)
			})
		}
	})

	t.Run("cap counts existing plus requested rows", func(t *testing.T) {
		f := newFixture(t, 20, 2)
		f.active = reservation.MaxActiveReservationsPerUser - 2

		rows, err := f.create(factory)
		require.NoError(t, err)
		assert.Len(t, rows, 2)

		f = newFixture(t, 6, 0)
		f.active = reservation.MaxActiveReservationsPerUser

		_, err = f.create(factory)
		assert.ErrorIs(t, err, reservation.ErrBookingCapReached)
	})
}
