//go:build unit

package room_test

import (
	"testing"

	"studysync-api/internal/domain/room"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingMode(t *testing.T) {
	cases := []struct {
		name     string
		capacity int
		want     room.BookingMode
	}{
		{name: "single seat room", capacity: 1, want: room.ModeWholeRoom},
		{name: "just below threshold", capacity: room.SeatBookingCapacityThreshold - 1, want: room.ModeWholeRoom},
		{name: "at threshold", capacity: room.SeatBookingCapacityThreshold, want: room.ModePerSeat},
		{name: "large hall", capacity: 120, want: room.ModePerSeat},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, room.ModeForCapacity(tc.capacity))

			r, err := room.NewRoom("Study Room", 1, 1, tc.capacity, nil, nil, nil)
			require.NoError(t, err)
			assert.Equal(t, tc.want, r.BookingMode())
		})
	}
}

func TestNewRoomValidation(t *testing.T) {
	cases := []struct {
		name     string
		roomName string
		number   int
		floor    int
		capacity int
		errIs    error
	}{
		{name: "valid", roomName: "Quiet Hall", number: 7, floor: 2, capacity: 12},
		{name: "empty name", roomName: "  ", number: 7, floor: 2, capacity: 12, errIs: room.ErrEmptyName},
		{name: "zero capacity", roomName: "Quiet Hall", number: 7, floor: 2, capacity: 0, errIs: room.ErrInvalidCapacity},
		{name: "zero room number", roomName: "Quiet Hall", number: 0, floor: 2, capacity: 12, errIs: room.ErrInvalidNumber},
		{name: "zero floor", roomName: "Quiet Hall", number: 7, floor: 0, capacity: 12, errIs: room.ErrInvalidFloor},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := room.NewRoom(tc.roomName, tc.number, tc.floor, tc.capacity, nil, nil, nil)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRoomLabel(t *testing.T) {
	cases := []struct {
		floor  int
		number int
		want   string
	}{
		{floor: 2, number: 7, want: "207"},
		{floor: 1, number: 1, want: "101"},
		{floor: 3, number: 12, want: "312"},
		{floor: 10, number: 5, want: "1005"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, room.FormatLabel(tc.floor, tc.number))
	}
}

func TestRoomFeatures(t *testing.T) {
	r, err := room.NewRoom("Media Lab", 3, 1, 8, []string{" Whiteboard ", "PROJECTOR", "whiteboard", ""}, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"whiteboard", "projector"}, r.Features())
	assert.True(t, r.HasFeature("Whiteboard"))
	assert.True(t, r.HasFeature(" projector "))
	assert.False(t, r.HasFeature("monitor"))
}
