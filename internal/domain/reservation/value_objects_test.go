//go:build unit

package reservation_test

import (
	"strings"
	"testing"
	"time"

	"studysync-api/internal/domain/reservation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func slot(t *testing.T, startOffset, endOffset time.Duration) reservation.TimeSlot {
	t.Helper()
	s, err := reservation.NewTimeSlot(base.Add(startOffset), base.Add(endOffset))
	require.NoError(t, err)
	return s
}

func TestTimeSlot(t *testing.T) {
	t.Run("validation", func(t *testing.T) {
		cases := []struct {
			name  string
			start time.Time
			end   time.Time
			errIs error
		}{
			{name: "valid window", start: base, end: base.Add(2 * time.Hour)},
			{name: "end before start", start: base.Add(time.Hour), end: base, errIs: reservation.ErrInvalidWindow},
			{name: "zero-length window", start: base, end: base, errIs: reservation.ErrInvalidWindow},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := reservation.NewTimeSlot(tc.start, tc.end)
				if tc.errIs != nil {
					assert.ErrorIs(t, err, tc.errIs)
					return
				}
				assert.NoError(t, err)
			})
		}
	})

	t.Run("overlap is half-open", func(t *testing.T) {
		a := slot(t, 0, 2*time.Hour)

		cases := []struct {
			name    string
			other   reservation.TimeSlot
			overlap bool
		}{
			{name: "identical windows", other: slot(t, 0, 2*time.Hour), overlap: true},
			{name: "partial overlap at tail", other: slot(t, time.Hour, 3*time.Hour), overlap: true},
			{name: "partial overlap at head", other: slot(t, -time.Hour, time.Hour), overlap: true},
			{name: "contained window", other: slot(t, 30*time.Minute, 90*time.Minute), overlap: true},
			{name: "containing window", other: slot(t, -time.Hour, 3*time.Hour), overlap: true},
			{name: "back to back after", other: slot(t, 2*time.Hour, 4*time.Hour), overlap: false},
			{name: "back to back before", other: slot(t, -2*time.Hour, 0), overlap: false},
			{name: "fully disjoint", other: slot(t, 5*time.Hour, 6*time.Hour), overlap: false},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				assert.Equal(t, tc.overlap, a.Overlaps(tc.other))
				assert.Equal(t, tc.overlap, tc.other.Overlaps(a), "overlap must be symmetric")
			})
		}
	})

	t.Run("contains is start-inclusive end-exclusive", func(t *testing.T) {
		s := slot(t, 0, time.Hour)
		assert.True(t, s.Contains(base))
		assert.True(t, s.Contains(base.Add(59*time.Minute)))
		assert.False(t, s.Contains(base.Add(time.Hour)))
		assert.False(t, s.Contains(base.Add(-time.Second)))
	})

	t.Run("past validation", func(t *testing.T) {
		s := slot(t, 0, time.Hour)
		assert.NoError(t, s.ValidateNotPastAt(base))
		assert.NoError(t, s.ValidateNotPastAt(base.Add(-time.Minute)))
		assert.ErrorIs(t, s.ValidateNotPastAt(base.Add(time.Minute)), reservation.ErrWindowInPast)
	})
}

func TestPurpose(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  string
		errIs error
	}{
		{name: "plain text", value: "study group", want: "study group"},
		{name: "trimmed", value: "  exam prep  ", want: "exam prep"},
		{name: "empty allowed", value: "", want: ""},
		{name: "max length", value: strings.Repeat("a", reservation.MaxPurposeLength), want: strings.Repeat("a", reservation.MaxPurposeLength)},
		{name: "too long", value: strings.Repeat("a", reservation.MaxPurposeLength+1), errIs: reservation.ErrPurposeTooLong},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := reservation.NewPurpose(tc.value)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, p.String())
			assert.Equal(t, tc.want == "", p.IsEmpty())
		})
	}
}

func TestStatus(t *testing.T) {
	assert.True(t, reservation.StatusReserved.IsActive())
	assert.True(t, reservation.StatusOccupied.IsActive())
	assert.False(t, reservation.StatusCompleted.IsActive())
	assert.False(t, reservation.Status("unknown").IsValid())
}
