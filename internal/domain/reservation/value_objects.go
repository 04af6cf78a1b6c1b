package reservation

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidWindow  = errors.New("start time must be before end time")
	ErrWindowInPast   = errors.New("start time cannot be in the past")
	ErrPurposeTooLong = errors.New("purpose exceeds maximum length")
)

const MaxPurposeLength = 500

// TimeSlot is a half-open [start, end) booking window.
type TimeSlot struct {
	start time.Time
	end   time.Time
}

func NewTimeSlot(start, end time.Time) (TimeSlot, error) {
	if !start.Before(end) {
		return TimeSlot{}, ErrInvalidWindow
	}
	return TimeSlot{start: start, end: end}, nil
}

func (ts TimeSlot) Start() time.Time {
	return ts.start
}

func (ts TimeSlot) End() time.Time {
	return ts.end
}

func (ts TimeSlot) Duration() time.Duration {
	return ts.end.Sub(ts.start)
}

// Overlaps applies the half-open interval test: two slots conflict iff
// a.start < b.end && a.end > b.start. Back-to-back slots sharing an
// endpoint do not overlap.
func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	return ts.start.Before(other.end) && ts.end.After(other.start)
}

func (ts TimeSlot) ValidateNotPastAt(now time.Time) error {
	if ts.start.Before(now) {
		return ErrWindowInPast
	}
	return nil
}

// Contains reports whether t falls inside the window.
func (ts TimeSlot) Contains(t time.Time) bool {
	return !t.Before(ts.start) && t.Before(ts.end)
}

func (ts TimeSlot) String() string {
	return fmt.Sprintf("%s/%s", ts.start.Format(time.RFC3339), ts.end.Format(time.RFC3339))
}

type Purpose struct {
	value string
}

func NewPurpose(value string) (Purpose, error) {
	value = strings.TrimSpace(value)
	if len(value) > MaxPurposeLength {
		return Purpose{}, ErrPurposeTooLong
	}
	return Purpose{value: value}, nil
}

func (p Purpose) String() string {
	return p.value
}

func (p Purpose) IsEmpty() bool {
	return p.value == ""
}
