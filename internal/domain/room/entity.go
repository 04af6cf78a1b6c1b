package room

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName       = errors.New("room name cannot be empty")
	ErrInvalidCapacity = errors.New("room capacity must be positive")
	ErrInvalidNumber   = errors.New("room number must be positive")
	ErrInvalidFloor    = errors.New("floor number must be positive")
)

type Room struct {
	id          uuid.UUID
	name        string
	roomNumber  int
	floorNumber int
	capacity    int
	features    []string
	sizeSqft    *int
	imageURL    *string
	createdAt   time.Time
	updatedAt   time.Time
}

func NewRoom(name string, roomNumber, floorNumber, capacity int, features []string, sizeSqft *int, imageURL *string) (*Room, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if roomNumber <= 0 {
		return nil, ErrInvalidNumber
	}
	if floorNumber <= 0 {
		return nil, ErrInvalidFloor
	}
	return &Room{
		id:          uuid.New(),
		name:        name,
		roomNumber:  roomNumber,
		floorNumber: floorNumber,
		capacity:    capacity,
		features:    normalizeFeatures(features),
		sizeSqft:    sizeSqft,
		imageURL:    imageURL,
	}, nil
}

func ReconstructRoom(
	id uuid.UUID,
	name string,
	roomNumber, floorNumber, capacity int,
	features []string,
	sizeSqft *int,
	imageURL *string,
	createdAt, updatedAt time.Time,
) *Room {
	return &Room{
		id:          id,
		name:        name,
		roomNumber:  roomNumber,
		floorNumber: floorNumber,
		capacity:    capacity,
		features:    features,
		sizeSqft:    sizeSqft,
		imageURL:    imageURL,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (r *Room) BookingMode() BookingMode {
	return ModeForCapacity(r.capacity)
}

// Label formats the room identifier as zero-padded floor + room number
// (floor 2, room 7 -> "207"), which sorts lexicographically in walking
// order.
func (r *Room) Label() string {
	return FormatLabel(r.floorNumber, r.roomNumber)
}

func FormatLabel(floorNumber, roomNumber int) string {
	return fmt.Sprintf("%d%02d", floorNumber, roomNumber)
}

func (r *Room) HasFeature(feature string) bool {
	want := strings.ToLower(strings.TrimSpace(feature))
	for _, f := range r.features {
		if f == want {
			return true
		}
	}
	return false
}

func normalizeFeatures(features []string) []string {
	out := make([]string, 0, len(features))
	seen := make(map[string]struct{}, len(features))
	for _, f := range features {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

func (r *Room) ID() uuid.UUID        { return r.id }
func (r *Room) Name() string         { return r.name }
func (r *Room) RoomNumber() int      { return r.roomNumber }
func (r *Room) FloorNumber() int     { return r.floorNumber }
func (r *Room) Capacity() int        { return r.capacity }
func (r *Room) Features() []string   { return r.features }
func (r *Room) SizeSqft() *int       { return r.sizeSqft }
func (r *Room) ImageURL() *string    { return r.imageURL }
func (r *Room) CreatedAt() time.Time { return r.createdAt }
func (r *Room) UpdatedAt() time.Time { return r.updatedAt }
