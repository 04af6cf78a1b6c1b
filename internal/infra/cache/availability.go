package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"studysync-api/internal/domain/reservation"
	"studysync-api/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// AvailabilityCache stores availability answers in Redis for a short
// TTL. Keys embed a per-room version counter; bumping the counter on a
// write makes every cached answer for that room unreachable at once,
// and the TTL reclaims the orphaned keys.
//
// Every method is best-effort: a Redis failure is logged and treated as
// a miss, never surfaced to the caller.
type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAvailabilityCache(client *redis.Client, cfg config.RedisConfig) *AvailabilityCache {
	return &AvailabilityCache{
		client: client,
		ttl:    cfg.CacheTTL,
	}
}

func (c *AvailabilityCache) GetRoom(ctx context.Context, roomID uuid.UUID, slot reservation.TimeSlot) (bool, bool) {
	key, ok := c.roomKey(ctx, roomID, slot)
	if !ok {
		return false, false
	}
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("availability cache read failed", "key", key, "error", err.Error())
		}
		return false, false
	}
	return val == "1", true
}

func (c *AvailabilityCache) SetRoom(ctx context.Context, roomID uuid.UUID, slot reservation.TimeSlot, available bool) {
	key, ok := c.roomKey(ctx, roomID, slot)
	if !ok {
		return
	}
	val := "0"
	if available {
		val = "1"
	}
	if err := c.client.Set(ctx, key, val, c.ttl).Err(); err != nil {
		slog.Warn("availability cache write failed", "key", key, "error", err.Error())
	}
}

func (c *AvailabilityCache) GetBookedSeats(ctx context.Context, roomID uuid.UUID, slot reservation.TimeSlot) ([]uuid.UUID, bool) {
	key, ok := c.seatsKey(ctx, roomID, slot)
	if !ok {
		return nil, false
	}
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("availability cache read failed", "key", key, "error", err.Error())
		}
		return nil, false
	}
	var seatIDs []uuid.UUID
	if err := json.Unmarshal([]byte(val), &seatIDs); err != nil {
		slog.Warn("availability cache entry corrupt", "key", key, "error", err.Error())
		return nil, false
	}
	return seatIDs, true
}

func (c *AvailabilityCache) SetBookedSeats(ctx context.Context, roomID uuid.UUID, slot reservation.TimeSlot, seatIDs []uuid.UUID) {
	key, ok := c.seatsKey(ctx, roomID, slot)
	if !ok {
		return
	}
	payload, err := json.Marshal(seatIDs)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		slog.Warn("availability cache write failed", "key", key, "error", err.Error())
	}
}

// InvalidateRoom bumps the room's version counter, orphaning every
// cached answer for it.
func (c *AvailabilityCache) InvalidateRoom(ctx context.Context, roomID uuid.UUID) {
	if err := c.client.Incr(ctx, versionKey(roomID)).Err(); err != nil {
		slog.Warn("availability cache invalidation failed", "room_id", roomID, "error", err.Error())
	}
}

func (c *AvailabilityCache) roomKey(ctx context.Context, roomID uuid.UUID, slot reservation.TimeSlot) (string, bool) {
	ver, ok := c.version(ctx, roomID)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("availability:room:%s:v%d:%s", roomID, ver, slot), true
}

func (c *AvailabilityCache) seatsKey(ctx context.Context, roomID uuid.UUID, slot reservation.TimeSlot) (string, bool) {
	ver, ok := c.version(ctx, roomID)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("availability:seats:%s:v%d:%s", roomID, ver, slot), true
}

func (c *AvailabilityCache) version(ctx context.Context, roomID uuid.UUID) (int64, bool) {
	ver, err := c.client.Get(ctx, versionKey(roomID)).Int64()
	if err == redis.Nil {
		return 0, true
	}
	if err != nil {
		slog.Warn("availability cache version read failed", "room_id", roomID, "error", err.Error())
		return 0, false
	}
	return ver, true
}

func versionKey(roomID uuid.UUID) string {
	return "availability:ver:" + roomID.String()
}
