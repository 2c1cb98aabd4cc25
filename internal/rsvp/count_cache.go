package rsvp

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const countKeyPrefix = "rsvp:count:"

// CountCache is a short-TTL Redis read-through for Check's rsvp_count. It is
// never consulted for capacity decisions; the store's transaction is the only
// authority there. A nil cache is a valid no-op.
type CountCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewCountCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *CountCache {
	if client == nil {
		return nil
	}
	return &CountCache{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached count and whether it was present. Redis failures
// count as a miss; the caller falls back to the store.
func (c *CountCache) Get(ctx context.Context, eventID string) (int, bool) {
	if c == nil {
		return 0, false
	}
	val, err := c.client.Get(ctx, countKeyPrefix+eventID).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.WarnContext(ctx, "count cache read failed", "event_id", eventID, "error", err.Error())
		}
		return 0, false
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Set stores the count. Failures are logged and ignored.
func (c *CountCache) Set(ctx context.Context, eventID string, count int) {
	if c == nil {
		return
	}
	if err := c.client.Set(ctx, countKeyPrefix+eventID, strconv.Itoa(count), c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "count cache write failed", "event_id", eventID, "error", err.Error())
	}
}

// Invalidate drops the cached count after a successful submit or cancel.
func (c *CountCache) Invalidate(ctx context.Context, eventID string) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, countKeyPrefix+eventID).Err(); err != nil {
		c.logger.WarnContext(ctx, "count cache invalidate failed", "event_id", eventID, "error", err.Error())
	}
}
