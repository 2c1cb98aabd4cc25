package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// RedisStore is the production session store for multi-instance deployments.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Put stores the session with TTL. Redis expiry doubles as session expiry, so
// IsLive needs no clock of its own.
func (s *RedisStore) Put(ctx context.Context, sessionID, volunteerEmail string, ttl time.Duration) error {
	return s.client.Set(ctx, sessionKeyPrefix+sessionID, volunteerEmail, ttl).Err()
}

func (s *RedisStore) IsLive(ctx context.Context, sessionID string) (bool, error) {
	err := s.client.Get(ctx, sessionKeyPrefix+sessionID).Err()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *RedisStore) Revoke(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionKeyPrefix+sessionID).Err()
}
