//go:build integration

package rsvp_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"volunteerhub/internal/rsvp"
	"volunteerhub/pkg/testutil/containers"
)

type CountCacheSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	cache *rsvp.CountCache
}

func TestCountCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(CountCacheSuite))
}

func (s *CountCacheSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.cache = rsvp.NewCountCache(s.redis.Client, time.Minute, logger)
}

func (s *CountCacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *CountCacheSuite) TestSetGetInvalidate() {
	ctx := context.Background()

	_, ok := s.cache.Get(ctx, "evt-1")
	s.False(ok)

	s.cache.Set(ctx, "evt-1", 42)
	count, ok := s.cache.Get(ctx, "evt-1")
	s.True(ok)
	s.Equal(42, count)

	s.cache.Invalidate(ctx, "evt-1")
	_, ok = s.cache.Get(ctx, "evt-1")
	s.False(ok)
}

func (s *CountCacheSuite) TestNilCacheIsNoOp() {
	ctx := context.Background()
	var cache *rsvp.CountCache

	cache.Set(ctx, "evt-1", 1)
	cache.Invalidate(ctx, "evt-1")
	_, ok := cache.Get(ctx, "evt-1")
	s.False(ok)
}
