package ratelimit

import (
	"context"
	"fmt"
	"time"

	"hr-dashboard-api/core/cache"
	"hr-dashboard-api/core/constants"
)

// RedisStore is a fixed-window counter shared by every instance. The first hit of a
// window creates the key with its expiry in the same transaction as the increment.
type RedisStore struct {
	cache cache.Cache
	opts  Options
	now   func() time.Time
}

func NewRedisStore(c cache.Cache, opts Options) *RedisStore {
	return &RedisStore{cache: c, opts: opts, now: time.Now}
}

func (s *RedisStore) Allow(ctx context.Context, key string) (bool, int, time.Time, error) {
	redisKey := constants.RedisKeyRateLimit + key

	count, err := s.cache.IncrWindow(ctx, redisKey, s.opts.Window)
	if err != nil {
		return false, 0, time.Time{}, fmt.Errorf("incr %s: %w", redisKey, err)
	}

	reset := s.now().Add(s.opts.Window)
	if ttl, err := s.cache.TTL(ctx, redisKey); err == nil && ttl > 0 {
		reset = s.now().Add(ttl)
	}

	remaining := s.opts.Limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return int(count) <= s.opts.Limit, remaining, reset, nil
}
