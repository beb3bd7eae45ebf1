package cache

import (
	"context"
	"fmt"
	"time"

	"hr-dashboard-api/core/config"
	"hr-dashboard-api/core/logger"

	"github.com/redis/go-redis/v9"
)

// Cache is the small slice of Redis the application relies on.
type Cache interface {
	// IncrWindow increments key, giving it ttl when the key is new. Both happen
	// in one MULTI so a counter can never be left without an expiry.
	IncrWindow(ctx context.Context, key string, ttl time.Duration) (int64, error)
	TTL(ctx context.Context, key string) (time.Duration, error)
	Ping(ctx context.Context) error
	Close() error
}

type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// InitRedis connects to Redis. An empty address means no cache is configured
// and (nil, nil) is returned.
func InitRedis(ctx context.Context, cfg config.RedisConfig) (*RedisCache, error) {
	if cfg.Addr == "" {
		logger.Info("Cache:InitRedis:Skipped", "reason", "REDIS_ADDR not set")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	c := NewRedisCache(client)
	if err := c.Ping(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Cache:InitRedis:Success", "addr", cfg.Addr, "db", cfg.DB)
	return c, nil
}

func (c *RedisCache) IncrWindow(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	var incr *redis.IntCmd
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetNX(ctx, key, 0, ttl)
		incr = pipe.Incr(ctx, key)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

func (c *RedisCache) TTL(ctx context.Context, key string) (time.Duration, error) {
	return c.client.TTL(ctx, key).Result()
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
