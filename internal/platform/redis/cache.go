// Package redis provides the Redis-backed implementation of the
// store.Cache interface used for review queue snapshots.
package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lingoflow/lingoflow-api/internal/config"
	"github.com/lingoflow/lingoflow-api/internal/store"
)

// NewClient creates a Redis client from the given configuration and
// verifies connectivity with a ping before returning it.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	return client, nil
}

// RedisCache implements the store.Cache interface on top of a Redis client.
type RedisCache struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisCache creates a new Redis-backed cache.
func NewRedisCache(client *redis.Client, logger *slog.Logger) *RedisCache {
	if client == nil {
		panic("client cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &RedisCache{
		client: client,
		logger: logger.With(slog.String("component", "redis_cache")),
	}
}

// Ensure RedisCache implements store.Cache interface
var _ store.Cache = (*RedisCache)(nil)

// Get implements store.Cache.Get
func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	value, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", store.ErrCacheMiss
		}
		return "", fmt.Errorf("redis get %q: %w", key, err)
	}
	return value, nil
}

// Set implements store.Cache.Set
func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

// Delete implements store.Cache.Delete
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %q: %w", key, err)
	}
	return nil
}
