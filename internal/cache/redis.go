package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"recstudio/internal/config"
	"recstudio/internal/domain"

	"github.com/redis/go-redis/v9"
)

type RedisDefaultsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient builds a client from config. Callers should Ping before
// trusting it as the primary cache.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func NewRedisDefaultsCache(client *redis.Client, ttl time.Duration) *RedisDefaultsCache {
	return &RedisDefaultsCache{client: client, ttl: ttl}
}

func defaultsKey(studioID int64) string {
	return fmt.Sprintf("studio_defaults:%d", studioID)
}

func (c *RedisDefaultsCache) Get(ctx context.Context, studioID int64) (*domain.StudioDefaults, error) {
	if c.client == nil {
		return nil, fmt.Errorf("redis client is nil")
	}
	val, err := c.client.Get(ctx, defaultsKey(studioID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get defaults from redis: %w", err)
	}

	var d domain.StudioDefaults
	if err := json.Unmarshal([]byte(val), &d); err != nil {
		return nil, fmt.Errorf("failed to unmarshal defaults: %w", err)
	}
	return &d, nil
}

func (c *RedisDefaultsCache) Set(ctx context.Context, d *domain.StudioDefaults) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal defaults: %w", err)
	}
	if err := c.client.Set(ctx, defaultsKey(d.StudioID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set defaults in redis: %w", err)
	}
	return nil
}

func (c *RedisDefaultsCache) Invalidate(ctx context.Context, studioID int64) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if err := c.client.Del(ctx, defaultsKey(studioID)).Err(); err != nil {
		return fmt.Errorf("failed to delete defaults from redis: %w", err)
	}
	return nil
}

// Ping checks the Redis connection.
func Ping(ctx context.Context, client *redis.Client) error {
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}
	return nil
}
