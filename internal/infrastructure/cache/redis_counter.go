package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/donorlink/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "donorlink:ratelimit:"

// RedisCounter keeps window counters in Redis so every instance shares them
type RedisCounter struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisCounter connects to Redis and verifies the connection
func NewRedisCounter(ctx context.Context, cfg config.RedisConfig) (*RedisCounter, error) {
	client := newRedisClient(cfg)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", cfg.Addr(), err)
	}
	return NewRedisCounterWithClient(client, ""), nil
}

func newRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        cfg.Addr(),
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 2 * time.Second,
	})
}

// NewRedisCounterWithClient wraps an existing client
func NewRedisCounterWithClient(client *redis.Client, keyPrefix string) *RedisCounter {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &RedisCounter{client: client, keyPrefix: keyPrefix}
}

// Hit increments the key and starts its expiry on the first hit of a window
func (c *RedisCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	key = c.keyPrefix + key

	var incr *redis.IntCmd
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, window)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("increment %s: %w", key, err)
	}
	return incr.Val(), nil
}

// Close closes the Redis client
func (c *RedisCounter) Close() error {
	return c.client.Close()
}

var _ Counter = (*RedisCounter)(nil)
