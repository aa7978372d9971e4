package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/donorlink/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

const defaultClaimPrefix = "donorlink:idempotency:"

// RedisKeyStore claims keys with SET NX so every instance sees the same claims
type RedisKeyStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisKeyStore connects to Redis and verifies the connection
func NewRedisKeyStore(ctx context.Context, cfg config.RedisConfig) (*RedisKeyStore, error) {
	client := newRedisClient(cfg)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", cfg.Addr(), err)
	}
	return NewRedisKeyStoreWithClient(client, ""), nil
}

// NewRedisKeyStoreWithClient wraps an existing client
func NewRedisKeyStoreWithClient(client *redis.Client, keyPrefix string) *RedisKeyStore {
	if keyPrefix == "" {
		keyPrefix = defaultClaimPrefix
	}
	return &RedisKeyStore{client: client, keyPrefix: keyPrefix}
}

// Claim implements KeyStore
func (s *RedisKeyStore) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.keyPrefix+key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("claim %s: %w", key, err)
	}
	return ok, nil
}

// Release implements KeyStore
func (s *RedisKeyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("release %s: %w", key, err)
	}
	return nil
}

// Close closes the Redis client
func (s *RedisKeyStore) Close() error {
	return s.client.Close()
}

var _ KeyStore = (*RedisKeyStore)(nil)
