package cache

import (
	"context"
	"time"

	"github.com/donorlink/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewCounter returns a Redis counter when Redis is enabled and reachable,
// otherwise an in-process counter
func NewCounter(cfg config.RedisConfig, logger *zap.Logger) Counter {
	if !cfg.Enabled {
		logger.Info("Redis disabled, using in-memory rate limit counters")
		return NewMemoryCounter()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	counter, err := NewRedisCounter(ctx, cfg)
	if err != nil {
		logger.Warn("Redis unavailable, falling back to in-memory rate limit counters. "+
			"Limits will not be shared between instances.",
			zap.Error(err),
		)
		return NewMemoryCounter()
	}

	logger.Info("Using Redis rate limit counters", zap.String("addr", cfg.Addr()))
	return counter
}

// NewKeyStore returns a Redis key store when Redis is enabled and reachable,
// otherwise an in-process store
func NewKeyStore(cfg config.RedisConfig, logger *zap.Logger) KeyStore {
	if !cfg.Enabled {
		return NewMemoryKeyStore()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	store, err := NewRedisKeyStore(ctx, cfg)
	if err != nil {
		logger.Warn("Redis unavailable, falling back to in-memory idempotency keys", zap.Error(err))
		return NewMemoryKeyStore()
	}
	return store
}
