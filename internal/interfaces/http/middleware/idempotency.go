package middleware

import (
	"net/http"
	"time"

	"github.com/donorlink/backend/internal/infrastructure/cache"
	"github.com/donorlink/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// IdempotencyHeader carries the client-chosen key for a create request
	IdempotencyHeader = "Idempotency-Key"
	// MaxIdempotencyKeyLength bounds accepted keys
	MaxIdempotencyKeyLength = 128
)

// IdempotencyConfig holds configuration for the duplicate-submit guard
type IdempotencyConfig struct {
	Store cache.KeyStore
	TTL   time.Duration
	// Scope namespaces the keys, e.g. "donations"
	Scope  string
	Logger *zap.Logger
}

// Idempotency rejects a repeated request carrying an Idempotency-Key the
// same user already spent in this scope. Requests without the header pass
// through. A key is only spent when the request succeeds; store failures
// let the request through.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return func(c *gin.Context) {
		raw := c.GetHeader(IdempotencyHeader)
		if raw == "" {
			c.Next()
			return
		}
		if len(raw) > MaxIdempotencyKeyLength {
			c.AbortWithStatusJSON(http.StatusBadRequest,
				dto.NewErrorResponse("Idempotency-Key must be at most 128 characters"))
			return
		}

		key := cfg.Scope + ":" + c.GetString(JWTUserIDKey) + ":" + raw
		ctx := c.Request.Context()

		claimed, err := cfg.Store.Claim(ctx, key, ttl)
		if err != nil {
			log.Warn("Idempotency store unavailable", zap.String("scope", cfg.Scope), zap.Error(err))
			c.Next()
			return
		}
		if !claimed {
			c.AbortWithStatusJSON(http.StatusConflict,
				dto.NewErrorResponse("Duplicate request: this Idempotency-Key was already used"))
			return
		}

		c.Next()

		if c.Writer.Status() >= http.StatusBadRequest {
			if err := cfg.Store.Release(ctx, key); err != nil {
				log.Warn("Failed to release idempotency key", zap.String("scope", cfg.Scope), zap.Error(err))
			}
		}
	}
}
