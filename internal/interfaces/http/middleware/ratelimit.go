package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/donorlink/backend/internal/infrastructure/cache"
	"github.com/donorlink/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimitConfig holds configuration for the fixed-window limiter
type RateLimitConfig struct {
	Counter cache.Counter
	Limit   int
	Window  time.Duration
	// Scope namespaces the counters, e.g. "auth"
	Scope string
	// KeyFunc identifies the caller; defaults to the client IP
	KeyFunc func(*gin.Context) string
	Logger  *zap.Logger
}

// RateLimit returns a rate limiting middleware. Counter failures let the
// request through.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	keyFunc := cfg.KeyFunc
	if keyFunc == nil {
		keyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	limit := strconv.Itoa(cfg.Limit)

	return func(c *gin.Context) {
		key := cfg.Scope + ":" + keyFunc(c)

		count, err := cfg.Counter.Hit(c.Request.Context(), key, cfg.Window)
		if err != nil {
			log.Warn("Rate limit counter unavailable", zap.String("scope", cfg.Scope), zap.Error(err))
			c.Next()
			return
		}

		remaining := max(int64(cfg.Limit)-count, 0)
		c.Header("X-RateLimit-Limit", limit)
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(cfg.Limit) {
			c.Header("Retry-After", strconv.Itoa(int(cfg.Window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				dto.NewErrorResponse("Too many requests. Please try again later."))
			return
		}
		c.Next()
	}
}
