package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/donorlink/backend/internal/infrastructure/cache"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingKeyStore struct{}

func (failingKeyStore) Claim(context.Context, string, time.Duration) (bool, error) {
	return false, errors.New("redis down")
}
func (failingKeyStore) Release(context.Context, string) error { return nil }
func (failingKeyStore) Close() error                          { return nil }

func idempotentRouter(store cache.KeyStore, status *int, calls *int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/donations",
		func(c *gin.Context) {
			if u := c.GetHeader("X-Test-User"); u != "" {
				c.Set(JWTUserIDKey, u)
			}
			c.Next()
		},
		Idempotency(IdempotencyConfig{Store: store, TTL: time.Hour, Scope: "donations"}),
		func(c *gin.Context) {
			*calls++
			c.JSON(*status, gin.H{})
		},
	)
	return r
}

func postWithKey(r *gin.Engine, key, user string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/donations", nil)
	if key != "" {
		req.Header.Set(IdempotencyHeader, key)
	}
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotency(t *testing.T) {
	t.Run("requests without a key pass through", func(t *testing.T) {
		status, calls := http.StatusCreated, 0
		r := idempotentRouter(cache.NewMemoryKeyStore(), &status, &calls)

		assert.Equal(t, http.StatusCreated, postWithKey(r, "", "u1").Code)
		assert.Equal(t, http.StatusCreated, postWithKey(r, "", "u1").Code)
		assert.Equal(t, 2, calls)
	})

	t.Run("a spent key is rejected", func(t *testing.T) {
		status, calls := http.StatusCreated, 0
		r := idempotentRouter(cache.NewMemoryKeyStore(), &status, &calls)

		require.Equal(t, http.StatusCreated, postWithKey(r, "k-1", "u1").Code)
		w := postWithKey(r, "k-1", "u1")
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "Idempotency-Key was already used")
		assert.Equal(t, 1, calls)
	})

	t.Run("keys are per user", func(t *testing.T) {
		status, calls := http.StatusCreated, 0
		r := idempotentRouter(cache.NewMemoryKeyStore(), &status, &calls)

		require.Equal(t, http.StatusCreated, postWithKey(r, "k-1", "u1").Code)
		assert.Equal(t, http.StatusCreated, postWithKey(r, "k-1", "u2").Code)
	})

	t.Run("failed requests do not spend the key", func(t *testing.T) {
		status, calls := http.StatusBadRequest, 0
		r := idempotentRouter(cache.NewMemoryKeyStore(), &status, &calls)

		require.Equal(t, http.StatusBadRequest, postWithKey(r, "k-2", "u1").Code)
		status = http.StatusCreated
		assert.Equal(t, http.StatusCreated, postWithKey(r, "k-2", "u1").Code)
		assert.Equal(t, 2, calls)
	})

	t.Run("oversized keys are rejected", func(t *testing.T) {
		status, calls := http.StatusCreated, 0
		r := idempotentRouter(cache.NewMemoryKeyStore(), &status, &calls)

		w := postWithKey(r, strings.Repeat("x", MaxIdempotencyKeyLength+1), "u1")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Zero(t, calls)
	})

	t.Run("store failure lets the request through", func(t *testing.T) {
		status, calls := http.StatusCreated, 0
		r := idempotentRouter(failingKeyStore{}, &status, &calls)

		assert.Equal(t, http.StatusCreated, postWithKey(r, "k-3", "u1").Code)
		assert.Equal(t, http.StatusCreated, postWithKey(r, "k-3", "u1").Code)
		assert.Equal(t, 2, calls)
	})
}
