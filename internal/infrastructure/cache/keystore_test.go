package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/donorlink/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMemoryKeyStore_Claim(t *testing.T) {
	ctx := context.Background()

	t.Run("first claim wins until the ttl passes", func(t *testing.T) {
		s := NewMemoryKeyStore()
		now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
		s.now = func() time.Time { return now }

		ok, err := s.Claim(ctx, "donations:u1:abc", time.Hour)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = s.Claim(ctx, "donations:u1:abc", time.Hour)
		require.NoError(t, err)
		assert.False(t, ok)

		now = now.Add(time.Hour)
		ok, err = s.Claim(ctx, "donations:u1:abc", time.Hour)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("release frees the key", func(t *testing.T) {
		s := NewMemoryKeyStore()
		_, _ = s.Claim(ctx, "k", time.Hour)
		require.NoError(t, s.Release(ctx, "k"))

		ok, err := s.Claim(ctx, "k", time.Hour)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("sweeps expired keys", func(t *testing.T) {
		s := NewMemoryKeyStore()
		now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
		s.now = func() time.Time { return now }

		_, _ = s.Claim(ctx, "old", time.Second)
		now = now.Add(2 * time.Second)
		_, _ = s.Claim(ctx, "new", time.Second)

		assert.Equal(t, 1, s.Len())
	})

	t.Run("exactly one concurrent claim succeeds", func(t *testing.T) {
		s := NewMemoryKeyStore()
		var wins atomic.Int32
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if ok, _ := s.Claim(ctx, "shared", time.Minute); ok {
					wins.Add(1)
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, int32(1), wins.Load())
	})

	t.Run("honours a cancelled context", func(t *testing.T) {
		s := NewMemoryKeyStore()
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := s.Claim(cancelled, "k", time.Minute)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestNewKeyStore(t *testing.T) {
	t.Run("disabled redis uses memory", func(t *testing.T) {
		assert.IsType(t, &MemoryKeyStore{}, NewKeyStore(config.RedisConfig{}, zap.NewNop()))
	})

	t.Run("unreachable redis falls back to memory with a warning", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)
		s := NewKeyStore(config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1}, zap.New(core))

		assert.IsType(t, &MemoryKeyStore{}, s)
		assert.Equal(t, 1, logs.Len())
	})
}
