package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromContext(t *testing.T) {
	t.Run("returns nop without logger", func(t *testing.T) {
		l := FromContext(context.Background())
		require.NotNil(t, l)
		assert.False(t, l.Core().Enabled(zapcore.ErrorLevel))
	})

	t.Run("enriches with user id", func(t *testing.T) {
		core, recorded := observer.New(zapcore.InfoLevel)
		ctx := WithContext(context.Background(), zap.New(core))
		ctx = WithUserID(ctx, "user-42")

		FromContext(ctx).Info("hello")

		entries := recorded.All()
		require.Len(t, entries, 1)
		assert.Equal(t, "user-42", entries[0].ContextMap()["user_id"])
	})
}

func TestContextIDs(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestID(ctx))
	assert.Empty(t, GetUserID(ctx))

	ctx = withValue(ctx, RequestIDKey, "req-9")
	ctx = WithUserID(ctx, "u-1")
	assert.Equal(t, "req-9", GetRequestID(ctx))
	assert.Equal(t, "u-1", GetUserID(ctx))
}
