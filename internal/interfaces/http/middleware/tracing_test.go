package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func setupTestTracer(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)

	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(t.Context())
	})
	return sr
}

func tracedRouter(status int, setup ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Tracing(TracingConfig{Enabled: true, ServiceName: "donorlink-test"})...)
	handlers := append(setup, func(c *gin.Context) {
		c.JSON(status, gin.H{})
	})
	r.GET("/donations/:id", handlers...)
	return r
}

func spanAttrs(span sdktrace.ReadOnlySpan) map[attribute.Key]string {
	out := map[attribute.Key]string{}
	for _, kv := range span.Attributes() {
		out[kv.Key] = kv.Value.Emit()
	}
	return out
}

func TestTracing_Disabled(t *testing.T) {
	assert.Empty(t, Tracing(TracingConfig{Enabled: false, ServiceName: "donorlink-test"}))
}

func TestTracing_RecordsServerSpan(t *testing.T) {
	sr := setupTestTracer(t)
	router := tracedRouter(http.StatusOK, func(c *gin.Context) {
		c.Set("request_id", "req-123")
		c.Set(JWTUserIDKey, "6f1c2a8e-0b7d-4c1e-9a51-2d3f4e5a6c01")
		c.Set(JWTUserTypeKey, "donor")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/donations/42", nil))
	require.Equal(t, http.StatusOK, w.Code)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	span := spans[0]
	assert.Contains(t, span.Name(), "/donations/:id")
	assert.Equal(t, codes.Unset, span.Status().Code)

	attrs := spanAttrs(span)
	assert.Equal(t, "req-123", attrs["request_id"])
	assert.Equal(t, "6f1c2a8e-0b7d-4c1e-9a51-2d3f4e5a6c01", attrs["user_id"])
	assert.Equal(t, "donor", attrs["user_type"])
}

func TestTracing_AnonymousRequestHasNoUser(t *testing.T) {
	sr := setupTestTracer(t)
	router := tracedRouter(http.StatusOK)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/donations/1", nil))

	require.Len(t, sr.Ended(), 1)
	attrs := spanAttrs(sr.Ended()[0])
	assert.NotContains(t, attrs, attribute.Key("user_id"))
	assert.NotContains(t, attrs, attribute.Key("request_id"))
}

func TestTracing_TruncatesLongRequestID(t *testing.T) {
	sr := setupTestTracer(t)
	long := make([]byte, MaxRequestIDLength+40)
	for i := range long {
		long[i] = 'a'
	}
	router := tracedRouter(http.StatusOK, func(c *gin.Context) {
		c.Set("request_id", string(long))
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/donations/1", nil))

	require.Len(t, sr.Ended(), 1)
	assert.Len(t, spanAttrs(sr.Ended()[0])["request_id"], MaxRequestIDLength)
}

func TestTracing_MarksErrorResponses(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   codes.Code
	}{
		{"bad request", http.StatusBadRequest, codes.Error},
		{"unauthorized", http.StatusUnauthorized, codes.Error},
		{"forbidden", http.StatusForbidden, codes.Error},
		{"not found", http.StatusNotFound, codes.Error},
		{"server error", http.StatusInternalServerError, codes.Error},
		{"created", http.StatusCreated, codes.Unset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sr := setupTestTracer(t)
			router := tracedRouter(tt.status)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/donations/7", nil))
			require.Equal(t, tt.status, w.Code)

			require.Len(t, sr.Ended(), 1)
			assert.Equal(t, tt.want, sr.Ended()[0].Status().Code)
		})
	}
}
