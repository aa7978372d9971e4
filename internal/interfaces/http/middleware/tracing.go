package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// MaxRequestIDLength bounds the request id copied onto spans
const MaxRequestIDLength = 128

// TracingConfig holds configuration for the tracing middleware
type TracingConfig struct {
	ServiceName string
	Enabled     bool
}

// Tracing returns the OpenTelemetry server span middleware followed by a
// handler that tags the span once the route has run. Spans are named
// "METHOD /route/:pattern". It returns no handlers when disabled.
func Tracing(cfg TracingConfig) []gin.HandlerFunc {
	if !cfg.Enabled {
		return nil
	}
	return []gin.HandlerFunc{otelgin.Middleware(cfg.ServiceName), spanAttributes}
}

// spanAttributes runs inside the otelgin span so the route's auth context
// is visible when it tags the span
func spanAttributes(c *gin.Context) {
	c.Next()

	span := trace.SpanFromContext(c.Request.Context())
	if !span.IsRecording() {
		return
	}

	if id := c.GetString("request_id"); id != "" {
		if len(id) > MaxRequestIDLength {
			id = id[:MaxRequestIDLength]
		}
		span.SetAttributes(attribute.String("request_id", id))
	}
	if userID := c.GetString(JWTUserIDKey); userID != "" {
		span.SetAttributes(
			attribute.String("user_id", userID),
			attribute.String("user_type", c.GetString(JWTUserTypeKey)),
		)
	}

	if status := c.Writer.Status(); status >= http.StatusBadRequest {
		span.SetStatus(codes.Error, http.StatusText(status))
	}
}
