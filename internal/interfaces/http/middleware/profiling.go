package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/grafana/pyroscope-go"
)

// Profiling labels CPU samples taken while a request runs with its method,
// route pattern and resource so profiles can be filtered per endpoint.
// Labels are a no-op when no profiler is running.
func Profiling(enabled bool) gin.HandlerFunc {
	if !enabled {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			c.Next()
			return
		}
		labels := pyroscope.Labels(
			"method", c.Request.Method,
			"route", route,
			"resource", ResourceFromRoute(route),
		)
		pyroscope.TagWrapper(c.Request.Context(), labels, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}

// ResourceFromRoute returns the first path segment after the /api prefix,
// e.g. "/api/donations/:id" gives "donations"
func ResourceFromRoute(route string) string {
	for _, seg := range strings.Split(strings.Trim(route, "/"), "/") {
		if seg == "" || seg == "api" || strings.HasPrefix(seg, ":") {
			continue
		}
		return seg
	}
	return ""
}
