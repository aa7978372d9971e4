package middleware

import (
	"strconv"
	"time"

	"github.com/donorlink/backend/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	attrHTTPMethod = attribute.Key("http.method")
	attrHTTPRoute  = attribute.Key("http.route")
	attrHTTPStatus = attribute.Key("http.status_code")
	attrHTTPClass  = attribute.Key("http.status_class")
)

// HTTPDurationBuckets are bucket boundaries for request latency in seconds
var HTTPDurationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}

type httpMetrics struct {
	requests *telemetry.Counter
	duration *telemetry.Histogram
}

// HTTPMetrics records a request counter and a latency histogram per route
// pattern on meter. A nil meter disables it.
func HTTPMetrics(meter metric.Meter) gin.HandlerFunc {
	if meter == nil {
		return func(c *gin.Context) { c.Next() }
	}
	m, err := newHTTPMetrics(meter)
	if err != nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		ctx := c.Request.Context()

		m.requests.Inc(ctx,
			attrHTTPMethod.String(c.Request.Method),
			attrHTTPRoute.String(route),
			attrHTTPStatus.Int(status),
			attrHTTPClass.String(StatusClass(status)),
		)
		m.duration.Record(ctx, time.Since(start).Seconds(),
			attrHTTPMethod.String(c.Request.Method),
			attrHTTPRoute.String(route),
		)
	}
}

func newHTTPMetrics(meter metric.Meter) (*httpMetrics, error) {
	requests, err := telemetry.NewCounter(meter, "http_server_request_total", "Total number of HTTP requests")
	if err != nil {
		return nil, err
	}
	duration, err := telemetry.NewHistogram(meter, "http_server_request_duration_seconds",
		"HTTP request latency in seconds", "s", HTTPDurationBuckets...)
	if err != nil {
		return nil, err
	}
	return &httpMetrics{requests: requests, duration: duration}, nil
}

// StatusClass groups a status code as "2xx", "3xx", "4xx" or "5xx"
func StatusClass(status int) string {
	if status < 100 || status > 599 {
		return "other"
	}
	return strconv.Itoa(status/100) + "xx"
}
