package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vzahanych/photo-app/pkg/metrics"
)

// MetricsMiddleware records request counts, latency and in-flight requests.
// Unmatched routes are grouped under a single label to bound cardinality.
func MetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		m.IncActive()

		c.Next()

		m.DecActive()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveHTTP(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
