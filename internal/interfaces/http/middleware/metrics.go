package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"cred-vault.backend/pkg/metrics"
)

// MetricsMiddleware records request counts and latencies. The route template
// is used as the path label so ids do not explode cardinality.
func MetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.ObserveRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
