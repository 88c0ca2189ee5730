package middleware

import (
	"strconv"
	"time"

	"github.com/SscSPs/banking_backoffice_app/internal/platform/metrics"
	"github.com/gin-gonic/gin"
)

// RequestMetrics observes the latency of every request, labelled by route template.
func RequestMetrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveRequest(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
