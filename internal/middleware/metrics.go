package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"petledger/internal/telemetry"
)

// Metrics records request count and latency. The path label is the matched
// route template, so IDs never become label values; unmatched requests are
// grouped under "unmatched".
func Metrics(m *telemetry.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.RequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.RequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
