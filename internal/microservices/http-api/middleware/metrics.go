package middleware

import (
	"strconv"
	"time"

	"libraryhub/internal/observability"

	"github.com/gin-gonic/gin"
)

// Metrics records request counts and latency labelled by route template,
// so /api/books/1 and /api/books/2 share a series.
func Metrics(m *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}
