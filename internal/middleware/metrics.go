package middleware

import (
	"time"

	"fursa_backend/internal/metrics"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware пишет счетчик и латентность по шаблону маршрута
func MetricsMiddleware(m *metrics.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		m.RequestStarted()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RecordHTTPRequest(route, c.Request.Method, c.Writer.Status(), time.Since(start))
	}
}
