package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/startupathon-api/internal/service"
)

// UnmatchedRoute labels requests that hit no registered route, keeping the path label bounded.
const UnmatchedRoute = "unmatched"

// Metrics records duration and count per route template. Paths listed in skip are not observed.
func Metrics(metricsSvc *service.MetricsService, skip ...string) gin.HandlerFunc {
	skipped := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		skipped[p] = struct{}{}
	}
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = UnmatchedRoute
		}
		if _, ok := skipped[route]; ok {
			return
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
