package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/startupathon-api/internal/service"
)

// Metrics serves the collectors registered on svc in the Prometheus text format.
// A nil svc answers every scrape with 503.
func Metrics(svc *service.MetricsService) gin.HandlerFunc {
	return gin.WrapH(svc.Handler())
}
