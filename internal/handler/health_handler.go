package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/startupathon-api/pkg/database"
	appErrors "github.com/noah-isme/startupathon-api/pkg/errors"
	"github.com/noah-isme/startupathon-api/pkg/response"
)

const probeTimeout = 3 * time.Second

// HealthHandler answers liveness and store reachability probes.
type HealthHandler struct {
	probe  database.Probe
	driver string
	logger *zap.Logger
}

// NewHealthHandler constructs a HealthHandler for the store named by driver.
func NewHealthHandler(probe database.Probe, driver string, logger *zap.Logger) *HealthHandler {
	if probe == nil {
		probe = database.AlwaysUp
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthHandler{probe: probe, driver: driver, logger: logger}
}

// Health godoc
// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// DBStatus godoc
// @Summary Data store reachability
// @Tags Health
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /db-status [get]
func (h *HealthHandler) DBStatus(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), probeTimeout)
	defer cancel()

	if err := h.probe(ctx); err != nil {
		h.logger.Warn("data store probe failed", zap.String("driver", h.driver), zap.Error(err))
		response.ErrorWithStatus(c, http.StatusServiceUnavailable,
			appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "Database is not connected"))
		return
	}
	response.OK(c, gin.H{"status": "connected", "driver": h.driver})
}
