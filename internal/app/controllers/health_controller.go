package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/atauni/internal/app/models/dto"
)

// Pinger reports whether the backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthController answers liveness and readiness probes
type HealthController struct {
	store   Pinger
	version string
	logger  zerolog.Logger
}

// NewHealthController creates a new HealthController; store may be nil for the memory driver
func NewHealthController(store Pinger, version string, logger zerolog.Logger) *HealthController {
	return &HealthController{store: store, version: version, logger: logger}
}

// Ping is the plain liveness probe
func (c *HealthController) Ping(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// Health reports the service and store status
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	status := gin.H{"status": "healthy", "version": c.version, "database": "ok"}

	if c.store != nil {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()
		if err := c.store.Ping(pingCtx); err != nil {
			c.logger.Error().Err(err).Msg("Health check: database unreachable")
			status["status"] = "degraded"
			status["database"] = "unreachable"
			detail := dto.NewErrorDetail(dto.ErrorCodeDatabaseError, "Database unreachable").WithDetails(status)
			ctx.JSON(http.StatusServiceUnavailable, dto.NewFailureResponse(detail))
			return
		}
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(status, ""))
}
