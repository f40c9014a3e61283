package handlers

import (
	"github.com/gin-gonic/gin"

	apierrors "github.com/keynertyc/Fullstack-Test-01/internal/errors"
	"github.com/keynertyc/Fullstack-Test-01/internal/middleware"
	"github.com/keynertyc/Fullstack-Test-01/internal/services"
	"github.com/keynertyc/Fullstack-Test-01/pkg/logger"
)

// StatisticsHandler serves the per-user aggregate counters.
type StatisticsHandler struct {
	statsService *services.StatisticsService
}

// NewStatisticsHandler creates a new StatisticsHandler.
func NewStatisticsHandler(statsService *services.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{
		statsService: statsService,
	}
}

// GetStatistics returns counts scoped to the caller's visible projects.
func (h *StatisticsHandler) GetStatistics(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	stats, err := h.statsService.ForUser(userID)
	if err != nil {
		log := logger.Get()
		log.Error().Err(err).Msg("statistics handler failure")
		apierrors.InternalError(c, "")
		return
	}

	respondOK(c, stats, "")
}
