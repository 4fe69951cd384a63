package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/yukikurage/task-analytics-api/internal/errors"
	"github.com/yukikurage/task-analytics-api/internal/logging"
	"github.com/yukikurage/task-analytics-api/internal/services"
)

type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// TaskStatus returns status counts and percentages over all tasks
func (h *AnalyticsHandler) TaskStatus(c *gin.Context) {
	stats, err := h.analyticsService.TaskStatusAnalytics(c.Request.Context())
	if err != nil {
		logging.Logger.WithError(err).Error("Failed to compute task status analytics")
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, stats)
}

// UserEfficiency returns the per-user completion breakdown
func (h *AnalyticsHandler) UserEfficiency(c *gin.Context) {
	records, err := h.analyticsService.UserEfficiencyAnalytics(c.Request.Context())
	if err != nil {
		logging.Logger.WithError(err).Error("Failed to compute user efficiency analytics")
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, records)
}
