package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Samuel04-png/aether-api/internal/dto"
	apierrors "github.com/Samuel04-png/aether-api/internal/errors"
	"github.com/Samuel04-png/aether-api/internal/middleware"
	"github.com/Samuel04-png/aether-api/internal/services"
)

// DashboardHandler serves the stored KPI rows.
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// ListStats returns the user's KPI rows.
func (h *DashboardHandler) ListStats(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	stats, err := h.dashboardService.ListStats(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch stats")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats": dto.ToDashboardStatDTOs(stats),
	})
}

// RecomputeStats rebuilds the user's KPI rows from current collections.
func (h *DashboardHandler) RecomputeStats(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.dashboardService.Recompute(c.Request.Context(), userID); err != nil {
		if errors.Is(err, services.ErrNoScopingID) {
			apierrors.Unauthorized(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to recompute stats")
		return
	}

	stats, err := h.dashboardService.ListStats(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch stats")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats": dto.ToDashboardStatDTOs(stats),
	})
}
