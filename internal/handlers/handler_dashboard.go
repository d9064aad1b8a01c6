package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aqilnajmi/sales_commission_tracker/internal/core/domain"
	portssvc "github.com/aqilnajmi/sales_commission_tracker/internal/core/ports/services"
	"github.com/aqilnajmi/sales_commission_tracker/internal/middleware"

	"github.com/gin-gonic/gin"
)

// dashboardHandler serves the role-specific landing page rollups.
type dashboardHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// newDashboardHandler creates a new dashboardHandler.
func newDashboardHandler(rs portssvc.ReportingSvcFacade) *dashboardHandler {
	return &dashboardHandler{reportingService: rs}
}

// registerDashboardRoutes registers the dashboard routes.
func registerDashboardRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newDashboardHandler(reportingService)

	dashboard := rg.Group("/dashboard")
	{
		dashboard.GET("/admin", middleware.RequireCapability(domain.CapViewAllAnalytics), h.getAdminDashboard)
		dashboard.GET("/me", middleware.RequireCapability(domain.CapViewOwnAnalytics), h.getSalesPersonDashboard)
	}
}

// getAdminDashboard godoc
// @Summary Admin dashboard
// @Description Returns the platform-wide rollup: totals, top campaign, top sales persons and rules-based insights.
// @Tags dashboard
// @Produce  json
// @Success 200 {object} dto.AdminDashboardResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to build dashboard"
// @Security BearerAuth
// @Router /dashboard/admin [get]
func (h *dashboardHandler) getAdminDashboard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	resp, err := h.reportingService.GetAdminDashboard(c.Request.Context())
	if err != nil {
		logger.Error("Failed to build admin dashboard", slog.String("error", err.Error()))
		respondError(c, err, "Failed to build dashboard")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getSalesPersonDashboard godoc
// @Summary Sales person dashboard
// @Description Returns the caller's own landing page figures: overview, monthly commission income, per-campaign breakdown and insights.
// @Tags dashboard
// @Produce  json
// @Success 200 {object} dto.SalesPersonDashboardResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to build dashboard"
// @Security BearerAuth
// @Router /dashboard/me [get]
func (h *dashboardHandler) getSalesPersonDashboard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.reportingService.GetSalesPersonDashboard(c.Request.Context(), requestingUserID)
	if err != nil {
		logger.Error("Failed to build sales person dashboard", slog.String("error", err.Error()))
		respondError(c, err, "Failed to build dashboard")
		return
	}

	c.JSON(http.StatusOK, resp)
}
