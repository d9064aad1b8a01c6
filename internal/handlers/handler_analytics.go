package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aqilnajmi/sales_commission_tracker/internal/core/domain"
	portssvc "github.com/aqilnajmi/sales_commission_tracker/internal/core/ports/services"
	"github.com/aqilnajmi/sales_commission_tracker/internal/dto"
	"github.com/aqilnajmi/sales_commission_tracker/internal/middleware"
	"github.com/aqilnajmi/sales_commission_tracker/internal/utils/commission"

	"github.com/gin-gonic/gin"
)

// analyticsHandler exposes the live-derived reporting figures. Nothing here
// is stored; every response is computed from the current order set.
type analyticsHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// newAnalyticsHandler creates a new analyticsHandler.
func newAnalyticsHandler(rs portssvc.ReportingSvcFacade) *analyticsHandler {
	return &analyticsHandler{reportingService: rs}
}

// registerAnalyticsRoutes registers all analytics routes. Every route
// requires at least own-scope analytics access; the service layer narrows a
// sales person to their own campaigns.
func registerAnalyticsRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newAnalyticsHandler(reportingService)

	view := middleware.RequireAnyCapability(domain.CapViewAllAnalytics, domain.CapViewOwnAnalytics)

	analytics := rg.Group("/analytics", view)
	{
		analytics.GET("/overview", h.getOverview)
		analytics.GET("/campaigns", h.getCampaignPerformance)
		analytics.GET("/salespersons", middleware.RequireCapability(domain.CapViewAllAnalytics), h.getSalesPersonLeaderboard)
		analytics.GET("/trends", h.getTrend)
	}
}

// getOverview godoc
// @Summary Aggregate overview
// @Description Returns total sales, commission, order count, average order value, effective commission rate and net revenue for the caller's scope, optionally bounded by a date window.
// @Tags analytics
// @Produce  json
// @Param   from query string false "Window start (YYYY-MM-DD)"
// @Param   to query string false "Window end (YYYY-MM-DD)"
// @Success 200 {object} dto.OverviewResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute overview"
// @Security BearerAuth
// @Router /analytics/overview [get]
func (h *analyticsHandler) getOverview(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.AnalyticsRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	totals, err := h.reportingService.GetOverview(c.Request.Context(), requestingUserID, params.From, params.To)
	if err != nil {
		logger.Error("Failed to compute overview", slog.String("error", err.Error()))
		respondError(c, err, "Failed to compute overview")
		return
	}

	c.JSON(http.StatusOK, dto.ToOverviewResponse(*totals))
}

// getCampaignPerformance godoc
// @Summary Per-campaign performance
// @Description Returns aggregate figures per campaign for the caller's scope. Admin rows are sorted by net revenue descending, a sales person's own rows by total sales descending.
// @Tags analytics
// @Produce  json
// @Success 200 {array} dto.CampaignPerformanceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute campaign performance"
// @Security BearerAuth
// @Router /analytics/campaigns [get]
func (h *analyticsHandler) getCampaignPerformance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rows, err := h.reportingService.GetCampaignPerformance(c.Request.Context(), requestingUserID)
	if err != nil {
		logger.Error("Failed to compute campaign performance", slog.String("error", err.Error()))
		respondError(c, err, "Failed to compute campaign performance")
		return
	}

	out := make([]dto.CampaignPerformanceResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.ToCampaignPerformanceResponse(row))
	}
	c.JSON(http.StatusOK, out)
}

// getSalesPersonLeaderboard godoc
// @Summary Sales person leaderboard
// @Description Returns per-sales-person aggregate figures across the platform, sorted by total sales descending.
// @Tags analytics
// @Produce  json
// @Success 200 {array} dto.SalesPersonPerformanceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to compute leaderboard"
// @Security BearerAuth
// @Router /analytics/salespersons [get]
func (h *analyticsHandler) getSalesPersonLeaderboard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rows, err := h.reportingService.GetSalesPersonLeaderboard(c.Request.Context())
	if err != nil {
		logger.Error("Failed to compute sales person leaderboard", slog.String("error", err.Error()))
		respondError(c, err, "Failed to compute leaderboard")
		return
	}

	out := make([]dto.SalesPersonPerformanceResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.ToSalesPersonPerformanceResponse(row))
	}
	c.JSON(http.StatusOK, out)
}

// getTrend godoc
// @Summary Sales and commission trend
// @Description Returns the sparse weekly or monthly bucket series for the caller's scope. Buckets without orders are omitted.
// @Tags analytics
// @Produce  json
// @Param   period query string false "Bucket granularity" Enums(weekly, monthly) default(monthly)
// @Param   from query string false "Window start (YYYY-MM-DD)"
// @Param   to query string false "Window end (YYYY-MM-DD)"
// @Success 200 {object} dto.TrendResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute trend"
// @Security BearerAuth
// @Router /analytics/trends [get]
func (h *analyticsHandler) getTrend(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.TrendParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	buckets, err := h.reportingService.GetTrend(c.Request.Context(), requestingUserID, commission.TrendPeriod(params.Period), params.From, params.To)
	if err != nil {
		logger.Error("Failed to compute trend", slog.String("error", err.Error()))
		respondError(c, err, "Failed to compute trend")
		return
	}

	c.JSON(http.StatusOK, dto.ToTrendResponse(params.Period, buckets))
}
