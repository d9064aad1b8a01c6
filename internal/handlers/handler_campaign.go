package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aqilnajmi/sales_commission_tracker/internal/core/domain"
	portssvc "github.com/aqilnajmi/sales_commission_tracker/internal/core/ports/services"
	"github.com/aqilnajmi/sales_commission_tracker/internal/dto"
	"github.com/aqilnajmi/sales_commission_tracker/internal/middleware"

	"github.com/gin-gonic/gin"
)

// campaignHandler handles HTTP requests related to campaigns.
type campaignHandler struct {
	campaignService portssvc.CampaignSvcFacade
	orderService    portssvc.OrderSvcFacade
	userService     portssvc.UserSvcFacade
	activityService portssvc.ActivitySvcFacade
}

// newCampaignHandler creates a new campaignHandler.
func newCampaignHandler(cs portssvc.CampaignSvcFacade, os portssvc.OrderSvcFacade, us portssvc.UserSvcFacade, as portssvc.ActivitySvcFacade) *campaignHandler {
	return &campaignHandler{
		campaignService: cs,
		orderService:    os,
		userService:     us,
		activityService: as,
	}
}

// registerCampaignRoutes registers all campaign-related routes.
func registerCampaignRoutes(rg *gin.RouterGroup, campaignService portssvc.CampaignSvcFacade, orderService portssvc.OrderSvcFacade, userService portssvc.UserSvcFacade, activityService portssvc.ActivitySvcFacade) {
	h := newCampaignHandler(campaignService, orderService, userService, activityService)

	manage := middleware.RequireCapability(domain.CapCampaignManage)

	campaigns := rg.Group("/campaigns")
	{
		campaigns.GET("", h.listCampaigns) // Sales persons see only their own
		campaigns.POST("", manage, h.createCampaign)
		campaigns.GET("/:id", h.getCampaign)
		campaigns.PUT("/:id", manage, h.updateCampaign)
		campaigns.DELETE("/:id", manage, h.deleteCampaign)
		campaigns.GET("/:id/orders", h.listCampaignOrders)
	}
}

// createCampaign godoc
// @Summary Create a campaign
// @Description Creates a campaign bound to a sales person owner. The owner never changes afterwards.
// @Tags campaigns
// @Accept  json
// @Produce  json
// @Param   campaign body dto.CreateCampaignRequest true "Campaign details"
// @Success 201 {object} dto.CampaignResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Owner not found"
// @Failure 500 {object} map[string]string "Failed to create campaign"
// @Security BearerAuth
// @Router /campaigns [post]
func (h *campaignHandler) createCampaign(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for create campaign request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	campaign, err := h.campaignService.CreateCampaign(c.Request.Context(), req, creatorUserID)
	if err != nil {
		logger.Error("Failed to create campaign in service", slog.String("error", err.Error()))
		respondError(c, err, "Failed to create campaign")
		return
	}

	h.activityService.Record(c.Request.Context(), portssvc.ActivityRecord{
		UserID:     creatorUserID,
		Action:     domain.ActionCreateCampaign,
		TargetType: domain.TargetCampaign,
		TargetID:   campaign.CampaignID,
		TargetName: campaign.Title,
		Details:    map[string]any{"platform": campaign.Platform, "type": campaign.Type, "salesPersonID": campaign.SalesPersonID},
		IPAddress:  c.ClientIP(),
	})

	logger.Info("Campaign created successfully", slog.String("campaign_id", campaign.CampaignID))
	c.JSON(http.StatusCreated, dto.ToCampaignResponse(campaign))
}

// getCampaign godoc
// @Summary Get a campaign by ID
// @Description Retrieves one campaign with its live order rollup and owner details.
// @Tags campaigns
// @Produce  json
// @Param   id path string true "Campaign ID"
// @Success 200 {object} dto.CampaignResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Campaign not found"
// @Failure 500 {object} map[string]string "Failed to retrieve campaign"
// @Security BearerAuth
// @Router /campaigns/{id} [get]
func (h *campaignHandler) getCampaign(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	campaignID := c.Param("id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	campaign, err := h.campaignService.GetCampaignByID(c.Request.Context(), campaignID)
	if err != nil {
		respondError(c, err, "Failed to retrieve campaign")
		return
	}

	// A sales person may only open their own campaigns.
	role, _ := middleware.GetUserRoleFromContext(c)
	if !domain.RoleAllows(role, domain.CapCampaignManage) && campaign.SalesPersonID != requestingUserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	resp := dto.ToCampaignResponse(campaign)

	if stats, err := h.campaignService.GetOrderStatsForCampaigns(c.Request.Context(), []string{campaignID}); err == nil {
		if s, found := stats[campaignID]; found {
			resp.AttachOrderStats(s)
		}
	} else {
		logger.Warn("Failed to load order stats for campaign", slog.String("error", err.Error()), slog.String("campaign_id", campaignID))
	}

	if owner, err := h.userService.GetUserByID(c.Request.Context(), campaign.SalesPersonID); err == nil {
		ownerResp := dto.ToUserResponse(owner)
		resp.SalesPerson = &ownerResp
	}

	c.JSON(http.StatusOK, resp)
}

// listCampaigns godoc
// @Summary List campaigns
// @Description Retrieves a filtered, paginated list of active campaigns with per-campaign order rollups. Sales persons only see their own.
// @Tags campaigns
// @Produce  json
// @Param   search query string false "Match against campaign title"
// @Param   platform query string false "Filter by platform" Enums(facebook, instagram)
// @Param   type query string false "Filter by campaign type" Enums(post, event, live_post)
// @Param   salesPersonID query string false "Filter by owner (admin only)"
// @Param   sortBy query string false "Sort column" Enums(created_at, title, start_date) default(created_at)
// @Param   sortAsc query bool false "Sort ascending" default(false)
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListCampaignsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list campaigns"
// @Security BearerAuth
// @Router /campaigns [get]
func (h *campaignHandler) listCampaigns(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListCampaignsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListCampaigns", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	campaigns, total, err := h.campaignService.ListCampaigns(c.Request.Context(), params, requestingUserID)
	if err != nil {
		logger.Error("Failed to list campaigns from service", slog.String("error", err.Error()))
		respondError(c, err, "Failed to list campaigns")
		return
	}

	resp := dto.ListCampaignsResponse{
		Campaigns: make([]dto.CampaignResponse, 0, len(campaigns)),
		Total:     total,
		Limit:     params.Limit,
		Offset:    params.Offset,
	}

	ids := make([]string, 0, len(campaigns))
	for i := range campaigns {
		ids = append(ids, campaigns[i].CampaignID)
		resp.Campaigns = append(resp.Campaigns, dto.ToCampaignResponse(&campaigns[i]))
	}

	if len(ids) > 0 {
		stats, err := h.campaignService.GetOrderStatsForCampaigns(c.Request.Context(), ids)
		if err != nil {
			logger.Warn("Failed to load order stats for campaign page", slog.String("error", err.Error()))
		} else {
			for i := range resp.Campaigns {
				if s, found := stats[resp.Campaigns[i].CampaignID]; found {
					resp.Campaigns[i].AttachOrderStats(s)
				}
			}
		}
	}

	c.JSON(http.StatusOK, resp)
}

// updateCampaign godoc
// @Summary Update a campaign
// @Description Updates a campaign's mutable fields. The sales person owner cannot be changed.
// @Tags campaigns
// @Accept  json
// @Produce  json
// @Param   id path string true "Campaign ID"
// @Param   campaign body dto.UpdateCampaignRequest true "Fields to update"
// @Success 200 {object} dto.CampaignResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Campaign not found"
// @Failure 500 {object} map[string]string "Failed to update campaign"
// @Security BearerAuth
// @Router /campaigns/{id} [put]
func (h *campaignHandler) updateCampaign(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	campaignID := c.Param("id")

	var req dto.UpdateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for update campaign request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	campaign, err := h.campaignService.UpdateCampaign(c.Request.Context(), campaignID, req, requestingUserID)
	if err != nil {
		logger.Error("Failed to update campaign in service", slog.String("error", err.Error()), slog.String("campaign_id", campaignID))
		respondError(c, err, "Failed to update campaign")
		return
	}

	h.activityService.Record(c.Request.Context(), portssvc.ActivityRecord{
		UserID:     requestingUserID,
		Action:     domain.ActionUpdateCampaign,
		TargetType: domain.TargetCampaign,
		TargetID:   campaign.CampaignID,
		TargetName: campaign.Title,
		IPAddress:  c.ClientIP(),
	})

	logger.Info("Campaign updated successfully", slog.String("campaign_id", campaignID))
	c.JSON(http.StatusOK, dto.ToCampaignResponse(campaign))
}

// deleteCampaign godoc
// @Summary Delete a campaign
// @Description Soft-deletes the campaign and cascades to all its live orders in one transaction. Reports how many orders were cascaded.
// @Tags campaigns
// @Produce  json
// @Param   id path string true "Campaign ID"
// @Success 200 {object} dto.DeleteCampaignResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Campaign not found"
// @Failure 500 {object} map[string]string "Failed to delete campaign"
// @Security BearerAuth
// @Router /campaigns/{id} [delete]
func (h *campaignHandler) deleteCampaign(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	campaignID := c.Param("id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	// The title is gone from listings after the cascade, so capture it first.
	campaign, err := h.campaignService.GetCampaignByID(c.Request.Context(), campaignID)
	if err != nil {
		respondError(c, err, "Failed to retrieve campaign")
		return
	}

	cascaded, err := h.campaignService.DeleteCampaign(c.Request.Context(), campaignID, requestingUserID)
	if err != nil {
		logger.Error("Failed to delete campaign in service", slog.String("error", err.Error()), slog.String("campaign_id", campaignID))
		respondError(c, err, "Failed to delete campaign")
		return
	}

	h.activityService.Record(c.Request.Context(), portssvc.ActivityRecord{
		UserID:     requestingUserID,
		Action:     domain.ActionDeleteCampaign,
		TargetType: domain.TargetCampaign,
		TargetID:   campaignID,
		TargetName: campaign.Title,
		Details:    map[string]any{"ordersCascaded": cascaded},
		IPAddress:  c.ClientIP(),
	})

	logger.Info("Campaign deleted successfully", slog.String("campaign_id", campaignID), slog.Int("orders_cascaded", cascaded))
	c.JSON(http.StatusOK, dto.DeleteCampaignResponse{CampaignID: campaignID, OrdersCascaded: cascaded})
}

// listCampaignOrders godoc
// @Summary List a campaign's orders
// @Description Retrieves all live orders under one campaign.
// @Tags campaigns
// @Produce  json
// @Param   id path string true "Campaign ID"
// @Success 200 {array} dto.OrderResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Campaign not found"
// @Failure 500 {object} map[string]string "Failed to list orders"
// @Security BearerAuth
// @Router /campaigns/{id}/orders [get]
func (h *campaignHandler) listCampaignOrders(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	campaignID := c.Param("id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	orders, err := h.orderService.ListOrdersByCampaign(c.Request.Context(), campaignID, requestingUserID)
	if err != nil {
		logger.Error("Failed to list campaign orders from service", slog.String("error", err.Error()), slog.String("campaign_id", campaignID))
		respondError(c, err, "Failed to list orders")
		return
	}

	c.JSON(http.StatusOK, dto.ToListOrderResponse(orders))
}
