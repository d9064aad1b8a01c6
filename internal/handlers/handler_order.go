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

// orderHandler handles HTTP requests related to orders.
type orderHandler struct {
	orderService    portssvc.OrderSvcFacade
	activityService portssvc.ActivitySvcFacade
}

// newOrderHandler creates a new orderHandler.
func newOrderHandler(os portssvc.OrderSvcFacade, as portssvc.ActivitySvcFacade) *orderHandler {
	return &orderHandler{
		orderService:    os,
		activityService: as,
	}
}

// RegisterOrderRoutes registers all order-related routes.
func RegisterOrderRoutes(rg *gin.RouterGroup, orderService portssvc.OrderSvcFacade, activityService portssvc.ActivitySvcFacade) {
	h := newOrderHandler(orderService, activityService)

	orders := rg.Group("/orders")
	{
		orders.GET("", h.listOrders) // Sales persons see only their own campaigns' orders
		orders.POST("", middleware.RequireCapability(domain.CapOrderCreate), h.createOrder)
		orders.GET("/:id", h.getOrder)
		orders.PUT("/:id", middleware.RequireCapability(domain.CapOrderEdit), h.updateOrder)
		orders.DELETE("/:id", middleware.RequireCapability(domain.CapOrderDelete), h.deleteOrder)
	}
}

// createOrder godoc
// @Summary Create an order
// @Description Creates an order under an active campaign. The campaign owner's current commission rate is frozen onto the order as its snapshot.
// @Tags orders
// @Accept  json
// @Produce  json
// @Param   order body dto.CreateOrderRequest true "Order details"
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not the campaign owner"
// @Failure 404 {object} map[string]string "Campaign not found"
// @Failure 422 {object} map[string]string "Campaign not active"
// @Failure 500 {object} map[string]string "Failed to create order"
// @Security BearerAuth
// @Router /orders [post]
func (h *orderHandler) createOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for create order request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), req, creatorUserID)
	if err != nil {
		logger.Error("Failed to create order in service", slog.String("error", err.Error()), slog.String("campaign_id", req.CampaignID))
		respondError(c, err, "Failed to create order")
		return
	}

	h.activityService.Record(c.Request.Context(), portssvc.ActivityRecord{
		UserID:     creatorUserID,
		Action:     domain.ActionCreateOrder,
		TargetType: domain.TargetOrder,
		TargetID:   order.OrderID,
		Details:    map[string]any{"campaignID": order.CampaignID, "orderTotal": order.OrderTotal(), "commissionAmount": order.Commission.Amount},
		IPAddress:  c.ClientIP(),
	})

	logger.Info("Order created successfully", slog.String("order_id", order.OrderID))
	c.JSON(http.StatusCreated, dto.ToOrderResponse(order))
}

// getOrder godoc
// @Summary Get an order by ID
// @Description Retrieves one live order. Sales persons can only read orders under their own campaigns.
// @Tags orders
// @Produce  json
// @Param   id path string true "Order ID"
// @Success 200 {object} dto.OrderResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Order not found"
// @Failure 500 {object} map[string]string "Failed to retrieve order"
// @Security BearerAuth
// @Router /orders/{id} [get]
func (h *orderHandler) getOrder(c *gin.Context) {
	orderID := c.Param("id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	order, err := h.orderService.GetOrderByID(c.Request.Context(), orderID, requestingUserID)
	if err != nil {
		respondError(c, err, "Failed to retrieve order")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// listOrders godoc
// @Summary List orders
// @Description Retrieves a filtered, paginated list of live orders. Sales persons only see orders under their own campaigns.
// @Tags orders
// @Produce  json
// @Param   campaignID query string false "Filter by campaign"
// @Param   itemSearch query string false "Match against item names inside orders"
// @Param   sortBy query string false "Sort key" Enums(createdAt, total, commission) default(createdAt)
// @Param   sortAsc query bool false "Sort ascending" default(false)
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListOrdersResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Foreign campaign filter"
// @Failure 500 {object} map[string]string "Failed to list orders"
// @Security BearerAuth
// @Router /orders [get]
func (h *orderHandler) listOrders(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListOrdersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListOrders", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	orders, total, err := h.orderService.ListOrders(c.Request.Context(), params, requestingUserID)
	if err != nil {
		logger.Error("Failed to list orders from service", slog.String("error", err.Error()))
		respondError(c, err, "Failed to list orders")
		return
	}

	c.JSON(http.StatusOK, dto.ListOrdersResponse{
		Orders: dto.ToListOrderResponse(orders),
		Total:  total,
		Limit:  params.Limit,
		Offset: params.Offset,
	})
}

// updateOrder godoc
// @Summary Update an order
// @Description Replaces the order's items. The commission is recomputed against the rate snapshot frozen at creation, never the owner's current rate.
// @Tags orders
// @Accept  json
// @Produce  json
// @Param   id path string true "Order ID"
// @Param   order body dto.UpdateOrderRequest true "Replacement items"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Order not found"
// @Failure 500 {object} map[string]string "Failed to update order"
// @Security BearerAuth
// @Router /orders/{id} [put]
func (h *orderHandler) updateOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("id")

	var req dto.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for update order request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	order, err := h.orderService.UpdateOrder(c.Request.Context(), orderID, req, requestingUserID)
	if err != nil {
		logger.Error("Failed to update order in service", slog.String("error", err.Error()), slog.String("order_id", orderID))
		respondError(c, err, "Failed to update order")
		return
	}

	h.activityService.Record(c.Request.Context(), portssvc.ActivityRecord{
		UserID:     requestingUserID,
		Action:     domain.ActionUpdateOrder,
		TargetType: domain.TargetOrder,
		TargetID:   order.OrderID,
		Details:    map[string]any{"orderTotal": order.OrderTotal(), "commissionAmount": order.Commission.Amount},
		IPAddress:  c.ClientIP(),
	})

	logger.Info("Order updated successfully", slog.String("order_id", orderID))
	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// deleteOrder godoc
// @Summary Delete an order
// @Description Soft-deletes an order. Analytics exclude it from the next read.
// @Tags orders
// @Produce  json
// @Param   id path string true "Order ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Order not found"
// @Failure 500 {object} map[string]string "Failed to delete order"
// @Security BearerAuth
// @Router /orders/{id} [delete]
func (h *orderHandler) deleteOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.orderService.DeleteOrder(c.Request.Context(), orderID, requestingUserID); err != nil {
		logger.Error("Failed to delete order in service", slog.String("error", err.Error()), slog.String("order_id", orderID))
		respondError(c, err, "Failed to delete order")
		return
	}

	h.activityService.Record(c.Request.Context(), portssvc.ActivityRecord{
		UserID:     requestingUserID,
		Action:     domain.ActionDeleteOrder,
		TargetType: domain.TargetOrder,
		TargetID:   orderID,
		IPAddress:  c.ClientIP(),
	})

	logger.Info("Order deleted successfully", slog.String("order_id", orderID))
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted"})
}
