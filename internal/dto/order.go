package dto

import (
	"time"

	"github.com/aqilnajmi/sales_commission_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OrderItemRequest is one line item on an order create or update.
// TotalPrice is never accepted from the client; it is recomputed server-side.
// BasePrice may be zero (free samples, giveaways) but never negative.
type OrderItemRequest struct {
	Name      string          `json:"name" binding:"required"`
	Quantity  int64           `json:"quantity" binding:"required,min=1"`
	BasePrice decimal.Decimal `json:"basePrice" binding:"gte=0"`
}

// CreateOrderRequest defines the data needed to create a new order. There is
// no commission rate field: the snapshot is taken from the campaign owner's
// current rate at creation time.
type CreateOrderRequest struct {
	CampaignID string             `json:"campaignID" binding:"required"`
	Items      []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateOrderRequest replaces the order's items. The commission fields exist
// only so an explicit override attempt is caught and rejected instead of
// being dropped silently; no edit can change the frozen snapshot.
type UpdateOrderRequest struct {
	Items                  []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	CommissionAmount       *decimal.Decimal   `json:"commissionAmount"`
	CommissionRateSnapshot *decimal.Decimal   `json:"commissionRateSnapshot"`
}

// ListOrdersParams defines query parameters for listing orders.
type ListOrdersParams struct {
	CampaignID string `form:"campaignID"`
	ItemSearch string `form:"itemSearch"`
	SortBy     string `form:"sortBy,default=createdAt" binding:"omitempty,oneof=createdAt total commission"`
	SortAsc    bool   `form:"sortAsc"`
	Limit      int    `form:"limit,default=20"`
	Offset     int    `form:"offset,default=0"`
}

// OrderItemResponse is one line item as stored, with the derived total.
type OrderItemResponse struct {
	Name       string          `json:"name"`
	Quantity   int64           `json:"quantity"`
	BasePrice  decimal.Decimal `json:"basePrice"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// OrderResponse defines the data returned for an order.
type OrderResponse struct {
	OrderID                string              `json:"orderID"`
	CampaignID             string              `json:"campaignID"`
	Items                  []OrderItemResponse `json:"items"`
	OrderTotal             decimal.Decimal     `json:"orderTotal"`
	CommissionAmount       decimal.Decimal     `json:"commissionAmount"`
	CommissionRateSnapshot decimal.Decimal     `json:"commissionRateSnapshot"`
	CreatedAt              time.Time           `json:"createdAt"`
	LastUpdatedAt          time.Time           `json:"lastUpdatedAt"`
}

// ToOrderResponse converts a domain.Order to OrderResponse DTO
func ToOrderResponse(o *domain.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			Name:       item.Name,
			Quantity:   item.Quantity,
			BasePrice:  item.BasePrice,
			TotalPrice: item.TotalPrice,
		}
	}
	return OrderResponse{
		OrderID:                o.OrderID,
		CampaignID:             o.CampaignID,
		Items:                  items,
		OrderTotal:             o.OrderTotal(),
		CommissionAmount:       o.Commission.Amount,
		CommissionRateSnapshot: o.Commission.RateSnapshot,
		CreatedAt:              o.CreatedAt,
		LastUpdatedAt:          o.LastUpdatedAt,
	}
}

// ToListOrderResponse converts a slice of domain.Order to OrderResponse DTOs
func ToListOrderResponse(orders []domain.Order) []OrderResponse {
	res := make([]OrderResponse, len(orders))
	for i, o := range orders {
		res[i] = ToOrderResponse(&o)
	}
	return res
}

// ListOrdersResponse wraps the list of orders with pagination metadata.
type ListOrdersResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int             `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}
