package services

import (
	"context"

	"github.com/aqilnajmi/sales_commission_tracker/internal/core/domain"
	"github.com/aqilnajmi/sales_commission_tracker/internal/dto"
)

// OrderReaderSvc defines read operations for order data
type OrderReaderSvc interface {
	// GetOrderByID retrieves a live order by ID. A sales person caller must
	// own the order's campaign.
	GetOrderByID(ctx context.Context, orderID string, requestingUserID string) (*domain.Order, error)

	// ListOrders retrieves a filtered, paginated list of live orders and the
	// total count. A sales person caller is restricted to orders under their
	// own campaigns.
	ListOrders(ctx context.Context, params dto.ListOrdersParams, requestingUserID string) ([]domain.Order, int, error)

	// ListOrdersByCampaign retrieves all live orders for one campaign.
	ListOrdersByCampaign(ctx context.Context, campaignID string, requestingUserID string) ([]domain.Order, error)
}

// OrderWriterSvc defines write operations for order data
type OrderWriterSvc interface {
	// CreateOrder creates an order under an active campaign, freezing the
	// campaign owner's current commission rate onto it as the snapshot.
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest, creatorUserID string) (*domain.Order, error)

	// UpdateOrder replaces the order's items and recomputes the commission
	// amount against the frozen rate snapshot.
	UpdateOrder(ctx context.Context, orderID string, req dto.UpdateOrderRequest, requestingUserID string) (*domain.Order, error)
}

// OrderLifecycleSvc defines operations for managing order lifecycle
type OrderLifecycleSvc interface {
	// DeleteOrder soft-deletes an order.
	DeleteOrder(ctx context.Context, orderID string, requestingUserID string) error
}

// OrderSvcFacade combines all order-related service interfaces
type OrderSvcFacade interface {
	OrderReaderSvc
	OrderWriterSvc
	OrderLifecycleSvc
}
