package repositories

import (
	"context"
	"time"

	"github.com/aqilnajmi/sales_commission_tracker/internal/core/domain"
)

// OrderSortField selects the order listing sort key.
type OrderSortField string

const (
	OrderSortCreatedAt  OrderSortField = "createdAt"
	OrderSortTotal      OrderSortField = "total"
	OrderSortCommission OrderSortField = "commission"
)

// OrderListFilter narrows and pages order listings. Soft-deleted orders are
// always excluded.
type OrderListFilter struct {
	CampaignID  string   // restrict to one campaign ("" = all)
	CampaignIDs []string // restrict to a set (sales person scope); nil = no restriction
	ItemSearch  string   // item name substring, case-insensitive
	SortBy      OrderSortField
	SortAsc     bool
	Limit       int
	Offset      int
}

// OrderReader defines read operations for order data
type OrderReader interface {
	// FindOrderByID retrieves a live order by its ID.
	FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error)

	// FindOrders retrieves a filtered, paginated list of live orders plus the
	// total count matching the filter.
	FindOrders(ctx context.Context, filter OrderListFilter) ([]domain.Order, int, error)

	// FindOrdersByCampaign retrieves all live orders for one campaign, newest
	// first.
	FindOrdersByCampaign(ctx context.Context, campaignID string) ([]domain.Order, error)
}

// OrderWriter defines write operations for order data
type OrderWriter interface {
	// SaveOrder persists a new order with its commission snapshot.
	SaveOrder(ctx context.Context, order domain.Order) error

	// UpdateOrderItems replaces the order's items and commission amount. The
	// rate snapshot column is deliberately absent from the UPDATE statement.
	UpdateOrderItems(ctx context.Context, order domain.Order) error
}

// OrderLifecycleManager defines operations for managing order lifecycle
type OrderLifecycleManager interface {
	// MarkOrderDeleted soft-deletes an order.
	MarkOrderDeleted(ctx context.Context, orderID string, deletedAt time.Time, deletedBy string) error
}

// OrderRepositoryFacade combines all order-related repository interfaces
type OrderRepositoryFacade interface {
	OrderReader
	OrderWriter
	OrderLifecycleManager
}
