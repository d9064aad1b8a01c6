package repositories

import (
	"context"
	"time"

	"github.com/aqilnajmi/sales_commission_tracker/internal/core/domain"
)

// ReportingRepository supplies the aggregator with pre-filtered order figures.
// Every query joins orders to their campaigns and excludes soft-deleted orders
// and deleted campaigns before the rows leave the database; the aggregator
// relies on that contract and does not re-check.
type ReportingRepository interface {
	// FindLiveOrderFigures returns one row per live order under a live
	// campaign, across the whole platform.
	FindLiveOrderFigures(ctx context.Context) ([]domain.OrderFigures, error)

	// FindLiveOrderFiguresForSalesPerson narrows to one sales person's
	// campaigns.
	FindLiveOrderFiguresForSalesPerson(ctx context.Context, salesPersonID string) ([]domain.OrderFigures, error)

	// FindLiveOrderFiguresInRange narrows by order creation time; a zero
	// salesPersonID means platform-wide.
	FindLiveOrderFiguresInRange(ctx context.Context, salesPersonID string, from, to time.Time) ([]domain.OrderFigures, error)
}
