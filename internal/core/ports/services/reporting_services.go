package services

import (
	"context"
	"time"

	"github.com/aqilnajmi/sales_commission_tracker/internal/core/domain"
	"github.com/aqilnajmi/sales_commission_tracker/internal/dto"
	"github.com/aqilnajmi/sales_commission_tracker/internal/utils/commission"
)

// ReportingSvcFacade derives every analytics figure from the live order set.
// Nothing here is stored; deleting an order or cascading a campaign deletion
// changes the next response. A sales person caller is always scoped to their
// own campaigns; admins see the whole platform.
type ReportingSvcFacade interface {
	// GetOverview returns aggregate totals for the caller's scope, optionally
	// bounded by a creation-time window.
	GetOverview(ctx context.Context, requestingUserID string, from, to *time.Time) (*domain.AggregateTotals, error)

	// GetCampaignPerformance returns per-campaign figures for the caller's
	// scope. Admin rows are sorted by net revenue descending; a sales
	// person's own rows by total sales descending.
	GetCampaignPerformance(ctx context.Context, requestingUserID string) ([]domain.CampaignPerformance, error)

	// GetSalesPersonLeaderboard returns per-sales-person figures across the
	// platform, sorted by total sales descending. Admin only.
	GetSalesPersonLeaderboard(ctx context.Context) ([]domain.SalesPersonPerformance, error)

	// GetTrend returns the sparse weekly or monthly bucket series for the
	// caller's scope.
	GetTrend(ctx context.Context, requestingUserID string, period commission.TrendPeriod, from, to *time.Time) ([]domain.TrendBucket, error)

	// GetAdminDashboard returns the platform rollup with leaderboard and
	// insights.
	GetAdminDashboard(ctx context.Context) (*dto.AdminDashboardResponse, error)

	// GetSalesPersonDashboard returns one sales person's landing page
	// figures: overview, monthly commission income, per-campaign breakdown
	// and insights.
	GetSalesPersonDashboard(ctx context.Context, salesPersonID string) (*dto.SalesPersonDashboardResponse, error)
}
