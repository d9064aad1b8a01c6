package repositories

import (
	"context"
	"time"

	"github.com/aqilnajmi/sales_commission_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CampaignListFilter narrows and pages campaign listings. Only active
// campaigns are ever listed; deleted ones are reachable by ID for audit.
type CampaignListFilter struct {
	SalesPersonID string // restrict to one owner ("" = all)
	Search        string // title substring, case-insensitive
	Platform      domain.CampaignPlatform
	Type          domain.CampaignType
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
	SortBy        string // created_at | title | start_date
	SortAsc       bool
	Limit         int
	Offset        int
}

// CampaignOrderStats is the per-campaign order rollup attached to listings.
type CampaignOrderStats struct {
	CampaignID      string
	OrderCount      int
	TotalSales      decimal.Decimal
	TotalCommission decimal.Decimal
}

// CampaignReader defines read operations for campaign data
type CampaignReader interface {
	// FindCampaignByID retrieves a campaign regardless of status.
	FindCampaignByID(ctx context.Context, campaignID string) (*domain.Campaign, error)

	// FindCampaigns retrieves a filtered, paginated list of active campaigns
	// plus the total count matching the filter.
	FindCampaigns(ctx context.Context, filter CampaignListFilter) ([]domain.Campaign, int, error)

	// FindCampaignsBySalesPerson retrieves all active campaigns owned by a
	// sales person.
	FindCampaignsBySalesPerson(ctx context.Context, salesPersonID string) ([]domain.Campaign, error)

	// FindActiveCampaigns retrieves every active campaign. Reporting folds
	// over the full set, so this is deliberately unpaginated.
	FindActiveCampaigns(ctx context.Context) ([]domain.Campaign, error)

	// FindOrderStatsForCampaigns returns the live-order rollup per campaign ID.
	// Campaigns with no live orders are absent from the map.
	FindOrderStatsForCampaigns(ctx context.Context, campaignIDs []string) (map[string]CampaignOrderStats, error)
}

// CampaignWriter defines write operations for campaign data
type CampaignWriter interface {
	// SaveCampaign persists a new campaign.
	SaveCampaign(ctx context.Context, campaign domain.Campaign) error

	// UpdateCampaign updates a campaign's mutable fields. The owning sales
	// person is never part of the update.
	UpdateCampaign(ctx context.Context, campaign domain.Campaign) error
}

// CampaignLifecycleManager defines operations for managing campaign lifecycle
type CampaignLifecycleManager interface {
	// MarkCampaignDeleted soft-deletes the campaign and soft-deletes all its
	// orders in the same transaction, so reporting never observes a live
	// order under a deleted campaign. Returns the number of orders cascaded.
	MarkCampaignDeleted(ctx context.Context, campaignID string, deletedAt time.Time, deletedBy string) (int, error)
}

// CampaignRepositoryFacade combines all campaign-related repository interfaces
type CampaignRepositoryFacade interface {
	CampaignReader
	CampaignWriter
	CampaignLifecycleManager
}
