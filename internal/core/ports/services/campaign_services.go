package services

import (
	"context"

	"github.com/aqilnajmi/sales_commission_tracker/internal/core/domain"
	portsrepo "github.com/aqilnajmi/sales_commission_tracker/internal/core/ports/repositories"
	"github.com/aqilnajmi/sales_commission_tracker/internal/dto"
)

// CampaignReaderSvc defines read operations for campaign data
type CampaignReaderSvc interface {
	// GetCampaignByID retrieves a campaign by ID, regardless of status.
	GetCampaignByID(ctx context.Context, campaignID string) (*domain.Campaign, error)

	// ListCampaigns retrieves a filtered, paginated list of active campaigns
	// and the total count. A sales person caller is silently restricted to
	// their own campaigns.
	ListCampaigns(ctx context.Context, params dto.ListCampaignsParams, requestingUserID string) ([]domain.Campaign, int, error)

	// GetOrderStatsForCampaigns returns the live-order rollup per campaign.
	GetOrderStatsForCampaigns(ctx context.Context, campaignIDs []string) (map[string]portsrepo.CampaignOrderStats, error)
}

// CampaignWriterSvc defines write operations for campaign data
type CampaignWriterSvc interface {
	// CreateCampaign creates a new campaign bound to a sales person.
	CreateCampaign(ctx context.Context, req dto.CreateCampaignRequest, creatorUserID string) (*domain.Campaign, error)

	// UpdateCampaign updates a campaign's mutable fields. The owner never
	// changes.
	UpdateCampaign(ctx context.Context, campaignID string, req dto.UpdateCampaignRequest, requestingUserID string) (*domain.Campaign, error)
}

// CampaignLifecycleSvc defines operations for managing campaign lifecycle
type CampaignLifecycleSvc interface {
	// DeleteCampaign soft-deletes the campaign and all its live orders in one
	// transaction. Returns the number of orders cascaded.
	DeleteCampaign(ctx context.Context, campaignID string, requestingUserID string) (int, error)
}

// CampaignSvcFacade combines all campaign-related service interfaces
type CampaignSvcFacade interface {
	CampaignReaderSvc
	CampaignWriterSvc
	CampaignLifecycleSvc
}
