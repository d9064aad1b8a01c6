package dto

import (
	"time"

	"github.com/aqilnajmi/sales_commission_tracker/internal/core/domain"
	portsrepo "github.com/aqilnajmi/sales_commission_tracker/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// CreateCampaignRequest defines the data needed to create a new campaign.
// SalesPersonID binds the campaign to its owner permanently.
type CreateCampaignRequest struct {
	SalesPersonID string           `json:"salesPersonID" binding:"required"`
	Title         string           `json:"title" binding:"required"`
	Platform      string           `json:"platform" binding:"required,oneof=facebook instagram"`
	Type          string           `json:"type" binding:"required,oneof=post event live_post"`
	URL           string           `json:"url" binding:"required,url"`
	ImageURL      string           `json:"imageUrl"`
	StartDate     *time.Time       `json:"startDate"` // Optional, defaults to now
	EndDate       *time.Time       `json:"endDate"`
	TargetROI     *decimal.Decimal `json:"targetROI"`
}

// UpdateCampaignRequest defines the data allowed for updating a campaign.
// The owning sales person is deliberately not updatable.
type UpdateCampaignRequest struct {
	Title     *string          `json:"title"`
	Platform  *string          `json:"platform" binding:"omitempty,oneof=facebook instagram"`
	Type      *string          `json:"type" binding:"omitempty,oneof=post event live_post"`
	URL       *string          `json:"url" binding:"omitempty,url"`
	ImageURL  *string          `json:"imageUrl"`
	StartDate *time.Time       `json:"startDate"`
	EndDate   *time.Time       `json:"endDate"`
	TargetROI *decimal.Decimal `json:"targetROI"`
}

// ListCampaignsParams defines query parameters for listing campaigns.
type ListCampaignsParams struct {
	Search      string     `form:"search"`
	Platform    string     `form:"platform" binding:"omitempty,oneof=facebook instagram"`
	Type        string     `form:"type" binding:"omitempty,oneof=post event live_post"`
	SalesPerson string     `form:"salesPersonID"`
	CreatedFrom *time.Time `form:"createdFrom" time_format:"2006-01-02"`
	CreatedTo   *time.Time `form:"createdTo" time_format:"2006-01-02"`
	SortBy      string     `form:"sortBy,default=created_at" binding:"omitempty,oneof=created_at title start_date"`
	SortAsc     bool       `form:"sortAsc"`
	Limit       int        `form:"limit,default=20"`
	Offset      int        `form:"offset,default=0"`
}

// CampaignOrderStatsResponse is the live-order rollup attached to a campaign.
type CampaignOrderStatsResponse struct {
	OrderCount      int             `json:"orderCount"`
	TotalSales      decimal.Decimal `json:"totalSales"`
	TotalCommission decimal.Decimal `json:"totalCommission"`
}

// CampaignResponse defines the data returned for a campaign.
type CampaignResponse struct {
	CampaignID    string                      `json:"campaignID"`
	SalesPersonID string                      `json:"salesPersonID"`
	SalesPerson   *UserResponse               `json:"salesPerson,omitempty"`
	Title         string                      `json:"title"`
	Platform      domain.CampaignPlatform     `json:"platform"`
	Type          domain.CampaignType         `json:"type"`
	URL           string                      `json:"url"`
	ImageURL      string                      `json:"imageUrl,omitempty"`
	Status        domain.CampaignStatus       `json:"status"`
	StartDate     time.Time                   `json:"startDate"`
	EndDate       *time.Time                  `json:"endDate,omitempty"`
	TargetROI     *decimal.Decimal            `json:"targetROI,omitempty"`
	OrderStats    *CampaignOrderStatsResponse `json:"orderStats,omitempty"`
	CreatedAt     time.Time                   `json:"createdAt"`
	LastUpdatedAt time.Time                   `json:"lastUpdatedAt"`

	// Derived at serialization time, never stored.
	IsActive         bool      `json:"isActive"`
	EffectiveEndDate time.Time `json:"effectiveEndDate"`
}

// ToCampaignResponse converts a domain.Campaign to CampaignResponse DTO
func ToCampaignResponse(c *domain.Campaign) CampaignResponse {
	return CampaignResponse{
		CampaignID:    c.CampaignID,
		SalesPersonID: c.SalesPersonID,
		Title:         c.Title,
		Platform:      c.Platform,
		Type:          c.Type,
		URL:           c.URL,
		ImageURL:      c.ImageURL,
		Status:        c.Status,
		StartDate:     c.StartDate,
		EndDate:       c.EndDate,
		TargetROI:     c.TargetROI,
		CreatedAt:     c.CreatedAt,
		LastUpdatedAt: c.LastUpdatedAt,

		IsActive:         c.IsActiveAt(time.Now()),
		EffectiveEndDate: c.EffectiveEndDate(),
	}
}

// AttachOrderStats fills the rollup on an existing response.
func (r *CampaignResponse) AttachOrderStats(stats portsrepo.CampaignOrderStats) {
	r.OrderStats = &CampaignOrderStatsResponse{
		OrderCount:      stats.OrderCount,
		TotalSales:      stats.TotalSales,
		TotalCommission: stats.TotalCommission,
	}
}

// ListCampaignsResponse wraps the list of campaigns with pagination metadata.
type ListCampaignsResponse struct {
	Campaigns []CampaignResponse `json:"campaigns"`
	Total     int                `json:"total"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
}

// DeleteCampaignResponse reports the cascade outcome of a campaign deletion.
type DeleteCampaignResponse struct {
	CampaignID     string `json:"campaignID"`
	OrdersCascaded int    `json:"ordersCascaded"`
}
