package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderFigures is one order flattened for aggregation: its sales total, its
// frozen commission, and enough lineage to group by campaign or sales person.
// Repositories only ever hand live orders under live campaigns to the
// aggregator; exclusion of soft-deleted records happens at the query layer.
type OrderFigures struct {
	OrderID       string
	CampaignID    string
	SalesPersonID string
	Total         decimal.Decimal
	Commission    decimal.Decimal
	CreatedAt     time.Time
}

// AggregateTotals is the common shape of per-scope commission figures.
type AggregateTotals struct {
	TotalSales        decimal.Decimal `json:"totalSales"`
	TotalCommission   decimal.Decimal `json:"totalCommission"`
	OrderCount        int             `json:"orderCount"`
	AvgOrderValue     decimal.Decimal `json:"avgOrderValue"`
	CommissionRatePct decimal.Decimal `json:"commissionRate"` // totalCommission/totalSales×100, 0 when no sales
	NetRevenue        decimal.Decimal `json:"netRevenue"`     // totalSales − totalCommission
}

// CampaignPerformance pairs a campaign with its aggregate figures.
type CampaignPerformance struct {
	Campaign Campaign
	Owner    *User
	Totals   AggregateTotals
}

// SalesPersonPerformance pairs a sales person with figures across all their
// live campaigns.
type SalesPersonPerformance struct {
	User               User
	Totals             AggregateTotals
	CampaignCount      int             `json:"campaignCount"`
	AvgSalePerCampaign decimal.Decimal `json:"avgSalePerCampaign"`
	EfficiencyRatio    decimal.Decimal `json:"efficiencyRatio"` // totalSales/totalCommission, 0 when no commission
}

// TrendBucket is one time bucket in a weekly or monthly trend series.
// Buckets with no orders are omitted, not zero-filled.
type TrendBucket struct {
	Period          string          `json:"period"` // "2006-01" or "2006-W02"
	TotalSales      decimal.Decimal `json:"totalSales"`
	TotalCommission decimal.Decimal `json:"totalCommission"`
	OrderCount      int             `json:"orderCount"`
	NetRevenue      decimal.Decimal `json:"netRevenue"`
}

// PlatformSummary is the admin dashboard rollup.
type PlatformSummary struct {
	TotalSales      decimal.Decimal
	TotalCommission decimal.Decimal
	TotalNetRevenue decimal.Decimal
	TotalOrders     int
	TotalCampaigns  int
	TopCampaign     *TopCampaign
}

// TopCampaign names the highest-grossing live campaign.
type TopCampaign struct {
	CampaignID string          `json:"campaignID"`
	Title      string          `json:"title"`
	Sales      decimal.Decimal `json:"sales"`
}

// MonthlyCommission is one month of a sales person's commission income.
type MonthlyCommission struct {
	YearMonth       string          `json:"yearMonth"` // "2006-01"
	TotalCommission decimal.Decimal `json:"totalCommission"`
	OrderCount      int             `json:"orderCount"`
}

// CampaignCommissionBreakdown is one campaign's share of a month's commission.
type CampaignCommissionBreakdown struct {
	CampaignID string           `json:"campaignId"`
	Title      string           `json:"title"`
	Platform   CampaignPlatform `json:"platform"`
	Type       CampaignType     `json:"type"`
	Commission decimal.Decimal  `json:"commission"`
	OrderCount int              `json:"orderCount"`
}
