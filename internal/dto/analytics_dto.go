package dto

import (
	"time"

	"github.com/aqilnajmi/sales_commission_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AnalyticsRangeParams defines the optional date window shared by most
// analytics endpoints. Zero values mean no bound on that side.
type AnalyticsRangeParams struct {
	From *time.Time `form:"from" time_format:"2006-01-02"`
	To   *time.Time `form:"to" time_format:"2006-01-02"`
}

// TrendParams defines query parameters for the trend series endpoint.
type TrendParams struct {
	Period string     `form:"period,default=monthly" binding:"omitempty,oneof=weekly monthly"`
	From   *time.Time `form:"from" time_format:"2006-01-02"`
	To     *time.Time `form:"to" time_format:"2006-01-02"`
}

// OverviewResponse is the whole-scope aggregate figure set.
type OverviewResponse struct {
	TotalSales      decimal.Decimal `json:"totalSales"`
	TotalCommission decimal.Decimal `json:"totalCommission"`
	OrderCount      int             `json:"orderCount"`
	AvgOrderValue   decimal.Decimal `json:"avgOrderValue"`
	CommissionRate  decimal.Decimal `json:"commissionRate"`
	NetRevenue      decimal.Decimal `json:"netRevenue"`
}

// ToOverviewResponse converts domain aggregate totals to the response shape.
func ToOverviewResponse(t domain.AggregateTotals) OverviewResponse {
	return OverviewResponse{
		TotalSales:      t.TotalSales,
		TotalCommission: t.TotalCommission,
		OrderCount:      t.OrderCount,
		AvgOrderValue:   t.AvgOrderValue,
		CommissionRate:  t.CommissionRatePct,
		NetRevenue:      t.NetRevenue,
	}
}

// CampaignPerformanceResponse is one campaign's aggregate figures.
type CampaignPerformanceResponse struct {
	CampaignID      string                  `json:"campaignID"`
	Title           string                  `json:"title"`
	Platform        domain.CampaignPlatform `json:"platform"`
	Type            domain.CampaignType     `json:"type"`
	SalesPersonID   string                  `json:"salesPersonID"`
	SalesPersonName string                  `json:"salesPersonName,omitempty"`
	TotalSales      decimal.Decimal         `json:"totalSales"`
	TotalCommission decimal.Decimal         `json:"totalCommission"`
	OrderCount      int                     `json:"orderCount"`
	AvgOrderValue   decimal.Decimal         `json:"avgOrderValue"`
	CommissionRate  decimal.Decimal         `json:"commissionRate"`
	NetRevenue      decimal.Decimal         `json:"netRevenue"`
}

// ToCampaignPerformanceResponse converts one domain performance row.
func ToCampaignPerformanceResponse(p domain.CampaignPerformance) CampaignPerformanceResponse {
	resp := CampaignPerformanceResponse{
		CampaignID:      p.Campaign.CampaignID,
		Title:           p.Campaign.Title,
		Platform:        p.Campaign.Platform,
		Type:            p.Campaign.Type,
		SalesPersonID:   p.Campaign.SalesPersonID,
		TotalSales:      p.Totals.TotalSales,
		TotalCommission: p.Totals.TotalCommission,
		OrderCount:      p.Totals.OrderCount,
		AvgOrderValue:   p.Totals.AvgOrderValue,
		CommissionRate:  p.Totals.CommissionRatePct,
		NetRevenue:      p.Totals.NetRevenue,
	}
	if p.Owner != nil {
		resp.SalesPersonName = p.Owner.Name
	}
	return resp
}

// SalesPersonPerformanceResponse is one sales person's figures across all
// their live campaigns.
type SalesPersonPerformanceResponse struct {
	UserID             string          `json:"userID"`
	Name               string          `json:"name"`
	CommissionRate     decimal.Decimal `json:"currentCommissionRate"`
	TotalSales         decimal.Decimal `json:"totalSales"`
	TotalCommission    decimal.Decimal `json:"totalCommission"`
	OrderCount         int             `json:"orderCount"`
	CampaignCount      int             `json:"campaignCount"`
	AvgSalePerCampaign decimal.Decimal `json:"avgSalePerCampaign"`
	EfficiencyRatio    decimal.Decimal `json:"efficiencyRatio"`
	NetRevenue         decimal.Decimal `json:"netRevenue"`
}

// ToSalesPersonPerformanceResponse converts one domain performance row.
func ToSalesPersonPerformanceResponse(p domain.SalesPersonPerformance) SalesPersonPerformanceResponse {
	return SalesPersonPerformanceResponse{
		UserID:             p.User.UserID,
		Name:               p.User.Name,
		CommissionRate:     p.User.CommissionRate,
		TotalSales:         p.Totals.TotalSales,
		TotalCommission:    p.Totals.TotalCommission,
		OrderCount:         p.Totals.OrderCount,
		CampaignCount:      p.CampaignCount,
		AvgSalePerCampaign: p.AvgSalePerCampaign,
		EfficiencyRatio:    p.EfficiencyRatio,
		NetRevenue:         p.Totals.NetRevenue,
	}
}

// TrendBucketResponse is one time bucket in a trend series.
type TrendBucketResponse struct {
	Period          string          `json:"period"`
	TotalSales      decimal.Decimal `json:"totalSales"`
	TotalCommission decimal.Decimal `json:"totalCommission"`
	OrderCount      int             `json:"orderCount"`
	NetRevenue      decimal.Decimal `json:"netRevenue"`
}

// TrendResponse is a sparse, chronologically ordered trend series.
type TrendResponse struct {
	Period  string                `json:"period"` // weekly | monthly
	Buckets []TrendBucketResponse `json:"buckets"`
}

// ToTrendResponse converts domain trend buckets to the response shape.
func ToTrendResponse(period string, buckets []domain.TrendBucket) TrendResponse {
	out := TrendResponse{Period: period, Buckets: make([]TrendBucketResponse, len(buckets))}
	for i, b := range buckets {
		out.Buckets[i] = TrendBucketResponse{
			Period:          b.Period,
			TotalSales:      b.TotalSales,
			TotalCommission: b.TotalCommission,
			OrderCount:      b.OrderCount,
			NetRevenue:      b.NetRevenue,
		}
	}
	return out
}

// InsightResponse is one rules-based observation derived from the figures.
type InsightResponse struct {
	Kind    string `json:"kind"` // e.g. "top_platform", "efficiency", "momentum"
	Message string `json:"message"`
}

// AdminDashboardResponse is the platform-wide rollup for the admin landing page.
type AdminDashboardResponse struct {
	TotalSales      decimal.Decimal                  `json:"totalSales"`
	TotalCommission decimal.Decimal                  `json:"totalCommission"`
	TotalNetRevenue decimal.Decimal                  `json:"totalNetRevenue"`
	TotalOrders     int                              `json:"totalOrders"`
	TotalCampaigns  int                              `json:"totalCampaigns"`
	TopCampaign     *domain.TopCampaign              `json:"topCampaign,omitempty"`
	TopSalesPersons []SalesPersonPerformanceResponse `json:"topSalesPersons"`
	Insights        []InsightResponse                `json:"insights"`
}

// MonthlyCommissionResponse is one month of commission income.
type MonthlyCommissionResponse struct {
	YearMonth       string          `json:"yearMonth"`
	TotalCommission decimal.Decimal `json:"totalCommission"`
	OrderCount      int             `json:"orderCount"`
}

// SalesPersonDashboardResponse is one sales person's landing page figures.
type SalesPersonDashboardResponse struct {
	Overview           OverviewResponse                     `json:"overview"`
	CampaignCount      int                                  `json:"campaignCount"`
	MonthlyCommissions []MonthlyCommissionResponse          `json:"monthlyCommissions"`
	CampaignBreakdown  []domain.CampaignCommissionBreakdown `json:"campaignBreakdown"`
	Insights           []InsightResponse                    `json:"insights"`
}
