package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aqilnajmi/sales_commission_tracker/internal/core/domain"
	portsrepo "github.com/aqilnajmi/sales_commission_tracker/internal/core/ports/repositories"
	portssvc "github.com/aqilnajmi/sales_commission_tracker/internal/core/ports/services"
	"github.com/aqilnajmi/sales_commission_tracker/internal/dto"
	"github.com/aqilnajmi/sales_commission_tracker/internal/utils"
	"github.com/aqilnajmi/sales_commission_tracker/internal/utils/commission"
	"github.com/shopspring/decimal"
)

// reportingServiceImpl implements the ReportingSvcFacade interface.
// Every figure is derived on demand from the live order set; nothing is
// cached or stored.
type reportingServiceImpl struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	campaignRepo  portsrepo.CampaignReader
	userRepo      portsrepo.UserReader
}

// NewReportingServiceImpl creates a new reporting service
func NewReportingServiceImpl(reportingRepo portsrepo.ReportingRepository, campaignRepo portsrepo.CampaignReader, userRepo portsrepo.UserReader) portssvc.ReportingSvcFacade {
	return &reportingServiceImpl{
		reportingRepo: reportingRepo,
		campaignRepo:  campaignRepo,
		userRepo:      userRepo,
	}
}

// Ensure reportingServiceImpl implements the ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*reportingServiceImpl)(nil)

// scopedFigures returns the live order figures visible to the requester:
// platform-wide for admins, own campaigns only for sales persons.
func (s *reportingServiceImpl) scopedFigures(ctx context.Context, requestingUserID string, from, to *time.Time) (*domain.User, []domain.OrderFigures, error) {
	requester, err := s.userRepo.FindUserByID(ctx, requestingUserID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve requesting user: %w", err)
	}

	scopeID := ""
	if requester.Role == domain.RoleSalesPerson {
		scopeID = requestingUserID
	}

	var figures []domain.OrderFigures
	if from == nil && to == nil {
		if scopeID == "" {
			figures, err = s.reportingRepo.FindLiveOrderFigures(ctx)
		} else {
			figures, err = s.reportingRepo.FindLiveOrderFiguresForSalesPerson(ctx, scopeID)
		}
	} else {
		lo := time.Time{}
		hi := time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)
		if from != nil {
			lo = *from
		}
		if to != nil {
			hi = *to
		}
		figures, err = s.reportingRepo.FindLiveOrderFiguresInRange(ctx, scopeID, lo, hi)
	}
	if err != nil {
		return nil, nil, err
	}
	return requester, figures, nil
}

func (s *reportingServiceImpl) GetOverview(ctx context.Context, requestingUserID string, from, to *time.Time) (*domain.AggregateTotals, error) {
	_, figures, err := s.scopedFigures(ctx, requestingUserID, from, to)
	if err != nil {
		return nil, err
	}
	totals := commission.AggregateFigures(figures)
	return &totals, nil
}

// buildCampaignRows pairs each campaign with its aggregate figures, resolving
// owners through a small cache so each user is fetched once.
func (s *reportingServiceImpl) buildCampaignRows(ctx context.Context, campaigns []domain.Campaign, figures []domain.OrderFigures) []domain.CampaignPerformance {
	grouped := commission.GroupByCampaign(figures)
	owners := map[string]*domain.User{}

	rows := make([]domain.CampaignPerformance, len(campaigns))
	for i, c := range campaigns {
		owner, seen := owners[c.SalesPersonID]
		if !seen {
			// A missing owner is tolerated: the campaign keeps its figures.
			owner, _ = s.userRepo.FindUserByID(ctx, c.SalesPersonID)
			owners[c.SalesPersonID] = owner
		}
		rows[i] = domain.CampaignPerformance{
			Campaign: c,
			Owner:    owner,
			Totals:   commission.AggregateFigures(grouped[c.CampaignID]),
		}
	}
	return rows
}

func (s *reportingServiceImpl) GetCampaignPerformance(ctx context.Context, requestingUserID string) ([]domain.CampaignPerformance, error) {
	requester, figures, err := s.scopedFigures(ctx, requestingUserID, nil, nil)
	if err != nil {
		return nil, err
	}

	var campaigns []domain.Campaign
	if requester.Role == domain.RoleSalesPerson {
		campaigns, err = s.campaignRepo.FindCampaignsBySalesPerson(ctx, requestingUserID)
	} else {
		campaigns, err = s.campaignRepo.FindActiveCampaigns(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load campaigns for performance report: %w", err)
	}

	rows := s.buildCampaignRows(ctx, campaigns, figures)
	if requester.Role == domain.RoleSalesPerson {
		commission.SortCampaignsByTotalSales(rows)
	} else {
		commission.SortCampaignsByNetRevenue(rows)
	}
	return rows, nil
}

func (s *reportingServiceImpl) GetSalesPersonLeaderboard(ctx context.Context) ([]domain.SalesPersonPerformance, error) {
	salesPersons, err := s.userRepo.FindSalesPersons(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales persons: %w", err)
	}
	figures, err := s.reportingRepo.FindLiveOrderFigures(ctx)
	if err != nil {
		return nil, err
	}
	grouped := commission.GroupBySalesPerson(figures)

	rows := make([]domain.SalesPersonPerformance, len(salesPersons))
	for i, sp := range salesPersons {
		campaigns, err := s.campaignRepo.FindCampaignsBySalesPerson(ctx, sp.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to load campaigns for %s: %w", sp.UserID, err)
		}
		totals := commission.AggregateFigures(grouped[sp.UserID])

		avgSale := decimal.Zero
		if len(campaigns) > 0 {
			avgSale = totals.TotalSales.Div(decimal.NewFromInt(int64(len(campaigns))))
		}
		rows[i] = domain.SalesPersonPerformance{
			User:               sp,
			Totals:             totals,
			CampaignCount:      len(campaigns),
			AvgSalePerCampaign: avgSale,
			EfficiencyRatio:    commission.EfficiencyRatio(totals),
		}
	}
	commission.SortSalesPersonsByTotalSales(rows)
	return rows, nil
}

func (s *reportingServiceImpl) GetTrend(ctx context.Context, requestingUserID string, period commission.TrendPeriod, from, to *time.Time) ([]domain.TrendBucket, error) {
	_, figures, err := s.scopedFigures(ctx, requestingUserID, from, to)
	if err != nil {
		return nil, err
	}
	return commission.BucketByPeriod(figures, period), nil
}

const dashboardLeaderboardSize = 5

func (s *reportingServiceImpl) GetAdminDashboard(ctx context.Context) (*dto.AdminDashboardResponse, error) {
	figures, err := s.reportingRepo.FindLiveOrderFigures(ctx)
	if err != nil {
		return nil, err
	}
	campaigns, err := s.campaignRepo.FindActiveCampaigns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load campaigns for dashboard: %w", err)
	}

	totals := commission.AggregateFigures(figures)
	resp := &dto.AdminDashboardResponse{
		TotalSales:      totals.TotalSales,
		TotalCommission: totals.TotalCommission,
		TotalNetRevenue: totals.NetRevenue,
		TotalOrders:     totals.OrderCount,
		TotalCampaigns:  len(campaigns),
		Insights:        buildInsights(figures, campaigns),
	}

	rows := s.buildCampaignRows(ctx, campaigns, figures)
	commission.SortCampaignsByTotalSales(rows)
	if len(rows) > 0 && rows[0].Totals.TotalSales.IsPositive() {
		resp.TopCampaign = &domain.TopCampaign{
			CampaignID: rows[0].Campaign.CampaignID,
			Title:      rows[0].Campaign.Title,
			Sales:      rows[0].Totals.TotalSales,
		}
	}

	leaderboard, err := s.GetSalesPersonLeaderboard(ctx)
	if err != nil {
		return nil, err
	}
	if len(leaderboard) > dashboardLeaderboardSize {
		leaderboard = leaderboard[:dashboardLeaderboardSize]
	}
	resp.TopSalesPersons = make([]dto.SalesPersonPerformanceResponse, len(leaderboard))
	for i, row := range leaderboard {
		resp.TopSalesPersons[i] = dto.ToSalesPersonPerformanceResponse(row)
	}
	return resp, nil
}

func (s *reportingServiceImpl) GetSalesPersonDashboard(ctx context.Context, salesPersonID string) (*dto.SalesPersonDashboardResponse, error) {
	figures, err := s.reportingRepo.FindLiveOrderFiguresForSalesPerson(ctx, salesPersonID)
	if err != nil {
		return nil, err
	}
	campaigns, err := s.campaignRepo.FindCampaignsBySalesPerson(ctx, salesPersonID)
	if err != nil {
		return nil, fmt.Errorf("failed to load campaigns for dashboard: %w", err)
	}

	resp := &dto.SalesPersonDashboardResponse{
		Overview:           dto.ToOverviewResponse(commission.AggregateFigures(figures)),
		CampaignCount:      len(campaigns),
		MonthlyCommissions: monthlyCommissions(figures),
		CampaignBreakdown:  campaignBreakdown(figures, campaigns),
		Insights:           buildInsights(figures, campaigns),
	}
	return resp, nil
}

// monthlyCommissions folds figures into per-month commission income, oldest
// month first.
func monthlyCommissions(figures []domain.OrderFigures) []dto.MonthlyCommissionResponse {
	buckets := commission.BucketByPeriod(figures, commission.PeriodMonthly)
	out := make([]dto.MonthlyCommissionResponse, len(buckets))
	for i, b := range buckets {
		out[i] = dto.MonthlyCommissionResponse{
			YearMonth:       b.Period,
			TotalCommission: b.TotalCommission,
			OrderCount:      b.OrderCount,
		}
	}
	return out
}

// campaignBreakdown attributes commission income per campaign, highest first.
func campaignBreakdown(figures []domain.OrderFigures, campaigns []domain.Campaign) []domain.CampaignCommissionBreakdown {
	grouped := commission.GroupByCampaign(figures)
	rows := make([]domain.CampaignCommissionBreakdown, 0, len(campaigns))
	for _, c := range campaigns {
		totals := commission.AggregateFigures(grouped[c.CampaignID])
		if totals.OrderCount == 0 {
			continue
		}
		rows = append(rows, domain.CampaignCommissionBreakdown{
			CampaignID: c.CampaignID,
			Title:      c.Title,
			Platform:   c.Platform,
			Type:       c.Type,
			Commission: totals.TotalCommission,
			OrderCount: totals.OrderCount,
		})
	}
	// Highest commission first, stable on input order for ties.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Commission.GreaterThan(rows[j].Commission)
	})
	return rows
}

// buildInsights derives rules-based observations from the figures. No AI, no
// stored state: each insight is recomputed from the same live order set the
// rest of the analytics use.
func buildInsights(figures []domain.OrderFigures, campaigns []domain.Campaign) []dto.InsightResponse {
	insights := []dto.InsightResponse{}
	if len(figures) == 0 {
		return insights
	}

	// Top platform by sales.
	platformByCampaign := make(map[string]domain.CampaignPlatform, len(campaigns))
	for _, c := range campaigns {
		platformByCampaign[c.CampaignID] = c.Platform
	}
	platformSales := map[domain.CampaignPlatform]decimal.Decimal{}
	for _, f := range figures {
		p, ok := platformByCampaign[f.CampaignID]
		if !ok {
			continue
		}
		platformSales[p] = platformSales[p].Add(f.Total)
	}
	var topPlatform domain.CampaignPlatform
	topSales := decimal.Zero
	for p, sales := range platformSales {
		if sales.GreaterThan(topSales) || (sales.Equal(topSales) && string(p) < string(topPlatform)) {
			topPlatform, topSales = p, sales
		}
	}
	if topPlatform != "" {
		insights = append(insights, dto.InsightResponse{
			Kind:    "top_platform",
			Message: fmt.Sprintf("%s campaigns lead with %s in sales", topPlatform, utils.FormatMYR(topSales)),
		})
	}

	// Overall commission efficiency.
	totals := commission.AggregateFigures(figures)
	insights = append(insights, dto.InsightResponse{
		Kind: "efficiency",
		Message: fmt.Sprintf("Commission costs run at %s%% of sales across %d orders",
			totals.CommissionRatePct.StringFixed(2), totals.OrderCount),
	})

	// Month-over-month momentum, when there are at least two months of data.
	buckets := commission.BucketByPeriod(figures, commission.PeriodMonthly)
	if len(buckets) >= 2 {
		prev := buckets[len(buckets)-2]
		last := buckets[len(buckets)-1]
		if prev.TotalSales.IsPositive() {
			delta := last.TotalSales.Sub(prev.TotalSales).Div(prev.TotalSales).Mul(decimal.NewFromInt(100))
			direction := "up"
			if delta.IsNegative() {
				direction = "down"
				delta = delta.Abs()
			}
			insights = append(insights, dto.InsightResponse{
				Kind:    "momentum",
				Message: fmt.Sprintf("Sales are %s %s%% in %s versus %s", direction, delta.StringFixed(1), last.Period, prev.Period),
			})
		}
	}
	return insights
}
