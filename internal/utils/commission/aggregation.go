package commission

import (
	"fmt"
	"sort"

	"github.com/aqilnajmi/sales_commission_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrendPeriod selects the bucketing granularity for trend series.
type TrendPeriod string

const (
	PeriodWeekly  TrendPeriod = "weekly"
	PeriodMonthly TrendPeriod = "monthly"
)

// AggregateFigures folds a set of live orders into the common totals shape.
// Callers must pre-filter: no soft-deleted order, and no order under a deleted
// campaign, may reach this function. Derived ratios are guarded against empty
// input so they are zero rather than undefined.
func AggregateFigures(figures []domain.OrderFigures) domain.AggregateTotals {
	totals := domain.AggregateTotals{
		TotalSales:        decimal.Zero,
		TotalCommission:   decimal.Zero,
		AvgOrderValue:     decimal.Zero,
		CommissionRatePct: decimal.Zero,
		NetRevenue:        decimal.Zero,
	}
	for _, f := range figures {
		totals.TotalSales = totals.TotalSales.Add(f.Total)
		totals.TotalCommission = totals.TotalCommission.Add(f.Commission)
		totals.OrderCount++
	}
	if totals.OrderCount > 0 {
		totals.AvgOrderValue = totals.TotalSales.Div(decimal.NewFromInt(int64(totals.OrderCount)))
	}
	if totals.TotalSales.IsPositive() {
		totals.CommissionRatePct = totals.TotalCommission.Div(totals.TotalSales).Mul(oneHundred)
	}
	totals.NetRevenue = totals.TotalSales.Sub(totals.TotalCommission)
	return totals
}

// EfficiencyRatio returns totalSales/totalCommission, or zero when no
// commission was paid.
func EfficiencyRatio(totals domain.AggregateTotals) decimal.Decimal {
	if !totals.TotalCommission.IsPositive() {
		return decimal.Zero
	}
	return totals.TotalSales.Div(totals.TotalCommission)
}

// GroupByCampaign splits figures per campaign, preserving order within each
// group.
func GroupByCampaign(figures []domain.OrderFigures) map[string][]domain.OrderFigures {
	grouped := make(map[string][]domain.OrderFigures)
	for _, f := range figures {
		grouped[f.CampaignID] = append(grouped[f.CampaignID], f)
	}
	return grouped
}

// GroupBySalesPerson splits figures per owning sales person.
func GroupBySalesPerson(figures []domain.OrderFigures) map[string][]domain.OrderFigures {
	grouped := make(map[string][]domain.OrderFigures)
	for _, f := range figures {
		grouped[f.SalesPersonID] = append(grouped[f.SalesPersonID], f)
	}
	return grouped
}

// PeriodKey derives the trend bucket key from an order's creation time:
// "2006-01" for monthly buckets, "2006-W02" (ISO week) for weekly ones.
func PeriodKey(t domain.OrderFigures, period TrendPeriod) string {
	if period == PeriodMonthly {
		return t.CreatedAt.Format("2006-01")
	}
	year, week := t.CreatedAt.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// BucketByPeriod folds figures into an ordered, sparse trend series. Buckets
// with no orders are omitted rather than zero-filled.
func BucketByPeriod(figures []domain.OrderFigures, period TrendPeriod) []domain.TrendBucket {
	byKey := make(map[string]*domain.TrendBucket)
	for _, f := range figures {
		key := PeriodKey(f, period)
		bucket, ok := byKey[key]
		if !ok {
			bucket = &domain.TrendBucket{
				Period:          key,
				TotalSales:      decimal.Zero,
				TotalCommission: decimal.Zero,
			}
			byKey[key] = bucket
		}
		bucket.TotalSales = bucket.TotalSales.Add(f.Total)
		bucket.TotalCommission = bucket.TotalCommission.Add(f.Commission)
		bucket.OrderCount++
	}

	buckets := make([]domain.TrendBucket, 0, len(byKey))
	for _, bucket := range byKey {
		bucket.NetRevenue = bucket.TotalSales.Sub(bucket.TotalCommission)
		buckets = append(buckets, *bucket)
	}
	// Both key formats sort lexicographically in chronological order.
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Period < buckets[j].Period })
	return buckets
}

// SortCampaignsByNetRevenue orders campaign figures for the admin leaderboard:
// net revenue descending, ties broken by campaign creation time then ID so the
// ordering is deterministic.
func SortCampaignsByNetRevenue(rows []domain.CampaignPerformance) {
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].Totals.NetRevenue.Equal(rows[j].Totals.NetRevenue) {
			return rows[i].Totals.NetRevenue.GreaterThan(rows[j].Totals.NetRevenue)
		}
		if !rows[i].Campaign.CreatedAt.Equal(rows[j].Campaign.CreatedAt) {
			return rows[i].Campaign.CreatedAt.Before(rows[j].Campaign.CreatedAt)
		}
		return rows[i].Campaign.CampaignID < rows[j].Campaign.CampaignID
	})
}

// SortCampaignsByTotalSales orders campaign figures for the sales-person view:
// total sales descending with the same deterministic tie break.
func SortCampaignsByTotalSales(rows []domain.CampaignPerformance) {
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].Totals.TotalSales.Equal(rows[j].Totals.TotalSales) {
			return rows[i].Totals.TotalSales.GreaterThan(rows[j].Totals.TotalSales)
		}
		if !rows[i].Campaign.CreatedAt.Equal(rows[j].Campaign.CreatedAt) {
			return rows[i].Campaign.CreatedAt.Before(rows[j].Campaign.CreatedAt)
		}
		return rows[i].Campaign.CampaignID < rows[j].Campaign.CampaignID
	})
}

// SortSalesPersonsByTotalSales orders the sales-person leaderboard: total
// sales descending, ties broken by account creation time then ID.
func SortSalesPersonsByTotalSales(rows []domain.SalesPersonPerformance) {
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].Totals.TotalSales.Equal(rows[j].Totals.TotalSales) {
			return rows[i].Totals.TotalSales.GreaterThan(rows[j].Totals.TotalSales)
		}
		if !rows[i].User.CreatedAt.Equal(rows[j].User.CreatedAt) {
			return rows[i].User.CreatedAt.Before(rows[j].User.CreatedAt)
		}
		return rows[i].User.UserID < rows[j].User.UserID
	})
}
