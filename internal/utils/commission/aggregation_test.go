package commission_test

import (
	"testing"
	"time"

	"github.com/aqilnajmi/sales_commission_tracker/internal/core/domain"
	"github.com/aqilnajmi/sales_commission_tracker/internal/utils/commission"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func figure(campaignID, spID string, total, comm int64, createdAt time.Time) domain.OrderFigures {
	return domain.OrderFigures{
		OrderID:       "o-" + campaignID,
		CampaignID:    campaignID,
		SalesPersonID: spID,
		Total:         decimal.NewFromInt(total),
		Commission:    decimal.NewFromInt(comm),
		CreatedAt:     createdAt,
	}
}

func TestAggregateFigures(t *testing.T) {
	now := time.Now()
	totals := commission.AggregateFigures([]domain.OrderFigures{
		figure("c1", "sp1", 100, 10, now),
		figure("c1", "sp1", 300, 30, now),
	})

	assert.Equal(t, 2, totals.OrderCount)
	assert.True(t, totals.TotalSales.Equal(decimal.NewFromInt(400)))
	assert.True(t, totals.TotalCommission.Equal(decimal.NewFromInt(40)))
	assert.True(t, totals.AvgOrderValue.Equal(decimal.NewFromInt(200)))
	assert.True(t, totals.CommissionRatePct.Equal(decimal.NewFromInt(10)))
	assert.True(t, totals.NetRevenue.Equal(decimal.NewFromInt(360)))
}

func TestAggregateFigures_ZeroDivisionGuards(t *testing.T) {
	empty := commission.AggregateFigures(nil)
	assert.Equal(t, 0, empty.OrderCount)
	assert.True(t, empty.AvgOrderValue.IsZero())
	assert.True(t, empty.CommissionRatePct.IsZero())
	assert.True(t, empty.NetRevenue.IsZero())

	// Sales without commission: efficiency ratio guard
	noCommission := commission.AggregateFigures([]domain.OrderFigures{
		figure("c1", "sp1", 500, 0, time.Now()),
	})
	assert.True(t, commission.EfficiencyRatio(noCommission).IsZero())
	assert.True(t, noCommission.CommissionRatePct.IsZero())
}

func TestEfficiencyRatio(t *testing.T) {
	totals := commission.AggregateFigures([]domain.OrderFigures{
		figure("c1", "sp1", 1000, 100, time.Now()),
	})
	assert.True(t, commission.EfficiencyRatio(totals).Equal(decimal.NewFromInt(10)))
}

func TestBucketByPeriod_MonthlySparseAndOrdered(t *testing.T) {
	jan := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	mar := time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)

	buckets := commission.BucketByPeriod([]domain.OrderFigures{
		figure("c1", "sp1", 200, 20, mar),
		figure("c1", "sp1", 100, 10, jan),
		figure("c2", "sp1", 50, 5, jan),
	}, commission.PeriodMonthly)

	// February had no orders and is omitted, not zero-filled.
	assert.Len(t, buckets, 2)
	assert.Equal(t, "2025-01", buckets[0].Period)
	assert.Equal(t, "2025-03", buckets[1].Period)
	assert.Equal(t, 2, buckets[0].OrderCount)
	assert.True(t, buckets[0].TotalSales.Equal(decimal.NewFromInt(150)))
	assert.True(t, buckets[0].NetRevenue.Equal(decimal.NewFromInt(135)))
}

func TestBucketByPeriod_WeeklyUsesISOWeek(t *testing.T) {
	// 2024-12-30 is a Monday belonging to ISO week 1 of 2025.
	withinWeekOne := time.Date(2024, 12, 30, 12, 0, 0, 0, time.UTC)
	buckets := commission.BucketByPeriod([]domain.OrderFigures{
		figure("c1", "sp1", 10, 1, withinWeekOne),
	}, commission.PeriodWeekly)

	assert.Len(t, buckets, 1)
	assert.Equal(t, "2025-W01", buckets[0].Period)
}

func TestSortCampaignsByNetRevenue_TieBreaksOnCreation(t *testing.T) {
	older := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(24 * time.Hour)

	perf := func(id string, created time.Time, net int64) domain.CampaignPerformance {
		return domain.CampaignPerformance{
			Campaign: domain.Campaign{
				CampaignID:  id,
				AuditFields: domain.AuditFields{CreatedAt: created},
			},
			Totals: domain.AggregateTotals{NetRevenue: decimal.NewFromInt(net)},
		}
	}

	rows := []domain.CampaignPerformance{
		perf("c-newer", newer, 100),
		perf("c-top", older, 500),
		perf("c-older", older, 100),
	}
	commission.SortCampaignsByNetRevenue(rows)

	assert.Equal(t, "c-top", rows[0].Campaign.CampaignID)
	// Equal net revenue: earlier creation wins.
	assert.Equal(t, "c-older", rows[1].Campaign.CampaignID)
	assert.Equal(t, "c-newer", rows[2].Campaign.CampaignID)
}
