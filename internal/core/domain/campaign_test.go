package domain_test

import (
	"testing"
	"time"

	"github.com/aqilnajmi/sales_commission_tracker/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestCampaignIsActiveAt(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	start := now.Add(-48 * time.Hour)
	pastEnd := now.Add(-24 * time.Hour)
	futureEnd := now.Add(24 * time.Hour)

	tests := []struct {
		name     string
		campaign domain.Campaign
		want     bool
	}{
		{
			name:     "active within open-ended window",
			campaign: domain.Campaign{Status: domain.CampaignActive, StartDate: start},
			want:     true,
		},
		{
			name:     "active before end date",
			campaign: domain.Campaign{Status: domain.CampaignActive, StartDate: start, EndDate: &futureEnd},
			want:     true,
		},
		{
			name:     "deleted campaign never active",
			campaign: domain.Campaign{Status: domain.CampaignDeleted, StartDate: start},
			want:     false,
		},
		{
			name:     "not yet started",
			campaign: domain.Campaign{Status: domain.CampaignActive, StartDate: now.Add(time.Hour)},
			want:     false,
		},
		{
			name:     "past end date",
			campaign: domain.Campaign{Status: domain.CampaignActive, StartDate: start, EndDate: &pastEnd},
			want:     false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.campaign.IsActiveAt(now))
		})
	}
}

func TestCampaignEffectiveEndDate(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

	t.Run("falls back to start date when open-ended", func(t *testing.T) {
		c := domain.Campaign{StartDate: start}
		got := c.EffectiveEndDate()
		assert.Equal(t, time.Date(2026, 3, 10, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC), got)
	})

	t.Run("extends a set end date through end of day", func(t *testing.T) {
		end := time.Date(2026, 3, 20, 8, 0, 0, 0, time.UTC)
		c := domain.Campaign{StartDate: start, EndDate: &end}
		got := c.EffectiveEndDate()
		assert.Equal(t, time.Date(2026, 3, 20, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC), got)
	})
}
