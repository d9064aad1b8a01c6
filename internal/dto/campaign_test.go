package dto_test

import (
	"testing"
	"time"

	"github.com/aqilnajmi/sales_commission_tracker/internal/core/domain"
	"github.com/aqilnajmi/sales_commission_tracker/internal/dto"
	"github.com/stretchr/testify/assert"
)

func TestToCampaignResponse_DerivedFields(t *testing.T) {
	start := time.Now().Add(-24 * time.Hour)

	t.Run("running campaign reports active with end-of-day badge date", func(t *testing.T) {
		c := &domain.Campaign{
			CampaignID:    "c1",
			SalesPersonID: "u1",
			Title:         "Raya Promo",
			Status:        domain.CampaignActive,
			StartDate:     start,
		}

		resp := dto.ToCampaignResponse(c)

		assert.True(t, resp.IsActive)
		assert.Equal(t, c.EffectiveEndDate(), resp.EffectiveEndDate)
	})

	t.Run("expired window reports inactive", func(t *testing.T) {
		end := time.Now().Add(-time.Hour)
		c := &domain.Campaign{
			CampaignID: "c2",
			Status:     domain.CampaignActive,
			StartDate:  start,
			EndDate:    &end,
		}

		resp := dto.ToCampaignResponse(c)

		assert.False(t, resp.IsActive)
		assert.Equal(t, c.EffectiveEndDate(), resp.EffectiveEndDate)
	})
}
