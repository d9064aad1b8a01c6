package mapping

import (
	"github.com/aqilnajmi/sales_commission_tracker/internal/core/domain"
	"github.com/aqilnajmi/sales_commission_tracker/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelCampaign converts a domain Campaign to a model Campaign
func ToModelCampaign(d domain.Campaign) models.Campaign {
	m := models.Campaign{
		CampaignID:    d.CampaignID,
		SalesPersonID: d.SalesPersonID,
		Title:         d.Title,
		Platform:      string(d.Platform),
		Type:          string(d.Type),
		URL:           d.URL,
		Status:        models.CampaignStatus(d.Status),
		StartDate:     d.StartDate,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
	if d.ImageURL != "" {
		m.ImageURL.String = d.ImageURL
		m.ImageURL.Valid = true
	}
	if d.EndDate != nil {
		m.EndDate.Time = *d.EndDate
		m.EndDate.Valid = true
	}
	if d.TargetROI != nil {
		m.TargetROI = decimal.NewNullDecimal(*d.TargetROI)
	}
	return m
}

// ToDomainCampaign converts a model Campaign to a domain Campaign
func ToDomainCampaign(m models.Campaign) domain.Campaign {
	d := domain.Campaign{
		CampaignID:    m.CampaignID,
		SalesPersonID: m.SalesPersonID,
		Title:         m.Title,
		Platform:      domain.CampaignPlatform(m.Platform),
		Type:          domain.CampaignType(m.Type),
		URL:           m.URL,
		Status:        domain.CampaignStatus(m.Status),
		StartDate:     m.StartDate,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
	if m.ImageURL.Valid {
		d.ImageURL = m.ImageURL.String
	}
	if m.EndDate.Valid {
		end := m.EndDate.Time
		d.EndDate = &end
	}
	if m.TargetROI.Valid {
		roi := m.TargetROI.Decimal
		d.TargetROI = &roi
	}
	return d
}

// ToDomainCampaignSlice converts a slice of model Campaigns to domain Campaigns
func ToDomainCampaignSlice(ms []models.Campaign) []domain.Campaign {
	ds := make([]domain.Campaign, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCampaign(m)
	}
	return ds
}
