package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CampaignPlatform is the social network the campaign runs on.
type CampaignPlatform string

const (
	PlatformFacebook  CampaignPlatform = "facebook"
	PlatformInstagram CampaignPlatform = "instagram"
)

// CampaignType is the kind of content the campaign promotes.
type CampaignType string

const (
	TypePost     CampaignType = "post"
	TypeEvent    CampaignType = "event"
	TypeLivePost CampaignType = "live_post"
)

// CampaignStatus is the lifecycle state of a campaign.
type CampaignStatus string

const (
	CampaignActive  CampaignStatus = "active"
	CampaignDeleted CampaignStatus = "deleted"
)

// Campaign represents a marketing campaign bound to one sales person.
// SalesPersonID is immutable once set.
type Campaign struct {
	CampaignID    string           `json:"campaignID"` // Primary Key (UUID)
	SalesPersonID string           `json:"salesPersonID"`
	Title         string           `json:"title"`
	Platform      CampaignPlatform `json:"platform"`
	Type          CampaignType     `json:"type"`
	URL           string           `json:"url"`
	ImageURL      string           `json:"imageUrl,omitempty"`
	Status        CampaignStatus   `json:"status"`
	StartDate     time.Time        `json:"startDate"`
	EndDate       *time.Time       `json:"endDate,omitempty"` // nil = open-ended
	TargetROI     *decimal.Decimal `json:"targetROI,omitempty"`
	AuditFields
}

// IsActiveAt reports whether the campaign accepts orders at the given instant:
// status must be active and the instant must fall within the date window.
// A nil EndDate means no upper bound.
func (c *Campaign) IsActiveAt(now time.Time) bool {
	if c.Status != CampaignActive {
		return false
	}
	if now.Before(c.StartDate) {
		return false
	}
	if c.EndDate != nil && now.After(*c.EndDate) {
		return false
	}
	return true
}

// EffectiveEndDate returns the end date used for display badges: EndDate when
// set, otherwise StartDate, extended through the end of that day. It does not
// affect IsActiveAt, where a nil EndDate stays open-ended.
func (c *Campaign) EffectiveEndDate() time.Time {
	end := c.StartDate
	if c.EndDate != nil {
		end = *c.EndDate
	}
	y, m, d := end.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), end.Location())
}
