package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// CampaignStatus mirrors domain.CampaignStatus at the storage layer.
type CampaignStatus string

const (
	CampaignActive  CampaignStatus = "active"
	CampaignDeleted CampaignStatus = "deleted"
)

// Campaign represents a campaign row. sales_person_id is written once at
// insert and never appears in an UPDATE statement.
type Campaign struct {
	CampaignID    string         `db:"campaign_id"`
	SalesPersonID string         `db:"sales_person_id"`
	Title         string         `db:"title"`
	Platform      string         `db:"platform"`
	Type          string         `db:"type"`
	URL           string         `db:"url"`
	ImageURL      sql.NullString `db:"image_url"`
	Status        CampaignStatus `db:"status"`
	StartDate     time.Time      `db:"start_date"`
	EndDate       sql.NullTime   `db:"end_date"` // NULL = open-ended
	TargetROI     decimal.NullDecimal `db:"target_roi"`
	AuditFields
}
