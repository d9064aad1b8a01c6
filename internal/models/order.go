package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// OrderItemRecord is one element of the items jsonb column.
type OrderItemRecord struct {
	Name       string          `json:"name"`
	Quantity   int64           `json:"quantity"`
	BasePrice  decimal.Decimal `json:"basePrice"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// Order represents an order row. campaign_id is written once at insert;
// commission_rate_snapshot is written once at insert and never updated.
// order_total duplicates the item-total sum so aggregation queries can SUM a
// plain numeric column instead of unpacking the items jsonb.
type Order struct {
	OrderID                string          `db:"order_id"`
	CampaignID             string          `db:"campaign_id"`
	Items                  []byte          `db:"items"` // jsonb []OrderItemRecord
	OrderTotal             decimal.Decimal `db:"order_total"`
	CommissionAmount       decimal.Decimal `db:"commission_amount"`
	CommissionRateSnapshot decimal.Decimal `db:"commission_rate_snapshot"`
	DeletedAt              sql.NullTime    `db:"deleted_at"`
	AuditFields
}
