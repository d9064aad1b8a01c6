package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is a single line item on an order. TotalPrice is always
// Quantity × BasePrice; the commission engine recomputes it rather than
// trusting caller input.
type OrderItem struct {
	Name       string          `json:"name"`
	Quantity   int64           `json:"quantity"` // >= 1
	BasePrice  decimal.Decimal `json:"basePrice"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// Commission is the snapshot frozen onto an order at creation time.
// RateSnapshot never changes after creation, even when the owning sales
// person's current rate does. Amount is recomputed from the items on every
// edit, always against RateSnapshot.
type Commission struct {
	Amount       decimal.Decimal `json:"amount"`
	RateSnapshot decimal.Decimal `json:"rateSnapshot"`
}

// Order represents a line-item purchase attributed to a campaign.
// CampaignID is immutable once set; Items is non-empty.
type Order struct {
	OrderID    string      `json:"orderID"` // Primary Key (UUID)
	CampaignID string      `json:"campaignID"`
	Items      []OrderItem `json:"items"`
	Commission Commission  `json:"commission"`
	DeletedAt  *time.Time  `json:"deletedAt,omitempty"` // nil = live
	AuditFields
}

// OrderTotal returns the sum of the item totals.
func (o *Order) OrderTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.TotalPrice)
	}
	return total
}
