package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/aqilnajmi/sales_commission_tracker/internal/core/domain"
	"github.com/aqilnajmi/sales_commission_tracker/internal/models"
)

// ToModelOrder converts a domain Order to a model Order. Items are serialized
// into the jsonb column; the commission snapshot lands in dedicated columns so
// aggregation queries can sum without unpacking json.
func ToModelOrder(d domain.Order) (models.Order, error) {
	items := make([]models.OrderItemRecord, len(d.Items))
	for i, item := range d.Items {
		items[i] = models.OrderItemRecord{
			Name:       item.Name,
			Quantity:   item.Quantity,
			BasePrice:  item.BasePrice,
			TotalPrice: item.TotalPrice,
		}
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return models.Order{}, fmt.Errorf("failed to marshal order items: %w", err)
	}

	m := models.Order{
		OrderID:                d.OrderID,
		CampaignID:             d.CampaignID,
		Items:                  itemsJSON,
		OrderTotal:             d.OrderTotal(),
		CommissionAmount:       d.Commission.Amount,
		CommissionRateSnapshot: d.Commission.RateSnapshot,
		AuditFields:            ToModelAuditFields(d.AuditFields),
	}
	if d.DeletedAt != nil {
		m.DeletedAt.Time = *d.DeletedAt
		m.DeletedAt.Valid = true
	}
	return m, nil
}

// ToDomainOrder converts a model Order to a domain Order
func ToDomainOrder(m models.Order) (domain.Order, error) {
	var items []models.OrderItemRecord
	if err := json.Unmarshal(m.Items, &items); err != nil {
		return domain.Order{}, fmt.Errorf("failed to unmarshal items for order %s: %w", m.OrderID, err)
	}
	domainItems := make([]domain.OrderItem, len(items))
	for i, item := range items {
		domainItems[i] = domain.OrderItem{
			Name:       item.Name,
			Quantity:   item.Quantity,
			BasePrice:  item.BasePrice,
			TotalPrice: item.TotalPrice,
		}
	}

	d := domain.Order{
		OrderID:    m.OrderID,
		CampaignID: m.CampaignID,
		Items:      domainItems,
		Commission: domain.Commission{
			Amount:       m.CommissionAmount,
			RateSnapshot: m.CommissionRateSnapshot,
		},
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	if m.DeletedAt.Valid {
		deletedAt := m.DeletedAt.Time
		d.DeletedAt = &deletedAt
	}
	return d, nil
}

// ToDomainOrderSlice converts a slice of model Orders to domain Orders
func ToDomainOrderSlice(ms []models.Order) ([]domain.Order, error) {
	ds := make([]domain.Order, len(ms))
	for i, m := range ms {
		d, err := ToDomainOrder(m)
		if err != nil {
			return nil, err
		}
		ds[i] = d
	}
	return ds, nil
}
