package commission

import (
	"fmt"

	"github.com/aqilnajmi/sales_commission_tracker/internal/apperrors"
	"github.com/aqilnajmi/sales_commission_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Commission amounts are currency values: computed once per mutation and
// rounded to two decimal places at that point, never re-rounded downstream.
const currencyScale = 2

var oneHundred = decimal.NewFromInt(100)

// NormalizeItems validates order line items and recomputes each TotalPrice as
// Quantity × BasePrice. Caller-supplied totals are not trusted.
func NormalizeItems(items []domain.OrderItem) ([]domain.OrderItem, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("order must have at least one item: %w", apperrors.ErrValidation)
	}
	normalized := make([]domain.OrderItem, len(items))
	for i, item := range items {
		if item.Name == "" {
			return nil, fmt.Errorf("item %d: name is required: %w", i, apperrors.ErrValidation)
		}
		if item.Quantity < 1 {
			return nil, fmt.Errorf("item %q: quantity must be at least 1: %w", item.Name, apperrors.ErrValidation)
		}
		if item.BasePrice.IsNegative() {
			return nil, fmt.Errorf("item %q: base price cannot be negative: %w", item.Name, apperrors.ErrValidation)
		}
		normalized[i] = domain.OrderItem{
			Name:       item.Name,
			Quantity:   item.Quantity,
			BasePrice:  item.BasePrice,
			TotalPrice: item.BasePrice.Mul(decimal.NewFromInt(item.Quantity)),
		}
	}
	return normalized, nil
}

// ComputeOrderTotal sums Quantity × BasePrice across the items.
func ComputeOrderTotal(items []domain.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.BasePrice.Mul(decimal.NewFromInt(item.Quantity)))
	}
	return total
}

// ValidateRate checks a commission rate is a percentage in [0,100].
func ValidateRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(oneHundred) {
		return fmt.Errorf("rate %s outside [0,100]: %w", rate.String(), apperrors.ErrInvalidRate)
	}
	return nil
}

// ValidateRateForRole enforces the role invariant on top of ValidateRate:
// admins always carry a zero rate.
func ValidateRateForRole(role domain.UserRole, rate decimal.Decimal) error {
	if err := ValidateRate(rate); err != nil {
		return err
	}
	if role == domain.RoleAdmin && !rate.IsZero() {
		return fmt.Errorf("admin accounts cannot hold a commission rate: %w", apperrors.ErrInvalidRate)
	}
	return nil
}

// NewSnapshot computes the commission frozen onto an order at creation time,
// from the owning sales person's current rate. This is the only place a
// RateSnapshot is ever produced.
func NewSnapshot(orderTotal decimal.Decimal, currentRate decimal.Decimal) (domain.Commission, error) {
	if err := ValidateRate(currentRate); err != nil {
		return domain.Commission{}, err
	}
	return domain.Commission{
		Amount:       orderTotal.Mul(currentRate).Div(oneHundred).Round(currencyScale),
		RateSnapshot: currentRate,
	}, nil
}

// RecomputeWithSnapshot recalculates a commission amount after an item edit,
// carrying the existing snapshot rate through unchanged. The signature takes
// no rate parameter: substituting a different rate on edit is not expressible
// through this API.
func RecomputeWithSnapshot(items []domain.OrderItem, existing domain.Commission) domain.Commission {
	return domain.Commission{
		Amount:       ComputeOrderTotal(items).Mul(existing.RateSnapshot).Div(oneHundred).Round(currencyScale),
		RateSnapshot: existing.RateSnapshot,
	}
}
