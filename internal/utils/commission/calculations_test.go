package commission_test

import (
	"testing"

	"github.com/aqilnajmi/sales_commission_tracker/internal/apperrors"
	"github.com/aqilnajmi/sales_commission_tracker/internal/core/domain"
	"github.com/aqilnajmi/sales_commission_tracker/internal/utils/commission"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func items(pairs ...[2]int64) []domain.OrderItem {
	out := make([]domain.OrderItem, len(pairs))
	for i, p := range pairs {
		out[i] = domain.OrderItem{
			Name:      "item",
			Quantity:  p[0],
			BasePrice: decimal.NewFromInt(p[1]),
		}
	}
	return out
}

func TestComputeOrderTotal(t *testing.T) {
	// 2×50 + 1×30 = 130
	total := commission.ComputeOrderTotal(items([2]int64{2, 50}, [2]int64{1, 30}))
	assert.True(t, total.Equal(decimal.NewFromInt(130)), "got %s", total)
}

func TestNewSnapshot_AmountCorrectness(t *testing.T) {
	total := commission.ComputeOrderTotal(items([2]int64{2, 50}, [2]int64{1, 30}))
	snap, err := commission.NewSnapshot(total, decimal.NewFromInt(15))
	require.NoError(t, err)

	// (100+30) × 15% = 19.5
	assert.True(t, snap.Amount.Equal(decimal.NewFromFloat(19.5)), "got %s", snap.Amount)
	assert.True(t, snap.RateSnapshot.Equal(decimal.NewFromInt(15)))
}

func TestNewSnapshot_RoundsToCurrencyScale(t *testing.T) {
	// 33.33 × 7.5% = 2.49975 -> 2.50
	snap, err := commission.NewSnapshot(decimal.NewFromFloat(33.33), decimal.NewFromFloat(7.5))
	require.NoError(t, err)
	assert.Equal(t, "2.5", snap.Amount.String())
}

func TestNewSnapshot_RejectsRateOutsideBounds(t *testing.T) {
	_, err := commission.NewSnapshot(decimal.NewFromInt(100), decimal.NewFromInt(101))
	assert.ErrorIs(t, err, apperrors.ErrInvalidRate)

	_, err = commission.NewSnapshot(decimal.NewFromInt(100), decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, apperrors.ErrInvalidRate)

	_, err = commission.NewSnapshot(decimal.NewFromInt(100), decimal.Zero)
	assert.NoError(t, err, "zero rate is a valid snapshot")
}

func TestRecomputeWithSnapshot_KeepsFrozenRate(t *testing.T) {
	snap, err := commission.NewSnapshot(decimal.NewFromInt(100), decimal.NewFromInt(10))
	require.NoError(t, err)

	// The owning sales person's live rate changing to 20% is invisible here:
	// recompute only ever sees the frozen snapshot.
	edited, err := commission.NormalizeItems(items([2]int64{4, 100}))
	require.NoError(t, err)
	recomputed := commission.RecomputeWithSnapshot(edited, snap)

	assert.True(t, recomputed.RateSnapshot.Equal(decimal.NewFromInt(10)))
	assert.True(t, recomputed.Amount.Equal(decimal.NewFromInt(40)), "400 × 10%% = 40, got %s", recomputed.Amount)
}

func TestReplayReproducesStoredAmount(t *testing.T) {
	orderItems, err := commission.NormalizeItems(items([2]int64{3, 19}, [2]int64{2, 7}))
	require.NoError(t, err)
	snap, err := commission.NewSnapshot(commission.ComputeOrderTotal(orderItems), decimal.NewFromFloat(12.5))
	require.NoError(t, err)

	replayed := commission.ComputeOrderTotal(orderItems).
		Mul(snap.RateSnapshot).
		Div(decimal.NewFromInt(100)).
		Round(2)
	assert.True(t, replayed.Equal(snap.Amount), "replay %s != stored %s", replayed, snap.Amount)
}

func TestNormalizeItems(t *testing.T) {
	t.Run("recomputes total price", func(t *testing.T) {
		in := []domain.OrderItem{{
			Name:       "widget",
			Quantity:   3,
			BasePrice:  decimal.NewFromInt(10),
			TotalPrice: decimal.NewFromInt(999), // caller-supplied garbage
		}}
		out, err := commission.NormalizeItems(in)
		require.NoError(t, err)
		assert.True(t, out[0].TotalPrice.Equal(decimal.NewFromInt(30)))
	})

	t.Run("rejects empty items", func(t *testing.T) {
		_, err := commission.NormalizeItems(nil)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := commission.NormalizeItems([]domain.OrderItem{{Name: "x", Quantity: 0, BasePrice: decimal.NewFromInt(1)}})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("rejects negative base price", func(t *testing.T) {
		_, err := commission.NormalizeItems([]domain.OrderItem{{Name: "x", Quantity: 1, BasePrice: decimal.NewFromInt(-1)}})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestValidateRateForRole(t *testing.T) {
	assert.NoError(t, commission.ValidateRateForRole(domain.RoleSalesPerson, decimal.NewFromInt(25)))
	assert.NoError(t, commission.ValidateRateForRole(domain.RoleAdmin, decimal.Zero))
	assert.ErrorIs(t, commission.ValidateRateForRole(domain.RoleAdmin, decimal.NewFromInt(5)), apperrors.ErrInvalidRate)
	assert.ErrorIs(t, commission.ValidateRateForRole(domain.RoleSalesPerson, decimal.NewFromInt(200)), apperrors.ErrInvalidRate)
}
