package utils

import (
	"github.com/shopspring/decimal"
)

// FormatMYR renders an amount as Malaysian Ringgit for display strings.
// Example: 1234.5 returns "RM1234.50".
func FormatMYR(amount decimal.Decimal) string {
	return "RM" + amount.StringFixed(2)
}

// FormatWithPrecision formats an amount with the given precision.
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.Round(int32(precision)).String()
}
