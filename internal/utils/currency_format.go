package utils

import (
	"github.com/shopspring/decimal"
)

// FormatKSH renders an amount for user-facing text with two decimal places.
// Example: 2500 returns "KSH 2500.00"
func FormatKSH(amount decimal.Decimal) string {
	return "KSH " + amount.StringFixed(2)
}

// FormatWithPrecision formats an amount rounded to the given number of
// decimal places.
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.Round(int32(precision)).String()
}
