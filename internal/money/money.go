// Package money formats cent amounts for display.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultSymbol is the currency symbol appended by Format.
const DefaultSymbol = "€"

// Format renders cents as euros with a decimal comma, e.g. "3382,00 €".
func Format(cents int64) string {
	return FormatWith(cents, DefaultSymbol)
}

// FormatWith is like Format with a custom currency symbol. An empty symbol
// leaves the bare number.
func FormatWith(cents int64, symbol string) string {
	s := strings.Replace(Decimal(cents).StringFixed(2), ".", ",", 1)
	if symbol == "" {
		return s
	}
	return s + " " + symbol
}

// Decimal converts cents to a decimal euro amount.
func Decimal(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// Cents converts a decimal euro amount to cents, rounding half away from zero.
func Cents(d decimal.Decimal) int64 {
	return d.Shift(2).Round(0).IntPart()
}
