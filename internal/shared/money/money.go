// Package money converts between stored minor units and decimal amounts.
package money

import (
	"errors"
	"math"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

var (
	ErrNegative     = errors.New("amount must not be negative")
	ErrTooPrecise   = errors.New("amount must have at most 2 decimal places")
	ErrTooLarge     = errors.New("amount is too large")
	hundred         = decimal.NewFromInt(100)
	maxMinor        = decimal.NewFromInt(math.MaxInt64)
	DefaultCurrency = gomoney.USD
)

// FromMinor converts cents to a decimal amount.
func FromMinor(minor int64) decimal.Decimal {
	return decimal.New(minor, -2)
}

// ToMinor converts a decimal amount to cents.
func ToMinor(d decimal.Decimal) (int64, error) {
	if d.IsNegative() {
		return 0, ErrNegative
	}
	scaled := d.Mul(hundred)
	if !scaled.Equal(scaled.Truncate(0)) {
		return 0, ErrTooPrecise
	}
	// IntPart wraps silently outside the int64 range.
	if scaled.GreaterThan(maxMinor) {
		return 0, ErrTooLarge
	}
	return scaled.IntPart(), nil
}

// MonthlyFromAnnual splits an annual amount into a monthly one, rounded half
// away from zero to cents.
func MonthlyFromAnnual(annualMinor int64) decimal.Decimal {
	return FromMinor(annualMinor).Div(decimal.NewFromInt(12)).Round(2)
}

// Format renders cents for humans, e.g. "$50,000.00".
func Format(minor int64, currency string) string {
	if currency == "" {
		currency = DefaultCurrency
	}
	return gomoney.New(minor, currency).Display()
}
