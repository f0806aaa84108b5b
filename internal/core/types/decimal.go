// Package types provides money arithmetic shared by the derived-field code.
package types

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors.
type Money = decimal.Decimal

// MoneyScale is the number of fractional digits kept on stored amounts.
const MoneyScale int32 = 4

// NewMoney creates a Money value from a float.
func NewMoney(f float64) Money {
	return decimal.NewFromFloat(f)
}

// Zero returns zero Money value.
func Zero() Money {
	return decimal.Zero
}

// LineTotal multiplies quantity by unit price in decimal space and returns
// the result as float64 for storage and JSON (10 × 3.99 is 39.9, not 39.900000000000006).
func LineTotal(quantity, unitPrice float64) float64 {
	return ToFloat(NewMoney(quantity).Mul(NewMoney(unitPrice)))
}

// Sum adds amounts in decimal space.
func Sum(amounts ...float64) float64 {
	total := Zero()
	for _, a := range amounts {
		total = total.Add(NewMoney(a))
	}
	return ToFloat(total)
}

// ToFloat rounds m to MoneyScale digits and converts it to float64.
func ToFloat(m Money) float64 {
	return m.Round(MoneyScale).InexactFloat64()
}
