// Package finmath holds small decimal helpers shared by the projection engine.
package finmath

import (
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// Compound returns (1+rate)^years using repeated multiplication so integer
// horizons stay exact.
func Compound(rate decimal.Decimal, years int) decimal.Decimal {
	factor := one
	base := one.Add(rate)
	for i := 0; i < years; i++ {
		factor = factor.Mul(base)
	}
	return factor
}

// Grow applies Compound to an amount.
func Grow(amount, rate decimal.Decimal, years int) decimal.Decimal {
	return amount.Mul(Compound(rate, years))
}

// AnnualPayment returns the level annual payment that retires principal over
// years at rate. A zero rate falls back to straight division.
func AnnualPayment(principal, rate decimal.Decimal, years int) decimal.Decimal {
	if years <= 0 || !principal.IsPositive() {
		return decimal.Zero
	}
	n := decimal.NewFromInt(int64(years))
	if rate.IsZero() {
		return principal.Div(n)
	}
	factor := Compound(rate, years)
	return principal.Mul(rate).Mul(factor).Div(factor.Sub(one))
}

// NonNegative clamps v at zero.
func NonNegative(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}

// Min returns the smaller of a and b.
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// Clamp01 limits a factor to the [0,1] range.
func Clamp01(v decimal.Decimal) decimal.Decimal {
	return Min(Max(v, decimal.Zero), one)
}
