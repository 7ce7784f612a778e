package output

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency used for every rendered amount.
const Currency = money.USD

var decimalHundred = decimal.NewFromInt(100)

// FormatCurrency formats a decimal as USD with thousands separators, rounded
// to cents.
func FormatCurrency(amount decimal.Decimal) string {
	cur := money.GetCurrency(Currency)
	cents := amount.Shift(int32(cur.Fraction)).Round(0)
	return money.New(cents.IntPart(), Currency).Display()
}

// FormatPercentage formats a fraction as a percentage with 2 decimals.
func FormatPercentage(fraction decimal.Decimal) string {
	return fraction.Mul(decimalHundred).StringFixed(2) + "%"
}
