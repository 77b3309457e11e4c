package finance

import "github.com/shopspring/decimal"

// Amounts are rupiah. IDR has no fractional sub-unit, so monetary values are
// rounded half-up to whole units. Rounding is applied per line as well as on
// the grand total so that summing persisted lines reproduces the stored
// subtotal exactly.
const currencyPlaces = 0

// RoundMoney rounds a monetary amount to the smallest currency unit.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(currencyPlaces)
}

var oneHundred = decimal.NewFromInt(100)

// percentOf returns base * percent / 100, rounded to the currency unit.
func percentOf(base, percent decimal.Decimal) decimal.Decimal {
	return RoundMoney(base.Mul(percent).Div(oneHundred))
}
