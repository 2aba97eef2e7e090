// Package tax holds the Brazilian bracket tables and the two withholding
// strategies (progressive INSS slices and single-bracket IRRF lookup) shared
// by every payroll calculator, plus the small-business regime simulator.
package tax

import "github.com/shopspring/decimal"

func init() {
	// Monetary results are reported as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

var (
	hundred = decimal.NewFromInt(100)
	half    = decimal.RequireFromString("0.5")
)

// Round2 rounds to cents half-up toward positive infinity, so -0.005 becomes
// 0.00 and 0.005 becomes 0.01. Every reported amount goes through here.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Shift(2).Add(half).Floor().Shift(-2)
}

// Percent converts a percentage (7.5) into a rate (0.075).
func Percent(p decimal.Decimal) decimal.Decimal {
	return p.Div(hundred)
}

// AsPercent converts a rate (0.075) into a percentage (7.5).
func AsPercent(rate decimal.Decimal) decimal.Decimal {
	return rate.Mul(hundred)
}

// Money parses a literal amount and panics on malformed input. Only use it
// for constants.
func Money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
