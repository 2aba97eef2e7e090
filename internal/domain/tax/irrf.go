package tax

import "github.com/shopspring/decimal"

type IRRFResult struct {
	Amount  decimal.Decimal `json:"valor"`
	Rate    decimal.Decimal `json:"aliquota"`
	Bracket string          `json:"faixa"`
}

// Base is the income-tax base: taxable income minus the INSS already
// withheld minus the per-dependent deduction. It is not floored at zero.
func (t IRRFTable) Base(taxable, inss decimal.Decimal, dependents int) decimal.Decimal {
	return taxable.Sub(inss).Sub(t.DependentDeduction.Mul(decimal.NewFromInt(int64(dependents))))
}

// Withhold finds the first bracket covering base and applies its rate to the
// whole base minus the bracket's fixed deduction.
func (t IRRFTable) Withhold(base decimal.Decimal) IRRFResult {
	for _, b := range t.Brackets {
		if !b.covers(base) {
			continue
		}
		amount := decimal.Max(decimal.Zero, base.Mul(b.Rate).Sub(b.Deduction))
		return IRRFResult{
			Amount:  Round2(amount),
			Rate:    AsPercent(b.Rate),
			Bracket: b.Label,
		}
	}
	return IRRFResult{Amount: decimal.Zero, Rate: decimal.Zero, Bracket: ExemptLabel}
}
