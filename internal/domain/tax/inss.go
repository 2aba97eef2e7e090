package tax

import "github.com/shopspring/decimal"

type INSSResult struct {
	Amount        decimal.Decimal `json:"valor"`
	EffectiveRate decimal.Decimal `json:"aliquota_efetiva"`
}

// Withhold walks the brackets in ascending order taxing each slice of gross
// at its own rate. The sum is then clamped to Cap regardless of the slices.
func (t INSSTable) Withhold(gross decimal.Decimal) INSSResult {
	total := decimal.Zero
	previous := decimal.Zero
	for _, b := range t.Brackets {
		if gross.LessThanOrEqual(previous) {
			break
		}
		slice := decimal.Min(gross, b.Ceiling).Sub(previous)
		total = total.Add(slice.Mul(b.Rate))
		previous = b.Ceiling
	}
	total = decimal.Min(total, t.Cap)

	effective := decimal.Zero
	if gross.IsPositive() {
		effective = AsPercent(total.Div(gross))
	}
	return INSSResult{Amount: Round2(total), EffectiveRate: Round2(effective)}
}
