package tax

import (
	"sort"

	"github.com/shopspring/decimal"
)

const (
	RegimeMEI            = "MEI"
	RegimeSimples        = "Simples Nacional"
	RegimePresumedProfit = "Lucro Presumido"
)

var monthsPerYear = decimal.NewFromInt(12)

type RegimeInput struct {
	MonthlyRevenue decimal.Decimal `json:"faturamento_mensal"`
	Activity       string          `json:"tipo_atividade"`
}

type MEIOption struct {
	Eligible     bool             `json:"elegivel"`
	MonthlyTax   *decimal.Decimal `json:"imposto_mensal,omitempty"`
	MonthlyLimit decimal.Decimal  `json:"limite_mensal"`
}

type SimplesOption struct {
	Eligible      bool             `json:"elegivel"`
	EffectiveRate *decimal.Decimal `json:"aliquota_efetiva,omitempty"`
	MonthlyTax    *decimal.Decimal `json:"imposto_mensal,omitempty"`
}

type PresumedProfitBreakdown struct {
	PresumedBase  decimal.Decimal `json:"base_presumida"`
	IRPJ          decimal.Decimal `json:"irpj"`
	IRPJSurcharge decimal.Decimal `json:"adicional_irpj"`
	CSLL          decimal.Decimal `json:"csll"`
	PIS           decimal.Decimal `json:"pis"`
	COFINS        decimal.Decimal `json:"cofins"`
}

type PresumedProfitOption struct {
	MonthlyTax decimal.Decimal         `json:"imposto_mensal"`
	Breakdown  PresumedProfitBreakdown `json:"detalhamento"`
}

type RegimeResult struct {
	MonthlyRevenue decimal.Decimal      `json:"faturamento_mensal"`
	AnnualRevenue  decimal.Decimal      `json:"faturamento_anual"`
	Activity       Activity             `json:"tipo_atividade"`
	MEI            MEIOption            `json:"mei"`
	Simples        SimplesOption        `json:"simples"`
	PresumedProfit PresumedProfitOption `json:"lucro_presumido"`
	Recommendation string               `json:"recomendacao"`
}

func (in RegimeInput) validate() (Activity, error) {
	var check Check
	check.Positive("faturamento_mensal", in.MonthlyRevenue)
	activity, ok := ParseActivity(in.Activity)
	if !ok {
		check.Add("tipo_atividade", "must be one of comercio, servicos, industria")
	}
	return activity, check.Err()
}

// SimulateRegimes compares the monthly tax burden of MEI, Simples Nacional and
// Lucro Presumido for the given revenue and recommends the cheapest eligible
// regime.
func (t *Tables) SimulateRegimes(in RegimeInput) (RegimeResult, error) {
	activity, err := in.validate()
	if err != nil {
		return RegimeResult{}, err
	}
	monthly := in.MonthlyRevenue
	annual := monthly.Mul(monthsPerYear)

	result := RegimeResult{
		MonthlyRevenue: monthly,
		AnnualRevenue:  annual,
		Activity:       activity,
		MEI:            t.simulateMEI(activity, annual),
		Simples:        t.simulateSimples(activity, monthly, annual),
		PresumedProfit: t.simulatePresumedProfit(activity, monthly),
	}
	result.Recommendation = recommend(result)
	return result, nil
}

func (t *Tables) simulateMEI(activity Activity, annual decimal.Decimal) MEIOption {
	option := MEIOption{MonthlyLimit: t.MEI.AnnualLimit.Div(monthsPerYear)}
	if annual.LessThanOrEqual(t.MEI.AnnualLimit) {
		das := t.MEI.DAS[activity]
		option.Eligible = true
		option.MonthlyTax = &das
	}
	return option
}

func (t *Tables) simulateSimples(activity Activity, monthly, annual decimal.Decimal) SimplesOption {
	for _, b := range t.Simples[activity] {
		if annual.GreaterThan(b.Limit) {
			continue
		}
		nominal := annual.Mul(Percent(b.Rate))
		effective := AsPercent(nominal.Sub(b.Deduction).Div(annual))
		rate := Round2(effective)
		tax := Round2(monthly.Mul(Percent(effective)))
		return SimplesOption{Eligible: true, EffectiveRate: &rate, MonthlyTax: &tax}
	}
	return SimplesOption{}
}

func (t *Tables) simulatePresumedProfit(activity Activity, monthly decimal.Decimal) PresumedProfitOption {
	rates := t.PresumedProfit[activity]
	base := monthly.Mul(Percent(rates.Presumption))
	irpj := base.Mul(Percent(rates.IRPJ))
	csll := base.Mul(Percent(rates.CSLL))
	pis := monthly.Mul(Percent(rates.PIS))
	cofins := monthly.Mul(Percent(rates.COFINS))
	surcharge := decimal.Max(decimal.Zero, base.Sub(rates.SurchargeThreshold).Mul(Percent(rates.SurchargeRate)))
	total := irpj.Add(surcharge).Add(csll).Add(pis).Add(cofins)

	return PresumedProfitOption{
		MonthlyTax: Round2(total),
		Breakdown: PresumedProfitBreakdown{
			PresumedBase:  Round2(base),
			IRPJ:          Round2(irpj),
			IRPJSurcharge: Round2(surcharge),
			CSLL:          Round2(csll),
			PIS:           Round2(pis),
			COFINS:        Round2(cofins),
		},
	}
}

type candidate struct {
	regime string
	tax    decimal.Decimal
}

// recommend keeps the MEI, Simples, Lucro Presumido order on ties.
func recommend(r RegimeResult) string {
	candidates := make([]candidate, 0, 3)
	if r.MEI.Eligible && r.MEI.MonthlyTax != nil && r.MEI.MonthlyTax.IsPositive() {
		candidates = append(candidates, candidate{RegimeMEI, *r.MEI.MonthlyTax})
	}
	if r.Simples.Eligible && r.Simples.MonthlyTax != nil && r.Simples.MonthlyTax.IsPositive() {
		candidates = append(candidates, candidate{RegimeSimples, *r.Simples.MonthlyTax})
	}
	candidates = append(candidates, candidate{RegimePresumedProfit, r.PresumedProfit.MonthlyTax})

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].tax.LessThan(candidates[j].tax)
	})
	return candidates[0].regime
}
