package tax

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// INSSBracket is one progressive slice: income up to Ceiling pays Rate on the
// part above the previous ceiling.
type INSSBracket struct {
	Ceiling decimal.Decimal `yaml:"ceiling" json:"teto"`
	Rate    decimal.Decimal `yaml:"rate" json:"aliquota"`
}

type INSSTable struct {
	Brackets []INSSBracket   `yaml:"brackets" json:"faixas"`
	Cap      decimal.Decimal `yaml:"cap" json:"teto_contribuicao"`
}

// IRRFBracket applies Rate to the whole base and subtracts Deduction. Open
// marks the last bracket, which has no ceiling.
type IRRFBracket struct {
	Ceiling   decimal.Decimal `yaml:"ceiling" json:"teto,omitempty"`
	Rate      decimal.Decimal `yaml:"rate" json:"aliquota"`
	Deduction decimal.Decimal `yaml:"deduction" json:"deducao"`
	Label     string          `yaml:"label" json:"faixa"`
	Open      bool            `yaml:"open" json:"sem_teto,omitempty"`
}

func (b IRRFBracket) covers(base decimal.Decimal) bool {
	return b.Open || base.LessThanOrEqual(b.Ceiling)
}

type IRRFTable struct {
	Brackets           []IRRFBracket   `yaml:"brackets" json:"faixas"`
	DependentDeduction decimal.Decimal `yaml:"dependent_deduction" json:"deducao_dependente"`
}

type MEITable struct {
	AnnualLimit decimal.Decimal              `yaml:"annual_limit" json:"limite_anual"`
	DAS         map[Activity]decimal.Decimal `yaml:"das" json:"das"`
}

// SimplesBracket rates and deductions follow the published annex: Rate is a
// percentage and Deduction is an annual amount.
type SimplesBracket struct {
	Limit     decimal.Decimal `yaml:"limit" json:"limite"`
	Rate      decimal.Decimal `yaml:"rate" json:"aliquota"`
	Deduction decimal.Decimal `yaml:"deduction" json:"deducao"`
}

// PresumedProfitRates are all percentages.
type PresumedProfitRates struct {
	Presumption        decimal.Decimal `yaml:"presumption" json:"presuncao"`
	IRPJ               decimal.Decimal `yaml:"irpj" json:"irpj"`
	CSLL               decimal.Decimal `yaml:"csll" json:"csll"`
	PIS                decimal.Decimal `yaml:"pis" json:"pis"`
	COFINS             decimal.Decimal `yaml:"cofins" json:"cofins"`
	SurchargeThreshold decimal.Decimal `yaml:"surcharge_threshold" json:"limite_adicional"`
	SurchargeRate      decimal.Decimal `yaml:"surcharge_rate" json:"adicional_irpj"`
}

// Tables bundles every rate schedule for one reference year.
type Tables struct {
	Year           int                              `yaml:"year" json:"ano"`
	INSS           INSSTable                        `yaml:"inss" json:"inss"`
	IRRF           IRRFTable                        `yaml:"irrf" json:"irrf"`
	MEI            MEITable                         `yaml:"mei" json:"mei"`
	Simples        map[Activity][]SimplesBracket    `yaml:"simples" json:"simples"`
	PresumedProfit map[Activity]PresumedProfitRates `yaml:"presumed_profit" json:"lucro_presumido"`
}

const ExemptLabel = "Isento"

// DefaultTables returns the 2025 schedules.
func DefaultTables() *Tables {
	commerceAnnex := []SimplesBracket{
		{Limit: Money("180000"), Rate: Money("4"), Deduction: Money("0")},
		{Limit: Money("360000"), Rate: Money("7.3"), Deduction: Money("5940")},
		{Limit: Money("720000"), Rate: Money("9.5"), Deduction: Money("13860")},
		{Limit: Money("1800000"), Rate: Money("10.7"), Deduction: Money("22500")},
		{Limit: Money("3600000"), Rate: Money("14.3"), Deduction: Money("87300")},
		{Limit: Money("4800000"), Rate: Money("19"), Deduction: Money("378000")},
	}
	servicesAnnex := []SimplesBracket{
		{Limit: Money("180000"), Rate: Money("6"), Deduction: Money("0")},
		{Limit: Money("360000"), Rate: Money("11.2"), Deduction: Money("9360")},
		{Limit: Money("720000"), Rate: Money("13.5"), Deduction: Money("17640")},
		{Limit: Money("1800000"), Rate: Money("16"), Deduction: Money("35640")},
		{Limit: Money("3600000"), Rate: Money("21"), Deduction: Money("125640")},
		{Limit: Money("4800000"), Rate: Money("33"), Deduction: Money("648000")},
	}
	commerceProfit := PresumedProfitRates{
		Presumption:        Money("8"),
		IRPJ:               Money("15"),
		CSLL:               Money("9"),
		PIS:                Money("0.65"),
		COFINS:             Money("3"),
		SurchargeThreshold: Money("20000"),
		SurchargeRate:      Money("10"),
	}
	servicesProfit := commerceProfit
	servicesProfit.Presumption = Money("32")

	return &Tables{
		Year: 2025,
		INSS: INSSTable{
			Brackets: []INSSBracket{
				{Ceiling: Money("1518.00"), Rate: Money("0.075")},
				{Ceiling: Money("2793.88"), Rate: Money("0.09")},
				{Ceiling: Money("4190.83"), Rate: Money("0.12")},
				{Ceiling: Money("8157.41"), Rate: Money("0.14")},
			},
			Cap: Money("951.63"),
		},
		IRRF: IRRFTable{
			Brackets: []IRRFBracket{
				{Ceiling: Money("2259.20"), Rate: decimal.Zero, Deduction: decimal.Zero, Label: ExemptLabel},
				{Ceiling: Money("2826.65"), Rate: Money("0.075"), Deduction: Money("169.44"), Label: "7,5%"},
				{Ceiling: Money("3751.05"), Rate: Money("0.15"), Deduction: Money("381.44"), Label: "15%"},
				{Ceiling: Money("4664.68"), Rate: Money("0.225"), Deduction: Money("662.77"), Label: "22,5%"},
				{Rate: Money("0.275"), Deduction: Money("896.00"), Label: "27,5%", Open: true},
			},
			DependentDeduction: Money("189.59"),
		},
		MEI: MEITable{
			AnnualLimit: Money("81000"),
			DAS: map[Activity]decimal.Decimal{
				Commerce: Money("71.60"),
				Services: Money("75.60"),
				Industry: Money("71.60"),
			},
		},
		Simples: map[Activity][]SimplesBracket{
			Commerce: commerceAnnex,
			Services: servicesAnnex,
			Industry: commerceAnnex,
		},
		PresumedProfit: map[Activity]PresumedProfitRates{
			Commerce: commerceProfit,
			Services: servicesProfit,
			Industry: commerceProfit,
		},
	}
}

// Validate checks the structural rules the calculators rely on.
func (t *Tables) Validate() error {
	if len(t.INSS.Brackets) == 0 {
		return fmt.Errorf("%w: inss has no brackets", ErrInvalidTables)
	}
	if !t.INSS.Cap.IsPositive() {
		return fmt.Errorf("%w: inss cap must be positive", ErrInvalidTables)
	}
	previous := decimal.Zero
	for i, b := range t.INSS.Brackets {
		if !b.Ceiling.GreaterThan(previous) {
			return fmt.Errorf("%w: inss bracket %d is not ascending", ErrInvalidTables, i)
		}
		previous = b.Ceiling
	}

	if len(t.IRRF.Brackets) == 0 {
		return fmt.Errorf("%w: irrf has no brackets", ErrInvalidTables)
	}
	previous = decimal.Zero
	for i, b := range t.IRRF.Brackets {
		last := i == len(t.IRRF.Brackets)-1
		if b.Open != last {
			return fmt.Errorf("%w: only the last irrf bracket may be open", ErrInvalidTables)
		}
		if !b.Open && !b.Ceiling.GreaterThan(previous) {
			return fmt.Errorf("%w: irrf bracket %d is not ascending", ErrInvalidTables, i)
		}
		previous = b.Ceiling
	}
	if t.IRRF.DependentDeduction.IsNegative() {
		return fmt.Errorf("%w: dependent deduction must not be negative", ErrInvalidTables)
	}

	for _, activity := range Activities {
		if _, ok := t.MEI.DAS[activity]; !ok {
			return fmt.Errorf("%w: mei das missing for %s", ErrInvalidTables, activity)
		}
		brackets := t.Simples[activity]
		if len(brackets) == 0 {
			return fmt.Errorf("%w: simples brackets missing for %s", ErrInvalidTables, activity)
		}
		previous = decimal.Zero
		for i, b := range brackets {
			if !b.Limit.GreaterThan(previous) {
				return fmt.Errorf("%w: simples %s bracket %d is not ascending", ErrInvalidTables, activity, i)
			}
			previous = b.Limit
		}
		rates, ok := t.PresumedProfit[activity]
		if !ok {
			return fmt.Errorf("%w: presumed profit rates missing for %s", ErrInvalidTables, activity)
		}
		if err := rates.validate(); err != nil {
			return fmt.Errorf("%w: presumed profit %s %s", ErrInvalidTables, activity, err)
		}
	}
	return nil
}

// validate requires a positive presumption and surcharge threshold and keeps
// every rate within 0..100 percent.
func (r PresumedProfitRates) validate() error {
	if !r.Presumption.IsPositive() || r.Presumption.GreaterThan(hundred) {
		return errors.New("presumption must be greater than 0 and at most 100")
	}
	if !r.SurchargeThreshold.IsPositive() {
		return errors.New("surcharge threshold must be greater than 0")
	}
	rates := []struct {
		name string
		v    decimal.Decimal
	}{
		{"irpj", r.IRPJ},
		{"csll", r.CSLL},
		{"pis", r.PIS},
		{"cofins", r.COFINS},
		{"surcharge rate", r.SurchargeRate},
	}
	for _, rate := range rates {
		if rate.v.IsNegative() || rate.v.GreaterThan(hundred) {
			return fmt.Errorf("%s must be between 0 and 100", rate.name)
		}
	}
	return nil
}
