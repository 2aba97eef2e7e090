package payroll

import (
	"github.com/shopspring/decimal"

	"brecho/internal/domain/tax"
)

func (in ThirteenthInput) Validate() error {
	var check tax.Check
	check.Positive("salario_bruto", in.GrossSalary)
	check.IntBetween("meses_trabalhados", in.MonthsWorked, 1, 12)
	if in.Parcel != ParcelFirst && in.Parcel != ParcelSecond {
		check.Add("parcela", "must be one of primeira, segunda")
	}
	check.IntNonNegative("dependentes", in.Dependents)
	return check.Err()
}

// ThirteenthSplit returns the unrounded proportional 13th salary and its two
// halves. first+second always equals proportional.
func ThirteenthSplit(salary decimal.Decimal, months int) (proportional, first, second decimal.Decimal) {
	proportional = salary.Div(monthsInYear).Mul(decimal.NewFromInt(int64(months)))
	first = proportional.Div(two)
	second = proportional.Sub(first)
	return proportional, first, second
}

// Thirteenth computes the requested parcel. The first parcel is an untaxed
// advance. The second parcel withholds INSS and IRRF assessed on the whole
// proportional value.
func (c *Calculator) Thirteenth(in ThirteenthInput) (ThirteenthResult, error) {
	if err := in.Validate(); err != nil {
		return ThirteenthResult{}, err
	}
	proportional, first, second := ThirteenthSplit(in.GrossSalary, in.MonthsWorked)

	result := ThirteenthResult{
		GrossSalary:  in.GrossSalary,
		MonthsWorked: in.MonthsWorked,
		Proportional: tax.Round2(proportional),
		INSS:         decimal.Zero,
		IRRF:         decimal.Zero,
	}

	firstRounded := tax.Round2(first)
	if in.Parcel == ParcelFirst {
		result.Kind = KindFirstParcel
		result.FirstParcel = &firstRounded
		result.Net = firstRounded
		return result, nil
	}

	inss, _, irrf := c.withhold(proportional, in.Dependents)
	secondRounded := tax.Round2(second)
	deductions := tax.Round2(inss.Amount.Add(irrf.Amount))

	result.Kind = KindSecondParcel
	result.FirstParcelPaid = &firstRounded
	result.SecondParcelGross = &secondRounded
	result.INSS = inss.Amount
	result.IRRF = irrf.Amount
	result.TotalDeductions = &deductions
	result.Net = tax.Round2(second.Sub(inss.Amount).Sub(irrf.Amount))
	return result, nil
}
