package payroll

import (
	"github.com/shopspring/decimal"

	"brecho/internal/domain/tax"
)

func (in VacationInput) days() int {
	if in.Days == nil {
		return DefaultVacationDays
	}
	return *in.Days
}

func (in VacationInput) Validate() error {
	var check tax.Check
	check.Positive("salario_bruto", in.GrossSalary)
	check.IntBetween("dias_ferias", in.days(), MinVacationDays, DefaultVacationDays)
	check.IntNonNegative("dependentes", in.Dependents)
	return check.Err()
}

// CashableDays is the number of vacation days that may be sold: a third of
// the period, rounded down.
func CashableDays(days int) int {
	return days / 3
}

// Vacation computes vacation pay plus the constitutional third. Sold days and
// their third are added to the gross but stay out of the INSS/IRRF base.
func (c *Calculator) Vacation(in VacationInput) (VacationResult, error) {
	if err := in.Validate(); err != nil {
		return VacationResult{}, err
	}
	days := in.days()

	daily := in.GrossSalary.Div(vacationDays)
	pay := daily.Mul(decimal.NewFromInt(int64(days)))
	bonus := pay.Div(three)

	cashOut, cashOutBonus := decimal.Zero, decimal.Zero
	if in.CashOut {
		cashOut = daily.Mul(decimal.NewFromInt(int64(CashableDays(days))))
		cashOutBonus = cashOut.Div(three)
	}
	gross := pay.Add(bonus).Add(cashOut).Add(cashOutBonus)

	inss, _, irrf := c.withhold(pay.Add(bonus), in.Dependents)
	deductions := inss.Amount.Add(irrf.Amount)

	return VacationResult{
		GrossSalary: in.GrossSalary,
		Days:        days,
		VacationPay: tax.Round2(pay),
		Bonus:       tax.Round2(bonus),
		CashOut: CashOutLine{
			Sold:   in.CashOut,
			Amount: tax.Round2(cashOut),
			Bonus:  tax.Round2(cashOutBonus),
		},
		TotalGross:      tax.Round2(gross),
		INSS:            inss.Amount,
		IRRF:            irrf.Amount,
		TotalDeductions: tax.Round2(deductions),
		Net:             tax.Round2(gross.Sub(deductions)),
	}, nil
}
