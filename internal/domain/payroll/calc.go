// Package payroll computes monthly pay, the two 13th-salary parcels and
// vacation pay on top of the withholding strategies in package tax.
//
// Amounts are carried unrounded between steps except where the withheld taxes
// are concerned: INSS and IRRF are rounded to cents as soon as they are
// computed and the rounded values feed the next stage. Every reported field
// is rounded on its own.
package payroll

import (
	"github.com/shopspring/decimal"

	"brecho/internal/domain/tax"
)

type Calculator struct {
	tables *tax.Tables
}

func NewCalculator(tables *tax.Tables) *Calculator {
	if tables == nil {
		tables = tax.DefaultTables()
	}
	return &Calculator{tables: tables}
}

func (c *Calculator) Tables() *tax.Tables {
	return c.tables
}

// withhold runs INSS on taxable and IRRF on what is left after INSS and the
// dependent deduction, in that order.
func (c *Calculator) withhold(taxable decimal.Decimal, dependents int) (tax.INSSResult, decimal.Decimal, tax.IRRFResult) {
	inss := c.tables.INSS.Withhold(taxable)
	base := c.tables.IRRF.Base(taxable, inss.Amount, dependents)
	return inss, base, c.tables.IRRF.Withhold(base)
}

func (in MonthlyInput) premium() decimal.Decimal {
	if in.OvertimePremium == nil {
		return DefaultOvertimePremium
	}
	return *in.OvertimePremium
}

func (in MonthlyInput) Validate() error {
	var check tax.Check
	check.Positive("salario_bruto", in.GrossSalary)
	check.IntNonNegative("dependentes", in.Dependents)
	check.NonNegative("horas_extras", in.OvertimeHours)
	check.Between("percentual_hora_extra", in.premium(), minOvertimePremium, maxOvertimePremium)
	check.NonNegative("adicional_noturno", in.NightHours)
	check.Between("vale_transporte_perc", in.TransportPercent, decimal.Zero, maxTransportPercent)
	check.NonNegative("vale_refeicao", in.MealVoucher)
	check.NonNegative("outros_descontos", in.OtherDeductions)
	check.NonNegative("outros_proventos", in.OtherEarnings)
	return check.Err()
}

// Monthly computes one month of pay. Net pay is not floored: deductions larger
// than earnings yield a negative net.
func (c *Calculator) Monthly(in MonthlyInput) (MonthlyResult, error) {
	if err := in.Validate(); err != nil {
		return MonthlyResult{}, err
	}
	premium := in.premium()

	hourly := in.GrossSalary.Div(monthlyHours)
	overtime := in.OvertimeHours.Mul(hourly).Mul(decimal.NewFromInt(1).Add(tax.Percent(premium)))
	night := in.NightHours.Mul(hourly).Mul(nightPremium)
	earnings := in.GrossSalary.Add(overtime).Add(night).Add(in.OtherEarnings)

	inss, base, irrf := c.withhold(earnings, in.Dependents)

	transport := in.GrossSalary.Mul(tax.Percent(in.TransportPercent))
	deductions := inss.Amount.
		Add(irrf.Amount).
		Add(transport).
		Add(in.MealVoucher).
		Add(in.OtherDeductions)
	net := earnings.Sub(deductions)

	fgts := earnings.Mul(fgtsRate)
	employerINSS := earnings.Mul(employerINSSRate)

	return MonthlyResult{
		GrossSalary: in.GrossSalary,
		Overtime: OvertimeLine{
			Hours:   in.OvertimeHours,
			Premium: premium,
			Amount:  tax.Round2(overtime),
		},
		Night: NightLine{
			Hours:  in.NightHours,
			Amount: tax.Round2(night),
		},
		OtherEarnings:   in.OtherEarnings,
		TotalEarnings:   tax.Round2(earnings),
		INSS:            inss,
		IRRF:            IRRFLine{IRRFResult: irrf, Base: tax.Round2(base)},
		Transport:       TransportLine{Percent: in.TransportPercent, Amount: tax.Round2(transport)},
		MealVoucher:     in.MealVoucher,
		OtherDeductions: in.OtherDeductions,
		TotalDeductions: tax.Round2(deductions),
		NetPay:          tax.Round2(net),
		EmployerCharges: EmployerCharges{
			FGTS:         tax.Round2(fgts),
			EmployerINSS: tax.Round2(employerINSS),
			Total:        tax.Round2(fgts.Add(employerINSS)),
		},
	}, nil
}
