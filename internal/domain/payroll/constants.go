package payroll

import (
	"github.com/shopspring/decimal"

	"brecho/internal/domain/tax"
)

const (
	ParcelFirst  = "primeira"
	ParcelSecond = "segunda"

	KindFirstParcel  = "primeira_parcela"
	KindSecondParcel = "segunda_parcela"

	DefaultVacationDays = 30
	MinVacationDays     = 10
)

var (
	// CLT monthly hours divisor.
	monthlyHours = decimal.NewFromInt(220)
	vacationDays = decimal.NewFromInt(30)
	monthsInYear = decimal.NewFromInt(12)
	two          = decimal.NewFromInt(2)
	three        = decimal.NewFromInt(3)

	nightPremium     = tax.Money("0.20")
	fgtsRate         = tax.Money("0.08")
	employerINSSRate = tax.Money("0.28")

	DefaultOvertimePremium = decimal.NewFromInt(50)
	minOvertimePremium     = decimal.NewFromInt(50)
	maxOvertimePremium     = decimal.NewFromInt(100)
	maxTransportPercent    = decimal.NewFromInt(6)
)
