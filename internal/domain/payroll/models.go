package payroll

import (
	"github.com/shopspring/decimal"

	"brecho/internal/domain/tax"
)

// MonthlyInput is the payroll input bundle. Nil pointers take the defaults.
type MonthlyInput struct {
	GrossSalary      decimal.Decimal  `json:"salario_bruto"`
	Dependents       int              `json:"dependentes"`
	OvertimeHours    decimal.Decimal  `json:"horas_extras"`
	OvertimePremium  *decimal.Decimal `json:"percentual_hora_extra,omitempty"`
	NightHours       decimal.Decimal  `json:"adicional_noturno"`
	TransportPercent decimal.Decimal  `json:"vale_transporte_perc"`
	MealVoucher      decimal.Decimal  `json:"vale_refeicao"`
	OtherDeductions  decimal.Decimal  `json:"outros_descontos"`
	OtherEarnings    decimal.Decimal  `json:"outros_proventos"`
}

type OvertimeLine struct {
	Hours   decimal.Decimal `json:"quantidade"`
	Premium decimal.Decimal `json:"percentual"`
	Amount  decimal.Decimal `json:"valor"`
}

type NightLine struct {
	Hours  decimal.Decimal `json:"horas"`
	Amount decimal.Decimal `json:"valor"`
}

type IRRFLine struct {
	tax.IRRFResult
	Base decimal.Decimal `json:"base_calculo"`
}

type TransportLine struct {
	Percent decimal.Decimal `json:"percentual"`
	Amount  decimal.Decimal `json:"valor"`
}

// EmployerCharges are reported for cost transparency and never reduce net pay.
type EmployerCharges struct {
	FGTS         decimal.Decimal `json:"fgts"`
	EmployerINSS decimal.Decimal `json:"inss_patronal"`
	Total        decimal.Decimal `json:"total"`
}

type MonthlyResult struct {
	GrossSalary     decimal.Decimal `json:"salario_bruto"`
	Overtime        OvertimeLine    `json:"horas_extras"`
	Night           NightLine       `json:"adicional_noturno"`
	OtherEarnings   decimal.Decimal `json:"outros_proventos"`
	TotalEarnings   decimal.Decimal `json:"total_proventos"`
	INSS            tax.INSSResult  `json:"inss"`
	IRRF            IRRFLine        `json:"irrf"`
	Transport       TransportLine   `json:"vale_transporte"`
	MealVoucher     decimal.Decimal `json:"vale_refeicao"`
	OtherDeductions decimal.Decimal `json:"outros_descontos"`
	TotalDeductions decimal.Decimal `json:"total_descontos"`
	NetPay          decimal.Decimal `json:"salario_liquido"`
	EmployerCharges EmployerCharges `json:"encargos"`
}

type ThirteenthInput struct {
	GrossSalary  decimal.Decimal `json:"salario_bruto"`
	MonthsWorked int             `json:"meses_trabalhados"`
	Parcel       string          `json:"parcela"`
	Dependents   int             `json:"dependentes"`
}

// ThirteenthResult carries either parcel. The first parcel fills FirstParcel;
// the second fills FirstParcelPaid, SecondParcelGross and TotalDeductions.
type ThirteenthResult struct {
	Kind              string           `json:"tipo"`
	GrossSalary       decimal.Decimal  `json:"salario_bruto"`
	MonthsWorked      int              `json:"meses_trabalhados"`
	Proportional      decimal.Decimal  `json:"valor_proporcional"`
	FirstParcel       *decimal.Decimal `json:"valor_primeira_parcela,omitempty"`
	FirstParcelPaid   *decimal.Decimal `json:"primeira_parcela_paga,omitempty"`
	SecondParcelGross *decimal.Decimal `json:"valor_bruto_segunda,omitempty"`
	INSS              decimal.Decimal  `json:"inss"`
	IRRF              decimal.Decimal  `json:"irrf"`
	TotalDeductions   *decimal.Decimal `json:"total_descontos,omitempty"`
	Net               decimal.Decimal  `json:"valor_liquido"`
}

type VacationInput struct {
	GrossSalary decimal.Decimal `json:"salario_bruto"`
	Days        *int            `json:"dias_ferias,omitempty"`
	CashOut     bool            `json:"abono_pecuniario"`
	Dependents  int             `json:"dependentes"`
}

type CashOutLine struct {
	Sold   bool            `json:"vendido"`
	Amount decimal.Decimal `json:"valor"`
	Bonus  decimal.Decimal `json:"terco"`
}

type VacationResult struct {
	GrossSalary     decimal.Decimal `json:"salario_bruto"`
	Days            int             `json:"dias_ferias"`
	VacationPay     decimal.Decimal `json:"valor_ferias"`
	Bonus           decimal.Decimal `json:"terco_constitucional"`
	CashOut         CashOutLine     `json:"abono_pecuniario"`
	TotalGross      decimal.Decimal `json:"total_bruto"`
	INSS            decimal.Decimal `json:"inss"`
	IRRF            decimal.Decimal `json:"irrf"`
	TotalDeductions decimal.Decimal `json:"total_descontos"`
	Net             decimal.Decimal `json:"valor_liquido"`
}
