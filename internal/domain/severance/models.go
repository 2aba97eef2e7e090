package severance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Type is the termination type. It gates which settlement items are payable.
type Type string

const (
	NoCause         Type = "sem_justa_causa"
	ForCause        Type = "com_justa_causa"
	Resignation     Type = "pedido_demissao"
	MutualAgreement Type = "acordo"
)

var Types = []Type{NoCause, ForCause, Resignation, MutualAgreement}

func ParseType(raw string) (Type, bool) {
	for _, t := range Types {
		if string(t) == raw {
			return t, true
		}
	}
	return "", false
}

// Settlement item keys reported under verbas_rescisorias.
const (
	ItemSalaryBalance          = "saldo_salario"
	ItemNoticeWorked           = "aviso_previo_trabalhado"
	ItemNoticeIndemnified      = "aviso_previo_indenizado"
	ItemNoticeDeduction        = "desconto_aviso_previo"
	ItemAccruedVacation        = "ferias_vencidas"
	ItemAccruedVacationBonus   = "terco_ferias_vencidas"
	ItemProportionalVacation   = "ferias_proporcionais"
	ItemProportionalVacBonus   = "terco_ferias_proporcionais"
	ItemProportionalThirteenth = "decimo_terceiro_proporcional"
	ItemFGTSPenalty            = "multa_fgts"
	ItemFGTSWithdrawal         = "saque_fgts"
)

// Request is the wire shape of a termination simulation. Dates are kept as
// strings until Input parses them.
type Request struct {
	GrossSalary                decimal.Decimal `json:"salario_bruto"`
	AdmissionDate              string          `json:"data_admissao"`
	TerminationDate            string          `json:"data_demissao"`
	Type                       string          `json:"tipo_rescisao"`
	FGTSBalance                decimal.Decimal `json:"saldo_fgts"`
	NoticeWorked               bool            `json:"aviso_previo_trabalhado"`
	AccruedVacation            bool            `json:"ferias_vencidas"`
	ProportionalVacationMonths int             `json:"meses_ferias_proporcionais"`
}

type Input struct {
	GrossSalary                decimal.Decimal
	AdmissionDate              time.Time
	TerminationDate            time.Time
	Type                       Type
	FGTSBalance                decimal.Decimal
	NoticeWorked               bool
	AccruedVacation            bool
	ProportionalVacationMonths int
}

type ServiceTime struct {
	Years  int `json:"anos"`
	Months int `json:"meses"`
	Days   int `json:"dias"`
}

type Contract struct {
	GrossSalary     decimal.Decimal `json:"salario_bruto"`
	AdmissionDate   string          `json:"data_admissao"`
	TerminationDate string          `json:"data_demissao"`
	ServiceTime     ServiceTime     `json:"tempo_servico"`
}

type FGTS struct {
	Balance    decimal.Decimal `json:"saldo"`
	Penalty    decimal.Decimal `json:"multa"`
	Withdrawal decimal.Decimal `json:"saque_total"`
}

type Summary struct {
	TotalEarnings         decimal.Decimal `json:"total_proventos"`
	TotalDeductions       decimal.Decimal `json:"total_descontos"`
	Net                   decimal.Decimal `json:"total_rescisao"`
	FGTS                  FGTS            `json:"fgts"`
	TotalReceivable       decimal.Decimal `json:"total_a_receber"`
	UnemploymentInsurance bool            `json:"direito_seguro_desemprego"`
}

type Result struct {
	Contract Contract                   `json:"dados_contrato"`
	Type     Type                       `json:"tipo_rescisao"`
	Items    map[string]decimal.Decimal `json:"verbas_rescisorias"`
	Summary  Summary                    `json:"resumo"`
}
