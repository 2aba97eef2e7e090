package employees

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusActive   = "ativo"
	StatusInactive = "inativo"

	// StatusAll disables the status filter when listing.
	StatusAll = "todos"
)

type Employee struct {
	ID            int64           `json:"id"`
	Name          string          `json:"nome"`
	CPF           string          `json:"cpf"`
	Role          string          `json:"cargo"`
	Department    string          `json:"departamento"`
	BaseSalary    decimal.Decimal `json:"salario_base"`
	AdmissionDate time.Time       `json:"data_admissao"`
	Dependents    int             `json:"dependentes"`
	Status        string          `json:"status"`
	Email         string          `json:"email"`
	Phone         string          `json:"telefone"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Filter narrows List. A Limit of zero means no limit.
type Filter struct {
	Search string
	Status string
	Limit  int
	Offset int
}

type Stats struct {
	Total    int             `json:"total"`
	Active   int             `json:"ativos"`
	Inactive int             `json:"inativos"`
	Payroll  decimal.Decimal `json:"folha_total"`
}
