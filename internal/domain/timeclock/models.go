package timeclock

import "time"

const (
	TypeIn  = "entrada"
	TypeOut = "saida"

	// TypeAll disables the type filter when listing.
	TypeAll = "todos"

	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// Punch is one clock-in or clock-out. Date is YYYY-MM-DD and Time is
// HH:MM:SS.
type Punch struct {
	ID           int64     `json:"id"`
	EmployeeID   *int64    `json:"funcionario_id"`
	EmployeeName string    `json:"funcionario_nome"`
	Date         string    `json:"data"`
	Time         string    `json:"hora"`
	Type         string    `json:"tipo"`
	Note         string    `json:"observacao"`
	CreatedAt    time.Time `json:"created_at"`
}

type ListFilter struct {
	From       string
	To         string
	EmployeeID *int64
	Type       string
}

// Schedule is the shop-wide work schedule ("jornada").
type Schedule struct {
	WeekdayIn        string  `json:"seg_sex_entrada"`
	WeekdayOut       string  `json:"seg_sex_saida"`
	BreakStart       *string `json:"intervalo_inicio"`
	BreakEnd         *string `json:"intervalo_fim"`
	SaturdayIn       *string `json:"sabado_entrada"`
	SaturdayOut      *string `json:"sabado_saida"`
	DailyHours       int     `json:"carga_horaria_diaria"`
	ToleranceMinutes int     `json:"tolerancia_minutos"`
}

type Summary struct {
	TotalMinutes     int `json:"total_minutos"`
	TotalHours       int `json:"total_horas"`
	RemainderMinutes int `json:"total_minutos_resto"`
	DaysWorked       int `json:"dias_trabalhados"`
	OvertimeMinutes  int `json:"horas_extras_minutos"`
	OvertimeHours    int `json:"horas_extras"`
	Records          int `json:"registros"`
}
