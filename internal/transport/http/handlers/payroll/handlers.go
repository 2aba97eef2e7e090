package payrollhandler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"brecho/internal/domain/employees"
	"brecho/internal/domain/payroll"
	"brecho/internal/domain/timeclock"
	"brecho/internal/platform/metrics"
	"brecho/internal/transport/http/api"
	"brecho/internal/transport/http/middleware"
	"brecho/internal/transport/http/shared"
)

const (
	KindMonthly    = "folha"
	KindThirteenth = "decimo_terceiro"
	KindVacation   = "ferias"
)

var minutesPerHour = decimal.NewFromInt(60)

type Handler struct {
	Calculator *payroll.Calculator
	Employees  *employees.Service
	TimeClock  *timeclock.Service
	Metrics    *metrics.Collector
}

func NewHandler(calc *payroll.Calculator, employeeSvc *employees.Service, clockSvc *timeclock.Service, collector *metrics.Collector) *Handler {
	return &Handler{Calculator: calc, Employees: employeeSvc, TimeClock: clockSvc, Metrics: collector}
}

// employeePayrollPayload carries everything the employee record and the time
// clock cannot supply.
type employeePayrollPayload struct {
	Month            int              `json:"mes"`
	Year             int              `json:"ano"`
	OvertimePremium  *decimal.Decimal `json:"percentual_hora_extra,omitempty"`
	NightHours       decimal.Decimal  `json:"adicional_noturno"`
	TransportPercent decimal.Decimal  `json:"vale_transporte_perc"`
	MealVoucher      decimal.Decimal  `json:"vale_refeicao"`
	OtherDeductions  decimal.Decimal  `json:"outros_descontos"`
	OtherEarnings    decimal.Decimal  `json:"outros_proventos"`
}

type employeeRef struct {
	ID   int64  `json:"id"`
	Name string `json:"nome"`
}

type employeePayrollResponse struct {
	Employee  employeeRef           `json:"funcionario"`
	TimeClock timeclock.Summary     `json:"resumo_ponto"`
	Payroll   payroll.MonthlyResult `json:"folha"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/folha", func(r chi.Router) {
		r.Post("/calcular", h.handleMonthly)
		r.Post("/13-salario", h.handleThirteenth)
		r.Post("/ferias", h.handleVacation)
		r.Post("/funcionarios/{employeeID}/calcular", h.handleEmployeeMonthly)
	})
}

func (h *Handler) handleMonthly(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var in payroll.MonthlyInput
	if !shared.Decode(w, r, reqID, &in) {
		return
	}
	result, err := h.Calculator.Monthly(in)
	h.respond(w, KindMonthly, result, err, reqID)
}

func (h *Handler) handleThirteenth(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var in payroll.ThirteenthInput
	if !shared.Decode(w, r, reqID, &in) {
		return
	}
	result, err := h.Calculator.Thirteenth(in)
	h.respond(w, KindThirteenth, result, err, reqID)
}

func (h *Handler) handleVacation(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var in payroll.VacationInput
	if !shared.Decode(w, r, reqID, &in) {
		return
	}
	result, err := h.Calculator.Vacation(in)
	h.respond(w, KindVacation, result, err, reqID)
}

func (h *Handler) handleEmployeeMonthly(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.IDParam(r, "employeeID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid employee id", reqID)
		return
	}
	var payload employeePayrollPayload
	if !shared.Decode(w, r, reqID, &payload) {
		return
	}
	v := shared.NewValidator()
	v.Period(payload.Month, payload.Year)
	if v.Reject(w, reqID) {
		return
	}

	emp, err := h.Employees.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, employees.ErrNotFound) {
			api.NotFound(w, "employee not found", reqID)
			return
		}
		slog.Error("load employee for payroll failed", "err", err, "employeeId", id, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "payroll_employee_failed", "failed to load employee", reqID)
		return
	}
	summary, err := h.TimeClock.MonthSummary(r.Context(), id, payload.Year, payload.Month)
	if err != nil {
		slog.Error("time clock summary for payroll failed", "err", err, "employeeId", id, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "payroll_timeclock_failed", "failed to summarize time clock records", reqID)
		return
	}

	result, err := h.Calculator.Monthly(payroll.MonthlyInput{
		GrossSalary:      emp.BaseSalary,
		Dependents:       emp.Dependents,
		OvertimeHours:    decimal.NewFromInt(int64(summary.OvertimeMinutes)).Div(minutesPerHour),
		OvertimePremium:  payload.OvertimePremium,
		NightHours:       payload.NightHours,
		TransportPercent: payload.TransportPercent,
		MealVoucher:      payload.MealVoucher,
		OtherDeductions:  payload.OtherDeductions,
		OtherEarnings:    payload.OtherEarnings,
	})
	if err != nil {
		h.respond(w, KindMonthly, nil, err, reqID)
		return
	}
	h.respond(w, KindMonthly, employeePayrollResponse{
		Employee:  employeeRef{ID: emp.ID, Name: emp.Name},
		TimeClock: summary,
		Payroll:   result,
	}, nil, reqID)
}

func (h *Handler) respond(w http.ResponseWriter, kind string, result any, err error, reqID string) {
	if err != nil {
		if shared.RejectCalculation(w, reqID, err) {
			h.Metrics.RecordCalculation(kind, metrics.Rejected)
			return
		}
		h.Metrics.RecordCalculation(kind, metrics.Failed)
		slog.Error("payroll calculation failed", "kind", kind, "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "payroll_calculation_failed", "failed to calculate payroll", reqID)
		return
	}
	h.Metrics.RecordCalculation(kind, metrics.Succeeded)
	api.Success(w, result, reqID)
}
