package employeehandler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"brecho/internal/domain/employees"
	"brecho/internal/domain/tax"
	"brecho/internal/transport/http/api"
	"brecho/internal/transport/http/middleware"
	"brecho/internal/transport/http/shared"
)

const (
	defaultPageSize = 100
	maxPageSize     = 500
)

// maxBaseSalary matches the NUMERIC(12,2) salario_base column.
var maxBaseSalary = decimal.RequireFromString("9999999999.99")

type Handler struct {
	Service *employees.Service
}

func NewHandler(service *employees.Service) *Handler {
	return &Handler{Service: service}
}

type employeePayload struct {
	Name          string          `json:"nome"`
	CPF           string          `json:"cpf"`
	Role          string          `json:"cargo"`
	Department    string          `json:"departamento"`
	BaseSalary    decimal.Decimal `json:"salario_base"`
	AdmissionDate string          `json:"data_admissao"`
	Dependents    int             `json:"dependentes"`
	Status        string          `json:"status"`
	Email         string          `json:"email"`
	Phone         string          `json:"telefone"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Get("/stats", h.handleStats)
		r.Get("/{employeeID}", h.handleGet)
		r.Post("/", h.handleCreate)
		r.Put("/{employeeID}", h.handleUpdate)
		r.Patch("/{employeeID}/toggle-status", h.handleToggleStatus)
		r.Delete("/{employeeID}", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	v := shared.NewValidator()
	page := v.Pagination(r, defaultPageSize, maxPageSize)
	if v.Reject(w, reqID) {
		return
	}
	query := r.URL.Query()
	list, err := h.Service.List(r.Context(), employees.Filter{
		Search: query.Get("search"),
		Status: query.Get("status"),
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		slog.Error("list employees failed", "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "employees_list_failed", "failed to list employees", reqID)
		return
	}
	api.Success(w, list, reqID)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	stats, err := h.Service.Stats(r.Context())
	if err != nil {
		slog.Error("employee stats failed", "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "employees_stats_failed", "failed to load employee stats", reqID)
		return
	}
	api.Success(w, stats, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.IDParam(r, "employeeID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid employee id", reqID)
		return
	}
	emp, err := h.Service.Get(r.Context(), id)
	if err != nil {
		h.failLookup(w, err, "employee_get_failed", "failed to load employee", reqID)
		return
	}
	api.Success(w, emp, reqID)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload employeePayload
	if !shared.Decode(w, r, reqID, &payload) {
		return
	}
	emp, ok := payload.toEmployee(w, reqID)
	if !ok {
		return
	}
	created, err := h.Service.Create(r.Context(), emp)
	if err != nil {
		slog.Error("create employee failed", "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "employee_create_failed", "failed to create employee", reqID)
		return
	}
	api.Created(w, created, reqID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.IDParam(r, "employeeID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid employee id", reqID)
		return
	}
	var payload employeePayload
	if !shared.Decode(w, r, reqID, &payload) {
		return
	}
	emp, ok := payload.toEmployee(w, reqID)
	if !ok {
		return
	}
	updated, err := h.Service.Update(r.Context(), id, emp)
	if err != nil {
		h.failLookup(w, err, "employee_update_failed", "failed to update employee", reqID)
		return
	}
	api.Success(w, updated, reqID)
}

func (h *Handler) handleToggleStatus(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.IDParam(r, "employeeID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid employee id", reqID)
		return
	}
	emp, err := h.Service.ToggleStatus(r.Context(), id)
	if err != nil {
		h.failLookup(w, err, "employee_status_failed", "failed to change employee status", reqID)
		return
	}
	api.Success(w, emp, reqID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.IDParam(r, "employeeID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid employee id", reqID)
		return
	}
	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.failLookup(w, err, "employee_delete_failed", "failed to delete employee", reqID)
		return
	}
	api.Success(w, map[string]string{"message": "employee deleted"}, reqID)
}

func (h *Handler) failLookup(w http.ResponseWriter, err error, code, message, reqID string) {
	if errors.Is(err, employees.ErrNotFound) {
		api.NotFound(w, "employee not found", reqID)
		return
	}
	slog.Error(message, "err", err, "requestId", reqID)
	api.Fail(w, http.StatusInternalServerError, code, message, reqID)
}

func (p employeePayload) toEmployee(w http.ResponseWriter, reqID string) (employees.Employee, bool) {
	v := shared.NewValidator()
	v.MinLength("nome", p.Name, 2)
	v.MinLength("cargo", p.Role, 2)
	switch {
	case !tax.WithinLimits(p.BaseSalary) || p.BaseSalary.GreaterThan(maxBaseSalary):
		v.Add("salario_base", "must be at most "+maxBaseSalary.String()+" with up to "+strconv.Itoa(tax.MaxScale)+" decimal places")
	case !p.BaseSalary.IsPositive():
		v.Add("salario_base", "must be greater than 0")
	}
	if p.Dependents < 0 {
		v.Add("dependentes", "must be greater than or equal to 0")
	}
	admission, _ := v.Date("data_admissao", p.AdmissionDate)
	v.Enum("status", p.Status, []string{employees.StatusActive, employees.StatusInactive}, "must be ativo or inativo")
	v.Email("email", p.Email)
	if v.Reject(w, reqID) {
		return employees.Employee{}, false
	}
	return employees.Employee{
		Name:          p.Name,
		CPF:           p.CPF,
		Role:          p.Role,
		Department:    p.Department,
		BaseSalary:    p.BaseSalary,
		AdmissionDate: admission,
		Dependents:    p.Dependents,
		Status:        strings.ToLower(strings.TrimSpace(p.Status)),
		Email:         p.Email,
		Phone:         p.Phone,
	}, true
}
