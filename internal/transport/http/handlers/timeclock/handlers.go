package timeclockhandler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"brecho/internal/domain/timeclock"
	"brecho/internal/transport/http/api"
	"brecho/internal/transport/http/middleware"
	"brecho/internal/transport/http/shared"
)

type Handler struct {
	Service *timeclock.Service
}

func NewHandler(service *timeclock.Service) *Handler {
	return &Handler{Service: service}
}

type punchPayload struct {
	EmployeeID   *int64 `json:"funcionario_id"`
	EmployeeName string `json:"funcionario_nome"`
	Type         string `json:"tipo"`
	Date         string `json:"data"`
	Time         string `json:"hora"`
	Note         string `json:"observacao"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/timeclock", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Get("/resumo", h.handleSummary)
		r.Get("/{punchID}", h.handleGet)
		r.Post("/", h.handleRegister)
		r.Put("/{punchID}", h.handleUpdate)
		r.Delete("/{punchID}", h.handleDelete)
	})
	r.Get("/jornada", h.handleGetSchedule)
	r.Post("/jornada", h.handleSaveSchedule)
	r.Put("/jornada", h.handleSaveSchedule)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	query := r.URL.Query()
	v := shared.NewValidator()
	filter := timeclock.ListFilter{Type: query.Get("tipo")}
	if from, to := query.Get("data_inicio"), query.Get("data_fim"); from != "" && to != "" {
		start, _ := v.Date("data_inicio", from)
		end, _ := v.Date("data_fim", to)
		v.DateOrder("data_inicio", start, "data_fim", end)
		filter.From = start.Format(timeclock.DateLayout)
		filter.To = end.Format(timeclock.DateLayout)
	}
	if raw := query.Get("funcionario_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			v.Add("funcionario_id", "must be a positive integer")
		}
		filter.EmployeeID = &id
	}
	v.Enum("tipo", filter.Type, []string{timeclock.TypeIn, timeclock.TypeOut, timeclock.TypeAll}, "must be entrada, saida or todos")
	if v.Reject(w, reqID) {
		return
	}

	punches, err := h.Service.List(r.Context(), filter)
	if err != nil {
		slog.Error("list punches failed", "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "timeclock_list_failed", "failed to list time clock records", reqID)
		return
	}
	api.Success(w, punches, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.IDParam(r, "punchID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid time clock record id", reqID)
		return
	}
	punch, err := h.Service.Get(r.Context(), id)
	if err != nil {
		failLookup(w, err, "timeclock_get_failed", "failed to load time clock record", reqID)
		return
	}
	api.Success(w, punch, reqID)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload punchPayload
	if !shared.Decode(w, r, reqID, &payload) {
		return
	}
	v := shared.NewValidator()
	v.Required("funcionario_nome", payload.EmployeeName, "is required")
	payload.check(v, false)
	if v.Reject(w, reqID) {
		return
	}

	punch, err := h.Service.Register(r.Context(), payload.toPunch())
	if err != nil {
		slog.Error("register punch failed", "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "timeclock_register_failed", "failed to register time clock record", reqID)
		return
	}
	api.Created(w, punch, reqID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.IDParam(r, "punchID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid time clock record id", reqID)
		return
	}
	var payload punchPayload
	if !shared.Decode(w, r, reqID, &payload) {
		return
	}
	v := shared.NewValidator()
	payload.check(v, true)
	if v.Reject(w, reqID) {
		return
	}

	punch, err := h.Service.Update(r.Context(), id, payload.toPunch())
	if err != nil {
		failLookup(w, err, "timeclock_update_failed", "failed to update time clock record", reqID)
		return
	}
	api.Success(w, punch, reqID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.IDParam(r, "punchID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid time clock record id", reqID)
		return
	}
	if err := h.Service.Delete(r.Context(), id); err != nil {
		failLookup(w, err, "timeclock_delete_failed", "failed to delete time clock record", reqID)
		return
	}
	api.Success(w, map[string]string{"message": "time clock record deleted"}, reqID)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	query := r.URL.Query()
	v := shared.NewValidator()
	employeeID, err := strconv.ParseInt(query.Get("funcionario_id"), 10, 64)
	if err != nil || employeeID <= 0 {
		v.Add("funcionario_id", "must be a positive integer")
	}
	month, _ := strconv.Atoi(query.Get("mes"))
	year, _ := strconv.Atoi(query.Get("ano"))
	v.Period(month, year)
	if v.Reject(w, reqID) {
		return
	}

	summary, err := h.Service.MonthSummary(r.Context(), employeeID, year, month)
	if err != nil {
		slog.Error("time clock summary failed", "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "timeclock_summary_failed", "failed to summarize time clock records", reqID)
		return
	}
	api.Success(w, summary, reqID)
}

func (h *Handler) handleGetSchedule(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	sc, err := h.Service.Schedule(r.Context())
	if err != nil {
		slog.Error("load schedule failed", "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "schedule_get_failed", "failed to load work schedule", reqID)
		return
	}
	api.Success(w, sc, reqID)
}

func (h *Handler) handleSaveSchedule(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var sc timeclock.Schedule
	if !shared.Decode(w, r, reqID, &sc) {
		return
	}
	v := shared.NewValidator()
	checkClock(v, "seg_sex_entrada", &sc.WeekdayIn, true)
	checkClock(v, "seg_sex_saida", &sc.WeekdayOut, true)
	sc.BreakStart = optionalClock(v, "intervalo_inicio", sc.BreakStart)
	sc.BreakEnd = optionalClock(v, "intervalo_fim", sc.BreakEnd)
	sc.SaturdayIn = optionalClock(v, "sabado_entrada", sc.SaturdayIn)
	sc.SaturdayOut = optionalClock(v, "sabado_saida", sc.SaturdayOut)
	if sc.DailyHours < timeclock.MinDailyHours || sc.DailyHours > timeclock.MaxDailyHours {
		v.Add("carga_horaria_diaria", "must be between "+strconv.Itoa(timeclock.MinDailyHours)+" and "+strconv.Itoa(timeclock.MaxDailyHours))
	}
	if sc.ToleranceMinutes < 0 || sc.ToleranceMinutes > timeclock.MaxToleranceMins {
		v.Add("tolerancia_minutos", "must be between 0 and "+strconv.Itoa(timeclock.MaxToleranceMins))
	}
	if v.Reject(w, reqID) {
		return
	}

	saved, err := h.Service.SaveSchedule(r.Context(), sc)
	if err != nil {
		slog.Error("save schedule failed", "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "schedule_save_failed", "failed to save work schedule", reqID)
		return
	}
	api.Success(w, saved, reqID)
}

// check validates the payload in place. Updates must carry date and time.
func (p *punchPayload) check(v *shared.Validator, update bool) {
	if update {
		v.Required("data", p.Date, "is required")
		v.Required("hora", p.Time, "is required")
	}
	v.Required("tipo", p.Type, "is required")
	v.Enum("tipo", p.Type, []string{timeclock.TypeIn, timeclock.TypeOut}, "must be entrada or saida")
	if strings.TrimSpace(p.Date) != "" {
		if d, ok := v.Date("data", p.Date); ok {
			p.Date = d.Format(timeclock.DateLayout)
		}
	}
	if strings.TrimSpace(p.Time) != "" && !timeclock.ValidClock(p.Time) {
		v.Add("hora", "must be HH:MM or HH:MM:SS")
	}
	v.PositiveID("funcionario_id", p.EmployeeID)
}

func (p punchPayload) toPunch() timeclock.Punch {
	return timeclock.Punch{
		EmployeeID:   p.EmployeeID,
		EmployeeName: strings.TrimSpace(p.EmployeeName),
		Date:         strings.TrimSpace(p.Date),
		Time:         strings.TrimSpace(p.Time),
		Type:         strings.ToLower(strings.TrimSpace(p.Type)),
		Note:         strings.TrimSpace(p.Note),
	}
}

func checkClock(v *shared.Validator, field string, value *string, required bool) {
	if strings.TrimSpace(*value) == "" {
		if required {
			v.Add(field, "is required")
		}
		return
	}
	if !timeclock.ValidClock(*value) {
		v.Add(field, "must be HH:MM or HH:MM:SS")
		return
	}
	*value = timeclock.NormalizeClock(*value)
}

// optionalClock treats an empty value as unset.
func optionalClock(v *shared.Validator, field string, value *string) *string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil
	}
	checkClock(v, field, value, false)
	return value
}

func failLookup(w http.ResponseWriter, err error, code, message, reqID string) {
	if errors.Is(err, timeclock.ErrNotFound) {
		api.NotFound(w, "time clock record not found", reqID)
		return
	}
	slog.Error(message, "err", err, "requestId", reqID)
	api.Fail(w, http.StatusInternalServerError, code, message, reqID)
}
