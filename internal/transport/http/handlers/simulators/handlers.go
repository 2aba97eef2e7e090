package simulatorhandler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"brecho/internal/domain/severance"
	"brecho/internal/domain/tax"
	"brecho/internal/platform/metrics"
	"brecho/internal/transport/http/api"
	"brecho/internal/transport/http/middleware"
	"brecho/internal/transport/http/shared"
)

const (
	KindRegimes   = "impostos"
	KindSeverance = "rescisao"
)

type Handler struct {
	Tables  *tax.Tables
	Metrics *metrics.Collector
}

func NewHandler(tables *tax.Tables, collector *metrics.Collector) *Handler {
	if tables == nil {
		tables = tax.DefaultTables()
	}
	return &Handler{Tables: tables, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/simulador", func(r chi.Router) {
		r.Post("/impostos", h.handleRegimes)
		r.Post("/rescisao", h.handleSeverance)
	})
	r.Get("/tabelas", h.handleTables)
}

func (h *Handler) handleRegimes(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var in tax.RegimeInput
	if !shared.Decode(w, r, reqID, &in) {
		return
	}
	result, err := h.Tables.SimulateRegimes(in)
	h.respond(w, KindRegimes, result, err, reqID)
}

func (h *Handler) handleSeverance(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var req severance.Request
	if !shared.Decode(w, r, reqID, &req) {
		return
	}
	in, err := req.Input()
	if err != nil {
		h.respond(w, KindSeverance, nil, err, reqID)
		return
	}
	result, err := severance.Calculate(in)
	h.respond(w, KindSeverance, result, err, reqID)
}

// handleTables exposes the schedules in effect so clients can label results.
func (h *Handler) handleTables(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Tables, middleware.GetRequestID(r.Context()))
}

func (h *Handler) respond(w http.ResponseWriter, kind string, result any, err error, reqID string) {
	if err != nil {
		if shared.RejectCalculation(w, reqID, err) {
			h.Metrics.RecordCalculation(kind, metrics.Rejected)
			return
		}
		h.Metrics.RecordCalculation(kind, metrics.Failed)
		slog.Error("simulation failed", "kind", kind, "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "simulation_failed", "failed to run simulation", reqID)
		return
	}
	h.Metrics.RecordCalculation(kind, metrics.Succeeded)
	api.Success(w, result, reqID)
}
