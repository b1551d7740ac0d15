// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	service "github.com/okian/disasterdash/internal/app"
	"github.com/okian/disasterdash/internal/domain/aggregate"
	"github.com/okian/disasterdash/internal/domain/model"
	"github.com/okian/disasterdash/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the dashboard controller.
type Dependencies interface {
	// Resolve turns query input into a selection and selector state.
	Resolve(ctx context.Context, in service.Input) (model.Selection, service.Controls, error)

	// View resolves and renders one dashboard cycle.
	View(ctx context.Context, in service.Input) (*service.View, error)

	// Metrics aggregates every field for a selection.
	Metrics(ctx context.Context, sel model.Selection, mode aggregate.Mode) ([]aggregate.Metric, error)
}

// Server wires HTTP routes for the dashboard API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	viewHandler    *ViewHandler
	mapHandler     *MapHandler
	summaryHandler *SummaryHandler
	optionsHandler *OptionsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, log logger.Logger) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		viewHandler:    NewViewHandler(deps, log),
		mapHandler:     NewMapHandler(deps, log),
		summaryHandler: NewSummaryHandler(deps, log),
		optionsHandler: NewOptionsHandler(deps, log),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/view", MetricsMiddleware(s.viewHandler.HandleGetView, "view"))
	mux.HandleFunc("/api/map", MetricsMiddleware(s.mapHandler.HandleGetMap, "map"))
	mux.HandleFunc("/api/metrics", MetricsMiddleware(s.summaryHandler.HandleGetMetrics, "metrics"))
	mux.HandleFunc("/api/options", MetricsMiddleware(s.optionsHandler.HandleGetOptions, "options"))
}

// InputFromRequest reads the selection query parameters.
func InputFromRequest(r *http.Request) service.Input {
	q := r.URL.Query()
	return service.Input{
		Year:    q.Get("year"),
		State:   q.Get("state"),
		Clicked: q.Get("clicked"),
		Risk:    q.Get("risk"),
	}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError maps controller errors to HTTP statuses.
func writeServiceError(ctx context.Context, w http.ResponseWriter, log logger.Logger, op string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrRiskOutsidePrediction):
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
	case errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "unavailable", WrapKind(op, ErrUnavailable, err))
	default:
		log.Error(ctx, "request failed", logger.String("op", op), logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", WrapKind(op, ErrInternal, err))
	}
}
