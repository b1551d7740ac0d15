package api

import (
	"net/http"

	"github.com/okian/disasterdash/internal/domain/aggregate"
	"github.com/okian/disasterdash/pkg/logger"
)

// SummaryHandler serves aggregated metrics for every field.
type SummaryHandler struct {
	deps Dependencies
	log  logger.Logger
}

// NewSummaryHandler creates a new summary handler.
func NewSummaryHandler(deps Dependencies, log logger.Logger) *SummaryHandler {
	return &SummaryHandler{deps: deps, log: log}
}

type summaryResponse struct {
	Year    int                `json:"year"`
	State   string             `json:"state"`
	Risk    string             `json:"risk"`
	Mode    string             `json:"mode"`
	Metrics []aggregate.Metric `json:"metrics"`
}

// HandleGetMetrics handles GET /api/metrics?year=&state=&risk=&mode= requests.
func (h *SummaryHandler) HandleGetMetrics(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_metrics"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	mode, err := aggregate.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	sel, _, err := h.deps.Resolve(r.Context(), InputFromRequest(r))
	if err != nil {
		writeServiceError(r.Context(), w, h.log, op, err)
		return
	}
	ms, err := h.deps.Metrics(r.Context(), sel, mode)
	if err != nil {
		writeServiceError(r.Context(), w, h.log, op, err)
		return
	}
	writeJSON(w, http.StatusOK, summaryResponse{
		Year:    sel.Year,
		State:   sel.State,
		Risk:    sel.Risk.String(),
		Mode:    mode.String(),
		Metrics: ms,
	})
}
