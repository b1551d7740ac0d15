package api

import (
	"net/http"

	"github.com/okian/disasterdash/pkg/logger"
)

// OptionsHandler serves the selector state for a request.
type OptionsHandler struct {
	deps Dependencies
	log  logger.Logger
}

// NewOptionsHandler creates a new options handler.
func NewOptionsHandler(deps Dependencies, log logger.Logger) *OptionsHandler {
	return &OptionsHandler{deps: deps, log: log}
}

// HandleGetOptions handles GET /api/options requests.
func (h *OptionsHandler) HandleGetOptions(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_options"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	_, controls, err := h.deps.Resolve(r.Context(), InputFromRequest(r))
	if err != nil {
		writeServiceError(r.Context(), w, h.log, op, err)
		return
	}
	writeJSON(w, http.StatusOK, controls)
}
