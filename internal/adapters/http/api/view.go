package api

import (
	"net/http"

	"github.com/okian/disasterdash/pkg/logger"
)

// ViewHandler serves complete render cycles.
type ViewHandler struct {
	deps Dependencies
	log  logger.Logger
}

// NewViewHandler creates a new view handler.
func NewViewHandler(deps Dependencies, log logger.Logger) *ViewHandler {
	return &ViewHandler{deps: deps, log: log}
}

// HandleGetView handles GET /api/view?year=&state=&clicked=&risk= requests.
func (h *ViewHandler) HandleGetView(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_view"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	v, err := h.deps.View(r.Context(), InputFromRequest(r))
	if err != nil {
		writeServiceError(r.Context(), w, h.log, op, err)
		return
	}
	w.Header().Set("X-Render-ID", v.ID)
	writeJSON(w, http.StatusOK, v)
}
