package api

import (
	"encoding/json"
	"net/http"

	"github.com/okian/disasterdash/pkg/logger"
)

// MapHandler serves the annotated choropleth as GeoJSON.
type MapHandler struct {
	deps Dependencies
	log  logger.Logger
}

// NewMapHandler creates a new map handler.
func NewMapHandler(deps Dependencies, log logger.Logger) *MapHandler {
	return &MapHandler{deps: deps, log: log}
}

// HandleGetMap handles GET /api/map?year=&risk= requests.
func (h *MapHandler) HandleGetMap(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_map"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	v, err := h.deps.View(r.Context(), InputFromRequest(r))
	if err != nil {
		writeServiceError(r.Context(), w, h.log, op, err)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.Header().Set("X-Render-ID", v.ID)
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(v.Map)
}
