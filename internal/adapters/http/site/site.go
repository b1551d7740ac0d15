// Package site serves the dashboard page.
package site

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	service "github.com/okian/disasterdash/internal/app"
	"github.com/okian/disasterdash/internal/domain/choropleth"
	"github.com/okian/disasterdash/pkg/logger"
)

// Error constants
var (
	ErrTemplate = errors.New("dashboard template failed")
	ErrRender   = errors.New("dashboard render failed")
)

//go:embed templates/dashboard.html
var templatesFS embed.FS

// Viewer renders one dashboard cycle.
type Viewer interface {
	View(ctx context.Context, in service.Input) (*service.View, error)
}

// Handler serves GET / as a fully rendered dashboard.
type Handler struct {
	viewer   Viewer
	tmpl     *template.Template
	title    string
	subtitle string
	log      logger.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithTitle sets the page title and caption.
func WithTitle(title, subtitle string) Option {
	return func(h *Handler) {
		h.title = title
		h.subtitle = subtitle
	}
}

// WithLogger sets the handler logger.
func WithLogger(l logger.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.log = l
		}
	}
}

var funcs = template.FuncMap{
	"selectedIf": func(ok bool) template.HTMLAttr {
		if ok {
			return "selected"
		}
		return ""
	},
	"checkedIf": func(ok bool) template.HTMLAttr {
		if ok {
			return "checked"
		}
		return ""
	},
	"stateLabel": func(s string) string {
		if s == "" {
			return "All States"
		}
		return s
	},
}

// NewHandler parses the embedded template and returns a Handler.
func NewHandler(viewer Viewer, opts ...Option) (*Handler, error) {
	tmpl, err := template.New("dashboard.html").Funcs(funcs).ParseFS(templatesFS, "templates/dashboard.html")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTemplate, err)
	}
	h := &Handler{
		viewer: viewer,
		tmpl:   tmpl,
		title:  "Natural Disaster Prediction in the United States",
		log:    logger.Get(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Register attaches the dashboard page to mux.
func Register(_ context.Context, mux *http.ServeMux, h *Handler) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("/", h.HandleRoot)
}

type page struct {
	Title       string
	Subtitle    string
	View        *service.View
	MapJSON     template.JS
	FillOpacity float64
	LineOpacity float64
	Tooltip     []string
}

// HandleRoot handles GET / requests.
func (h *Handler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" || r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	ctx := r.Context()
	q := r.URL.Query()
	v, err := h.viewer.View(ctx, service.Input{
		Year:    q.Get("year"),
		State:   q.Get("state"),
		Clicked: q.Get("clicked"),
		Risk:    q.Get("risk"),
	})
	switch {
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrRiskOutsidePrediction):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, service.ErrNotStarted):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	case err != nil:
		h.log.Error(ctx, "render failed", logger.Error(err))
		http.Error(w, ErrRender.Error(), http.StatusInternalServerError)
		return
	}

	mapJSON, err := json.Marshal(v.Map)
	if err != nil {
		h.log.Error(ctx, "encode map failed", logger.String("render_id", v.ID), logger.Error(err))
		http.Error(w, ErrRender.Error(), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	err = h.tmpl.Execute(&buf, page{
		Title:       h.title,
		Subtitle:    h.subtitle,
		View:        v,
		MapJSON:     template.JS(mapJSON), //nolint:gosec // encoding/json escapes <, > and &
		FillOpacity: choropleth.FillOpacity,
		LineOpacity: choropleth.LineOpacity,
		Tooltip:     choropleth.TooltipFields,
	})
	if err != nil {
		h.log.Error(ctx, "template failed", logger.String("render_id", v.ID), logger.Error(err))
		http.Error(w, ErrRender.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Render-ID", v.ID)
	_, _ = w.Write(buf.Bytes())
}
