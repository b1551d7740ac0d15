// Package service implements the dashboard controller: it resolves user
// input into a Selection and runs one synchronous render cycle per request.
package service

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/okian/disasterdash/internal/adapters/geo"
	"github.com/okian/disasterdash/internal/adapters/repository"
	"github.com/okian/disasterdash/internal/domain/aggregate"
	"github.com/okian/disasterdash/internal/domain/choropleth"
	"github.com/okian/disasterdash/internal/domain/filter"
	"github.com/okian/disasterdash/internal/domain/model"
	"github.com/okian/disasterdash/pkg/logger"
	"github.com/okian/disasterdash/pkg/metrics"
)

// Input is the raw, untrusted control state of one request.
// Clicked is the polygon the user last selected on the map.
type Input struct {
	Year    string
	State   string
	Clicked string
	Risk    string
}

// Controls describes the selector widgets for the current selection.
type Controls struct {
	Years          []int    `json:"years"`
	Year           int      `json:"year"`
	States         []string `json:"states"`
	State          string   `json:"state"`
	RiskVisible    bool     `json:"risk_visible"`
	RiskOptions    []string `json:"risk_options,omitempty"`
	Risk           string   `json:"risk"`
	PredictionYear int      `json:"prediction_year"`
}

// View is the outcome of one render cycle.
type View struct {
	ID         string             `json:"id"`
	RenderedAt time.Time          `json:"rendered_at"`
	Heading    string             `json:"heading"`
	Subheading string             `json:"subheading"`
	Selection  model.Selection    `json:"-"`
	Controls   Controls           `json:"controls"`
	Metrics    []aggregate.Metric `json:"metrics"`
	Map        *choropleth.Map    `json:"map"`
}

// Service is the dashboard controller.
type Service struct {
	mu sync.RWMutex

	store      repository.Store
	boundaries *geo.Boundaries
	clock      clockwork.Clock
	logger     logger.Logger

	// predictionYear is the configured value; resolved holds the year in use.
	predictionYear int
	resolved       int

	// emptyPolygons are boundary names with no row in any year.
	emptyPolygons []string

	started bool
}

// New constructs a Service. Start must be called before rendering.
func New(opts ...Option) *Service {
	s := &Service{clock: clockwork.NewRealClock()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start validates the loaded data and resolves the prediction year.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Named("dashboard")
	}
	if s.store == nil || s.boundaries == nil || s.store.Len() == 0 {
		return ErrNoData
	}

	s.resolved = s.predictionYear
	latest, _ := s.store.LatestYear()
	if s.resolved == 0 {
		s.resolved = latest
	}
	if !s.store.HasYear(s.resolved) {
		s.logger.Warn(ctx, "prediction year not present in data; risk filter will never show",
			logger.Int("prediction_year", s.resolved))
	}

	states := repository.States(s.store.Records())
	var unmatched []string
	for _, name := range s.boundaries.Names() {
		if _, ok := slices.BinarySearch(states, name); !ok {
			unmatched = append(unmatched, name)
		}
	}
	s.emptyPolygons = unmatched
	if len(unmatched) > 0 {
		s.logger.Info(ctx, "polygons without data render empty", logger.Strings("names", unmatched))
	}
	metrics.UpdateDataset(s.store.Len(), len(s.store.Years()), len(states), s.boundaries.Len())
	metrics.UpdatePredictionYear(s.resolved)

	s.started = true
	s.logger.Info(ctx, "dashboard service started",
		logger.Int("rows", s.store.Len()),
		logger.Int("years", len(s.store.Years())),
		logger.Int("states", len(states)),
		logger.Int("polygons", s.boundaries.Len()),
		logger.Int("prediction_year", s.resolved),
	)
	return nil
}

// Stop marks the service stopped. The loaded data is kept.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "dashboard service stopped")
}

// PredictionYear returns the year whose rows carry risk tiers.
func (s *Service) PredictionYear() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolved
}

// Resolve turns raw input into a Selection plus the matching controls.
//
// Year defaults to the latest year and falls back to it when unknown.
// Risk is honoured only for the prediction year. A map click on a known
// polygon replaces the selector's state. The state must exist in the
// year's (risk-filtered) rows, otherwise it resets to all states.
func (s *Service) Resolve(ctx context.Context, in Input) (model.Selection, Controls, error) {
	if err := s.ready(); err != nil {
		return model.Selection{}, Controls{}, err
	}

	years := s.store.Years()
	latest := years[len(years)-1]
	sel := model.Selection{Year: latest, Risk: model.RiskAll}

	if raw := strings.TrimSpace(in.Year); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return model.Selection{}, Controls{}, fmt.Errorf("%w: year %q", ErrInvalidInput, in.Year)
		}
		if s.store.HasYear(year) {
			sel.Year = year
		} else {
			s.logger.Debug(ctx, "unknown year; using latest", logger.Int("year", year), logger.Int("latest", latest))
		}
	}

	risk, err := model.ParseRiskTier(in.Risk)
	if err != nil {
		return model.Selection{}, Controls{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	prediction := sel.Year == s.resolved
	if prediction {
		sel.Risk = risk
	}

	scoped := filter.ByRiskTier(filter.ByYear(s.store.Records(), sel.Year), sel.Risk)
	states := repository.States(scoped)

	state := strings.TrimSpace(in.State)
	if clicked := choropleth.Selected(s.boundaries, strings.TrimSpace(in.Clicked)); clicked != "" {
		state = clicked
	}
	if _, ok := slices.BinarySearch(states, state); ok {
		sel.State = state
	}

	controls := Controls{
		Years:          years,
		Year:           sel.Year,
		States:         append([]string{""}, states...),
		State:          sel.State,
		RiskVisible:    prediction,
		PredictionYear: s.resolved,
	}
	if prediction {
		for _, r := range model.RiskOptions {
			controls.RiskOptions = append(controls.RiskOptions, r.String())
		}
		controls.Risk = sel.Risk.String()
	}
	return sel, controls, nil
}

// Render runs one render cycle for sel: the map covers the year (and risk
// tier), the metrics additionally narrow to the selected state.
func (s *Service) Render(ctx context.Context, sel model.Selection) (*View, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	start := s.clock.Now()
	prediction := sel.Year == s.resolved
	if sel.Risk.Narrows() && !prediction {
		metrics.RecordRenderError()
		return nil, fmt.Errorf("%w: year %d, prediction year %d", ErrRiskOutsidePrediction, sel.Year, s.resolved)
	}

	id := uuid.NewString()
	log := s.logger.With(logger.String("render_id", id))

	yearRows := filter.ByRiskTier(filter.ByYear(s.store.Records(), sel.Year), sel.Risk)
	if dupes := choropleth.Duplicates(yearRows); len(dupes) > 0 {
		log.Warn(ctx, "duplicate state rows; last row wins on the map",
			logger.Int("year", sel.Year), logger.Strings("states", dupes))
		metrics.RecordDuplicateStates(len(dupes))
	}

	m := choropleth.Render(s.boundaries, yearRows)
	metrics.RecordJoinMisses(m.Missed)

	metricRows := filter.ByState(yearRows, sel.State)
	if len(metricRows) == 0 {
		metrics.RecordEmptySubset()
	}

	view := &View{
		ID:         id,
		RenderedAt: s.clock.Now(),
		Heading:    Heading(sel.Year, prediction),
		Subheading: Subheading(sel.State),
		Selection:  sel,
		Metrics:    aggregate.Summary(metricRows, aggregate.Sum),
		Map:        m,
	}

	elapsed := s.clock.Since(start)
	metrics.RecordRender(prediction, float64(elapsed.Microseconds())/1000)
	log.Debug(ctx, "rendered",
		logger.Int("year", sel.Year),
		logger.String("state", sel.State),
		logger.String("risk", sel.Risk.String()),
		logger.Int("matched", m.Matched),
		logger.Int("missed", m.Missed),
		logger.Duration("elapsed", elapsed),
	)
	return view, nil
}

// View resolves input and renders it in one call.
func (s *Service) View(ctx context.Context, in Input) (*View, error) {
	sel, controls, err := s.Resolve(ctx, in)
	if err != nil {
		return nil, err
	}
	v, err := s.Render(ctx, sel)
	if err != nil {
		return nil, err
	}
	v.Controls = controls
	return v, nil
}

// Metrics aggregates every field over the selection in the given mode.
func (s *Service) Metrics(ctx context.Context, sel model.Selection, mode aggregate.Mode) ([]aggregate.Metric, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if sel.Risk.Narrows() && sel.Year != s.resolved {
		return nil, fmt.Errorf("%w: year %d", ErrRiskOutsidePrediction, sel.Year)
	}
	rows := filter.Apply(s.store.Records(), sel)
	if len(rows) == 0 {
		metrics.RecordEmptySubset()
		s.logger.Debug(ctx, "empty subset", logger.Int("year", sel.Year), logger.String("state", sel.State))
	}
	return aggregate.All(rows, mode), nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":        s.started,
		"predictionYear": s.resolved,
	}
	if s.store != nil {
		stats["rows"] = s.store.Len()
		stats["years"] = s.store.Years()
		stats["states"] = len(repository.States(s.store.Records()))
	}
	if s.boundaries != nil {
		stats["polygons"] = s.boundaries.Len()
		stats["polygonsWithoutData"] = slices.Clone(s.emptyPolygons)
	}
	return stats
}

// Heading is the page title for a year.
func Heading(year int, prediction bool) string {
	if prediction {
		return fmt.Sprintf("%d Prediction", year)
	}
	return strconv.Itoa(year)
}

// Subheading titles the metrics block.
func Subheading(state string) string {
	if state == "" {
		return "All States Details"
	}
	return state + " Details"
}

func (s *Service) ready() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return ErrNotStarted
	}
	return nil
}
