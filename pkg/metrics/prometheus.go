// Package metrics provides Prometheus metrics for the disaster dashboard.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// latencyBuckets are millisecond buckets sized for in-memory renders.
var latencyBuckets = []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250}

// Manager owns every metric exposed by the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Render cycle
	renders         *prometheus.CounterVec
	renderLatency   prometheus.Histogram
	renderErrors    prometheus.Counter
	joinMisses      prometheus.Counter
	duplicateStates prometheus.Counter
	emptySubsets    prometheus.Counter

	// Dataset
	datasetRows       prometheus.Gauge
	datasetYears      prometheus.Gauge
	datasetStates     prometheus.Gauge
	boundaryFeatures  prometheus.Gauge
	predictionYear    prometheus.Gauge
	datasetLoadMillis prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // keeps default Go collectors out

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "disasterdash",
		subsystem:        "dashboard",
		histogramBuckets: latencyBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
	})
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
	})
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.renders = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "renders_total",
		Help:      "Render cycles by whether the selection targeted the prediction year",
	}, []string{"prediction"})
	m.renderLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "render_latency_milliseconds",
		Help:      "Duration of one filter, aggregate and map render cycle",
		Buckets:   m.histogramBuckets,
	})
	m.renderErrors = m.counter("render_errors_total", "Render cycles that failed")
	m.joinMisses = m.counter("join_misses_total", "Polygons rendered without a matching data row")
	m.duplicateStates = m.counter("duplicate_state_rows_total", "State names seen more than once in a rendered year")
	m.emptySubsets = m.counter("empty_subsets_total", "Metric aggregations over an empty subset")

	m.datasetRows = m.gauge("dataset_rows", "Rows in the loaded disaster table")
	m.datasetYears = m.gauge("dataset_years", "Distinct years in the loaded disaster table")
	m.datasetStates = m.gauge("dataset_states", "Distinct state names in the loaded disaster table")
	m.boundaryFeatures = m.gauge("boundary_features", "Polygons in the loaded boundary collection")
	m.predictionYear = m.gauge("prediction_year", "Year treated as the prediction year")
	m.datasetLoadMillis = m.gauge("dataset_load_milliseconds", "Time spent loading data at startup")

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method and status",
	}, []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})
	m.errorRateByType = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_type_total",
		Help:      "Errors by type and severity",
	}, []string{"error_type", "severity"})
	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_endpoint_total",
		Help:      "Errors by endpoint, method and type",
	}, []string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = m.gauge("system_memory_bytes", "Heap bytes allocated")
	m.systemGoroutineCount = m.gauge("system_goroutines", "Current goroutine count")
	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_gc_pause_milliseconds",
		Help:      "Average GC pause in milliseconds",
		Buckets:   m.histogramBuckets,
	})
}

// Render cycle.

// RecordRender counts a completed render and its latency.
func RecordRender(prediction bool, latencyMs float64) {
	label := "false"
	if prediction {
		label = "true"
	}
	globalManager.renders.WithLabelValues(label).Inc()
	globalManager.renderLatency.Observe(latencyMs)
}

// RecordRenderError counts a failed render.
func RecordRenderError() {
	globalManager.renderErrors.Inc()
}

// RecordJoinMisses adds polygons rendered without data.
func RecordJoinMisses(n int) {
	globalManager.joinMisses.Add(float64(n))
}

// RecordDuplicateStates adds state names repeated within a rendered year.
func RecordDuplicateStates(n int) {
	globalManager.duplicateStates.Add(float64(n))
}

// RecordEmptySubset counts an aggregation over no rows.
func RecordEmptySubset() {
	globalManager.emptySubsets.Inc()
}

// Dataset.

// UpdateDataset records the shape of the loaded table and boundaries.
func UpdateDataset(rows, years, states, features int) {
	globalManager.datasetRows.Set(float64(rows))
	globalManager.datasetYears.Set(float64(years))
	globalManager.datasetStates.Set(float64(states))
	globalManager.boundaryFeatures.Set(float64(features))
}

// UpdatePredictionYear sets the resolved prediction year.
func UpdatePredictionYear(year int) {
	globalManager.predictionYear.Set(float64(year))
}

// RecordDatasetLoad sets the startup load duration.
func RecordDatasetLoad(ms float64) {
	globalManager.datasetLoadMillis.Set(ms)
}

// HTTP.

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method and type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// System.

// UpdateSystemMemoryUsage sets heap usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom registry used by the package-level metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
