// Package metrics provides Prometheus metrics for the nflstats service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Report metrics
	reportsComputed *prometheus.CounterVec
	reportLatency   *prometheus.HistogramVec
	reportRows      *prometheus.GaugeVec

	// Dataset metrics
	rowsLoaded      *prometheus.CounterVec
	rowsRejected    *prometheus.CounterVec
	playsDuplicate  prometheus.Counter
	playsInMemory   prometheus.Gauge
	datasetLoadTime *prometheus.HistogramVec
	scheduleLoads   *prometheus.CounterVec

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error metrics
	errorRateByEndpoint  *prometheus.CounterVec
	errorRateByComponent *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "nflstats",
		subsystem:        "",
		histogramBuckets: []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		constLabels:      prometheus.Labels{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) histogramVec(name, help string, labels ...string) *prometheus.HistogramVec {
	return promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
		Buckets:     m.histogramBuckets,
	}, labels)
}

//nolint:funlen // one place for every collector
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.reportsComputed = m.counterVec("reports_computed_total",
		"Total number of reports computed by report name", "report")
	m.reportLatency = m.histogramVec("report_duration_milliseconds",
		"Report computation time in milliseconds", "report")
	m.reportRows = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "report_rows",
		Help:        "Number of rows returned by the latest computation of a report",
		ConstLabels: m.constLabels,
	}, []string{"report"})

	m.rowsLoaded = m.counterVec("dataset_rows_loaded_total",
		"Total number of dataset rows decoded", "dataset")
	m.rowsRejected = m.counterVec("dataset_rows_rejected_total",
		"Total number of dataset rows rejected by validation", "dataset")
	m.playsDuplicate = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "plays_duplicate_total",
		Help:        "Total number of duplicate plays dropped at load",
		ConstLabels: m.constLabels,
	})
	m.playsInMemory = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "plays_in_memory",
		Help:        "Number of plays currently served",
		ConstLabels: m.constLabels,
	})
	m.datasetLoadTime = m.histogramVec("dataset_load_duration_milliseconds",
		"Dataset load time in milliseconds", "dataset")
	m.scheduleLoads = m.counterVec("schedule_loads_total",
		"Total number of schedule reads by outcome", "status")

	m.httpRequests = m.counterVec("http_requests_total",
		"Total number of HTTP requests by endpoint and method", "endpoint", "method", "status_code")
	m.httpRequestDuration = m.histogramVec("http_request_duration_milliseconds",
		"HTTP request duration in milliseconds", "endpoint", "method", "status_code")

	m.errorRateByEndpoint = m.counterVec("errors_by_endpoint_total",
		"Total number of errors by endpoint", "endpoint", "method", "error_type")
	m.errorRateByComponent = m.counterVec("errors_by_component_total",
		"Total number of errors by component", "component", "error_type")
}

// RecordReport counts one computation of report returning rows rows in
// latencyMs milliseconds.
func RecordReport(report string, rows int, latencyMs float64) {
	globalManager.reportsComputed.WithLabelValues(report).Inc()
	globalManager.reportLatency.WithLabelValues(report).Observe(latencyMs)
	globalManager.reportRows.WithLabelValues(report).Set(float64(rows))
}

// RecordRowsLoaded adds n decoded rows for dataset.
func RecordRowsLoaded(dataset string, n int) {
	globalManager.rowsLoaded.WithLabelValues(dataset).Add(float64(n))
}

// RecordRowRejected counts one row of dataset that failed validation.
func RecordRowRejected(dataset string) {
	globalManager.rowsRejected.WithLabelValues(dataset).Inc()
}

// RecordPlaysDuplicate adds n dropped duplicate plays.
func RecordPlaysDuplicate(n int) {
	globalManager.playsDuplicate.Add(float64(n))
}

// UpdatePlaysInMemory sets the number of plays currently served.
func UpdatePlaysInMemory(n int) {
	globalManager.playsInMemory.Set(float64(n))
}

// RecordDatasetLoadDuration records how long loading dataset took.
func RecordDatasetLoadDuration(dataset string, latencyMs float64) {
	globalManager.datasetLoadTime.WithLabelValues(dataset).Observe(latencyMs)
}

// RecordScheduleLoad counts a schedule read; status is "ok" or "error".
func RecordScheduleLoad(status string) {
	globalManager.scheduleLoads.WithLabelValues(status).Inc()
}

// RecordHTTPRequest increments the HTTP requests counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint records errors by endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorByComponent records errors by component.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
