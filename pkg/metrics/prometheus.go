// Package metrics provides Prometheus metrics for the nomination service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the nomination service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Vote pipeline metrics.
	votesAccepted  prometheus.Counter
	votesDuplicate prometheus.Counter
	ledgerSize     prometheus.Gauge

	// Ingestion metrics.
	ingestionRuns     *prometheus.CounterVec
	ingestionDuration prometheus.Histogram
	postsProcessed    prometheus.Counter
	pagesFetched      prometheus.Counter
	pageFetchErrors   prometheus.Counter
	pageFetchDuration prometheus.Histogram
	totalPages        prometheus.Gauge

	// HTTP metrics.
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpErrors          *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "nominanti",
		subsystem:        "poll",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.votesAccepted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "votes_accepted_total",
		Help:      "Total number of votes accepted into the ledger",
	})

	m.votesDuplicate = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "votes_duplicate_total",
		Help:      "Total number of votes dropped by the dedup key",
	})

	m.ledgerSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ledger_size",
		Help:      "Current number of votes in the ledger",
	})

	m.ingestionRuns = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ingestion_runs_total",
		Help:      "Total number of ingestion runs by outcome",
	}, []string{"outcome"})

	m.ingestionDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ingestion_duration_seconds",
		Help:      "Duration of full ingestion runs in seconds",
		Buckets:   []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300},
	})

	m.postsProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "posts_processed_total",
		Help:      "Total number of source posts parsed",
	})

	m.pagesFetched = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pages_fetched_total",
		Help:      "Total number of source pages fetched successfully",
	})

	m.pageFetchErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "page_fetch_errors_total",
		Help:      "Total number of failed source page fetches",
	})

	m.pageFetchDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "page_fetch_duration_milliseconds",
		Help:      "Source page fetch duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.totalPages = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "source_total_pages",
		Help:      "Source-reported total page count of the thread",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by endpoint, method and status code",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.httpErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_errors_total",
		Help:      "Total HTTP error responses by endpoint and error type",
	}, []string{"endpoint", "method", "error_type"})
}

// RecordVoteAccepted increments the accepted votes counter.
func RecordVoteAccepted() {
	globalManager.votesAccepted.Inc()
}

// RecordVoteDuplicate increments the duplicate votes counter.
func RecordVoteDuplicate() {
	globalManager.votesDuplicate.Inc()
}

// UpdateLedgerSize sets the current ledger size.
func UpdateLedgerSize(size int) {
	globalManager.ledgerSize.Set(float64(size))
}

// RecordIngestionRun counts one finished ingestion run by outcome
// ("completed", "aborted" or "rejected").
func RecordIngestionRun(outcome string) {
	globalManager.ingestionRuns.WithLabelValues(outcome).Inc()
}

// RecordIngestionDuration records the duration of a full ingestion run.
func RecordIngestionDuration(seconds float64) {
	globalManager.ingestionDuration.Observe(seconds)
}

// RecordPostProcessed increments the parsed posts counter.
func RecordPostProcessed() {
	globalManager.postsProcessed.Inc()
}

// RecordPageFetched increments the fetched pages counter.
func RecordPageFetched() {
	globalManager.pagesFetched.Inc()
}

// RecordPageFetchError increments the failed page fetch counter.
func RecordPageFetchError() {
	globalManager.pageFetchErrors.Inc()
}

// RecordPageFetchDuration records a page fetch duration in milliseconds.
func RecordPageFetchDuration(latencyMs float64) {
	globalManager.pageFetchDuration.Observe(latencyMs)
}

// UpdateTotalPages sets the source-reported page count.
func UpdateTotalPages(pages int) {
	globalManager.totalPages.Set(float64(pages))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordHTTPError records an HTTP error response.
func RecordHTTPError(endpoint, method, errorType string) {
	globalManager.httpErrors.WithLabelValues(endpoint, method, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used for /healthz.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
