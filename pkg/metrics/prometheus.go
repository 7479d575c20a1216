// Package metrics provides Prometheus metrics for the prodsync service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus metric families for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Webhook intake
	webhookDeliveries *prometheus.CounterVec
	eventsNormalized  prometheus.Counter
	emptyBatches      prometheus.Counter

	// Sync pipeline
	syncOutcomes *prometheus.CounterVec
	fieldWrites  prometheus.Counter

	// Remote service calls
	remoteCalls   *prometheus.CounterVec
	remoteLatency *prometheus.HistogramVec

	// Registrar and backfill
	registrarOutcomes *prometheus.CounterVec
	backfillPages     prometheus.Counter
	backfillEntities  prometheus.Counter

	// HTTP surface
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
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
		namespace:        "prodsync",
		subsystem:        "sync",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metric families.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.webhookDeliveries = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "webhook_deliveries_total",
			Help:      "Inbound webhook deliveries by acknowledgement status",
		},
		[]string{"status"},
	)

	m.eventsNormalized = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_normalized_total",
		Help:      "Canonical events extracted from inbound notifications",
	})

	m.emptyBatches = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "empty_batches_total",
		Help:      "Notifications that yielded zero canonical events (unrecognized shape)",
	})

	m.syncOutcomes = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "entity_syncs_total",
			Help:      "Per-entity sync attempts by outcome",
		},
		[]string{"outcome"},
	)

	m.fieldWrites = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "field_writes_total",
		Help:      "Field value writes issued to the hierarchy service",
	})

	m.remoteCalls = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "remote_calls_total",
			Help:      "Calls to the hierarchy service by operation and status code",
		},
		[]string{"op", "code"},
	)

	m.remoteLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "remote_call_duration_milliseconds",
			Help:      "Latency of hierarchy service calls in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"op"},
	)

	m.registrarOutcomes = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "webhook_registrations_total",
			Help:      "Webhook registrar runs by outcome (created vs already existed)",
		},
		[]string{"outcome"},
	)

	m.backfillPages = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "backfill_pages_total",
		Help:      "Entity pages processed by the backfill driver",
	})

	m.backfillEntities = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "backfill_entities_total",
		Help:      "Entities fed through the sync workflow by the backfill driver",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint, method and status code",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// GetRegistry returns the registry metrics are collected on, for serving.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// RecordWebhookDelivery counts one inbound delivery acknowledgement.
func RecordWebhookDelivery(status string) {
	globalManager.webhookDeliveries.WithLabelValues(status).Inc()
}

// RecordEventsNormalized counts canonical events extracted from one batch.
func RecordEventsNormalized(n int) {
	globalManager.eventsNormalized.Add(float64(n))
}

// RecordEmptyBatch counts a notification with no recognizable events.
func RecordEmptyBatch() {
	globalManager.emptyBatches.Inc()
}

// RecordSyncOutcome counts one per-entity sync attempt.
func RecordSyncOutcome(outcome string) {
	globalManager.syncOutcomes.WithLabelValues(outcome).Inc()
}

// RecordFieldWrite counts one field value write.
func RecordFieldWrite() {
	globalManager.fieldWrites.Inc()
}

// RecordRemoteCall records one hierarchy service round-trip.
func RecordRemoteCall(op string, code string, durationMs float64) {
	globalManager.remoteCalls.WithLabelValues(op, code).Inc()
	globalManager.remoteLatency.WithLabelValues(op).Observe(durationMs)
}

// RecordRegistrarOutcome counts one registrar run.
func RecordRegistrarOutcome(outcome string) {
	globalManager.registrarOutcomes.WithLabelValues(outcome).Inc()
}

// RecordBackfillPage counts one processed page and its entities.
func RecordBackfillPage(entities int) {
	globalManager.backfillPages.Inc()
	globalManager.backfillEntities.Add(float64(entities))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}
