// Package metrics provides Prometheus metrics for the pagepulse pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const defaultNamespace = "pagepulse"

// Manager owns the Prometheus collectors for one pipeline process.
type Manager struct {
	namespace string
	registry  prometheus.Registerer

	// Sampling
	samplesTotal        prometheus.Counter
	sampleFailuresTotal prometheus.Counter

	// Per-URL pipeline outcomes
	urlsProcessedTotal prometheus.Counter
	urlsFailedTotal    prometheus.Counter
	urlDuration        prometheus.Histogram

	// Persistence
	snapshotWritesTotal *prometheus.CounterVec

	// Run state
	lastRunUnix   prometheus.Gauge
	categoryScore *prometheus.GaugeVec
}

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithNamespace sets the namespace for all metrics.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithRegistry sets a custom Prometheus registerer.
func WithRegistry(reg prometheus.Registerer) Option {
	return func(m *Manager) {
		if reg != nil {
			m.registry = reg
		}
	}
}

// NewManager creates a Manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: defaultNamespace,
		registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}

	factory := promauto.With(m.registry)

	m.samplesTotal = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "samples_total",
		Help:      "Total number of successful scorer runs.",
	})
	m.sampleFailuresTotal = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "sample_failures_total",
		Help:      "Total number of failed scorer runs.",
	})
	m.urlsProcessedTotal = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "urls_processed_total",
		Help:      "URLs that completed the pipeline with a persisted snapshot.",
	})
	m.urlsFailedTotal = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "urls_failed_total",
		Help:      "URLs abandoned after sampling or persistence failure.",
	})
	m.urlDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "url_duration_seconds",
		Help:      "Wall-clock time spent processing one URL end to end.",
		Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
	})
	m.snapshotWritesTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "snapshot_writes_total",
		Help:      "Snapshot records written, by slot.",
	}, []string{"slot"})
	m.lastRunUnix = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "last_run_unix",
		Help:      "Unix timestamp of the last completed pipeline run.",
	})
	m.categoryScore = factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "category_score",
		Help:      "Latest averaged category score per URL.",
	}, []string{"url", "category"})

	return m
}

// Default manager used by the package-level helpers.
var defaultManager = NewManager()

// RecordSample increments the successful scorer run counter.
func RecordSample() { defaultManager.samplesTotal.Inc() }

// RecordSampleFailure increments the failed scorer run counter.
func RecordSampleFailure() { defaultManager.sampleFailuresTotal.Inc() }

// RecordURLProcessed increments the completed-URL counter.
func RecordURLProcessed() { defaultManager.urlsProcessedTotal.Inc() }

// RecordURLFailed increments the failed-URL counter.
func RecordURLFailed() { defaultManager.urlsFailedTotal.Inc() }

// ObserveURLDuration records end-to-end processing time for one URL.
func ObserveURLDuration(seconds float64) { defaultManager.urlDuration.Observe(seconds) }

// RecordSnapshotWrite increments the snapshot write counter for a slot.
func RecordSnapshotWrite(slot string) {
	defaultManager.snapshotWritesTotal.WithLabelValues(slot).Inc()
}

// SetLastRun records the completion time of a pipeline run.
func SetLastRun(unix int64) { defaultManager.lastRunUnix.Set(float64(unix)) }

// SetCategoryScore publishes the latest averaged score for a URL category.
func SetCategoryScore(url, category string, score int) {
	defaultManager.categoryScore.WithLabelValues(url, category).Set(float64(score))
}
