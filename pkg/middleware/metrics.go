package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/pagio-dev/pagio/internal/errors"
	"github.com/pagio-dev/pagio/pkg/nav"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "pagio").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for navigation duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "pagio",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// metrics holds the Prometheus metrics for navigation.
type metrics struct {
	navigationsTotal   *prometheus.CounterVec
	navigationDuration *prometheus.HistogramVec
	navigationErrors   *prometheus.CounterVec
	transitionsActive  prometheus.Gauge
	pagesLive          prometheus.Gauge
	historyCommits     *prometheus.CounterVec
}

// globalMetrics is the singleton metrics instance, created on first call
// to Prometheus(). Registering the same collectors twice panics, so every
// Prometheus() call after the first reuses the instance.
var (
	globalMetrics   *metrics
	globalMetricsMu sync.Mutex
)

func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		navigationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigations_total",
			Help:        "Total number of navigations by page and outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"page", "outcome"}),

		navigationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigation_duration_seconds",
			Help:        "Navigation transition duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"page"}),

		navigationErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigation_errors_total",
			Help:        "Total number of failed navigations by page and error code",
			ConstLabels: config.ConstLabels,
		}, []string{"page", "code"}),

		transitionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "transitions_in_flight",
			Help:        "Number of navigation transitions currently running or queued",
			ConstLabels: config.ConstLabels,
		}),

		pagesLive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "pages_live",
			Help:        "Number of live page instances held by the cache",
			ConstLabels: config.ConstLabels,
		}),

		historyCommits: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "history_commits_total",
			Help:        "Total number of history commits by mode (push or replace)",
			ConstLabels: config.ConstLabels,
		}, []string{"mode"}),
	}
}

// Prometheus creates middleware that records Prometheus metrics for every
// navigation.
//
// Metrics collected:
//   - pagio_navigations_total: Counter of navigations by page and outcome
//   - pagio_navigation_duration_seconds: Histogram of transition duration
//   - pagio_navigation_errors_total: Counter of failures by page and error code
//   - pagio_transitions_in_flight: Gauge of running or queued transitions
//   - pagio_pages_live: Gauge of cached page instances (see RecordPagesLive)
//   - pagio_history_commits_total: Counter of commits (see RecordHistoryCommit)
//
// Labels stay low-cardinality: the page identifier is used rather than
// the concrete path, and errors are labelled by their code.
//
// Example:
//
//	navigator := middleware.Chain(orchestrator,
//	    middleware.Prometheus(
//	        middleware.WithNamespace("myapp"),
//	    ),
//	)
//
//	// Expose metrics endpoint
//	http.Handle("/metrics", promhttp.Handler())
func Prometheus(opts ...MetricsOption) Middleware {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	globalMetricsMu.Lock()
	if globalMetrics == nil {
		globalMetrics = initMetrics(config)
	}
	m := globalMetrics
	globalMetricsMu.Unlock()

	return func(next Navigator) Navigator {
		return NavigatorFunc(func(ctx context.Context, path string, opts ...nav.Option) *nav.Result {
			m.transitionsActive.Inc()
			start := time.Now()

			res := next.Navigate(ctx, path, opts...)

			duration := time.Since(start).Seconds()
			m.transitionsActive.Dec()

			page := "unresolved"
			if res.Page != nil {
				page = res.Page.Identifier()
			}

			m.navigationDuration.WithLabelValues(page).Observe(duration)
			m.navigationsTotal.WithLabelValues(page, res.Outcome.String()).Inc()
			if res.Err != nil {
				code := errors.CodeOf(res.Err)
				if code == "" {
					code = "unknown"
				}
				m.navigationErrors.WithLabelValues(page, code).Inc()
			}

			return res
		})
	}
}

// ====================================================================
// Metrics Recording Functions
// ====================================================================

// RecordPagesLive records the current number of cached page instances.
// Call this with cache.Len() after registrations and teardowns.
func RecordPagesLive(count int) {
	if globalMetrics != nil {
		globalMetrics.pagesLive.Set(float64(count))
	}
}

// RecordHistoryCommit records one history commit. mode is "push" or
// "replace".
func RecordHistoryCommit(mode string) {
	if globalMetrics != nil {
		globalMetrics.historyCommits.WithLabelValues(mode).Inc()
	}
}
