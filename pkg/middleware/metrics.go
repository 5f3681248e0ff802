package middleware

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/facet-ui/facet/internal/errors"
	"github.com/facet-ui/facet/pkg/server"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default "facet").
	Namespace string

	// Subsystem is the metrics subsystem (default "events").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for event duration.
	// Default prometheus.DefBuckets.
	Buckets []float64

	// Registry is the Prometheus registry to register on.
	// Default prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) { c.Namespace = namespace }
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) { c.Subsystem = subsystem }
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) { c.ConstLabels = labels }
}

// WithBuckets sets the duration histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) { c.Buckets = buckets }
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) { c.Registry = registry }
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "facet",
		Subsystem: "events",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

type eventMetrics struct {
	handled  *prometheus.CounterVec
	duration *prometheus.HistogramVec
	failures *prometheus.CounterVec
	patches  *prometheus.HistogramVec
}

// The first Prometheus() call wins the configuration; later calls share the
// same collectors. Re-registering on the same registry would panic.
var (
	globalMetrics   *eventMetrics
	globalMetricsMu sync.Mutex
)

func initMetrics(cfg MetricsConfig) *eventMetrics {
	factory := promauto.With(cfg.Registry)
	return &eventMetrics{
		handled: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "handled_total",
			Help:        "Client events processed, by event type and status.",
			ConstLabels: cfg.ConstLabels,
		}, []string{"type", "status"}),

		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "duration_seconds",
			Help:        "Event dispatch duration in seconds.",
			ConstLabels: cfg.ConstLabels,
			Buckets:     cfg.Buckets,
		}, []string{"type"}),

		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "failures_total",
			Help:        "Event dispatch failures, by event type and error category.",
			ConstLabels: cfg.ConstLabels,
		}, []string{"type", "category"}),

		patches: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "patches_per_event",
			Help:        "DOM mutations produced per event.",
			ConstLabels: cfg.ConstLabels,
			Buckets:     []float64{0, 1, 2, 5, 10, 25, 50, 100},
		}, []string{"type"}),
	}
}

// Prometheus creates event middleware that counts and times every dispatched
// event.
//
// Metrics collected (with the default namespace and subsystem):
//   - facet_events_handled_total{type,status}
//   - facet_events_duration_seconds{type}
//   - facet_events_failures_total{type,category}
//   - facet_events_patches_per_event{type}
//
// The failure category comes from the structured error's category when the
// error carries one, so label cardinality stays bounded.
func Prometheus(opts ...MetricsOption) server.EventMiddleware {
	cfg := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	globalMetricsMu.Lock()
	if globalMetrics == nil {
		globalMetrics = initMetrics(cfg)
	}
	m := globalMetrics
	globalMetricsMu.Unlock()

	return func(next server.EventHandler) server.EventHandler {
		return func(ec *server.EventContext) error {
			eventType := ec.Event().Type

			start := time.Now()
			err := next(ec)
			m.duration.WithLabelValues(eventType).Observe(time.Since(start).Seconds())

			status := "ok"
			if err != nil {
				status = "error"
				m.failures.WithLabelValues(eventType, errorCategory(err)).Inc()
			}
			m.handled.WithLabelValues(eventType, status).Inc()
			m.patches.WithLabelValues(eventType).Observe(float64(ec.PatchCount()))
			return err
		}
	}
}

// errorCategory maps an error onto a bounded label value.
func errorCategory(err error) string {
	if fe := errors.FromError(err, ""); fe != nil && fe.Category != "" {
		return string(fe.Category)
	}
	return "internal"
}
