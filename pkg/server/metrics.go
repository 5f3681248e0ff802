package server

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// serverMetrics are the Prometheus collectors the session layer feeds.
// Registered once against the default registry; the Server exposes them on
// /metrics.
type serverMetrics struct {
	activeSessions  prometheus.Gauge
	sessionsTotal   prometheus.Counter
	eventsTotal     *prometheus.CounterVec
	patchesTotal    prometheus.Counter
	patchBytesTotal prometheus.Counter
	resyncsTotal    *prometheus.CounterVec
	wsErrorsTotal   *prometheus.CounterVec
}

var (
	metricsOnce sync.Once
	metricsInst *serverMetrics
)

func getMetrics() *serverMetrics {
	metricsOnce.Do(func() {
		metricsInst = &serverMetrics{
			activeSessions: promauto.NewGauge(prometheus.GaugeOpts{
				Namespace: "facet",
				Subsystem: "server",
				Name:      "active_sessions",
				Help:      "Number of live sessions.",
			}),
			sessionsTotal: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "facet",
				Subsystem: "server",
				Name:      "sessions_total",
				Help:      "Total sessions created.",
			}),
			eventsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Namespace: "facet",
				Subsystem: "server",
				Name:      "events_total",
				Help:      "Client events processed, by DOM event type and status.",
			}, []string{"type", "status"}),
			patchesTotal: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "facet",
				Subsystem: "server",
				Name:      "patches_total",
				Help:      "DOM mutations sent to clients.",
			}),
			patchBytesTotal: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "facet",
				Subsystem: "server",
				Name:      "patch_bytes_total",
				Help:      "Bytes of patch frames sent to clients.",
			}),
			resyncsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Namespace: "facet",
				Subsystem: "server",
				Name:      "resyncs_total",
				Help:      "Resync requests served, by outcome (replay or full).",
			}, []string{"outcome"}),
			wsErrorsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Namespace: "facet",
				Subsystem: "server",
				Name:      "websocket_errors_total",
				Help:      "WebSocket failures, by kind.",
			}, []string{"kind"}),
		}
	})
	return metricsInst
}
