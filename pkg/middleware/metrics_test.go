package middleware

import (
	stderrors "errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	facerr "github.com/facet-ui/facet/internal/errors"
	"github.com/facet-ui/facet/pkg/protocol"
	"github.com/facet-ui/facet/pkg/server"
)

func resetGlobalMetricsForTest() {
	globalMetricsMu.Lock()
	globalMetrics = nil
	globalMetricsMu.Unlock()
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("counter Write: %v", err)
	}
	return m.GetCounter().GetValue()
}

func histogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	metric, ok := o.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T does not implement prometheus.Metric", o)
	}
	var m dto.Metric
	if err := metric.Write(&m); err != nil {
		t.Fatalf("histogram Write: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

func clickEvent() *server.EventContext {
	return server.NewEventContext(nil, &protocol.ClientEvent{
		Seq:    1,
		NodeID: "f1",
		Type:   "click",
	})
}

func TestPrometheusRecordsSuccess(t *testing.T) {
	resetGlobalMetricsForTest()
	mw := Prometheus(WithRegistry(prometheus.NewRegistry()))

	handler := mw(func(*server.EventContext) error { return nil })
	if err := handler(clickEvent()); err != nil {
		t.Fatalf("handler: %v", err)
	}

	m := globalMetrics
	if got := counterValue(t, m.handled.WithLabelValues("click", "ok")); got != 1 {
		t.Errorf("handled{click,ok} = %v, want 1", got)
	}
	if got := counterValue(t, m.handled.WithLabelValues("click", "error")); got != 0 {
		t.Errorf("handled{click,error} = %v, want 0", got)
	}
	if got := histogramCount(t, m.duration.WithLabelValues("click")); got != 1 {
		t.Errorf("duration sample count = %v, want 1", got)
	}
	if got := histogramCount(t, m.patches.WithLabelValues("click")); got != 1 {
		t.Errorf("patches sample count = %v, want 1", got)
	}
}

func TestPrometheusRecordsFailureCategory(t *testing.T) {
	resetGlobalMetricsForTest()
	mw := Prometheus(WithRegistry(prometheus.NewRegistry()))

	handler := mw(func(*server.EventContext) error {
		return facerr.Newf(facerr.CategoryBinding, "no such property")
	})
	wantErr := handler(clickEvent())
	if wantErr == nil {
		t.Fatal("error was swallowed by middleware")
	}

	m := globalMetrics
	if got := counterValue(t, m.handled.WithLabelValues("click", "error")); got != 1 {
		t.Errorf("handled{click,error} = %v, want 1", got)
	}
	if got := counterValue(t, m.failures.WithLabelValues("click", "binding")); got != 1 {
		t.Errorf("failures{click,binding} = %v, want 1", got)
	}
}

func TestPrometheusPlainErrorsAreInternal(t *testing.T) {
	resetGlobalMetricsForTest()
	mw := Prometheus(WithRegistry(prometheus.NewRegistry()))

	handler := mw(func(*server.EventContext) error {
		return stderrors.New("boom")
	})
	if err := handler(clickEvent()); err == nil {
		t.Fatal("error was swallowed by middleware")
	}

	if got := counterValue(t, globalMetrics.failures.WithLabelValues("click", "internal")); got != 1 {
		t.Errorf("failures{click,internal} = %v, want 1", got)
	}
}

func TestPrometheusSharesCollectors(t *testing.T) {
	resetGlobalMetricsForTest()
	reg := prometheus.NewRegistry()
	// A second Prometheus() on the same registry must reuse the collectors
	// instead of panicking on duplicate registration.
	Prometheus(WithRegistry(reg))
	Prometheus(WithRegistry(reg))
}
