package middleware

import (
	stderrors "errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"

	"github.com/facet-ui/facet/pkg/protocol"
	"github.com/facet-ui/facet/pkg/server"
)

func TestOpenTelemetryInjectsSpanContext(t *testing.T) {
	extracted := false
	mw := OpenTelemetry(
		WithTracerName("facet-test"),
		WithAttributeExtractor(func(*server.EventContext) []attribute.KeyValue {
			extracted = true
			return []attribute.KeyValue{attribute.String("test.attr", "ok")}
		}),
	)

	called := false
	handler := mw(func(ec *server.EventContext) error {
		called = true
		if SpanFromEvent(ec) == nil {
			t.Error("no span on the event context during dispatch")
		}
		return nil
	})
	if err := handler(clickEvent()); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if !called {
		t.Error("inner handler not called")
	}
	if !extracted {
		t.Error("attribute extractor not called")
	}
}

func TestOpenTelemetryPropagatesErrors(t *testing.T) {
	mw := OpenTelemetry()
	want := stderrors.New("dispatch failed")
	handler := mw(func(*server.EventContext) error { return want })
	if err := handler(clickEvent()); !stderrors.Is(err, want) {
		t.Fatalf("err = %v, want %v", err, want)
	}
}

func TestOpenTelemetryFilterSkipsTracing(t *testing.T) {
	extracted := false
	mw := OpenTelemetry(
		WithEventFilter(func(ec *server.EventContext) bool {
			return ec.Event().Type != "mousemove"
		}),
		WithAttributeExtractor(func(*server.EventContext) []attribute.KeyValue {
			extracted = true
			return nil
		}),
	)

	called := false
	handler := mw(func(*server.EventContext) error {
		called = true
		return nil
	})
	ec := server.NewEventContext(nil, &protocol.ClientEvent{Type: "mousemove"})
	if err := handler(ec); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if !called {
		t.Error("filtered event did not reach the handler")
	}
	if extracted {
		t.Error("attribute extractor ran for a filtered event")
	}
}
