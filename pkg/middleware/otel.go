package middleware

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/facet-ui/facet/pkg/server"
)

const defaultTracerName = "facet"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the tracer name (default "facet").
	TracerName string

	// Filter decides which events to trace. Nil traces everything.
	Filter func(ec *server.EventContext) bool

	// AttributeExtractor adds custom attributes to each event span.
	AttributeExtractor func(ec *server.EventContext) []attribute.KeyValue

	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) { c.TracerName = name }
}

// WithEventFilter sets a predicate selecting which events get traced.
func WithEventFilter(filter func(ec *server.EventContext) bool) OTelOption {
	return func(c *OTelConfig) { c.Filter = filter }
}

// WithAttributeExtractor sets a custom span attribute extractor.
func WithAttributeExtractor(extractor func(ec *server.EventContext) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) { c.AttributeExtractor = extractor }
}

// OpenTelemetry creates event middleware that opens one span per dispatched
// event. The span context is injected into the event context, so anything a
// handler calls with ec.Context() inherits the trace. Errors are recorded on
// the span, and the patch count lands as an attribute after dispatch.
//
// The tracer comes from the global provider; set it up with
// otel.SetTracerProvider before the server starts.
func OpenTelemetry(opts ...OTelOption) server.EventMiddleware {
	cfg := OTelConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.tracer = otel.Tracer(cfg.TracerName)

	return func(next server.EventHandler) server.EventHandler {
		return func(ec *server.EventContext) error {
			if cfg.Filter != nil && !cfg.Filter(ec) {
				return next(ec)
			}

			ev := ec.Event()
			attrs := []attribute.KeyValue{
				attribute.String("facet.event_type", ev.Type),
				attribute.String("facet.event_target", ev.NodeID),
				attribute.Int64("facet.event_seq", int64(ev.Seq)),
			}
			if sess := ec.Session(); sess != nil {
				attrs = append(attrs, attribute.String("facet.session_id", sess.ID()))
			}
			if cfg.AttributeExtractor != nil {
				attrs = append(attrs, cfg.AttributeExtractor(ec)...)
			}

			spanCtx, span := cfg.tracer.Start(
				ec.Context(),
				"facet."+ev.Type,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(attrs...),
			)
			defer span.End()
			ec.WithContext(spanCtx)

			err := next(ec)

			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			} else {
				span.SetStatus(codes.Ok, "")
			}
			span.SetAttributes(attribute.Int("facet.patch_count", ec.PatchCount()))
			return err
		}
	}
}

// SpanFromEvent returns the span tracing the event, or a no-op span when the
// event is untraced.
func SpanFromEvent(ec *server.EventContext) trace.Span {
	return trace.SpanFromContext(ec.Context())
}
