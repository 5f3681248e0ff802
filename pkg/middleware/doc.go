// Package middleware provides observability middleware for the Facet event
// pipeline.
//
// Both middlewares wrap the server's event dispatch, so every client event
// passes through them before touching the view tree:
//
//	srv := server.New(app)
//	srv.Use(
//	    middleware.OpenTelemetry(),
//	    middleware.Prometheus(),
//	)
//
// The Prometheus middleware counts and times events on the default registry;
// the server already exposes /metrics. The OpenTelemetry middleware opens a
// span per event and injects the span context into the event context, so
// handlers making downstream calls inherit the trace:
//
//	func audit(next server.EventHandler) server.EventHandler {
//	    return func(ec *server.EventContext) error {
//	        req, _ := http.NewRequestWithContext(ec.Context(), "POST", url, nil)
//	        ...
//	        return next(ec)
//	    }
//	}
//
// The tracer comes from the global OpenTelemetry provider; configure it in
// main() before starting the server.
package middleware
