package server

import (
	"context"

	"github.com/facet-ui/facet/pkg/protocol"
)

// EventContext carries one client event through the session's middleware
// chain into the dispatch handler.
type EventContext struct {
	ctx        context.Context
	session    *Session
	event      *protocol.ClientEvent
	patchCount int
	values     map[any]any
}

// NewEventContext builds the context for dispatching one event on a session.
// The server builds one per received event; custom transports and middleware
// tests can too.
func NewEventContext(s *Session, event *protocol.ClientEvent) *EventContext {
	return &EventContext{session: s, event: event}
}

// Context returns the request-scoped context.
func (ec *EventContext) Context() context.Context {
	if ec.ctx == nil {
		return context.Background()
	}
	return ec.ctx
}

// WithContext replaces the request-scoped context. Middleware uses this to
// inject trace contexts for downstream calls.
func (ec *EventContext) WithContext(ctx context.Context) { ec.ctx = ctx }

// Session returns the session the event belongs to.
func (ec *EventContext) Session() *Session { return ec.session }

// Event returns the decoded client event.
func (ec *EventContext) Event() *protocol.ClientEvent { return ec.event }

// PatchCount returns how many mutations the dispatch produced. Valid after
// the inner handler has run.
func (ec *EventContext) PatchCount() int { return ec.patchCount }

// SetValue stores a middleware-scoped value.
func (ec *EventContext) SetValue(key, value any) {
	if ec.values == nil {
		ec.values = make(map[any]any)
	}
	ec.values[key] = value
}

// Value retrieves a middleware-scoped value, or nil.
func (ec *EventContext) Value(key any) any { return ec.values[key] }

// EventHandler processes one client event.
type EventHandler func(*EventContext) error

// EventMiddleware wraps an EventHandler.
type EventMiddleware func(EventHandler) EventHandler

// chainMiddleware composes middleware so the first entry is outermost.
func chainMiddleware(handler EventHandler, mws []EventMiddleware) EventHandler {
	for i := len(mws) - 1; i >= 0; i-- {
		handler = mws[i](handler)
	}
	return handler
}
