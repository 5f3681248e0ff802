// Package ftest is a test harness for Facet applications. It bootstraps a
// session without a listener or WebSocket and drives it with synthetic
// events, so component logic and bindings can be tested like any other Go
// code:
//
//	h := ftest.New(t, app)
//	h.Click(h.FindByTag("button"))
//	h.ExpectContains("clicked 1 times")
package ftest

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/facet-ui/facet/pkg/dom"
	"github.com/facet-ui/facet/pkg/protocol"
	"github.com/facet-ui/facet/pkg/server"
	"github.com/facet-ui/facet/pkg/view"
)

// Harness wraps one live session for a test.
type Harness struct {
	t        testing.TB
	session  *server.Session
	eventSeq uint64
}

// New bootstraps a session for app and registers cleanup with t. Middleware
// passed here runs around every dispatched event, same as on a server.
func New(t testing.TB, app *server.App, mws ...server.EventMiddleware) *Harness {
	t.Helper()
	cfg := server.DefaultConfig()
	cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	manager := server.NewSessionManager(&cfg)
	sess, err := manager.Create(app, mws)
	if err != nil {
		t.Fatalf("ftest: session bootstrap: %v", err)
	}
	t.Cleanup(func() { sess.Close(protocol.CloseNormal, "") })
	return &Harness{t: t, session: sess}
}

// Session returns the underlying session.
func (h *Harness) Session() *server.Session { return h.session }

// Root returns the document root.
func (h *Harness) Root() *dom.Node { return h.session.Document().Root() }

// HTML renders the current document body.
func (h *Harness) HTML() string { return h.session.BodyHTML() }

// Component returns the root component instance, for asserting on state
// directly.
func (h *Harness) Component() any {
	children := h.session.View().ComponentChildViews()
	if len(children) == 0 {
		h.t.Fatal("ftest: session has no component view")
	}
	return children[0].Context()
}

// FindByTag returns the first element with the given tag, failing the test
// when none exists.
func (h *Harness) FindByTag(tag string) *dom.Node {
	h.t.Helper()
	nodes := h.Root().QueryAllByTag(tag)
	if len(nodes) == 0 {
		h.t.Fatalf("ftest: no <%s> in document", tag)
	}
	return nodes[0]
}

// FindAllByTag returns every element with the given tag.
func (h *Harness) FindAllByTag(tag string) []*dom.Node {
	return h.Root().QueryAllByTag(tag)
}

// Click dispatches a click event on node and fails the test on a dispatch
// error.
func (h *Harness) Click(node *dom.Node) {
	h.t.Helper()
	if _, err := h.Dispatch(node, "click", ""); err != nil {
		h.t.Fatalf("ftest: click on <%s>: %v", node.Tag, err)
	}
}

// Input dispatches an input event carrying value.
func (h *Harness) Input(node *dom.Node, value string) {
	h.t.Helper()
	if _, err := h.Dispatch(node, "input", value); err != nil {
		h.t.Fatalf("ftest: input on <%s>: %v", node.Tag, err)
	}
}

// Dispatch sends a raw event and returns the dispatch result, for tests that
// assert on errors or patch counts.
func (h *Harness) Dispatch(node *dom.Node, eventType, value string) (*server.EventContext, error) {
	h.eventSeq++
	return h.session.Dispatch(&protocol.ClientEvent{
		Seq:    h.eventSeq,
		NodeID: node.ID(),
		Type:   eventType,
		Value:  value,
	})
}

// Update applies a server-side mutation, the harness equivalent of
// Session.Update.
func (h *Harness) Update(fn func(*view.View)) {
	h.t.Helper()
	if err := h.session.Update(fn); err != nil {
		h.t.Fatalf("ftest: update: %v", err)
	}
}

// ExpectContains fails the test when the rendered body does not contain
// substr.
func (h *Harness) ExpectContains(substr string) {
	h.t.Helper()
	if html := h.HTML(); !strings.Contains(html, substr) {
		h.t.Errorf("document missing %q\n%s", substr, html)
	}
}

// ExpectNotContains fails the test when the rendered body contains substr.
func (h *Harness) ExpectNotContains(substr string) {
	h.t.Helper()
	if html := h.HTML(); strings.Contains(html, substr) {
		h.t.Errorf("document unexpectedly contains %q\n%s", substr, html)
	}
}
