package server

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/facet-ui/facet/pkg/change"
	"github.com/facet-ui/facet/pkg/dom"
	"github.com/facet-ui/facet/pkg/protocol"
	"github.com/facet-ui/facet/pkg/shadow"
	"github.com/facet-ui/facet/pkg/view"
)

type clickCounter struct {
	Count int
}

func (c *clickCounter) Bump(*dom.Event) { c.Count++ }

// newCounterApp builds a one-button app: the button's text tracks Count and
// clicking it increments.
func newCounterApp() *App {
	root := dom.NewElement("div")
	btn := dom.NewElement("button")
	btn.AddClass(view.BindingClass)
	btn.AppendChild(dom.NewText(""))
	root.AppendChild(btn)

	pv := view.NewProtoView(root, change.NewProtoRecordRange(), shadow.EmulatedStrategy{})
	pv.BindElement(view.NewProtoElementInjector(nil, 0), nil, nil)
	pv.BindTextNode(0, change.Path("count"))
	pv.BindEvent("click", change.Call("bump", change.Path("$event")))

	return &App{
		Title: "counter",
		RootComponent: &view.DirectiveType{
			Name:    "Counter",
			Factory: func(view.DirectiveDeps) any { return &clickCounter{} },
		},
		ComponentView: pv,
	}
}

func quietConfig() Config {
	cfg := DefaultConfig()
	cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return cfg
}

func newTestSession(t *testing.T) (*SessionManager, *Session) {
	t.Helper()
	cfg := quietConfig()
	m := NewSessionManager(&cfg)
	s, err := m.Create(newCounterApp(), nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return m, s
}

func buttonNode(t *testing.T, s *Session) *dom.Node {
	t.Helper()
	buttons := s.Document().Root().QueryAllByTag("button")
	if len(buttons) != 1 {
		t.Fatalf("found %d buttons, want 1", len(buttons))
	}
	return buttons[0]
}

func TestSessionBootstrapRendersInitialState(t *testing.T) {
	_, s := newTestSession(t)

	html := s.BodyHTML()
	if !strings.Contains(html, ">0</button>") {
		t.Errorf("initial body %q does not render the starting count", html)
	}
	// Bootstrap mutations belong to the initial render, not the patch stream.
	if muts := s.Document().TakeMutations(); len(muts) != 0 {
		t.Errorf("%d mutations queued after bootstrap, want 0", len(muts))
	}
}

func TestSessionDispatchUpdatesDOMAndHistory(t *testing.T) {
	_, s := newTestSession(t)
	btn := buttonNode(t, s)

	ec := &EventContext{session: s, event: &protocol.ClientEvent{
		Seq:    1,
		NodeID: btn.ID(),
		Type:   "click",
	}}
	if err := s.handler(ec); err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	if got := btn.FirstChild().Text(); got != "1" {
		t.Errorf("button text = %q, want 1", got)
	}
	if ec.PatchCount() == 0 {
		t.Error("PatchCount = 0, want at least one mutation")
	}
	// No connection yet: the batch must wait in history for a resync.
	if got := s.history.size(); got != 1 {
		t.Errorf("history size = %d, want 1", got)
	}
	if got := s.sendSeq.Load(); got != 1 {
		t.Errorf("sendSeq = %d, want 1", got)
	}
}

func TestSessionDispatchUnknownNode(t *testing.T) {
	_, s := newTestSession(t)
	ec := &EventContext{session: s, event: &protocol.ClientEvent{
		NodeID: "missing",
		Type:   "click",
	}}
	if err := s.handler(ec); err == nil {
		t.Fatal("dispatch for unknown node succeeded, want error")
	}
}

func TestSessionDispatchRunsMiddleware(t *testing.T) {
	cfg := quietConfig()
	m := NewSessionManager(&cfg)
	var seen []string
	mw := func(next EventHandler) EventHandler {
		return func(ec *EventContext) error {
			seen = append(seen, ec.Event().Type)
			return next(ec)
		}
	}
	s, err := m.Create(newCounterApp(), []EventMiddleware{mw})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	btn := buttonNode(t, s)
	ec := &EventContext{session: s, event: &protocol.ClientEvent{NodeID: btn.ID(), Type: "click"}}
	if err := s.handler(ec); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if len(seen) != 1 || seen[0] != "click" {
		t.Errorf("middleware saw %v, want [click]", seen)
	}
}

func TestSessionUpdate(t *testing.T) {
	_, s := newTestSession(t)
	btn := buttonNode(t, s)

	err := s.Update(func(v *view.View) {
		v.ComponentChildViews()[0].Context().(*clickCounter).Count = 42
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got := btn.FirstChild().Text(); got != "42" {
		t.Errorf("button text = %q, want 42", got)
	}
	if got := s.history.size(); got != 1 {
		t.Errorf("history size = %d, want 1", got)
	}
}

func TestSessionUpdateNoChangesSendsNothing(t *testing.T) {
	_, s := newTestSession(t)
	if err := s.Update(func(*view.View) {}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got := s.history.size(); got != 0 {
		t.Errorf("history size = %d, want 0", got)
	}
	if got := s.sendSeq.Load(); got != 0 {
		t.Errorf("sendSeq = %d, want 0", got)
	}
}

func TestSessionAckTrimsHistory(t *testing.T) {
	_, s := newTestSession(t)
	btn := buttonNode(t, s)
	for i := 0; i < 3; i++ {
		ec := &EventContext{session: s, event: &protocol.ClientEvent{NodeID: btn.ID(), Type: "click"}}
		if err := s.handler(ec); err != nil {
			t.Fatalf("dispatch %d: %v", i, err)
		}
	}
	if got := s.history.size(); got != 3 {
		t.Fatalf("history size = %d, want 3", got)
	}
	s.handleAck(&protocol.Ack{LastSeq: 2})
	if got := s.history.size(); got != 1 {
		t.Errorf("history size after ack = %d, want 1", got)
	}
}

func TestSessionCloseDehydratesAndUnregisters(t *testing.T) {
	m, s := newTestSession(t)
	s.Close(protocol.CloseNormal, "")

	if !s.Closed() {
		t.Error("Closed() = false after Close")
	}
	if s.View().Hydrated() {
		t.Error("root view still hydrated after Close")
	}
	if got := m.Get(s.ID()); got != nil {
		t.Error("manager still returns the closed session")
	}
	// Second close is a no-op.
	s.Close(protocol.CloseNormal, "")
}
