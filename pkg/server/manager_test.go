package server

import (
	"testing"
	"time"

	"github.com/facet-ui/facet/pkg/protocol"
)

func TestManagerCreateAndGet(t *testing.T) {
	cfg := quietConfig()
	m := NewSessionManager(&cfg)

	s, err := m.Create(newCounterApp(), nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if s.ID() == "" {
		t.Error("session has empty id")
	}
	if got := m.Get(s.ID()); got != s {
		t.Error("Get did not return the created session")
	}
	if got := m.Len(); got != 1 {
		t.Errorf("Len = %d, want 1", got)
	}
	if got := m.Get("nope"); got != nil {
		t.Errorf("Get(nope) = %v, want nil", got)
	}
}

func TestManagerSessionIDsUnique(t *testing.T) {
	cfg := quietConfig()
	m := NewSessionManager(&cfg)
	a, err := m.Create(newCounterApp(), nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	b, err := m.Create(newCounterApp(), nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.ID() == b.ID() {
		t.Errorf("two sessions share id %q", a.ID())
	}
}

func TestManagerSessionLimit(t *testing.T) {
	cfg := quietConfig()
	cfg.MaxSessions = 1
	m := NewSessionManager(&cfg)

	if _, err := m.Create(newCounterApp(), nil); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := m.Create(newCounterApp(), nil); err == nil {
		t.Fatal("Create over the session limit succeeded, want error")
	}
}

func TestManagerCloseFreesSlot(t *testing.T) {
	cfg := quietConfig()
	cfg.MaxSessions = 1
	m := NewSessionManager(&cfg)

	s, err := m.Create(newCounterApp(), nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	s.Close(protocol.CloseNormal, "")
	if got := m.Len(); got != 0 {
		t.Fatalf("Len after close = %d, want 0", got)
	}
	if _, err := m.Create(newCounterApp(), nil); err != nil {
		t.Errorf("Create after close: %v", err)
	}
}

func TestManagerEvictIdle(t *testing.T) {
	cfg := quietConfig()
	cfg.SessionTTL = time.Minute
	m := NewSessionManager(&cfg)

	idle, err := m.Create(newCounterApp(), nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	fresh, err := m.Create(newCounterApp(), nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	idle.lastActive.Store(time.Now().Add(-time.Hour).UnixNano())

	m.evictIdle()

	if !idle.Closed() {
		t.Error("idle session not closed")
	}
	if fresh.Closed() {
		t.Error("fresh session closed")
	}
	if got := m.Len(); got != 1 {
		t.Errorf("Len after eviction = %d, want 1", got)
	}
}

func TestManagerCloseAll(t *testing.T) {
	cfg := quietConfig()
	m := NewSessionManager(&cfg)
	var sessions []*Session
	for i := 0; i < 3; i++ {
		s, err := m.Create(newCounterApp(), nil)
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		sessions = append(sessions, s)
	}
	m.CloseAll()
	for _, s := range sessions {
		if !s.Closed() {
			t.Errorf("session %s still open", s.ID())
		}
	}
	if got := m.Len(); got != 0 {
		t.Errorf("Len = %d, want 0", got)
	}
}
