package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"sync"
	"time"

	"github.com/facet-ui/facet/internal/errors"
	"github.com/facet-ui/facet/pkg/protocol"
)

// SessionManager owns all live sessions: creation against the session cap,
// lookup for the WebSocket attach, and eviction of idle sessions.
type SessionManager struct {
	cfg    *Config
	logger *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionManager creates a manager bound to the server config.
func NewSessionManager(cfg *Config) *SessionManager {
	return &SessionManager{
		cfg:      cfg,
		logger:   cfg.Logger,
		sessions: make(map[string]*Session),
	}
}

// Create bootstraps a new session for app.
func (m *SessionManager) Create(app *App, mws []EventMiddleware) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sessions) >= m.cfg.MaxSessions {
		return nil, errors.Newf(errors.CategoryRuntime,
			"session limit reached (%d)", m.cfg.MaxSessions)
	}
	id, err := newSessionID()
	if err != nil {
		return nil, err
	}
	s, err := newSession(id, app, m.cfg, mws)
	if err != nil {
		return nil, err
	}
	s.onClose = m.remove
	m.sessions[id] = s
	mx := getMetrics()
	mx.sessionsTotal.Inc()
	mx.activeSessions.Set(float64(len(m.sessions)))
	return s, nil
}

// Get returns the session with the given id, or nil.
func (m *SessionManager) Get(id string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[id]
}

// Len returns the number of live sessions.
func (m *SessionManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *SessionManager) remove(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sessions[s.id] == s {
		delete(m.sessions, s.id)
		getMetrics().activeSessions.Set(float64(len(m.sessions)))
	}
}

// Sweep runs the idle-session reaper until ctx is done.
func (m *SessionManager) Sweep(ctx context.Context) {
	interval := m.cfg.SessionTTL / 4
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.evictIdle()
		case <-ctx.Done():
			return
		}
	}
}

func (m *SessionManager) evictIdle() {
	cutoff := time.Now().Add(-m.cfg.SessionTTL)
	m.mu.RLock()
	var idle []*Session
	for _, s := range m.sessions {
		if s.LastActive().Before(cutoff) {
			idle = append(idle, s)
		}
	}
	m.mu.RUnlock()
	for _, s := range idle {
		m.logger.Info("evicting idle session", "session", s.ID())
		s.Close(protocol.CloseSessionExpired, "idle timeout")
	}
}

// CloseAll shuts every session down, used during server shutdown.
func (m *SessionManager) CloseAll() {
	m.mu.RLock()
	all := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		all = append(all, s)
	}
	m.mu.RUnlock()
	for _, s := range all {
		s.Close(protocol.CloseServerShutdown, "server shutting down")
	}
}

func newSessionID() (string, error) {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", errors.Newf(errors.CategoryRuntime, "session id generation failed").Wrap(err)
	}
	return hex.EncodeToString(b[:]), nil
}
