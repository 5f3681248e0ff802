package server

import (
	"log/slog"
	"time"
)

// Config holds the server's tunable settings.
type Config struct {
	// Addr is the listen address.
	Addr string

	// ReadTimeout bounds how long a WebSocket read may block. The heartbeat
	// keeps healthy connections inside this window.
	ReadTimeout time.Duration

	// WriteTimeout bounds individual WebSocket writes.
	WriteTimeout time.Duration

	// HeartbeatInterval is how often the server pings the client.
	HeartbeatInterval time.Duration

	// SessionTTL is how long a session may stay idle before the manager
	// evicts it.
	SessionTTL time.Duration

	// MaxSessions caps concurrently live sessions.
	MaxSessions int

	// MaxEventQueue caps buffered client events per session. Events past the
	// cap are dropped with an error frame.
	MaxEventQueue int

	// PatchHistorySize is how many sent patch batches a session retains for
	// resync replay.
	PatchHistorySize int

	// Logger receives structured server logs.
	Logger *slog.Logger
}

// DefaultConfig returns the configuration the server starts from.
func DefaultConfig() Config {
	return Config{
		Addr:              ":8080",
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      10 * time.Second,
		HeartbeatInterval: 30 * time.Second,
		SessionTTL:        10 * time.Minute,
		MaxSessions:       10_000,
		MaxEventQueue:     256,
		PatchHistorySize:  100,
		Logger:            slog.Default(),
	}
}

// Option adjusts the server configuration.
type Option func(*Config)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(c *Config) { c.Addr = addr }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) { c.Logger = logger }
}

// WithSessionTTL sets the idle session lifetime.
func WithSessionTTL(ttl time.Duration) Option {
	return func(c *Config) { c.SessionTTL = ttl }
}

// WithMaxSessions caps concurrently live sessions.
func WithMaxSessions(n int) Option {
	return func(c *Config) { c.MaxSessions = n }
}

// WithHeartbeatInterval sets the server ping cadence.
func WithHeartbeatInterval(d time.Duration) Option {
	return func(c *Config) { c.HeartbeatInterval = d }
}

// WithPatchHistorySize sets how many patch batches are kept for resync.
func WithPatchHistorySize(n int) Option {
	return func(c *Config) { c.PatchHistorySize = n }
}
