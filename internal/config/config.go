package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/facet-ui/facet/internal/errors"
)

// FileName is the project configuration file name.
const FileName = "facet.yaml"

// Duration is a time.Duration that marshals as a Go duration string.
type Duration time.Duration

func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config is the parsed facet.yaml.
type Config struct {
	// Name is the project name, used as the default page title.
	Name string `yaml:"name,omitempty"`

	Server ServerConfig `yaml:"server,omitempty"`
	Upload UploadConfig `yaml:"upload,omitempty"`
	Log    LogConfig    `yaml:"log,omitempty"`

	// path is where the config was loaded from.
	path string
}

// ServerConfig tunes the session server.
type ServerConfig struct {
	// Addr is the listen address.
	Addr string `yaml:"addr,omitempty"`

	// Heartbeat is the WebSocket ping interval.
	Heartbeat Duration `yaml:"heartbeat,omitempty"`

	// SessionTTL is how long an idle session survives.
	SessionTTL Duration `yaml:"session_ttl,omitempty"`

	// MaxSessions caps concurrent sessions.
	MaxSessions int `yaml:"max_sessions,omitempty"`
}

// UploadConfig tunes the upload endpoint.
type UploadConfig struct {
	// Store selects the backend: "memory", "disk", or "s3".
	Store string `yaml:"store,omitempty"`

	// Dir is the spool directory for the disk store.
	Dir string `yaml:"dir,omitempty"`

	// MaxSize caps each upload in bytes.
	MaxSize int64 `yaml:"max_size,omitempty"`

	// Expiry is how long unclaimed uploads live.
	Expiry Duration `yaml:"expiry,omitempty"`

	// S3 configures the s3 store.
	S3 S3Config `yaml:"s3,omitempty"`
}

// S3Config locates the upload bucket.
type S3Config struct {
	Bucket string `yaml:"bucket,omitempty"`
	Prefix string `yaml:"prefix,omitempty"`
}

// LogConfig tunes structured logging.
type LogConfig struct {
	// Level is "debug", "info", "warn", or "error".
	Level string `yaml:"level,omitempty"`

	// Format is "text" or "json".
	Format string `yaml:"format,omitempty"`
}

// New returns a config with every default applied.
func New() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.Heartbeat == 0 {
		c.Server.Heartbeat = Duration(30 * time.Second)
	}
	if c.Server.SessionTTL == 0 {
		c.Server.SessionTTL = Duration(10 * time.Minute)
	}
	if c.Server.MaxSessions == 0 {
		c.Server.MaxSessions = 10_000
	}
	if c.Upload.Store == "" {
		c.Upload.Store = "memory"
	}
	if c.Upload.Dir == "" {
		c.Upload.Dir = ".facet/uploads"
	}
	if c.Upload.MaxSize == 0 {
		c.Upload.MaxSize = 10 << 20
	}
	if c.Upload.Expiry == 0 {
		c.Upload.Expiry = Duration(time.Hour)
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Load reads facet.yaml from dir.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, FileName))
}

// LoadFile reads the configuration at path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.CodeConfigNotFound).
				WithMessagef("no %s in %s", FileName, filepath.Dir(path))
		}
		return nil, errors.New(errors.CodeConfigInvalid).Wrap(err)
	}

	c := &Config{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, errors.New(errors.CodeConfigInvalid).
			WithMessagef("%s is not valid YAML", FileName).Wrap(err)
	}
	c.path = path
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Find searches for facet.yaml from dir upward to the filesystem root.
func Find(dir string) (*Config, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	for {
		path := filepath.Join(abs, FileName)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return nil, errors.New(errors.CodeConfigNotFound).
				WithMessagef("no %s found in %s or any parent directory", FileName, dir)
		}
		abs = parent
	}
}

// Save writes the configuration to path and remembers it for Dir().
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.New(errors.CodeConfigInvalid).Wrap(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	c.path = path
	return nil
}

// Path returns where the config was loaded from, or "" for a fresh config.
func (c *Config) Path() string { return c.path }

// Dir returns the project root: the directory holding facet.yaml.
func (c *Config) Dir() string {
	if c.path == "" {
		return "."
	}
	return filepath.Dir(c.path)
}

// UploadDir returns the upload spool directory resolved against the project
// root.
func (c *Config) UploadDir() string {
	if filepath.IsAbs(c.Upload.Dir) {
		return c.Upload.Dir
	}
	return filepath.Join(c.Dir(), c.Upload.Dir)
}

var validStores = map[string]bool{"memory": true, "disk": true, "s3": true}
var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
var validFormats = map[string]bool{"text": true, "json": true}

// Validate rejects configurations the server cannot run with.
func (c *Config) Validate() error {
	if c.Server.MaxSessions < 0 {
		return errors.New(errors.CodeConfigInvalid).
			WithMessagef("server.max_sessions must not be negative, got %d", c.Server.MaxSessions)
	}
	if !validStores[c.Upload.Store] {
		return errors.New(errors.CodeConfigInvalid).
			WithMessagef("upload.store must be memory, disk, or s3, got %q", c.Upload.Store)
	}
	if c.Upload.Store == "s3" && c.Upload.S3.Bucket == "" {
		return errors.New(errors.CodeConfigInvalid).
			WithMessagef("upload.s3.bucket is required when upload.store is s3")
	}
	if c.Upload.MaxSize < 0 {
		return errors.New(errors.CodeConfigInvalid).
			WithMessagef("upload.max_size must not be negative, got %d", c.Upload.MaxSize)
	}
	if !validLevels[c.Log.Level] {
		return errors.New(errors.CodeConfigInvalid).
			WithMessagef("log.level must be debug, info, warn, or error, got %q", c.Log.Level)
	}
	if !validFormats[c.Log.Format] {
		return errors.New(errors.CodeConfigInvalid).
			WithMessagef("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// Logger builds the slog logger the config describes.
func (c *Config) Logger() *slog.Logger {
	var level slog.Level
	switch c.Log.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
