package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/facet-ui/facet/internal/errors"
)

func writeConfig(t *testing.T, dir, contents string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestNewHasDefaults(t *testing.T) {
	c := New()
	if c.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want :8080", c.Server.Addr)
	}
	if c.Server.SessionTTL.Std() != 10*time.Minute {
		t.Errorf("Server.SessionTTL = %v, want 10m", c.Server.SessionTTL.Std())
	}
	if c.Upload.Store != "memory" {
		t.Errorf("Upload.Store = %q, want memory", c.Upload.Store)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "name: demo\n")

	c, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Name != "demo" {
		t.Errorf("Name = %q, want demo", c.Name)
	}
	if c.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want default :8080", c.Server.Addr)
	}
	if c.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want default info", c.Log.Level)
	}
}

func TestLoadParsesFullConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `name: demo
server:
  addr: ":9000"
  heartbeat: 15s
  session_ttl: 5m
  max_sessions: 100
upload:
  store: disk
  dir: tmp/uploads
  max_size: 1048576
  expiry: 30m
log:
  level: debug
  format: json
`)

	c, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Server.Addr != ":9000" {
		t.Errorf("Server.Addr = %q, want :9000", c.Server.Addr)
	}
	if c.Server.Heartbeat.Std() != 15*time.Second {
		t.Errorf("Heartbeat = %v, want 15s", c.Server.Heartbeat.Std())
	}
	if c.Server.MaxSessions != 100 {
		t.Errorf("MaxSessions = %d, want 100", c.Server.MaxSessions)
	}
	if c.Upload.Store != "disk" {
		t.Errorf("Upload.Store = %q, want disk", c.Upload.Store)
	}
	if c.Upload.Expiry.Std() != 30*time.Minute {
		t.Errorf("Upload.Expiry = %v, want 30m", c.Upload.Expiry.Std())
	}
	if got := c.UploadDir(); got != filepath.Join(dir, "tmp/uploads") {
		t.Errorf("UploadDir = %q, want project-relative path", got)
	}
	if c.Log.Level != "debug" || c.Log.Format != "json" {
		t.Errorf("Log = %+v, want debug/json", c.Log)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(t.TempDir())
	if !errors.HasCode(err, errors.CodeConfigNotFound) {
		t.Fatalf("err = %v, want F501", err)
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "server: [not a mapping\n")
	_, err := Load(dir)
	if !errors.HasCode(err, errors.CodeConfigInvalid) {
		t.Fatalf("err = %v, want F502", err)
	}
}

func TestLoadBadDuration(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "server:\n  heartbeat: soon\n")
	_, err := Load(dir)
	if !errors.HasCode(err, errors.CodeConfigInvalid) {
		t.Fatalf("err = %v, want F502", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative sessions", func(c *Config) { c.Server.MaxSessions = -1 }},
		{"unknown store", func(c *Config) { c.Upload.Store = "ftp" }},
		{"s3 without bucket", func(c *Config) { c.Upload.Store = "s3" }},
		{"negative max size", func(c *Config) { c.Upload.MaxSize = -1 }},
		{"unknown level", func(c *Config) { c.Log.Level = "loud" }},
		{"unknown format", func(c *Config) { c.Log.Format = "xml" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := New()
			tc.mutate(c)
			if err := c.Validate(); !errors.HasCode(err, errors.CodeConfigInvalid) {
				t.Errorf("err = %v, want F502", err)
			}
		})
	}
}

func TestValidateAcceptsS3WithBucket(t *testing.T) {
	c := New()
	c.Upload.Store = "s3"
	c.Upload.S3.Bucket = "assets"
	if err := c.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestFindSearchesUpward(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "name: nested\n")
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	c, err := Find(nested)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if c.Name != "nested" {
		t.Errorf("Name = %q, want nested", c.Name)
	}
	if got := c.Dir(); got != root {
		t.Errorf("Dir = %q, want %q", got, root)
	}
}

func TestFindMissing(t *testing.T) {
	_, err := Find(t.TempDir())
	if !errors.HasCode(err, errors.CodeConfigNotFound) {
		t.Fatalf("err = %v, want F501", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	c := New()
	c.Name = "saved"
	c.Server.Addr = ":7070"
	c.Server.Heartbeat = Duration(45 * time.Second)

	path := filepath.Join(dir, FileName)
	if err := c.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if loaded.Name != "saved" {
		t.Errorf("Name = %q, want saved", loaded.Name)
	}
	if loaded.Server.Addr != ":7070" {
		t.Errorf("Server.Addr = %q, want :7070", loaded.Server.Addr)
	}
	if loaded.Server.Heartbeat.Std() != 45*time.Second {
		t.Errorf("Heartbeat = %v, want 45s", loaded.Server.Heartbeat.Std())
	}
}
