package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadMissingFileDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ResolvedBaseURL() != DefaultBaseURL {
		t.Fatalf("base url = %q", cfg.ResolvedBaseURL())
	}
	if cfg.PostPause() != 2*time.Second {
		t.Fatalf("post pause = %v", cfg.PostPause())
	}
	if !cfg.LogConsole() {
		t.Fatal("console logging should default on")
	}
}

func TestLoadYAML(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
base_url: https://example.test
composer:
  preview_wait: 5s
  preview_poll: 100ms
run:
  post_pause: 250ms
history:
  driver: sqlite
  path: ./history.db
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ResolvedBaseURL() != "https://example.test" {
		t.Fatalf("base url = %q", cfg.ResolvedBaseURL())
	}
	if cfg.Composer.PreviewWait != "5s" {
		t.Fatalf("preview wait = %q", cfg.Composer.PreviewWait)
	}
	if cfg.PostPause() != 250*time.Millisecond {
		t.Fatalf("post pause = %v", cfg.PostPause())
	}
	if cfg.History == nil || cfg.History.Driver != "sqlite" {
		t.Fatalf("history = %+v", cfg.History)
	}
	if cfg.LogLevel() != "debug" {
		t.Fatalf("log level = %q", cfg.LogLevel())
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("composer:\n  preview_wiat: 5s\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "unknown field") {
		t.Fatalf("expected unknown-field error, got %v", err)
	}
}

func TestParseDurationOrDefault(t *testing.T) {
	t.Parallel()
	d, err := ParseDurationOrDefault("x", "", time.Minute)
	if err != nil || d != time.Minute {
		t.Fatalf("empty: %v, %v", d, err)
	}
	d, err = ParseDurationOrDefault("x", "15s", time.Minute)
	if err != nil || d != 15*time.Second {
		t.Fatalf("15s: %v, %v", d, err)
	}
	if _, err = ParseDurationOrDefault("x", "nope", time.Minute); err == nil {
		t.Fatal("expected error for invalid duration")
	}
}
