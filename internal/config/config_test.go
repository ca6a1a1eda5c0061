package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Editor.DebounceMS != 500 {
		t.Errorf("DebounceMS = %d, want 500", cfg.Editor.DebounceMS)
	}
	if cfg.Editor.MaxHistory != 1000 {
		t.Errorf("MaxHistory = %d, want 1000", cfg.Editor.MaxHistory)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Level = %q, want info", cfg.Logging.Level)
	}
	if cfg.Debounce() != 500*time.Millisecond {
		t.Errorf("Debounce() = %v, want 500ms", cfg.Debounce())
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeTemp(t, "config.toml", `
[editor]
debounce_ms = 250
max_history = 50

[logging]
level = "debug"

[ui]
theme = "light"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Editor.DebounceMS != 250 {
		t.Errorf("DebounceMS = %d, want 250", cfg.Editor.DebounceMS)
	}
	if cfg.Editor.MaxHistory != 50 {
		t.Errorf("MaxHistory = %d, want 50", cfg.Editor.MaxHistory)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("Theme = %q, want light", cfg.UI.Theme)
	}
	// Unset values keep defaults.
	if cfg.Editor.TabWidth != 4 {
		t.Errorf("TabWidth = %d, want default 4", cfg.Editor.TabWidth)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeTemp(t, "config.yaml", `
editor:
  debounce_ms: 100
logging:
  level: warn
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Editor.DebounceMS != 100 {
		t.Errorf("DebounceMS = %d, want 100", cfg.Editor.DebounceMS)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Level = %q, want warn", cfg.Logging.Level)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error for missing file: %v", err)
	}
	if cfg.Editor.DebounceMS != 500 {
		t.Errorf("DebounceMS = %d, want default 500", cfg.Editor.DebounceMS)
	}
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load(\"\") = %+v, want defaults", cfg)
	}
}

func TestLoadBadTOML(t *testing.T) {
	path := writeTemp(t, "config.toml", "editor = [broken")

	_, err := Load(path)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Load() error = %v, want *ParseError", err)
	}
	if parseErr.Path != path {
		t.Errorf("ParseError.Path = %q, want %q", parseErr.Path, path)
	}
}

func TestLoadUnknownExtension(t *testing.T) {
	path := writeTemp(t, "config.ini", "level=info")

	_, err := Load(path)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Load() error = %v, want *ParseError", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	path := writeTemp(t, "config.toml", `
[editor]
debounce_ms = 250
`)

	t.Setenv("SPLITMARK_DEBOUNCE_MS", "75")
	t.Setenv("SPLITMARK_LOG_LEVEL", "error")
	t.Setenv("SPLITMARK_THEME", "light")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Editor.DebounceMS != 75 {
		t.Errorf("DebounceMS = %d, want env override 75", cfg.Editor.DebounceMS)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("Level = %q, want error", cfg.Logging.Level)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("Theme = %q, want light", cfg.UI.Theme)
	}
}

func TestEnvBadIntIgnored(t *testing.T) {
	t.Setenv("SPLITMARK_MAX_HISTORY", "lots")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Editor.MaxHistory != 1000 {
		t.Errorf("MaxHistory = %d, want default 1000", cfg.Editor.MaxHistory)
	}
}

func TestNormalizeRejectsBadValues(t *testing.T) {
	path := writeTemp(t, "config.toml", `
[editor]
debounce_ms = -10
tab_width = 99

[logging]
level = "loud"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Editor.DebounceMS != 500 {
		t.Errorf("DebounceMS = %d, want default 500", cfg.Editor.DebounceMS)
	}
	if cfg.Editor.TabWidth != 4 {
		t.Errorf("TabWidth = %d, want default 4", cfg.Editor.TabWidth)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Level = %q, want default info", cfg.Logging.Level)
	}
}
