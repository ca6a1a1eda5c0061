// Package config loads Splitmark settings from TOML or YAML files with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "SPLITMARK_"

// Config holds all Splitmark settings.
type Config struct {
	Editor  EditorConfig  `toml:"editor" yaml:"editor"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
	UI      UIConfig      `toml:"ui" yaml:"ui"`
}

// EditorConfig holds document editing settings.
type EditorConfig struct {
	// DebounceMS is the quiet period in milliseconds before an edit
	// becomes a history entry.
	DebounceMS int `toml:"debounce_ms" yaml:"debounce_ms"`

	// MaxHistory caps the number of undo entries.
	MaxHistory int `toml:"max_history" yaml:"max_history"`

	// TabWidth is the display width of a tab character.
	TabWidth int `toml:"tab_width" yaml:"tab_width"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `toml:"level" yaml:"level"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Theme string `toml:"theme" yaml:"theme"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Editor: EditorConfig{
			DebounceMS: 500,
			MaxHistory: 1000,
			TabWidth:   4,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		UI: UIConfig{
			Theme: "dark",
		},
	}
}

// Debounce returns the debounce window as a duration.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Editor.DebounceMS) * time.Millisecond
}

// ParseError describes a configuration file that could not be parsed.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing config %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Load returns the configuration from the given file, overlaid with
// environment variables. A missing file is not an error; defaults apply.
// An empty path skips file loading entirely.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(&cfg, path); err != nil {
			return cfg, err
		}
	}

	applyEnv(&cfg)
	cfg.normalize()
	return cfg, nil
}

// loadFile parses a config file into cfg, dispatching on extension.
func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return &ParseError{Path: path, Message: err.Error(), Err: err}
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return &ParseError{Path: path, Message: err.Error(), Err: err}
		}
	default:
		return &ParseError{Path: path, Message: fmt.Sprintf("unsupported config format %q", ext)}
	}

	return nil
}

// applyEnv overlays SPLITMARK_ environment variables onto cfg.
// Empty values are treated as unset.
func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvPrefix + "LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv(EnvPrefix + "THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if n, ok := envInt(EnvPrefix + "DEBOUNCE_MS"); ok {
		cfg.Editor.DebounceMS = n
	}
	if n, ok := envInt(EnvPrefix + "MAX_HISTORY"); ok {
		cfg.Editor.MaxHistory = n
	}
	if n, ok := envInt(EnvPrefix + "TAB_WIDTH"); ok {
		cfg.Editor.TabWidth = n
	}
}

// envInt reads an integer environment variable.
func envInt(name string) (int, bool) {
	v := os.Getenv(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// normalize replaces out-of-range values with defaults.
func (c *Config) normalize() {
	def := Default()

	if c.Editor.DebounceMS <= 0 {
		c.Editor.DebounceMS = def.Editor.DebounceMS
	}
	if c.Editor.MaxHistory <= 0 {
		c.Editor.MaxHistory = def.Editor.MaxHistory
	}
	if c.Editor.TabWidth <= 0 || c.Editor.TabWidth > 16 {
		c.Editor.TabWidth = def.Editor.TabWidth
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
		c.Logging.Level = strings.ToLower(c.Logging.Level)
	default:
		c.Logging.Level = def.Logging.Level
	}
}
