// Package config loads durok settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/balkashynov/durok/internal/parser"
	"github.com/balkashynov/durok/internal/tracker"
)

// FileName is the config file name inside the config directory
const FileName = "config.toml"

// Config holds all user settings
type Config struct {
	Input  InputConfig  `toml:"input"`
	Target TargetConfig `toml:"target"`
	Weekly WeeklyConfig `toml:"weekly"`
	Log    LogConfig    `toml:"log"`
	Guide  GuideConfig  `toml:"guide"`
}

// InputConfig selects how durations are typed: "text" or "fields"
type InputConfig struct {
	Mode string `toml:"mode"`
}

// TargetConfig is the default session target
type TargetConfig struct {
	Text    string `toml:"text"`
	Hours   string `toml:"hours"`
	Minutes string `toml:"minutes"`
}

// WeeklyConfig holds the weekly target in whole hours
type WeeklyConfig struct {
	TargetHours string `toml:"target_hours"`
}

// LogConfig controls logging. An empty File disables logging.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// GuideConfig points at the question-answering service
type GuideConfig struct {
	Endpoint       string `toml:"endpoint"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Input:  InputConfig{Mode: parser.ModeText},
		Weekly: WeeklyConfig{TargetHours: tracker.DefaultWeeklyTargetHours},
		Log:    LogConfig{Level: "info"},
		Guide:  GuideConfig{TimeoutSeconds: 20},
	}
}

// TargetInput returns the configured default target
func (c *Config) TargetInput() parser.Input {
	return parser.Input{Text: c.Target.Text, Hours: c.Target.Hours, Minutes: c.Target.Minutes}
}

// Loader reads the config file from a directory
type Loader struct {
	dir string
}

// NewLoader creates a Loader for the default config directory
func NewLoader() *Loader {
	return &Loader{dir: defaultConfigDir()}
}

// NewLoaderWithDir creates a Loader for a custom directory.
// This is useful for testing.
func NewLoaderWithDir(dir string) *Loader {
	return &Loader{dir: dir}
}

// Path returns the config file path, or "" when no directory is known
func (l *Loader) Path() string {
	if l.dir == "" {
		return ""
	}
	return filepath.Join(l.dir, FileName)
}

// defaultConfigDir returns $XDG_CONFIG_HOME/durok or ~/.config/durok
func defaultConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "durok")
}

// Load returns the configuration, falling back to defaults for a missing file
// and for any key the file leaves empty
func (l *Loader) Load() (*Config, error) {
	cfg := Default()

	path := l.Path()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var file Config
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return merge(cfg, &file), nil
}

// merge overlays the non-empty values of override onto base
func merge(base, override *Config) *Config {
	if override.Input.Mode != "" {
		base.Input.Mode = override.Input.Mode
	}
	if override.Target != (TargetConfig{}) {
		base.Target = override.Target
	}
	if override.Weekly.TargetHours != "" {
		base.Weekly.TargetHours = parser.SanitizeDigits(override.Weekly.TargetHours)
	}
	if override.Log.Level != "" {
		base.Log.Level = override.Log.Level
	}
	if override.Log.File != "" {
		base.Log.File = override.Log.File
	}
	if override.Guide.Endpoint != "" {
		base.Guide.Endpoint = override.Guide.Endpoint
	}
	if override.Guide.TimeoutSeconds > 0 {
		base.Guide.TimeoutSeconds = override.Guide.TimeoutSeconds
	}
	return base
}
