// Package config handles configuration loading and validation for glyph.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/undefinedpatient/glyph/internal/core/layout"
)

// Config holds the application configuration.
type Config struct {
	Theme     string              `yaml:"theme"`
	Markdown  MarkdownConfig      `yaml:"markdown"`
	UI        UIConfig            `yaml:"ui"`
	Database  DatabaseConfig      `yaml:"database"`
	Templates map[string]Template `yaml:"templates"`
	DataDir   string              `yaml:"-"` // set by caller, not from config file
}

// MarkdownConfig controls section rendering.
type MarkdownConfig struct {
	Style     string `yaml:"style"`      // glamour style name used inside the TUI
	CacheSize int    `yaml:"cache_size"` // rendered sections kept in memory
}

// UIConfig controls the interactive interface.
type UIConfig struct {
	OutlineWidth int `yaml:"outline_width"` // columns reserved for the section outline
	ScrollStep   int `yaml:"scroll_step"`   // rows or columns per scroll key press
}

// DatabaseConfig tunes the SQLite connection pool.
type DatabaseConfig struct {
	MaxOpenConns int `yaml:"max_open_conns"`
	MaxIdleConns int `yaml:"max_idle_conns"`
	BusyTimeout  int `yaml:"busy_timeout"` // milliseconds
}

// Template seeds a new entry with sections and a layout preset.
type Template struct {
	Description string            `yaml:"description"`
	Layout      string            `yaml:"layout"` // layout preset name, see layout.PresetNames
	Sections    []TemplateSection `yaml:"sections"`
}

// TemplateSection is one section created from a template.
type TemplateSection struct {
	Title   string `yaml:"title"`
	Content string `yaml:"content"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Theme: "tokyo-night",
		Markdown: MarkdownConfig{
			Style:     "notty",
			CacheSize: 64,
		},
		UI: UIConfig{
			OutlineWidth: 28,
			ScrollStep:   3,
		},
		Database: DatabaseConfig{
			MaxOpenConns: 4,
			MaxIdleConns: 2,
			BusyTimeout:  5000,
		},
		Templates: map[string]Template{},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.DataDir = dataDir
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
	if c.Markdown.Style == "" {
		c.Markdown.Style = defaults.Markdown.Style
	}
	if c.Markdown.CacheSize == 0 {
		c.Markdown.CacheSize = defaults.Markdown.CacheSize
	}
	if c.UI.OutlineWidth == 0 {
		c.UI.OutlineWidth = defaults.UI.OutlineWidth
	}
	if c.UI.ScrollStep == 0 {
		c.UI.ScrollStep = defaults.UI.ScrollStep
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = defaults.Database.MaxOpenConns
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = defaults.Database.MaxIdleConns
	}
	if c.Database.BusyTimeout == 0 {
		c.Database.BusyTimeout = defaults.Database.BusyTimeout
	}
	if c.Templates == nil {
		c.Templates = map[string]Template{}
	}
}

// Validate checks that the configuration is structurally valid. It performs
// no I/O; see ValidateDeep.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	if c.Markdown.CacheSize < 0 {
		return fmt.Errorf("markdown.cache_size must not be negative")
	}

	if c.UI.OutlineWidth < 8 {
		return fmt.Errorf("ui.outline_width must be at least 8")
	}

	if c.UI.ScrollStep < 1 {
		return fmt.Errorf("ui.scroll_step must be at least 1")
	}

	if c.Database.MaxOpenConns < 1 {
		return fmt.Errorf("database.max_open_conns must be at least 1")
	}

	if c.Database.MaxIdleConns < 0 || c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns must be between 0 and max_open_conns")
	}

	if c.Database.BusyTimeout < 0 {
		return fmt.Errorf("database.busy_timeout must not be negative")
	}

	for name, tmpl := range c.Templates {
		if err := tmpl.Validate(name); err != nil {
			return err
		}
	}

	return nil
}

// Validate checks that a template definition is valid.
func (t *Template) Validate(name string) error {
	if len(t.Sections) == 0 {
		return fmt.Errorf("template %q: at least one section is required", name)
	}

	if _, err := layout.Preset(t.Layout, len(t.Sections)); err != nil {
		return fmt.Errorf("template %q: %w", name, err)
	}

	return nil
}

// LogFile returns the default log file path.
func (c *Config) LogFile() string {
	return filepath.Join(c.DataDir, "glyph.log")
}
