// Package glyph holds the application services shared by the CLI commands
// and the terminal interface.
package glyph

import (
	"github.com/undefinedpatient/glyph/internal/core/config"
	"github.com/undefinedpatient/glyph/internal/core/entry"
	"github.com/undefinedpatient/glyph/internal/core/markdown"
	"github.com/undefinedpatient/glyph/internal/core/styles"
	"github.com/undefinedpatient/glyph/internal/data/db"
)

// App is the central entry point for all glyph operations.
// Commands and TUI consume App instead of cherry-picking raw dependencies.
type App struct {
	Entries  *EntryService
	Config   *config.Config
	DB       *db.DB
	Theme    styles.Theme
	Markdown markdown.Renderer
}

// NewApp constructs an App from explicit dependencies.
func NewApp(
	entries entry.Store,
	sections entry.SectionStore,
	cfg *config.Config,
	database *db.DB,
) (*App, error) {
	theme, err := styles.New(cfg.Theme)
	if err != nil {
		return nil, err
	}

	return &App{
		Entries:  NewEntryService(entries, sections, cfg),
		Config:   cfg,
		DB:       database,
		Theme:    theme,
		Markdown: markdown.NewGlamour(cfg.Markdown.Style, cfg.Markdown.CacheSize),
	}, nil
}
