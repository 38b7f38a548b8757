package glyph

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/undefinedpatient/glyph/internal/core/config"
	"github.com/undefinedpatient/glyph/internal/core/document"
	"github.com/undefinedpatient/glyph/internal/core/entry"
	"github.com/undefinedpatient/glyph/internal/core/layout"
	"github.com/undefinedpatient/glyph/internal/core/logging"
	"github.com/undefinedpatient/glyph/pkg/tmpl"
)

// ErrEmptyName is returned when an entry would be created or renamed without
// a name.
var ErrEmptyName = errors.New("entry name cannot be empty")

// CreateOptions configures entry creation.
type CreateOptions struct {
	Name     string   // Entry name, required
	Template string   // Configured template name (optional)
	Preset   string   // Layout preset, overrides the template's preset
	Sections []string // Section titles, used when no template is given
}

// EntryService orchestrates entry operations.
type EntryService struct {
	entries  entry.Store
	sections entry.SectionStore
	config   *config.Config
	now      func() time.Time
	log      zerolog.Logger
}

// NewEntryService creates a new EntryService.
func NewEntryService(entries entry.Store, sections entry.SectionStore, cfg *config.Config) *EntryService {
	return &EntryService{
		entries:  entries,
		sections: sections,
		config:   cfg,
		now:      time.Now,
		log:      logging.Component("entries"),
	}
}

// plan resolves the sections and layout preset a new entry starts with.
func (s *EntryService) plan(opts CreateOptions) ([]config.TemplateSection, string, error) {
	var (
		secs   []config.TemplateSection
		preset string
	)

	if opts.Template != "" {
		tmpl, ok := s.config.Templates[opts.Template]
		if !ok {
			return nil, "", fmt.Errorf("template %q not found", opts.Template)
		}
		var err error
		secs, err = s.renderTemplate(opts, tmpl)
		if err != nil {
			return nil, "", err
		}
		preset = tmpl.Layout
	} else {
		for _, title := range opts.Sections {
			secs = append(secs, config.TemplateSection{Title: title})
		}
	}

	if len(secs) == 0 {
		secs = []config.TemplateSection{{Title: "Notes"}}
	}
	if opts.Preset != "" {
		preset = opts.Preset
	}
	return secs, preset, nil
}

// TemplateData is available to template section titles and content.
type TemplateData struct {
	Name     string // entry name
	Template string // template name
	Date     string // creation date, 2006-01-02
	Time     string // creation time, 15:04
}

// renderTemplate executes the template actions in every section of t.
func (s *EntryService) renderTemplate(opts CreateOptions, t config.Template) ([]config.TemplateSection, error) {
	now := s.now()
	data := TemplateData{
		Name:     strings.TrimSpace(opts.Name),
		Template: opts.Template,
		Date:     now.Format("2006-01-02"),
		Time:     now.Format("15:04"),
	}

	out := make([]config.TemplateSection, len(t.Sections))
	for i, ts := range t.Sections {
		title, err := tmpl.Render(ts.Title, data)
		if err != nil {
			return nil, fmt.Errorf("template %q section %d title: %w", opts.Template, i, err)
		}
		content, err := tmpl.Render(ts.Content, data)
		if err != nil {
			return nil, fmt.Errorf("template %q section %d content: %w", opts.Template, i, err)
		}
		out[i] = config.TemplateSection{Title: title, Content: content}
	}
	return out, nil
}

// Create creates an entry with its initial sections and layout. If a section
// cannot be created the entry is removed again.
func (s *EntryService) Create(ctx context.Context, opts CreateOptions) (entry.Entry, error) {
	name := strings.TrimSpace(opts.Name)
	if name == "" {
		return entry.Entry{}, ErrEmptyName
	}

	secs, preset, err := s.plan(opts)
	if err != nil {
		return entry.Entry{}, err
	}

	tree, err := layout.Preset(preset, len(secs))
	if err != nil {
		return entry.Entry{}, err
	}
	data, err := layout.Encode(tree)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("failed to encode layout: %w", err)
	}

	e := entry.Entry{Name: name, Layout: data}
	if err := s.entries.Create(ctx, &e); err != nil {
		return entry.Entry{}, fmt.Errorf("failed to create entry: %w", err)
	}

	for i, ts := range secs {
		sec := entry.Section{EntryID: e.ID, Position: i, Title: ts.Title, Content: ts.Content}
		if err := s.sections.Create(ctx, &sec); err != nil {
			if delErr := s.entries.Delete(ctx, e.ID); delErr != nil {
				s.log.Error().Err(delErr).Int64("entry_id", e.ID).Msg("failed to remove partially created entry")
			}
			return entry.Entry{}, fmt.Errorf("failed to create section %q: %w", ts.Title, err)
		}
	}

	s.log.Info().Ctx(logging.WithEntryID(ctx, e.ID)).Str("name", name).Int("sections", len(secs)).Msg("entry created")
	return e, nil
}

// List returns all entries, most recently updated first.
func (s *EntryService) List(ctx context.Context) ([]entry.Entry, error) {
	return s.entries.List(ctx)
}

// Get returns one entry.
func (s *EntryService) Get(ctx context.Context, id int64) (entry.Entry, error) {
	return s.entries.Get(ctx, id)
}

// Sections returns the sections of an entry in position order.
func (s *EntryService) Sections(ctx context.Context, id int64) ([]entry.Section, error) {
	return s.sections.ListByEntry(ctx, id)
}

// Rename changes an entry's name.
func (s *EntryService) Rename(ctx context.Context, id int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	return s.entries.UpdateName(ctx, id, name)
}

// Delete removes an entry and its sections.
func (s *EntryService) Delete(ctx context.Context, id int64) error {
	if err := s.entries.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete entry %d: %w", id, err)
	}
	s.log.Info().Ctx(logging.WithEntryID(ctx, id)).Msg("entry deleted")
	return nil
}

// Open loads an entry into a shared document state.
func (s *EntryService) Open(ctx context.Context, id int64) (*document.State, error) {
	return document.Open(ctx, s.entries, s.sections, id)
}

// Layout returns the decoded layout tree of an entry.
func (s *EntryService) Layout(ctx context.Context, id int64) (*layout.Node, error) {
	e, err := s.entries.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return layout.Decode(e.Layout)
}

// SetLayout validates and stores a new layout tree for an entry.
func (s *EntryService) SetLayout(ctx context.Context, id int64, root *layout.Node) error {
	data, err := layout.Encode(root)
	if err != nil {
		return err
	}

	e, err := s.entries.Get(ctx, id)
	if err != nil {
		return err
	}
	e.Layout = data
	if err := s.entries.Update(ctx, &e); err != nil {
		return fmt.Errorf("failed to update layout: %w", err)
	}
	return nil
}
