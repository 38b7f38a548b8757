package tui

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/undefinedpatient/glyph/internal/core/entry"
	"github.com/undefinedpatient/glyph/internal/core/layout"
	"github.com/undefinedpatient/glyph/internal/core/logging"
	"github.com/undefinedpatient/glyph/internal/core/styles"
	"github.com/undefinedpatient/glyph/internal/glyph"
	"github.com/undefinedpatient/glyph/internal/ui"
	"github.com/undefinedpatient/glyph/internal/ui/widgets"
)

// HomePage lists entries.
type HomePage struct {
	ui.Focus
	ctx     context.Context
	app     *glyph.App
	keys    homeKeys
	list    *widgets.List
	entries []entry.Entry
	dialogs ui.DialogHost
	router  *ui.Router
	log     zerolog.Logger
}

var (
	_ ui.Container = (*HomePage)(nil)
	_ Activator    = (*HomePage)(nil)
)

// NewHomePage creates the entry list and loads it.
func NewHomePage(ctx context.Context, app *glyph.App) (*HomePage, error) {
	p := &HomePage{
		ctx:    ctx,
		app:    app,
		keys:   defaultHomeKeys(),
		list:   widgets.NewList("no entries yet, press n to create one"),
		router: ui.NewRouter(),
		log:    logging.Component("home"),
	}
	p.list.SetFocused(true)
	p.list.OnChoose = func(i int) []ui.Intent {
		return []ui.Intent{OpenEntry{ID: p.entries[i].ID}}
	}

	p.dialogs.Register(p.router)
	ui.On(p.router, p.createEntry)
	ui.On(p.router, p.deleteEntry)
	ui.On(p.router, p.renameEntry)
	ui.On(p.router, p.openEntry)

	if err := p.refresh(); err != nil {
		return nil, err
	}
	return p, nil
}

// Title names the page in the status line.
func (p *HomePage) Title() string { return "entries" }

// Entries returns the listed entries.
func (p *HomePage) Entries() []entry.Entry { return p.entries }

// Dialogs returns the dialog stack.
func (p *HomePage) Dialogs() *ui.DialogHost { return &p.dialogs }

// Activate reloads the list when the page is shown again.
func (p *HomePage) Activate() error { return p.refresh() }

func (p *HomePage) refresh() error {
	entries, err := p.app.Entries.List(p.ctx)
	if err != nil {
		return fmt.Errorf("failed to list entries: %w", err)
	}
	p.entries = entries

	items := make([]widgets.ListItem, len(entries))
	for i, e := range entries {
		items[i] = widgets.ListItem{
			Title:  styles.IconEntry + " " + e.Name,
			Detail: e.UpdatedAt.Format("2006-01-02 15:04"),
		}
	}
	p.list.SetItems(items)
	return nil
}

func (p *HomePage) hoverID(id int64) {
	for i, e := range p.entries {
		if e.ID == id {
			_ = p.list.Hover(i)
			return
		}
	}
}

func (p *HomePage) hovered() (entry.Entry, bool) {
	i, ok := p.list.Hovered()
	if !ok || i >= len(p.entries) {
		return entry.Entry{}, false
	}
	return p.entries[i], true
}

// Children implements ui.Container.
func (p *HomePage) Children() []ui.Node {
	return append([]ui.Node{p.list}, p.dialogs.Dialogs()...)
}

// FocusedChild implements ui.Container.
func (p *HomePage) FocusedChild() ui.Node {
	if top := p.dialogs.Top(); top != nil {
		return top
	}
	return p.list
}

// Handle routes keys to the open dialog, the page bindings or the list.
func (p *HomePage) Handle(ev ui.Event) ([]ui.Intent, error) {
	if top := p.dialogs.Top(); top != nil {
		return ui.Dispatch(top, ev, p.router)
	}

	var intents []ui.Intent
	switch {
	case ui.Matches(ev, p.keys.Quit):
		return []ui.Intent{ui.Quit{}}, nil
	case ui.Matches(ev, p.keys.Help):
		intents = []ui.Intent{ui.PushDialog{Dialog: NewHelpDialog(p.keys.bindings(), p.list.Bindings())}}
	case ui.Matches(ev, p.keys.New):
		intents = []ui.Intent{ui.PushDialog{Dialog: NewTextInputDialog("New entry", "name", "", func(name string) []ui.Intent {
			return []ui.Intent{ui.PopDialog{}, CreateEntry{Name: name}}
		})}}
	case ui.Matches(ev, p.keys.Rename):
		e, ok := p.hovered()
		if !ok {
			return nil, nil
		}
		intents = []ui.Intent{ui.PushDialog{Dialog: NewTextInputDialog("Rename entry", "name", e.Name, func(name string) []ui.Intent {
			return []ui.Intent{ui.PopDialog{}, RenameEntry{ID: e.ID, Name: name}}
		})}}
	case ui.Matches(ev, p.keys.Delete):
		e, ok := p.hovered()
		if !ok {
			return nil, nil
		}
		intents = []ui.Intent{ui.PushDialog{Dialog: NewConfirmDialog("Delete entry",
			fmt.Sprintf("Delete %q and all its sections?", e.Name),
			widgets.NewButton("Delete", ui.PopDialog{}, DeleteEntry{ID: e.ID}),
			widgets.NewButton("Cancel", ui.PopDialog{}),
		)}}
	default:
		return ui.Dispatch(p.list, ev, p.router)
	}
	return p.router.Route(intents)
}

func (p *HomePage) createEntry(it CreateEntry) ([]ui.Intent, error) {
	e, err := p.app.Entries.Create(p.ctx, glyph.CreateOptions{Name: it.Name})
	if err != nil {
		return nil, err
	}
	if err := p.refresh(); err != nil {
		return nil, err
	}
	p.hoverID(e.ID)
	return []ui.Intent{ui.Info("created %q", e.Name)}, nil
}

func (p *HomePage) deleteEntry(it DeleteEntry) ([]ui.Intent, error) {
	if err := p.app.Entries.Delete(p.ctx, it.ID); err != nil {
		return nil, err
	}
	if err := p.refresh(); err != nil {
		return nil, err
	}
	return []ui.Intent{ui.Info("entry deleted")}, nil
}

func (p *HomePage) renameEntry(it RenameEntry) ([]ui.Intent, error) {
	if err := p.app.Entries.Rename(p.ctx, it.ID, it.Name); err != nil {
		return nil, err
	}
	if err := p.refresh(); err != nil {
		return nil, err
	}
	p.hoverID(it.ID)
	return []ui.Intent{ui.Info("renamed to %q", it.Name)}, nil
}

func (p *HomePage) openEntry(it OpenEntry) ([]ui.Intent, error) {
	state, err := p.app.Entries.Open(p.ctx, it.ID)
	if err != nil {
		return nil, err
	}
	p.log.Debug().Int64("entry_id", it.ID).Msg("opening entry")
	return []ui.Intent{ui.PushPage{Page: NewEntryPage(p.ctx, p.app, state)}}, nil
}

// Render draws the framed list and any open dialogs.
func (p *HomePage) Render(c *ui.Canvas, area layout.Rect, hint ui.Hint) {
	if area.Empty() {
		return
	}
	c.Box(area, layout.BorderRounded, c.Style(styles.RoleBorder, hint))
	c.Title(area, fmt.Sprintf("entries (%d)", len(p.entries)), c.Style(styles.RoleTitle, hint))

	inner := area.Inset(1)
	listHint := ui.HintDefault
	if !p.dialogs.Open() {
		listHint = hint
	}
	p.list.Render(c, layout.Rect{X: inner.X + 1, Y: inner.Y, W: max(inner.W-2, 0), H: inner.H}, listHint)
	p.dialogs.Render(c, area)
}
