package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/undefinedpatient/glyph/internal/core/cycle"
	"github.com/undefinedpatient/glyph/internal/core/document"
	"github.com/undefinedpatient/glyph/internal/core/entry"
	"github.com/undefinedpatient/glyph/internal/core/layout"
	"github.com/undefinedpatient/glyph/internal/core/styles"
	"github.com/undefinedpatient/glyph/internal/ui"
	"github.com/undefinedpatient/glyph/internal/ui/widgets"
)

// OutlineView lists the sections of the open entry and drives the active
// section of the shared state.
type OutlineView struct {
	ui.Focus
	state *document.State
	keys  outlineKeys
	list  *widgets.List
}

var (
	_ ui.Node   = (*OutlineView)(nil)
	_ ui.KeyMap = (*OutlineView)(nil)
)

// NewOutlineView creates an outline over state.
func NewOutlineView(state *document.State) *OutlineView {
	return &OutlineView{
		state: state,
		keys:  defaultOutlineKeys(),
		list:  widgets.NewList("no sections, press n to add one"),
	}
}

// Title names the view in the status line.
func (o *OutlineView) Title() string { return "outline" }

// Bindings implements ui.KeyMap.
func (o *OutlineView) Bindings() []key.Binding { return o.keys.bindings() }

// Render lists the sections with the active one hovered. Sections with
// unsaved text are marked.
func (o *OutlineView) Render(c *ui.Canvas, area layout.Rect, hint ui.Hint) {
	var (
		items  []widgets.ListItem
		active int
		has    bool
	)
	err := o.state.View(func(d *document.Doc) error {
		secs := d.Sections()
		items = make([]widgets.ListItem, len(secs))
		for i, s := range secs {
			mark := styles.IconClean
			if d.IsSectionDirty(s.ID) {
				mark = styles.IconDirty
			}
			items[i] = widgets.ListItem{Title: fmt.Sprintf("%s %s", mark, s.DisplayTitle())}
		}
		active, has = d.ActiveIndex()
		return nil
	})
	if err != nil {
		c.Line(area, 0, err.Error(), c.Style(styles.RoleError, hint))
		return
	}

	o.list.SetItems(items)
	if has {
		_ = o.list.Hover(active)
	}
	o.list.Render(c, area, hint)
}

// Handle moves the active section and asks for section changes.
func (o *OutlineView) Handle(ev ui.Event) ([]ui.Intent, error) {
	switch {
	case ui.Matches(ev, o.keys.Up):
		return nil, o.cycle(-1)
	case ui.Matches(ev, o.keys.Down):
		return nil, o.cycle(1)
	case ui.Matches(ev, o.keys.MoveUp):
		return nil, o.move(-1)
	case ui.Matches(ev, o.keys.MoveDown):
		return nil, o.move(1)
	case ui.Matches(ev, o.keys.Edit):
		return []ui.Intent{SwitchMode{Mode: ModeEdit}}, nil
	case ui.Matches(ev, o.keys.Layout):
		return []ui.Intent{SwitchMode{Mode: ModeLayout}}, nil
	case ui.Matches(ev, o.keys.New):
		return []ui.Intent{ui.PushDialog{Dialog: NewTextInputDialog("New section", "title", "", func(title string) []ui.Intent {
			return []ui.Intent{ui.PopDialog{}, CreateSection{Title: title}}
		})}}, nil
	case ui.Matches(ev, o.keys.RenameEntry):
		e, err := o.state.Entry()
		if err != nil {
			return nil, err
		}
		return []ui.Intent{ui.PushDialog{Dialog: NewTextInputDialog("Rename entry", "name", e.Name, func(name string) []ui.Intent {
			return []ui.Intent{ui.PopDialog{}, RenameEntry{ID: e.ID, Name: name}}
		})}}, nil
	}

	sec, ok, err := o.state.Active()
	if err != nil || !ok {
		return nil, err
	}

	switch {
	case ui.Matches(ev, o.keys.Rename):
		return []ui.Intent{ui.PushDialog{Dialog: NewTextInputDialog("Rename section", "title", sec.Title, func(title string) []ui.Intent {
			return []ui.Intent{ui.PopDialog{}, RenameSection{ID: sec.ID, Title: title}}
		})}}, nil
	case ui.Matches(ev, o.keys.Delete):
		return []ui.Intent{ui.PushDialog{Dialog: deleteSectionDialog(sec)}}, nil
	case ui.Matches(ev, o.keys.Copy):
		return []ui.Intent{ui.CopyText{Text: sec.Content}}, nil
	}
	return nil, nil
}

func deleteSectionDialog(sec entry.Section) *ConfirmDialog {
	return NewConfirmDialog("Delete section",
		fmt.Sprintf("Delete %q?", sec.DisplayTitle()),
		widgets.NewButton("Delete", ui.PopDialog{}, DeleteSection{ID: sec.ID}),
		widgets.NewButton("Cancel", ui.PopDialog{}),
	)
}

// cycle and move ignore an entry without sections.
func (o *OutlineView) cycle(d int) error {
	if err := o.state.CycleActive(d); err != nil && !errors.Is(err, cycle.ErrEmpty) {
		return err
	}
	return nil
}

func (o *OutlineView) move(d int) error {
	err := o.state.MoveActive(d)
	if errors.Is(err, cycle.ErrEmpty) || errors.Is(err, document.ErrNoSection) {
		return nil
	}
	return err
}
