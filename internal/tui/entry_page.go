package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/undefinedpatient/glyph/internal/core/document"
	"github.com/undefinedpatient/glyph/internal/core/layout"
	"github.com/undefinedpatient/glyph/internal/core/logging"
	"github.com/undefinedpatient/glyph/internal/core/styles"
	"github.com/undefinedpatient/glyph/internal/glyph"
	"github.com/undefinedpatient/glyph/internal/ui"
	"github.com/undefinedpatient/glyph/internal/ui/widgets"
)

// EntryPage shows one open entry: an outline column beside the layout view.
// Every view on the page holds the same document state.
type EntryPage struct {
	ui.Focus
	ctx     context.Context
	state   *document.State
	keys    pageKeys
	mode    Mode
	width   int // outline column
	outline *OutlineView
	view    *LayoutView
	editor  *SectionEditor
	tree    *LayoutEditor
	focus   *ui.FocusGroup // outline, editor, tree; indexed by Mode
	dialogs ui.DialogHost
	router  *ui.Router
	log     zerolog.Logger
}

var _ ui.Container = (*EntryPage)(nil)

// NewEntryPage creates a page over state in normal mode.
func NewEntryPage(ctx context.Context, app *glyph.App, state *document.State) *EntryPage {
	p := &EntryPage{
		ctx:     logging.WithPage(ctx, "entry"),
		state:   state,
		keys:    defaultPageKeys(),
		width:   app.Config.UI.OutlineWidth,
		outline: NewOutlineView(state),
		view:    NewLayoutView(state, app.Markdown, app.Config.UI.ScrollStep),
		editor:  NewSectionEditor(state),
		tree:    NewLayoutEditor(state),
		router:  ui.NewRouter(),
		log:     logging.ForEntry(logging.Component("entry-page"), state.ID()),
	}
	p.focus = ui.NewFocusGroup(p.outline, p.editor, p.tree)
	_ = p.focus.Focus(int(ModeNormal))

	p.dialogs.Register(p.router)
	ui.On(p.router, p.switchMode)
	ui.On(p.router, p.markDirty)
	ui.On(p.router, p.save)
	ui.On(p.router, p.selectSection)
	ui.On(p.router, p.selectNode)
	ui.On(p.router, p.createSection)
	ui.On(p.router, p.deleteSection)
	ui.On(p.router, p.renameSection)
	ui.On(p.router, p.renameEntry)
	ui.On(p.router, p.editLayout)
	return p
}

// State returns the shared document state.
func (p *EntryPage) State() *document.State { return p.state }

// Mode returns the current mode.
func (p *EntryPage) Mode() Mode { return p.mode }

// Dialogs returns the dialog stack.
func (p *EntryPage) Dialogs() *ui.DialogHost { return &p.dialogs }

// LayoutEditor returns the layout mode view.
func (p *EntryPage) LayoutEditor() *LayoutEditor { return p.tree }

// Title is the entry name, marked while there are unsaved changes.
func (p *EntryPage) Title() string {
	e, err := p.state.Entry()
	if err != nil {
		return "entry"
	}
	dirty, err := p.state.IsDirty()
	if err != nil {
		p.log.Warn().Err(err).Msg("dirty check failed")
	}
	// An unknown state is shown as unsaved.
	if dirty || err != nil {
		return e.Name + " " + styles.IconDirty
	}
	return e.Name
}

// Children implements ui.Container.
func (p *EntryPage) Children() []ui.Node {
	return append([]ui.Node{p.outline, p.view, p.editor, p.tree}, p.dialogs.Dialogs()...)
}

// FocusedChild implements ui.Container.
func (p *EntryPage) FocusedChild() ui.Node {
	if top := p.dialogs.Top(); top != nil {
		return top
	}
	return p.focus.Focused()
}

// Handle gives an open dialog every event. Otherwise page keys are checked
// first, pointer events go to the layout view and the rest to the view
// focused by the current mode.
func (p *EntryPage) Handle(ev ui.Event) ([]ui.Intent, error) {
	if top := p.dialogs.Top(); top != nil {
		return ui.Dispatch(top, ev, p.router)
	}

	intents, err := p.handle(ev)
	if err != nil {
		return nil, err
	}
	return p.router.Route(intents)
}

func (p *EntryPage) handle(ev ui.Event) ([]ui.Intent, error) {
	switch ev.(type) {
	case ui.ClickEvent, ui.ScrollEvent:
		return p.view.Handle(ev)
	}

	typing := p.mode == ModeEdit
	switch {
	case ui.Matches(ev, p.keys.Save):
		return []ui.Intent{SaveEntry{}}, nil
	case !typing && ui.Matches(ev, p.keys.Help):
		return []ui.Intent{ui.PushDialog{Dialog: p.help()}}, nil
	case !typing && ui.Matches(ev, p.keys.ScrollUp):
		p.view.Scroll(0, -1)
		return nil, nil
	case !typing && ui.Matches(ev, p.keys.ScrollDown):
		p.view.Scroll(0, 1)
		return nil, nil
	case !typing && ui.Matches(ev, p.keys.ScrollLeft):
		p.view.Scroll(-1, 0)
		return nil, nil
	case !typing && ui.Matches(ev, p.keys.ScrollRight):
		p.view.Scroll(1, 0)
		return nil, nil
	case p.mode == ModeNormal && ui.Matches(ev, p.keys.Back):
		return p.leave()
	}

	child := p.focus.Focused()
	if child == nil {
		return nil, nil
	}
	return child.Handle(ev)
}

func (p *EntryPage) help() *HelpDialog {
	var own ui.KeyMap
	if km, ok := p.focus.Focused().(ui.KeyMap); ok {
		own = km
	}
	if own == nil {
		return NewHelpDialog(p.keys.bindings())
	}
	return NewHelpDialog(own.Bindings(), p.keys.bindings())
}

// leave closes the page, asking first when there are unsaved changes.
func (p *EntryPage) leave() ([]ui.Intent, error) {
	dirty, err := p.state.IsDirty()
	if err != nil {
		return nil, err
	}
	if !dirty {
		return []ui.Intent{ui.PopPage{}}, nil
	}
	return []ui.Intent{ui.PushDialog{Dialog: NewConfirmDialog("Unsaved changes",
		"Save before leaving?",
		widgets.NewButton("Save & leave", ui.PopDialog{}, SaveEntry{}, ui.PopPage{}),
		widgets.NewButton("Discard", ui.PopDialog{}, ui.PopPage{}),
		widgets.NewButton("Cancel", ui.PopDialog{}),
	)}}, nil
}

func (p *EntryPage) switchMode(it SwitchMode) ([]ui.Intent, error) {
	if it.Mode == ModeEdit {
		sec, ok, err := p.state.Active()
		if err != nil {
			return nil, err
		}
		if !ok {
			return []ui.Intent{ui.Notify{Level: ui.LevelWarn, Message: "no section to edit"}}, nil
		}
		p.editor.Load(sec)
	}
	if err := p.focus.Focus(int(it.Mode)); err != nil {
		return nil, err
	}
	p.mode = it.Mode
	p.view.SetMode(it.Mode)
	p.view.Select(p.tree.Selected())
	return nil, nil
}

func (p *EntryPage) markDirty(it MarkDirty) ([]ui.Intent, error) {
	return nil, p.state.MarkDirty(it.Ref)
}

func (p *EntryPage) save(SaveEntry) ([]ui.Intent, error) {
	dirty, err := p.state.IsDirty()
	if err != nil {
		return nil, err
	}
	if !dirty {
		return []ui.Intent{ui.Info("nothing to save")}, nil
	}
	if err := p.state.Save(p.ctx); err != nil {
		return nil, err
	}
	return []ui.Intent{ui.Info("saved")}, nil
}

func (p *EntryPage) selectSection(it SelectSection) ([]ui.Intent, error) {
	if err := p.state.SetActive(it.Index); err != nil {
		return nil, err
	}
	if p.mode == ModeEdit {
		if sec, ok, err := p.state.Active(); err == nil && ok {
			p.editor.Load(sec)
		}
	}
	return nil, nil
}

func (p *EntryPage) selectNode(it SelectNode) ([]ui.Intent, error) {
	root, err := p.state.Layout()
	if err != nil {
		return nil, err
	}
	if _, err := root.Get(it.At); err != nil {
		return nil, err
	}
	p.tree.Select(it.At)
	p.view.Select(it.At)
	return nil, nil
}

func (p *EntryPage) createSection(it CreateSection) ([]ui.Intent, error) {
	sec, err := p.state.CreateSection(p.ctx, it.Title)
	if err != nil {
		return nil, err
	}
	return []ui.Intent{ui.Info("added section %q", sec.DisplayTitle())}, nil
}

func (p *EntryPage) deleteSection(it DeleteSection) ([]ui.Intent, error) {
	if err := p.state.DeleteSection(p.ctx, it.ID); err != nil {
		return nil, err
	}
	return []ui.Intent{ui.Info("section deleted")}, nil
}

func (p *EntryPage) renameSection(it RenameSection) ([]ui.Intent, error) {
	if err := p.state.RenameSection(p.ctx, it.ID, it.Title); err != nil {
		return nil, err
	}
	return nil, nil
}

func (p *EntryPage) renameEntry(it RenameEntry) ([]ui.Intent, error) {
	name := strings.TrimSpace(it.Name)
	if name == "" {
		return nil, glyph.ErrEmptyName
	}
	if err := p.state.Rename(p.ctx, name); err != nil {
		return nil, err
	}
	return []ui.Intent{ui.Info("renamed to %q", name)}, nil
}

// editLayout applies a tree edit and moves the selection to the node it
// produced. Removing a node selects its parent.
func (p *EntryPage) editLayout(it LayoutEdit) ([]ui.Intent, error) {
	var sel layout.Coord
	err := p.state.EditLayout(func(root *layout.Node) error {
		var err error
		switch it.Op {
		case LayoutInsert:
			sel, err = root.InsertUnder(it.At, it.Node)
		case LayoutRemove:
			if _, err = root.Remove(it.At); err == nil {
				sel, _ = it.At.Parent()
			}
		case LayoutPatch:
			err = root.Patch(it.At, it.Delta)
			sel = it.At
		case LayoutMove:
			sel, err = root.Move(it.At, it.Offset)
		default:
			err = fmt.Errorf("unknown layout operation %d", it.Op)
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("layout %s: %w", it.Op, err)
	}

	p.log.Debug().Ctx(p.ctx).Str("op", it.Op.String()).Stringer("at", sel).Msg("layout edited")
	p.tree.Select(sel)
	p.view.Select(sel)
	return nil, nil
}

// Render draws the side column, the layout view and any open dialogs. In
// edit mode the editor is drawn over the interior of the leaf showing the
// active section, or over the whole view when no leaf shows it.
func (p *EntryPage) Render(c *ui.Canvas, area layout.Rect, hint ui.Hint) {
	if area.Empty() {
		return
	}

	root := layout.New("page").Horizontal().With(
		layout.Leaf("side", 0).Sized(layout.Length(min(p.width, area.W/2))).Framed(layout.BorderRounded),
		layout.Leaf("main", 1),
	)
	res := layout.Evaluate(root, area)
	side, _ := res.Placement(0)
	main, _ := res.Placement(1)

	viewHint := ui.HintDefault
	if !p.dialogs.Open() {
		viewHint = hint
	}

	c.Box(side.Rect, side.Border, c.Style(styles.RoleBorder, ui.HintDefault))
	sideArea := layout.Rect{X: side.Inner.X + 1, Y: side.Inner.Y, W: max(side.Inner.W-1, 0), H: side.Inner.H}
	if p.mode == ModeLayout {
		c.Title(side.Rect, "layout", c.Style(styles.RoleTitle, viewHint))
		p.tree.Render(c, sideArea, viewHint)
	} else {
		c.Title(side.Rect, "sections", c.Style(styles.RoleTitle, viewHint))
		p.outline.Render(c, sideArea, ui.HintFor(p.mode == ModeNormal && viewHint == ui.HintFocused, true))
	}

	p.view.Render(c, main.Rect, viewHint)
	if p.mode == ModeEdit {
		target := main.Rect
		if sec, ok, err := p.state.Active(); err == nil && ok {
			if r, ok := p.view.PlacementOf(sec.Position); ok {
				target = r
			}
		}
		c.Clear(target)
		p.editor.Render(c, target, viewHint)
	}

	p.dialogs.Render(c, area)
}
