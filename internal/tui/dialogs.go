package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/mattn/go-runewidth"

	"github.com/undefinedpatient/glyph/internal/core/layout"
	"github.com/undefinedpatient/glyph/internal/core/styles"
	"github.com/undefinedpatient/glyph/internal/ui"
	"github.com/undefinedpatient/glyph/internal/ui/widgets"
)

var (
	dialogCancel = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel"))
	dialogNext   = key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next"))
	dialogPrev   = key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab", "previous"))
	helpClose    = key.NewBinding(key.WithKeys("esc", "?", "q", "enter"), key.WithHelp("esc", "close"))
)

// drawFrame draws the dialog border and title and returns the interior.
func drawFrame(c *ui.Canvas, area layout.Rect, title string, hint ui.Hint) layout.Rect {
	c.Box(area, layout.BorderRounded, c.Style(styles.RoleBorder, hint))
	c.Title(area, title, c.Style(styles.RoleTitle, hint))
	return area.Inset(1)
}

// ConfirmDialog asks a question answered by one of its buttons. Each button
// returns its own ordered intent list; escape pops the dialog.
type ConfirmDialog struct {
	ui.Focus
	title   string
	message string
	buttons *ui.FocusGroup
}

var (
	_ ui.Container = (*ConfirmDialog)(nil)
	_ ui.Sizer     = (*ConfirmDialog)(nil)
)

// NewConfirmDialog creates a dialog with the first button focused.
func NewConfirmDialog(title, message string, buttons ...*widgets.Button) *ConfirmDialog {
	nodes := make([]ui.Node, len(buttons))
	for i, b := range buttons {
		nodes[i] = b
	}
	d := &ConfirmDialog{title: title, message: message, buttons: ui.NewFocusGroup(nodes...)}
	if len(nodes) > 0 {
		_ = d.buttons.Focus(0)
	}
	return d
}

// Children implements ui.Container.
func (d *ConfirmDialog) Children() []ui.Node { return d.buttons.Nodes() }

// FocusedChild implements ui.Container.
func (d *ConfirmDialog) FocusedChild() ui.Node { return d.buttons.Focused() }

// Title names the dialog in the status line.
func (d *ConfirmDialog) Title() string { return d.title }

// Size implements ui.Sizer.
func (d *ConfirmDialog) Size(area layout.Rect) (w, h int) {
	buttons := 0
	for _, n := range d.buttons.Nodes() {
		buttons += n.(*widgets.Button).Width() + 1
	}
	w = max(runewidth.StringWidth(d.message)+4, buttons+3, runewidth.StringWidth(d.title)+8, 30)
	return min(w, area.W), 6
}

// Render draws the message and the button row.
func (d *ConfirmDialog) Render(c *ui.Canvas, area layout.Rect, hint ui.Hint) {
	inner := drawFrame(c, area, d.title, hint)
	if inner.Empty() {
		return
	}
	c.Line(layout.Rect{X: inner.X + 1, Y: inner.Y, W: inner.W - 1, H: 1}, 0, d.message, c.Style(styles.RoleText, hint))

	x := inner.X + 1
	y := inner.Bottom() - 1
	for i, n := range d.buttons.Nodes() {
		b := n.(*widgets.Button)
		idx, ok := d.buttons.Index()
		focused := ok && idx == i && d.Focused()
		b.Render(c, layout.Rect{X: x, Y: y, W: max(inner.Right()-x, 0), H: 1}, ui.HintFor(focused, false))
		x += b.Width() + 1
	}
}

// Handle moves between buttons and presses the focused one.
func (d *ConfirmDialog) Handle(ev ui.Event) ([]ui.Intent, error) {
	switch {
	case ui.Matches(ev, dialogCancel):
		return []ui.Intent{ui.PopDialog{}}, nil
	case ui.Matches(ev, dialogNext):
		return nil, d.buttons.Cycle(1)
	case ui.Matches(ev, dialogPrev):
		return nil, d.buttons.Cycle(-1)
	}
	return ui.Dispatch(d.buttons.Focused(), ev, nil)
}

// TextInputDialog asks for one line of text.
type TextInputDialog struct {
	ui.Focus
	title string
	field *widgets.TextField
}

var _ ui.Container = (*TextInputDialog)(nil)

// NewTextInputDialog creates a dialog whose field starts with value. submit
// receives the trimmed text; blank input is ignored. Escape pops the dialog.
func NewTextInputDialog(title, placeholder, value string, submit func(string) []ui.Intent) *TextInputDialog {
	field := widgets.NewTextField(placeholder, value)
	field.OnSubmit = func(v string) []ui.Intent {
		v = strings.TrimSpace(v)
		if v == "" {
			return nil
		}
		return submit(v)
	}
	field.OnCancel = func() []ui.Intent {
		return []ui.Intent{ui.PopDialog{}}
	}
	return &TextInputDialog{title: title, field: field}
}

// Value returns the current text.
func (d *TextInputDialog) Value() string { return d.field.Value() }

// Title names the dialog in the status line.
func (d *TextInputDialog) Title() string { return d.title }

// SetFocused passes focus to the field.
func (d *TextInputDialog) SetFocused(focused bool) {
	d.Focus.SetFocused(focused)
	d.field.SetFocused(focused)
}

// Children implements ui.Container.
func (d *TextInputDialog) Children() []ui.Node { return []ui.Node{d.field} }

// FocusedChild implements ui.Container.
func (d *TextInputDialog) FocusedChild() ui.Node {
	if d.field.Focused() {
		return d.field
	}
	return nil
}

// Size implements ui.Sizer.
func (d *TextInputDialog) Size(area layout.Rect) (w, h int) {
	return min(max(48, runewidth.StringWidth(d.title)+8), area.W), 5
}

// Render draws the field with a hint row below it.
func (d *TextInputDialog) Render(c *ui.Canvas, area layout.Rect, hint ui.Hint) {
	inner := drawFrame(c, area, d.title, hint)
	if inner.Empty() {
		return
	}
	row := layout.Rect{X: inner.X + 1, Y: inner.Y, W: max(inner.W-2, 0), H: 1}
	d.field.Render(c, row, hint)
	if inner.H > 2 {
		c.Line(layout.Rect{X: inner.X + 1, Y: inner.Bottom() - 1, W: max(inner.W-2, 0), H: 1}, 0,
			"enter confirm · esc cancel", c.Style(styles.RoleMuted, ui.HintDefault))
	}
}

// Handle forwards keys to the field.
func (d *TextInputDialog) Handle(ev ui.Event) ([]ui.Intent, error) {
	return d.field.Handle(ev)
}

// HelpDialog lists key bindings.
type HelpDialog struct {
	ui.Focus
	bindings []key.Binding
}

var (
	_ ui.Node  = (*HelpDialog)(nil)
	_ ui.Sizer = (*HelpDialog)(nil)
)

// NewHelpDialog lists the enabled bindings with help text, in order.
func NewHelpDialog(groups ...[]key.Binding) *HelpDialog {
	d := &HelpDialog{}
	for _, g := range groups {
		for _, b := range g {
			if b.Enabled() && b.Help().Key != "" {
				d.bindings = append(d.bindings, b)
			}
		}
	}
	return d
}

// Bindings returns the listed bindings.
func (d *HelpDialog) Bindings() []key.Binding { return d.bindings }

// Title names the dialog in the status line.
func (d *HelpDialog) Title() string { return "help" }

func (d *HelpDialog) keyWidth() int {
	w := 0
	for _, b := range d.bindings {
		w = max(w, runewidth.StringWidth(b.Help().Key))
	}
	return w
}

// Size implements ui.Sizer.
func (d *HelpDialog) Size(area layout.Rect) (w, h int) {
	desc := 0
	for _, b := range d.bindings {
		desc = max(desc, runewidth.StringWidth(b.Help().Desc))
	}
	return min(d.keyWidth()+desc+7, area.W), min(len(d.bindings)+2, area.H)
}

// Render draws one binding per row.
func (d *HelpDialog) Render(c *ui.Canvas, area layout.Rect, hint ui.Hint) {
	inner := drawFrame(c, area, "keys", hint)
	kw := d.keyWidth()
	for i, b := range d.bindings {
		if i >= inner.H {
			break
		}
		row := layout.Rect{X: inner.X + 1, Y: inner.Y + i, W: max(inner.W-1, 0), H: 1}
		c.Line(row, 0, runewidth.FillRight(b.Help().Key, kw), c.Style(styles.RoleTitle, ui.HintDefault))
		if row.W > kw+2 {
			desc := layout.Rect{X: row.X + kw + 2, Y: row.Y, W: row.W - kw - 2, H: 1}
			c.Line(desc, 0, b.Help().Desc, c.Style(styles.RoleText, ui.HintDefault))
		}
	}
}

// Handle closes the dialog.
func (d *HelpDialog) Handle(ev ui.Event) ([]ui.Intent, error) {
	if ui.Matches(ev, helpClose) {
		return []ui.Intent{ui.PopDialog{}}, nil
	}
	return nil, nil
}
