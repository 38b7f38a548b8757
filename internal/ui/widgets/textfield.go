package widgets

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/undefinedpatient/glyph/internal/core/layout"
	"github.com/undefinedpatient/glyph/internal/core/styles"
	"github.com/undefinedpatient/glyph/internal/ui"
)

// TextField is a single-line text input. Enter submits the value and escape
// cancels; both report through intents built by the caller.
type TextField struct {
	focused  bool
	input    textinput.Model
	OnSubmit func(value string) []ui.Intent
	OnCancel func() []ui.Intent
}

var _ ui.Node = (*TextField)(nil)

// NewTextField creates a text field holding value.
func NewTextField(placeholder, value string) *TextField {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.SetValue(value)
	ti.CursorEnd()

	return &TextField{input: ti}
}

// Value returns the current text.
func (f *TextField) Value() string { return f.input.Value() }

// SetValue replaces the text and moves the cursor to its end.
func (f *TextField) SetValue(v string) {
	f.input.SetValue(v)
	f.input.CursorEnd()
}

// Focused reports whether the field takes input.
func (f *TextField) Focused() bool { return f.focused }

// SetFocused focuses or blurs the underlying input.
func (f *TextField) SetFocused(focused bool) {
	f.focused = focused
	if focused {
		_ = f.input.Focus()
	} else {
		f.input.Blur()
	}
}

// Render draws the input on the first row of area.
func (f *TextField) Render(c *ui.Canvas, area layout.Rect, hint ui.Hint) {
	if area.Empty() {
		return
	}
	f.input.Width = max(area.W-1, 1)
	f.input.TextStyle = c.Style(styles.RoleInput, hint)
	f.input.PlaceholderStyle = c.Style(styles.RoleMuted, hint)
	f.input.Cursor.Style = c.Style(styles.RoleCursor, hint)
	c.Styled(area.X, area.Y, f.input.View(), area)
}

// Handle edits the text. Keys reach the input only while the field is
// focused.
func (f *TextField) Handle(ev ui.Event) ([]ui.Intent, error) {
	k, ok := ui.KeyPress(ev)
	if !ok || !f.focused {
		return nil, nil
	}

	switch k.Code {
	case ui.KeyEnter:
		if f.OnSubmit == nil {
			return nil, nil
		}
		return f.OnSubmit(f.input.Value()), nil
	case ui.KeyEsc:
		if f.OnCancel == nil {
			return nil, nil
		}
		return f.OnCancel(), nil
	}

	if msg, ok := ui.ToTea(k); ok {
		f.input, _ = f.input.Update(msg)
	}
	return nil, nil
}
