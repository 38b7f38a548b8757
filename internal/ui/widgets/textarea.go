package widgets

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/lipgloss"

	"github.com/undefinedpatient/glyph/internal/core/layout"
	"github.com/undefinedpatient/glyph/internal/core/styles"
	"github.com/undefinedpatient/glyph/internal/ui"
)

// TextArea is a multi-line editor. Every edit that changes the text is
// reported through OnChange.
type TextArea struct {
	focused  bool
	input    textarea.Model
	OnChange func(value string) []ui.Intent
}

var _ ui.Node = (*TextArea)(nil)

// NewTextArea creates an editor holding value.
func NewTextArea(value string) *TextArea {
	ta := textarea.New()
	ta.Prompt = ""
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.Cursor.SetMode(cursor.CursorStatic)
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.SetValue(value)

	return &TextArea{input: ta}
}

// Value returns the current text.
func (a *TextArea) Value() string { return a.input.Value() }

// SetValue replaces the text.
func (a *TextArea) SetValue(v string) { a.input.SetValue(v) }

// Cursor returns the logical line and column of the cursor.
func (a *TextArea) Cursor() (line, col int) {
	return a.input.Line(), a.input.LineInfo().CharOffset
}

// Focused reports whether the editor takes input.
func (a *TextArea) Focused() bool { return a.focused }

// SetFocused focuses or blurs the underlying editor.
func (a *TextArea) SetFocused(focused bool) {
	a.focused = focused
	if focused {
		_ = a.input.Focus()
	} else {
		a.input.Blur()
	}
}

// Render draws the editor filling area.
func (a *TextArea) Render(c *ui.Canvas, area layout.Rect, hint ui.Hint) {
	if area.Empty() {
		return
	}
	a.input.SetWidth(area.W)
	a.input.SetHeight(area.H)
	text := c.Style(styles.RoleText, hint)
	a.input.FocusedStyle.Text = text
	a.input.BlurredStyle.Text = c.Style(styles.RoleMuted, hint)
	a.input.Cursor.Style = c.Style(styles.RoleCursor, hint)
	c.StyledBlock(area, a.input.View())
}

// Handle edits the text while the editor is focused.
func (a *TextArea) Handle(ev ui.Event) ([]ui.Intent, error) {
	k, ok := ui.KeyPress(ev)
	if !ok || !a.focused {
		return nil, nil
	}

	msg, ok := ui.ToTea(k)
	if !ok {
		return nil, nil
	}

	before := a.input.Value()
	a.input, _ = a.input.Update(msg)
	if after := a.input.Value(); after != before && a.OnChange != nil {
		return a.OnChange(after), nil
	}
	return nil, nil
}
