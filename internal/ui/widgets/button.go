package widgets

import (
	"slices"

	"github.com/charmbracelet/bubbles/key"
	"github.com/mattn/go-runewidth"

	"github.com/undefinedpatient/glyph/internal/core/layout"
	"github.com/undefinedpatient/glyph/internal/core/styles"
	"github.com/undefinedpatient/glyph/internal/ui"
)

var pressKeys = key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "press"))

// Button emits a fixed list of intents when pressed.
type Button struct {
	ui.Focus
	Text    string
	intents []ui.Intent
}

var _ ui.Node = (*Button)(nil)

// NewButton creates a button that returns intents, in order, on every press.
func NewButton(text string, intents ...ui.Intent) *Button {
	return &Button{Text: text, intents: intents}
}

// Width returns the cells the button occupies.
func (b *Button) Width() int { return runewidth.StringWidth(b.Text) + 4 }

// Render draws the button on the first row of area.
func (b *Button) Render(c *ui.Canvas, area layout.Rect, hint ui.Hint) {
	c.Line(area, 0, "[ "+b.Text+" ]", c.Style(styles.RoleButton, hint))
}

// Handle presses the button on enter or space.
func (b *Button) Handle(ev ui.Event) ([]ui.Intent, error) {
	if !ui.Matches(ev, pressKeys) {
		return nil, nil
	}
	return slices.Clone(b.intents), nil
}

// Press returns the intents the button emits.
func (b *Button) Press() []ui.Intent { return slices.Clone(b.intents) }
