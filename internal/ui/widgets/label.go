// Package widgets provides the leaf nodes composed by glyph's views.
package widgets

import (
	"strings"

	"github.com/undefinedpatient/glyph/internal/core/layout"
	"github.com/undefinedpatient/glyph/internal/core/styles"
	"github.com/undefinedpatient/glyph/internal/ui"
)

// Label is static text. It never takes input.
type Label struct {
	ui.Focus
	Text string
	Role styles.Role
}

var _ ui.Node = (*Label)(nil)

// NewLabel creates a label drawn with role.
func NewLabel(text string, role styles.Role) *Label {
	return &Label{Text: text, Role: role}
}

// Render draws one line per row of the text, truncating what does not fit.
func (l *Label) Render(c *ui.Canvas, area layout.Rect, hint ui.Hint) {
	style := c.Style(l.Role, hint)
	for i, line := range strings.Split(l.Text, "\n") {
		c.Line(area, i, line, style)
	}
}

// Handle ignores every event.
func (l *Label) Handle(ui.Event) ([]ui.Intent, error) { return nil, nil }
