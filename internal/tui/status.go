package tui

import (
	"strings"

	"github.com/undefinedpatient/glyph/internal/core/layout"
	"github.com/undefinedpatient/glyph/internal/core/styles"
	"github.com/undefinedpatient/glyph/internal/ui"
)

// Titled nodes contribute a breadcrumb to the status line.
type Titled interface {
	Title() string
}

// StatusLine shows the focus breadcrumb and the latest notification.
type StatusLine struct {
	msg ui.Notify
	has bool
}

// Set replaces the message.
func (s *StatusLine) Set(n ui.Notify) {
	s.msg, s.has = n, true
}

// Clear removes the message.
func (s *StatusLine) Clear() {
	s.msg, s.has = ui.Notify{}, false
}

// Message returns the current message.
func (s *StatusLine) Message() (ui.Notify, bool) { return s.msg, s.has }

// Breadcrumb joins the titles along a focus path.
func Breadcrumb(path []ui.Node) string {
	parts := make([]string, 0, len(path))
	for _, n := range path {
		if t, ok := n.(Titled); ok {
			if title := t.Title(); title != "" {
				parts = append(parts, title)
			}
		}
	}
	return strings.Join(parts, " "+styles.IconPointer+" ")
}

// Render draws the breadcrumb on the left and the message after it.
func (s *StatusLine) Render(c *ui.Canvas, area layout.Rect, crumbs string) {
	if area.Empty() {
		return
	}
	c.Fill(area, ' ', c.Style(styles.RoleStatus, ui.HintDefault))
	n := c.Text(area.X+1, area.Y, crumbs, c.Style(styles.RoleStatus, ui.HintFocused), area)
	if !s.has {
		return
	}

	role := styles.RoleSuccess
	switch s.msg.Level {
	case ui.LevelWarn:
		role = styles.RoleWarning
	case ui.LevelError:
		role = styles.RoleError
	}
	x := area.X + n + 3
	if x >= area.Right() {
		return
	}
	c.Line(layout.Rect{X: x, Y: area.Y, W: area.Right() - x, H: 1}, 0, s.msg.Message, c.Style(role, ui.HintDefault))
}
