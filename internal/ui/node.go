// Package ui is the interactive view framework: a tree of nodes that draw
// into a shared canvas, route input to the single focused leaf and return
// intents that travel back up through their ancestors.
//
// A Container hands an event to its focused child and passes the returned
// intents through its Router. Intents the router owns are consumed there;
// the rest keep their order and are returned to the container's own parent,
// up to the application root.
package ui

import (
	"github.com/undefinedpatient/glyph/internal/core/layout"
	"github.com/undefinedpatient/glyph/internal/core/styles"
)

// Hint tells a node how prominently to draw itself.
type Hint = styles.Hint

const (
	HintDefault = styles.HintDefault
	HintHovered = styles.HintHovered
	HintFocused = styles.HintFocused
)

// Node is one interactive region.
type Node interface {
	// Render draws the node inside area. Nodes must not draw outside it.
	Render(c *Canvas, area layout.Rect, hint Hint)
	// Handle reacts to an event and returns the intents it could not
	// satisfy itself, in emission order.
	Handle(ev Event) ([]Intent, error)
	Focused() bool
	SetFocused(focused bool)
}

// Container is a node owning children.
type Container interface {
	Node
	Children() []Node
	// FocusedChild returns the child receiving input, or nil.
	FocusedChild() Node
}

// Focus is embedded by nodes to implement the focus half of Node.
type Focus struct {
	focused bool
}

// Focused reports whether the node holds focus.
func (f *Focus) Focused() bool { return f.focused }

// SetFocused sets or clears focus.
func (f *Focus) SetFocused(focused bool) { f.focused = focused }

// HintFor picks the hint a parent should pass to a child.
func HintFor(focused, hovered bool) Hint {
	switch {
	case focused:
		return HintFocused
	case hovered:
		return HintHovered
	default:
		return HintDefault
	}
}

// Centered returns a w by h rectangle centred in area, shrunk to fit.
func Centered(area layout.Rect, w, h int) layout.Rect {
	w, h = min(w, area.W), min(h, area.H)
	return layout.Rect{
		X: area.X + (area.W-w)/2,
		Y: area.Y + (area.H-h)/2,
		W: w,
		H: h,
	}
}
