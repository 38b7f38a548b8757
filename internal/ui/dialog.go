package ui

import "github.com/undefinedpatient/glyph/internal/core/layout"

// Sizer is implemented by dialogs that want a specific size. Dialogs that do
// not implement it get DefaultDialogSize.
type Sizer interface {
	Size(area layout.Rect) (w, h int)
}

// DefaultDialogSize is used for dialogs without a Sizer.
var DefaultDialogSize = [2]int{48, 9}

// DialogHost is a stack of dialogs drawn over a page. The top dialog holds
// focus and receives every event while the stack is not empty.
type DialogHost struct {
	stack []Node
}

// Register makes r consume PushDialog and PopDialog for this host.
func (h *DialogHost) Register(r *Router) {
	On(r, func(it PushDialog) ([]Intent, error) {
		h.Push(it.Dialog)
		return nil, nil
	})
	On(r, func(PopDialog) ([]Intent, error) {
		h.Pop()
		return nil, nil
	})
}

// Push opens d on top of the stack and moves focus to it.
func (h *DialogHost) Push(d Node) {
	if d == nil {
		return
	}
	if top := h.Top(); top != nil {
		top.SetFocused(false)
	}
	d.SetFocused(true)
	h.stack = append(h.stack, d)
}

// Pop closes the top dialog and returns focus to the one below it.
func (h *DialogHost) Pop() Node {
	if len(h.stack) == 0 {
		return nil
	}
	top := h.stack[len(h.stack)-1]
	top.SetFocused(false)
	h.stack = h.stack[:len(h.stack)-1]
	if next := h.Top(); next != nil {
		next.SetFocused(true)
	}
	return top
}

// Top returns the focused dialog, or nil.
func (h *DialogHost) Top() Node {
	if len(h.stack) == 0 {
		return nil
	}
	return h.stack[len(h.stack)-1]
}

// Len returns the number of open dialogs.
func (h *DialogHost) Len() int { return len(h.stack) }

// Open reports whether any dialog is open.
func (h *DialogHost) Open() bool { return len(h.stack) > 0 }

// Dialogs returns the stack bottom first.
func (h *DialogHost) Dialogs() []Node { return h.stack }

// Render draws every dialog centred in area, bottom first.
func (h *DialogHost) Render(c *Canvas, area layout.Rect) {
	for _, d := range h.stack {
		r := DialogArea(d, area)
		c.Clear(r)
		d.Render(c, r, HintFor(d.Focused(), false))
	}
}

// DialogArea returns where d is drawn inside area.
func DialogArea(d Node, area layout.Rect) layout.Rect {
	w, h := DefaultDialogSize[0], DefaultDialogSize[1]
	if s, ok := d.(Sizer); ok {
		w, h = s.Size(area)
	}
	return Centered(area, w, h)
}
