package ui

import (
	"fmt"

	"github.com/undefinedpatient/glyph/internal/core/cycle"
)

// Hover is an optional cursor over an ordered list of siblings. Unlike
// focus it does not route input.
type Hover struct {
	index int
	ok    bool
}

// Index returns the hovered position.
func (h *Hover) Index() (int, bool) { return h.index, h.ok }

// Is reports whether position i is hovered.
func (h *Hover) Is(i int) bool { return h.ok && h.index == i }

// Set hovers position i of n.
func (h *Hover) Set(i, n int) error {
	if i < 0 || i >= n {
		return fmt.Errorf("hover: index %d out of range [0,%d)", i, n)
	}
	h.index, h.ok = i, true
	return nil
}

// Clear removes the hover.
func (h *Hover) Clear() {
	h.index, h.ok = 0, false
}

// Move advances the hover by d over n items, wrapping around.
func (h *Hover) Move(d, n int) error {
	next, err := cycle.From(h.index, h.ok, d, n)
	if err != nil {
		return err
	}
	h.index, h.ok = next, true
	return nil
}

// Clamp keeps the hover inside a list that now has n items, clearing it when
// the list is empty.
func (h *Hover) Clamp(n int) {
	switch {
	case n <= 0:
		h.Clear()
	case h.ok && h.index >= n:
		h.index = n - 1
	}
}
