package ui

import (
	"fmt"

	"github.com/undefinedpatient/glyph/internal/core/cycle"
)

// maxFocusDepth bounds focus chain walks so a container reporting itself, or
// a cycle of containers, cannot hang the input loop.
const maxFocusDepth = 64

// FocusGroup keeps at most one of a fixed list of children focused.
type FocusGroup struct {
	nodes []Node
	index int
	ok    bool
}

// NewFocusGroup creates a group over nodes with nothing focused. Any focus
// the nodes carried is cleared.
func NewFocusGroup(nodes ...Node) *FocusGroup {
	g := &FocusGroup{nodes: nodes}
	g.Blur()
	return g
}

// Nodes returns the children in the group.
func (g *FocusGroup) Nodes() []Node { return g.nodes }

// Len returns the number of children.
func (g *FocusGroup) Len() int { return len(g.nodes) }

// Index returns the focused position.
func (g *FocusGroup) Index() (int, bool) { return g.index, g.ok }

// Focused returns the focused child, or nil.
func (g *FocusGroup) Focused() Node {
	if !g.ok {
		return nil
	}
	return g.nodes[g.index]
}

// Focus moves focus to the child at i, clearing it on every other child.
func (g *FocusGroup) Focus(i int) error {
	if i < 0 || i >= len(g.nodes) {
		return fmt.Errorf("focus: index %d out of range [0,%d)", i, len(g.nodes))
	}
	for j, n := range g.nodes {
		n.SetFocused(j == i)
	}
	g.index, g.ok = i, true
	return nil
}

// FocusNode focuses n if it is in the group.
func (g *FocusGroup) FocusNode(n Node) error {
	for i, m := range g.nodes {
		if m == n {
			return g.Focus(i)
		}
	}
	return fmt.Errorf("focus: node %T is not in the group", n)
}

// Blur clears focus from every child.
func (g *FocusGroup) Blur() {
	for _, n := range g.nodes {
		n.SetFocused(false)
	}
	g.index, g.ok = 0, false
}

// Cycle moves focus by d positions, wrapping around. With nothing focused,
// forward cycling starts at the first child and backward at the last.
func (g *FocusGroup) Cycle(d int) error {
	next, err := cycle.From(g.index, g.ok, d, len(g.nodes))
	if err != nil {
		return err
	}
	return g.Focus(next)
}

// FocusedLeaf follows FocusedChild from root and returns the last node
// reached, which is the node receiving input. It returns root when root is
// not a container or has no focused child.
func FocusedLeaf(root Node) Node {
	path := FocusPath(root)
	if len(path) == 0 {
		return nil
	}
	return path[len(path)-1]
}

// FocusPath returns the chain of focused nodes from root to the input leaf.
// The walk stops at a node that reports itself as its own focused child and
// after maxFocusDepth steps.
func FocusPath(root Node) []Node {
	if root == nil {
		return nil
	}

	path := []Node{root}
	cur := root
	for range maxFocusDepth {
		c, ok := cur.(Container)
		if !ok {
			break
		}
		next := c.FocusedChild()
		if next == nil || next == cur {
			break
		}
		path = append(path, next)
		cur = next
	}
	return path
}
