package layout

import (
	"fmt"
	"slices"

	"github.com/undefinedpatient/glyph/internal/core/cycle"
)

// resolve walks c from n. The returned error is always a *CoordError.
func (n *Node) resolve(op string, c Coord) (*Node, error) {
	cur := n
	for depth, idx := range c {
		if idx < 0 || idx >= len(cur.Children) {
			return nil, &CoordError{Op: op, Coord: c.Clone(), Depth: depth, Index: idx, Len: len(cur.Children)}
		}
		cur = cur.Children[idx]
	}
	return cur, nil
}

// Get returns the node at c. The result aliases the tree, so callers may
// mutate it in place.
func (n *Node) Get(c Coord) (*Node, error) {
	return n.resolve("get", c)
}

// InsertUnder appends child to the children of the node at c and returns the
// coordinate of the inserted node.
func (n *Node) InsertUnder(c Coord, child *Node) (Coord, error) {
	if child == nil {
		return nil, fmt.Errorf("%w: cannot insert nil node", ErrInvalidNode)
	}
	if err := child.Validate(); err != nil {
		return nil, err
	}

	parent, err := n.resolve("insert", c)
	if err != nil {
		return nil, err
	}

	parent.Children = append(parent.Children, child)
	return c.Child(len(parent.Children) - 1), nil
}

// Remove detaches the node at c from its parent and returns it. Later
// siblings shift down by one; coordinates held elsewhere are not adjusted.
func (n *Node) Remove(c Coord) (*Node, error) {
	parentCoord, ok := c.Parent()
	if !ok {
		return nil, ErrRoot
	}

	parent, err := n.resolve("remove", parentCoord)
	if err != nil {
		return nil, err
	}

	idx, _ := c.Last()
	if idx < 0 || idx >= len(parent.Children) {
		return nil, &CoordError{Op: "remove", Coord: c.Clone(), Depth: len(parentCoord), Index: idx, Len: len(parent.Children)}
	}

	removed := parent.Children[idx]
	parent.Children = slices.Delete(parent.Children, idx, idx+1)
	return removed, nil
}

// Delta is a partial update of a node's attributes. Nil fields are left
// unchanged.
type Delta struct {
	Label        *string
	ContentIndex *int
	ClearContent bool
	Orientation  *Orientation
	Size         *Size
	Border       *BorderMode
}

// Patch applies d to the node at c. The node is left untouched when the
// patched attributes fail validation.
func (n *Node) Patch(c Coord, d Delta) error {
	target, err := n.resolve("patch", c)
	if err != nil {
		return err
	}

	next := *target
	if d.Label != nil {
		next.Label = *d.Label
	}
	if d.ClearContent {
		next.ContentIndex = nil
	} else if d.ContentIndex != nil {
		v := *d.ContentIndex
		next.ContentIndex = &v
	}
	if d.Orientation != nil {
		next.Orientation = *d.Orientation
	}
	if d.Size != nil {
		next.Size = *d.Size
	}
	if d.Border != nil {
		next.Border = *d.Border
	}

	if err := next.validateSelf(); err != nil {
		return fmt.Errorf("patch %s: %w", c, err)
	}

	*target = next
	return nil
}

// Move shifts the node at c by offset among its siblings, wrapping around,
// and returns its new coordinate.
func (n *Node) Move(c Coord, offset int) (Coord, error) {
	parentCoord, ok := c.Parent()
	if !ok {
		return nil, ErrRoot
	}

	parent, err := n.resolve("move", parentCoord)
	if err != nil {
		return nil, err
	}

	idx, _ := c.Last()
	if idx < 0 || idx >= len(parent.Children) {
		return nil, &CoordError{Op: "move", Coord: c.Clone(), Depth: len(parentCoord), Index: idx, Len: len(parent.Children)}
	}

	to, err := cycle.Step(idx, offset, len(parent.Children))
	if err != nil {
		return nil, err
	}

	node := parent.Children[idx]
	parent.Children = slices.Delete(parent.Children, idx, idx+1)
	parent.Children = slices.Insert(parent.Children, to, node)
	return parentCoord.Child(to), nil
}

// LeafRef pairs a leaf with its coordinate.
type LeafRef struct {
	Coord Coord
	Node  *Node
}

// Leaves returns every leaf in depth first order.
func (n *Node) Leaves() []LeafRef {
	var out []LeafRef
	_ = n.Walk(func(at Coord, node *Node) error {
		if node.IsLeaf() {
			out = append(out, LeafRef{Coord: at, Node: node})
		}
		return nil
	})
	return out
}
