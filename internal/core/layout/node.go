// Package layout models the per-entry layout tree and evaluates it into
// screen rectangles.
//
// A tree is a hierarchy of Nodes. Containers split their interior among their
// children along their Orientation; each child claims either a fixed Length
// or a Flex share of what the fixed children leave. Childless nodes are
// leaves and may be bound to a content index (a section position in the
// owning entry). Nodes are addressed by Coord, the list of child indices from
// the root, and every mutation resolves its Coord explicitly: a stale or out
// of range coordinate yields a *CoordError rather than a panic or a no-op.
package layout

import (
	"errors"
	"fmt"
)

// Orientation selects the axis a container splits along.
type Orientation string

const (
	Horizontal Orientation = "horizontal" // children side by side
	Vertical   Orientation = "vertical"   // children stacked
)

// Orientations lists the valid orientations in cycling order.
var Orientations = []Orientation{Vertical, Horizontal}

// SizeMode selects how a node claims space along its parent's axis.
type SizeMode string

const (
	SizeFlex   SizeMode = "flex"
	SizeLength SizeMode = "length"
)

// BorderMode selects the frame drawn around a node.
type BorderMode string

const (
	BorderNone    BorderMode = "none"
	BorderPlain   BorderMode = "plain"
	BorderDashed  BorderMode = "dashed"
	BorderRounded BorderMode = "rounded"
)

// BorderModes lists the valid border modes in cycling order.
var BorderModes = []BorderMode{BorderNone, BorderPlain, BorderDashed, BorderRounded}

// Bordered reports whether the mode consumes a one cell margin.
func (b BorderMode) Bordered() bool {
	return b != BorderNone && b != ""
}

// ErrInvalidNode is wrapped by validation failures.
var ErrInvalidNode = errors.New("invalid layout node")

// Size is a node's claim along its parent's split axis.
type Size struct {
	Mode  SizeMode `json:"mode" yaml:"mode"`
	Value int      `json:"value" yaml:"value"`
}

// Flex claims a share of the remaining space proportional to weight.
func Flex(weight int) Size { return Size{Mode: SizeFlex, Value: weight} }

// MaxLength is the largest Length a node may claim.
const MaxLength = 10000

// Length claims a fixed number of cells.
func Length(cells int) Size { return Size{Mode: SizeLength, Value: cells} }

func (s Size) String() string {
	return fmt.Sprintf("%s(%d)", s.Mode, s.Value)
}

func (s Size) validate() error {
	switch s.Mode {
	case SizeFlex:
		if s.Value < 1 {
			return fmt.Errorf("%w: flex weight must be at least 1, got %d", ErrInvalidNode, s.Value)
		}
	case SizeLength:
		if s.Value < 0 {
			return fmt.Errorf("%w: length must not be negative, got %d", ErrInvalidNode, s.Value)
		}
		if s.Value > MaxLength {
			return fmt.Errorf("%w: length must be at most %d, got %d", ErrInvalidNode, MaxLength, s.Value)
		}
	default:
		return fmt.Errorf("%w: unknown size mode %q", ErrInvalidNode, s.Mode)
	}
	return nil
}

// Node is one region of a layout tree.
type Node struct {
	Label        string      `json:"label" yaml:"label"`
	ContentIndex *int        `json:"content_index,omitempty" yaml:"content_index,omitempty"`
	Orientation  Orientation `json:"orientation" yaml:"orientation"`
	Size         Size        `json:"size" yaml:"size"`
	Border       BorderMode  `json:"border" yaml:"border"`
	Children     []*Node     `json:"children,omitempty" yaml:"children,omitempty"`
}

// New returns a vertical, borderless Flex(1) node.
func New(label string) *Node {
	return &Node{
		Label:       label,
		Orientation: Vertical,
		Size:        Flex(1),
		Border:      BorderNone,
	}
}

// Leaf returns a node bound to the given content index.
func Leaf(label string, content int) *Node {
	n := New(label)
	n.ContentIndex = &content
	return n
}

// Default returns the tree given to new entries: a rounded root holding a
// single leaf that shows the first section.
func Default() *Node {
	root := New("root")
	root.Border = BorderRounded
	root.Children = []*Node{Leaf("main", 0)}
	return root
}

// With appends children and returns n, for building trees inline.
func (n *Node) With(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Horizontal sets the orientation to Horizontal and returns n.
func (n *Node) Horizontal() *Node {
	n.Orientation = Horizontal
	return n
}

// Sized sets the size and returns n.
func (n *Node) Sized(s Size) *Node {
	n.Size = s
	return n
}

// Framed sets the border mode and returns n.
func (n *Node) Framed(b BorderMode) *Node {
	n.Border = b
	return n
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Content returns the bound content index. Containers never render content,
// so ok is false for them even when ContentIndex is set.
func (n *Node) Content() (int, bool) {
	if !n.IsLeaf() || n.ContentIndex == nil {
		return 0, false
	}
	return *n.ContentIndex, true
}

// Clone returns a deep copy.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := *n
	if n.ContentIndex != nil {
		v := *n.ContentIndex
		out.ContentIndex = &v
	}
	if n.Children != nil {
		out.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = c.Clone()
		}
	}
	return &out
}

// Walk visits n and its descendants depth first, parents before children.
// Returning an error from fn stops the walk.
func (n *Node) Walk(fn func(Coord, *Node) error) error {
	return n.walk(Coord{}, fn)
}

func (n *Node) walk(at Coord, fn func(Coord, *Node) error) error {
	if err := fn(at, n); err != nil {
		return err
	}
	for i, c := range n.Children {
		if err := c.walk(at.Child(i), fn); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of nodes in the tree.
func (n *Node) Count() int {
	total := 0
	_ = n.Walk(func(Coord, *Node) error {
		total++
		return nil
	})
	return total
}

// Depth returns the length of the longest coordinate in the tree plus one.
func (n *Node) Depth() int {
	deepest := 0
	for _, c := range n.Children {
		deepest = max(deepest, c.Depth())
	}
	return deepest + 1
}

// Validate checks every node of the tree.
func (n *Node) Validate() error {
	return n.Walk(func(at Coord, node *Node) error {
		if node == nil {
			return fmt.Errorf("%w: nil node at %s", ErrInvalidNode, at)
		}
		if err := node.validateSelf(); err != nil {
			return fmt.Errorf("node %s: %w", at, err)
		}
		return nil
	})
}

func (n *Node) validateSelf() error {
	switch n.Orientation {
	case Horizontal, Vertical:
	default:
		return fmt.Errorf("%w: unknown orientation %q", ErrInvalidNode, n.Orientation)
	}

	switch n.Border {
	case BorderNone, BorderPlain, BorderDashed, BorderRounded:
	default:
		return fmt.Errorf("%w: unknown border mode %q", ErrInvalidNode, n.Border)
	}

	if n.ContentIndex != nil && *n.ContentIndex < 0 {
		return fmt.Errorf("%w: content index must not be negative, got %d", ErrInvalidNode, *n.ContentIndex)
	}

	return n.Size.validate()
}

// normalize fills zero values left by older or hand-written documents.
func (n *Node) normalize() {
	if n.Orientation == "" {
		n.Orientation = Vertical
	}
	if n.Border == "" {
		n.Border = BorderNone
	}
	if n.Size.Mode == "" {
		n.Size = Flex(max(n.Size.Value, 1))
	}
	for _, c := range n.Children {
		if c != nil {
			c.normalize()
		}
	}
}
