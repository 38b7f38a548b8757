package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/undefinedpatient/glyph/internal/core/cycle"
	"github.com/undefinedpatient/glyph/internal/core/document"
	"github.com/undefinedpatient/glyph/internal/core/layout"
	"github.com/undefinedpatient/glyph/internal/core/styles"
	"github.com/undefinedpatient/glyph/internal/ui"
	"github.com/undefinedpatient/glyph/internal/ui/widgets"
)

// LayoutEditor lists the layout tree and turns keys into LayoutEdit intents.
// It never changes the tree itself: the page applies edits and moves the
// selection explicitly afterwards.
type LayoutEditor struct {
	ui.Focus
	state    *document.State
	keys     layoutKeys
	list     *widgets.List
	selected layout.Coord
}

var (
	_ ui.Node   = (*LayoutEditor)(nil)
	_ ui.KeyMap = (*LayoutEditor)(nil)
)

// NewLayoutEditor creates an editor with the root selected.
func NewLayoutEditor(state *document.State) *LayoutEditor {
	return &LayoutEditor{
		state: state,
		keys:  defaultLayoutKeys(),
		list:  widgets.NewList("empty layout"),
	}
}

// Title names the view in the status line.
func (e *LayoutEditor) Title() string { return "layout" }

// Bindings implements ui.KeyMap.
func (e *LayoutEditor) Bindings() []key.Binding { return e.keys.bindings() }

// Selected returns the selected coordinate.
func (e *LayoutEditor) Selected() layout.Coord { return e.selected.Clone() }

// Select moves the selection to c. It is not checked against the tree until
// the next render or key press.
func (e *LayoutEditor) Select(c layout.Coord) { e.selected = c.Clone() }

// tree returns a copy of the layout and the selected node. A selection that
// no longer resolves yields the root together with its CoordError; the
// selection itself is left for the caller to reset.
func (e *LayoutEditor) tree() (*layout.Node, *layout.Node, error) {
	root, err := e.state.Layout()
	if err != nil {
		return nil, nil, err
	}
	node, err := root.Get(e.selected)
	if err != nil {
		return root, nil, err
	}
	return root, node, nil
}

func describe(n *layout.Node, sectionTitle func(int) string) string {
	var sb strings.Builder
	if n.IsLeaf() {
		sb.WriteString(styles.IconLeaf + " ")
	} else {
		sb.WriteString(styles.IconBranch + " ")
	}
	sb.WriteString(n.Label)
	if n.IsLeaf() {
		if i, ok := n.Content(); ok {
			fmt.Fprintf(&sb, " → %s", sectionTitle(i))
		}
	} else {
		fmt.Fprintf(&sb, " %s", n.Orientation)
	}
	fmt.Fprintf(&sb, " %s", n.Size)
	if n.Border != layout.BorderNone {
		fmt.Fprintf(&sb, " %s", n.Border)
	}
	return sb.String()
}

// Render lists every node indented by depth, with the selection hovered.
func (e *LayoutEditor) Render(c *ui.Canvas, area layout.Rect, hint ui.Hint) {
	root, _, err := e.tree()
	if root == nil {
		c.Line(area, 0, err.Error(), c.Style(styles.RoleError, hint))
		return
	}
	secs, err := e.state.Sections()
	if err != nil {
		c.Line(area, 0, err.Error(), c.Style(styles.RoleError, hint))
		return
	}
	title := func(i int) string {
		if i < len(secs) {
			return secs[i].DisplayTitle()
		}
		return fmt.Sprintf("#%d (missing)", i)
	}

	var (
		items []widgets.ListItem
		sel   int
	)
	_ = root.Walk(func(at layout.Coord, n *layout.Node) error {
		if at.Equal(e.selected) {
			sel = len(items)
		}
		items = append(items, widgets.ListItem{Title: strings.Repeat("  ", len(at)) + describe(n, title)})
		return nil
	})
	e.list.SetItems(items)
	_ = e.list.Hover(sel)
	e.list.Render(c, area, hint)
}

// Handle navigates the tree and emits edits for the selected node.
func (e *LayoutEditor) Handle(ev ui.Event) ([]ui.Intent, error) {
	if _, ok := ui.KeyPress(ev); !ok {
		return nil, nil
	}
	if ui.Matches(ev, e.keys.Done) {
		return []ui.Intent{SwitchMode{Mode: ModeNormal}}, nil
	}

	root, node, err := e.tree()
	if root == nil {
		return nil, err
	}
	if err != nil {
		e.selected = layout.Coord{}
		return []ui.Intent{ui.Failure(err), SelectNode{At: layout.Coord{}}}, nil
	}
	at := e.selected.Clone()

	switch {
	case ui.Matches(ev, e.keys.Next):
		return e.selectIntent(e.sibling(root, 1)), nil
	case ui.Matches(ev, e.keys.Prev):
		return e.selectIntent(e.sibling(root, -1)), nil
	case ui.Matches(ev, e.keys.Descend):
		if len(node.Children) == 0 {
			return nil, nil
		}
		return e.selectIntent(at.Child(0)), nil
	case ui.Matches(ev, e.keys.Ascend):
		parent, ok := at.Parent()
		if !ok {
			return nil, nil
		}
		return e.selectIntent(parent), nil

	case ui.Matches(ev, e.keys.Insert):
		content := len(root.Leaves())
		if n, err := e.sectionCount(); err == nil && n > 0 {
			content %= n
		}
		child := layout.Leaf(fmt.Sprintf("node %d", root.Count()), content)
		return []ui.Intent{LayoutEdit{Op: LayoutInsert, At: at, Node: child}}, nil
	case ui.Matches(ev, e.keys.Remove):
		if at.IsRoot() {
			return nil, layout.ErrRoot
		}
		return []ui.Intent{ui.PushDialog{Dialog: NewConfirmDialog("Remove node",
			fmt.Sprintf("Remove %q and everything under it?", node.Label),
			widgets.NewButton("Remove", ui.PopDialog{}, LayoutEdit{Op: LayoutRemove, At: at}),
			widgets.NewButton("Cancel", ui.PopDialog{}),
		)}}, nil
	case ui.Matches(ev, e.keys.MoveUp), ui.Matches(ev, e.keys.MoveDown):
		if at.IsRoot() {
			return nil, layout.ErrRoot
		}
		offset := 1
		if ui.Matches(ev, e.keys.MoveUp) {
			offset = -1
		}
		return []ui.Intent{LayoutEdit{Op: LayoutMove, At: at, Offset: offset}}, nil
	case ui.Matches(ev, e.keys.Rename):
		return []ui.Intent{ui.PushDialog{Dialog: NewTextInputDialog("Rename node", "label", node.Label, func(label string) []ui.Intent {
			return []ui.Intent{ui.PopDialog{}, LayoutEdit{Op: LayoutPatch, At: at, Delta: layout.Delta{Label: &label}}}
		})}}, nil
	}

	delta, ok, err := e.delta(ev, node)
	if err != nil || !ok {
		return nil, err
	}
	return []ui.Intent{LayoutEdit{Op: LayoutPatch, At: at, Delta: delta}}, nil
}

func (e *LayoutEditor) selectIntent(c layout.Coord) []ui.Intent {
	return []ui.Intent{SelectNode{At: c}}
}

// sibling returns the coordinate d siblings away from the selection,
// wrapping around. The root has no siblings.
func (e *LayoutEditor) sibling(root *layout.Node, d int) layout.Coord {
	parentAt, ok := e.selected.Parent()
	if !ok {
		return nil
	}
	parent, err := root.Get(parentAt)
	if err != nil {
		return nil
	}
	idx, _ := e.selected.Last()
	next, err := cycle.Step(idx, d, len(parent.Children))
	if err != nil {
		return parentAt
	}
	return parentAt.Child(next)
}

func (e *LayoutEditor) sectionCount() (int, error) {
	secs, err := e.state.Sections()
	return len(secs), err
}

// delta builds the attribute change bound to ev. ok is false when ev is not
// an attribute key.
func (e *LayoutEditor) delta(ev ui.Event, n *layout.Node) (layout.Delta, bool, error) {
	var d layout.Delta
	switch {
	case ui.Matches(ev, e.keys.Orientation):
		o, err := cycle.Values(layout.Orientations, n.Orientation, 1)
		if err != nil {
			return d, false, err
		}
		d.Orientation = &o
	case ui.Matches(ev, e.keys.Border):
		b, err := cycle.Values(layout.BorderModes, n.Border, 1)
		if err != nil {
			return d, false, err
		}
		d.Border = &b
	case ui.Matches(ev, e.keys.SizeMode):
		s := layout.Length(10)
		if n.Size.Mode == layout.SizeLength {
			s = layout.Flex(1)
		}
		d.Size = &s
	case ui.Matches(ev, e.keys.Grow), ui.Matches(ev, e.keys.Shrink):
		s := n.Size
		if ui.Matches(ev, e.keys.Grow) {
			s.Value++
		} else {
			s.Value--
		}
		d.Size = &s
	case ui.Matches(ev, e.keys.Content):
		count, err := e.sectionCount()
		if err != nil {
			return d, false, err
		}
		cur, ok := n.Content()
		next, err := cycle.From(cur, ok, 1, count)
		if errors.Is(err, cycle.ErrEmpty) {
			return d, false, fmt.Errorf("no sections to show: %w", err)
		}
		if err != nil {
			return d, false, err
		}
		d.ContentIndex = &next
	case ui.Matches(ev, e.keys.Unbind):
		d.ClearContent = true
	default:
		return d, false, nil
	}
	return d, true, nil
}
