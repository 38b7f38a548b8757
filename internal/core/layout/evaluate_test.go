package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestEvaluate_FlexWeights(t *testing.T) {
	root := New("root").Horizontal().With(
		Leaf("left", 0).Sized(Flex(1)),
		Leaf("right", 1).Sized(Flex(3)),
	)

	res := Evaluate(root, Rect{W: 40, H: 10})

	require.Len(t, res.Placements, 2)
	assert.Equal(t, Rect{X: 0, Y: 0, W: 10, H: 10}, res.Placements[0].Rect)
	assert.Equal(t, Rect{X: 10, Y: 0, W: 30, H: 10}, res.Placements[1].Rect)
}

func TestEvaluate_BorderConsumesMargin(t *testing.T) {
	root := New("root").Horizontal().Framed(BorderRounded).With(
		Leaf("left", 0).Sized(Flex(1)),
		Leaf("right", 1).Sized(Flex(3)),
	)

	res := Evaluate(root, Rect{W: 42, H: 12})

	rootRegion, ok := res.Region(Coord{})
	require.True(t, ok)
	assert.Equal(t, Rect{X: 1, Y: 1, W: 40, H: 10}, rootRegion.Inner)
	assert.Equal(t, 10, res.Placements[0].Rect.W)
	assert.Equal(t, 30, res.Placements[1].Rect.W)
	assert.Equal(t, 1, res.Placements[0].Rect.X)
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name  string
		total int
		sizes []Size
		want  []int
	}{
		{name: "even flex", total: 9, sizes: []Size{Flex(1), Flex(1), Flex(1)}, want: []int{3, 3, 3}},
		{name: "leftover to earlier children", total: 10, sizes: []Size{Flex(1), Flex(1), Flex(1)}, want: []int{4, 3, 3}},
		{name: "two leftover cells", total: 11, sizes: []Size{Flex(1), Flex(1), Flex(1)}, want: []int{4, 4, 3}},
		{name: "length then flex", total: 20, sizes: []Size{Length(5), Flex(1), Flex(2)}, want: []int{5, 5, 10}},
		{name: "length after flex", total: 20, sizes: []Size{Flex(1), Length(8)}, want: []int{12, 8}},
		{name: "length clamps to remaining", total: 10, sizes: []Size{Length(7), Length(7), Flex(1)}, want: []int{7, 3, 0}},
		{name: "only length leaves slack", total: 10, sizes: []Size{Length(3)}, want: []int{3}},
		{name: "zero area", total: 0, sizes: []Size{Flex(1), Length(4)}, want: []int{0, 0}},
		{name: "zero length", total: 6, sizes: []Size{Length(0), Flex(1)}, want: []int{0, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rects := Split(Rect{X: 2, Y: 3, W: tt.total, H: 4}, Horizontal, tt.sizes)
			require.Len(t, rects, len(tt.want))

			x := 2
			for i, r := range rects {
				assert.Equal(t, tt.want[i], r.W, "width of child %d", i)
				assert.Equal(t, x, r.X, "child %d is contiguous", i)
				assert.Equal(t, 3, r.Y)
				assert.Equal(t, 4, r.H)
				x += r.W
			}
		})
	}
}

func TestSplit_Vertical(t *testing.T) {
	rects := Split(Rect{W: 5, H: 12}, Vertical, []Size{Length(2), Flex(1)})
	assert.Equal(t, Rect{W: 5, H: 2}, rects[0])
	assert.Equal(t, Rect{Y: 2, W: 5, H: 10}, rects[1])
}

func TestResult_At(t *testing.T) {
	root := New("root").Horizontal().With(
		Leaf("left", 0).Sized(Length(10)),
		New("right").With(Leaf("top", 1), Leaf("bottom", 2)),
	)
	res := Evaluate(root, Rect{W: 30, H: 10})

	tests := []struct {
		name string
		x, y int
		want Coord
	}{
		{name: "left leaf", x: 3, y: 3, want: Coord{0}},
		{name: "upper right", x: 20, y: 1, want: Coord{1, 0}},
		{name: "lower right", x: 20, y: 8, want: Coord{1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := res.At(tt.x, tt.y)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := res.At(31, 0)
	assert.False(t, ok)
}

func TestEvaluate_ContainerContentIsIgnored(t *testing.T) {
	root := Leaf("root", 5).With(Leaf("child", 0))
	res := Evaluate(root, Rect{W: 10, H: 10})

	require.Len(t, res.Placements, 1)
	assert.Equal(t, 0, res.Placements[0].ContentIndex)
}

func TestEvaluateScrolled(t *testing.T) {
	root := New("root").With(
		Leaf("a", 0).Sized(Length(30)),
		Leaf("b", 1).Sized(Length(30)),
	)

	w, h := MinSize(root)
	assert.Equal(t, 0, w)
	assert.Equal(t, 60, h)

	res, win := EvaluateScrolled(root, Viewport{Area: Rect{X: 5, Y: 2, W: 20, H: 10}, Offset: Point{Y: 100}})

	assert.True(t, win.Scrollable())
	assert.Equal(t, Rect{W: 20, H: 60}, win.Canvas)
	assert.Equal(t, Point{Y: 50}, win.Offset(), "offset clamps to the last full page")
	assert.Equal(t, 30, res.Placements[1].Rect.Y)
	assert.Equal(t, 30, res.Placements[1].Rect.H, "length is honoured beyond the viewport")

	p, ok := win.ToCanvas(Point{X: 6, Y: 2})
	require.True(t, ok)
	assert.Equal(t, Point{X: 1, Y: 50}, p)

	_, ok = win.ToCanvas(Point{X: 0, Y: 0})
	assert.False(t, ok)

	onScreen := win.ToScreen(res.Placements[1].Rect)
	assert.Equal(t, Rect{X: 5, Y: 2, W: 20, H: 10}, onScreen)
}

func TestEvaluateScrolled_FitsWithoutScrolling(t *testing.T) {
	_, win := EvaluateScrolled(Default(), Viewport{Area: Rect{W: 40, H: 20}, Offset: Point{X: 3, Y: 3}})
	assert.False(t, win.Scrollable())
	assert.Equal(t, Point{}, win.Offset())
}

func TestMinSize_Borders(t *testing.T) {
	root := New("root").Horizontal().Framed(BorderPlain).With(
		Leaf("a", 0).Sized(Length(4)).Framed(BorderPlain),
		Leaf("b", 1).Framed(BorderPlain),
	)
	w, h := MinSize(root)
	assert.Equal(t, 4+2+2, w, "length child plus root border, flex sibling adds its own border")
	assert.Equal(t, 2+2, h)
}

func TestMinSize_CappedAtMaxCanvas(t *testing.T) {
	root := New("root")
	for i := range 10 {
		root.Children = append(root.Children, Leaf("tall", i).Sized(Length(MaxLength)))
	}

	w, h := MinSize(root)
	assert.Equal(t, 0, w)
	assert.Equal(t, MaxCanvas, h)

	_, win := EvaluateScrolled(root, Viewport{Area: Rect{W: 40, H: 10}})
	assert.Equal(t, Rect{W: 40, H: MaxCanvas}, win.Canvas)
	assert.Equal(t, Point{Y: MaxCanvas - 10}, win.MaxOffset())
}

func genTree(t *rapid.T, depth int) *Node {
	n := New("n")
	if rapid.Bool().Draw(t, "horizontal") {
		n.Orientation = Horizontal
	}
	n.Border = rapid.SampledFrom(BorderModes).Draw(t, "border")
	if rapid.Bool().Draw(t, "length") {
		n.Size = Length(rapid.IntRange(0, 30).Draw(t, "cells"))
	} else {
		n.Size = Flex(rapid.IntRange(1, 5).Draw(t, "weight"))
	}

	if depth == 0 {
		n.ContentIndex = new(int)
		*n.ContentIndex = rapid.IntRange(0, 10).Draw(t, "content")
		return n
	}

	children := rapid.IntRange(0, 4).Draw(t, "children")
	for range children {
		n.Children = append(n.Children, genTree(t, depth-1))
	}
	if children == 0 {
		n.ContentIndex = new(int)
	}
	return n
}

func TestEvaluate_AreaConservation(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		root := genTree(t, rapid.IntRange(0, 3).Draw(t, "depth"))
		area := Rect{
			X: rapid.IntRange(0, 5).Draw(t, "x"),
			Y: rapid.IntRange(0, 5).Draw(t, "y"),
			W: rapid.IntRange(0, 120).Draw(t, "w"),
			H: rapid.IntRange(0, 60).Draw(t, "h"),
		}

		res := Evaluate(root, area)

		regions := map[string]Region{}
		for _, r := range res.Regions {
			regions[r.Coord.String()] = r
		}

		for _, r := range res.Regions {
			parentCoord, ok := r.Coord.Parent()
			if !ok {
				continue
			}
			parent := regions[parentCoord.String()]
			if !parent.Inner.ContainsRect(r.Outer) {
				t.Fatalf("region %s %s escapes parent interior %s", r.Coord, r.Outer, parent.Inner)
			}
		}

		_ = root.Walk(func(at Coord, n *Node) error {
			if n.IsLeaf() {
				return nil
			}
			parent := regions[at.String()]
			next := parent.Inner.X
			if n.Orientation == Vertical {
				next = parent.Inner.Y
			}
			for i := range n.Children {
				child := regions[at.Child(i).String()]
				start, span := child.Outer.X, child.Outer.W
				if n.Orientation == Vertical {
					start, span = child.Outer.Y, child.Outer.H
				}
				if start != next {
					t.Fatalf("child %s starts at %d, want %d", child.Coord, start, next)
				}
				next += span
			}
			return nil
		})

		if len(res.Regions) != root.Count() {
			t.Fatalf("got %d regions for %d nodes", len(res.Regions), root.Count())
		}
	})
}

func TestInsertThenGet_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		root := genTree(t, 2)

		var targets []Coord
		_ = root.Walk(func(at Coord, _ *Node) error {
			targets = append(targets, at)
			return nil
		})
		target := rapid.SampledFrom(targets).Draw(t, "target")

		child := Leaf("inserted", 0)
		at, err := root.InsertUnder(target, child)
		if err != nil {
			t.Fatalf("insert under %s: %v", target, err)
		}
		got, err := root.Get(at)
		if err != nil || got != child {
			t.Fatalf("get %s after insert: %v", at, err)
		}

		if _, err := root.Remove(at); err != nil {
			t.Fatalf("remove %s: %v", at, err)
		}
		if got, err := root.Get(at); err == nil && got == child {
			t.Fatalf("removed node still resolves at %s", at)
		}
	})
}
