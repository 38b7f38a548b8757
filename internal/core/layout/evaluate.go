package layout

// Placement is where one content-bound leaf is drawn.
type Placement struct {
	Coord        Coord
	ContentIndex int
	Rect         Rect // outer bounds, including the border
	Inner        Rect // drawable interior
	Border       BorderMode
	Label        string
}

// Region records the bounds of any node, for hit-testing and overlays.
type Region struct {
	Coord       Coord
	Outer       Rect
	Inner       Rect
	Border      BorderMode
	Label       string
	Leaf        bool
	Orientation Orientation
}

// Result is the output of Evaluate.
type Result struct {
	Placements []Placement
	Regions    []Region
}

// At returns the coordinate of the deepest region containing the point.
func (r Result) At(x, y int) (Coord, bool) {
	p := Point{X: x, Y: y}
	var (
		best  Coord
		found bool
	)
	for _, reg := range r.Regions {
		if !reg.Outer.Contains(p) {
			continue
		}
		if !found || len(reg.Coord) > len(best) {
			best, found = reg.Coord, true
		}
	}
	return best, found
}

// Region looks up the region evaluated for c.
func (r Result) Region(c Coord) (Region, bool) {
	for _, reg := range r.Regions {
		if reg.Coord.Equal(c) {
			return reg, true
		}
	}
	return Region{}, false
}

// Placement looks up the placement of a content index. When several leaves
// show the same content, the first in depth first order wins.
func (r Result) Placement(content int) (Placement, bool) {
	for _, p := range r.Placements {
		if p.ContentIndex == content {
			return p, true
		}
	}
	return Placement{}, false
}

// Evaluate partitions area according to the tree rooted at root.
func Evaluate(root *Node, area Rect) Result {
	var res Result
	if root == nil {
		return res
	}
	evaluate(root, Coord{}, area, &res)
	return res
}

func evaluate(n *Node, at Coord, area Rect, res *Result) {
	inner := area
	if n.Border.Bordered() {
		inner = area.Inset(1)
	}

	res.Regions = append(res.Regions, Region{
		Coord:       at,
		Outer:       area,
		Inner:       inner,
		Border:      n.Border,
		Label:       n.Label,
		Leaf:        n.IsLeaf(),
		Orientation: n.Orientation,
	})

	if content, ok := n.Content(); ok {
		res.Placements = append(res.Placements, Placement{
			Coord:        at,
			ContentIndex: content,
			Rect:         area,
			Inner:        inner,
			Border:       n.Border,
			Label:        n.Label,
		})
	}
	if n.IsLeaf() {
		return
	}

	sizes := make([]Size, len(n.Children))
	for i, c := range n.Children {
		sizes[i] = c.Size
	}
	for i, sub := range Split(inner, n.Orientation, sizes) {
		evaluate(n.Children[i], at.Child(i), sub, res)
	}
}

// Split divides area along the axis selected by o. Length sizes take their
// cells in order until the axis is exhausted; Flex sizes share what remains
// in proportion to their weights, with cells lost to integer division handed
// to earlier flex entries first. The returned rects are contiguous and appear
// in the order of sizes.
func Split(area Rect, o Orientation, sizes []Size) []Rect {
	total := area.H
	if o == Horizontal {
		total = area.W
	}
	total = max(total, 0)

	spans := make([]int, len(sizes))
	remaining := total
	weights := 0
	for i, s := range sizes {
		switch s.Mode {
		case SizeLength:
			spans[i] = min(max(s.Value, 0), remaining)
			remaining -= spans[i]
		default:
			weights += max(s.Value, 1)
		}
	}

	if weights > 0 && remaining > 0 {
		given := 0
		for i, s := range sizes {
			if s.Mode == SizeLength {
				continue
			}
			spans[i] = remaining * max(s.Value, 1) / weights
			given += spans[i]
		}
		for i, s := range sizes {
			if given >= remaining {
				break
			}
			if s.Mode == SizeLength {
				continue
			}
			spans[i]++
			given++
		}
	}

	out := make([]Rect, len(sizes))
	offset := 0
	for i, span := range spans {
		if o == Horizontal {
			out[i] = Rect{X: area.X + offset, Y: area.Y, W: span, H: max(area.H, 0)}
		} else {
			out[i] = Rect{X: area.X, Y: area.Y + offset, W: max(area.W, 0), H: span}
		}
		offset += span
	}
	return out
}
