package layout

// MaxCanvas bounds each side of the virtual canvas.
const MaxCanvas = 1 << 16

// MinSize returns the smallest area that shows every Length node at its full
// size, capped at MaxCanvas per side. Flex nodes contribute only what their
// own descendants require.
func MinSize(n *Node) (w, h int) {
	if n == nil {
		return 0, 0
	}

	for _, c := range n.Children {
		cw, ch := MinSize(c)
		if c.Size.Mode == SizeLength {
			if n.Orientation == Horizontal {
				cw = c.Size.Value
			} else {
				ch = c.Size.Value
			}
		}

		if n.Orientation == Horizontal {
			w += cw
			h = max(h, ch)
		} else {
			h += ch
			w = max(w, cw)
		}
	}

	if n.Border.Bordered() {
		w += 2
		h += 2
	}
	return min(w, MaxCanvas), min(h, MaxCanvas)
}

// Viewport is the on-screen area a tree is shown in, plus the scroll offset
// into the virtual canvas.
type Viewport struct {
	Area   Rect
	Offset Point
}

// Window describes which part of the virtual canvas is visible.
type Window struct {
	Canvas  Rect // full virtual canvas, origin at 0,0
	Visible Rect // visible part of the canvas, in canvas space
	Screen  Rect // where Visible is drawn
}

// Scrollable reports whether the canvas is larger than the screen area.
func (w Window) Scrollable() bool {
	return w.Canvas.W > w.Screen.W || w.Canvas.H > w.Screen.H
}

// Offset returns the scroll offset after clamping.
func (w Window) Offset() Point {
	return Point{X: w.Visible.X, Y: w.Visible.Y}
}

// MaxOffset returns the largest valid scroll offset.
func (w Window) MaxOffset() Point {
	return Point{X: max(w.Canvas.W-w.Screen.W, 0), Y: max(w.Canvas.H-w.Screen.H, 0)}
}

// ToCanvas maps a screen position into canvas space. ok is false when p is
// outside the screen area.
func (w Window) ToCanvas(p Point) (Point, bool) {
	if !w.Screen.Contains(p) {
		return Point{}, false
	}
	return Point{X: p.X - w.Screen.X + w.Visible.X, Y: p.Y - w.Screen.Y + w.Visible.Y}, true
}

// ToScreen maps a canvas rect onto the screen, clipped to the visible part.
func (w Window) ToScreen(r Rect) Rect {
	clipped := r.Intersect(w.Visible)
	return clipped.Offset(w.Screen.X-w.Visible.X, w.Screen.Y-w.Visible.Y)
}

// EvaluateScrolled evaluates root against a virtual canvas at least as large
// as both the viewport and MinSize(root). Rects in the result are in canvas
// space; use the Window to map them to the screen.
func EvaluateScrolled(root *Node, vp Viewport) (Result, Window) {
	mw, mh := MinSize(root)
	canvas := Rect{W: max(vp.Area.W, mw, 0), H: max(vp.Area.H, mh, 0)}

	win := Window{Canvas: canvas, Screen: vp.Area}
	maxOff := win.MaxOffset()
	win.Visible = Rect{
		X: min(max(vp.Offset.X, 0), maxOff.X),
		Y: min(max(vp.Offset.Y, 0), maxOff.Y),
		W: max(vp.Area.W, 0),
		H: max(vp.Area.H, 0),
	}

	return Evaluate(root, canvas), win
}
