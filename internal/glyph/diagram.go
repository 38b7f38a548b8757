package glyph

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/undefinedpatient/glyph/internal/core/layout"
	"github.com/undefinedpatient/glyph/internal/core/styles"
)

// Cell dimensions in pixels used to scale the terminal grid.
const (
	cellW = 9
	cellH = 18
)

// DiagramOptions configures RenderDiagram.
type DiagramOptions struct {
	Cols, Rows int                      // terminal size the layout is evaluated against
	Theme      styles.Theme             // colours
	Titles     func(int) (string, bool) // section title for a content index
}

// RenderDiagram draws the evaluated regions of root as an SVG, one box per
// node, labelled with node labels and bound section titles.
func RenderDiagram(w io.Writer, root *layout.Node, opts DiagramOptions) error {
	if opts.Cols <= 0 || opts.Rows <= 0 {
		return fmt.Errorf("diagram size must be positive, got %dx%d", opts.Cols, opts.Rows)
	}
	if err := root.Validate(); err != nil {
		return err
	}

	minW, minH := layout.MinSize(root)
	cols, rows := max(opts.Cols, minW), max(opts.Rows, minH)
	res := layout.Evaluate(root, layout.Rect{W: cols, H: rows})
	p := opts.Theme.Palette

	canvas := svg.New(w)
	canvas.Start(cols*cellW, rows*cellH)
	canvas.Rect(0, 0, cols*cellW, rows*cellH, fmt.Sprintf("fill:%s", p.Background))

	for _, r := range res.Regions {
		if r.Outer.Empty() {
			continue
		}
		x, y := r.Outer.X*cellW, r.Outer.Y*cellH
		rw, rh := r.Outer.W*cellW, r.Outer.H*cellH

		stroke := fmt.Sprintf("fill:none;stroke:%s;stroke-width:1", p.Muted)
		switch r.Border {
		case layout.BorderPlain:
			stroke = fmt.Sprintf("fill:none;stroke:%s;stroke-width:1.5", p.Primary)
		case layout.BorderDashed:
			stroke = fmt.Sprintf("fill:none;stroke:%s;stroke-width:1.5;stroke-dasharray:6,4", p.Primary)
		case layout.BorderRounded:
			canvas.Roundrect(x+1, y+1, rw-2, rh-2, 8, 8,
				fmt.Sprintf("fill:none;stroke:%s;stroke-width:1.5", p.Primary))
			stroke = ""
		}
		if stroke != "" {
			canvas.Rect(x+1, y+1, rw-2, rh-2, stroke)
		}

		label := r.Label
		if r.Leaf {
			if pl, ok := leafPlacement(res, r.Coord); ok && opts.Titles != nil {
				if title, ok := opts.Titles(pl.ContentIndex); ok {
					label = fmt.Sprintf("%s: %s", label, title)
				}
			}
		}
		if label != "" && r.Outer.H >= 1 {
			canvas.Text(x+6, y+cellH-4, label,
				fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace", p.Foreground))
		}
	}

	canvas.End()
	return nil
}

func leafPlacement(res layout.Result, c layout.Coord) (layout.Placement, bool) {
	for _, p := range res.Placements {
		if p.Coord.Equal(c) {
			return p, true
		}
	}
	return layout.Placement{}, false
}
