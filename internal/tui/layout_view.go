package tui

import (
	"github.com/rs/zerolog"

	"github.com/undefinedpatient/glyph/internal/core/document"
	"github.com/undefinedpatient/glyph/internal/core/entry"
	"github.com/undefinedpatient/glyph/internal/core/layout"
	"github.com/undefinedpatient/glyph/internal/core/logging"
	"github.com/undefinedpatient/glyph/internal/core/markdown"
	"github.com/undefinedpatient/glyph/internal/core/styles"
	"github.com/undefinedpatient/glyph/internal/ui"
)

// LayoutView draws the sections of the open entry where its layout tree puts
// them. The tree is evaluated against a virtual canvas at least as large as
// the tree's minimum size; the view shows a scrollable window of it and only
// the part inside that window is drawn.
type LayoutView struct {
	ui.Focus
	state    *document.State
	md       markdown.Renderer
	step     int
	mode     Mode
	selected layout.Coord
	offset   layout.Point
	result   layout.Result
	window   layout.Window
	log      zerolog.Logger
}

var _ ui.Node = (*LayoutView)(nil)

// NewLayoutView creates a view over state. step is the number of cells one
// scroll moves.
func NewLayoutView(state *document.State, md markdown.Renderer, step int) *LayoutView {
	return &LayoutView{
		state: state,
		md:    md,
		step:  max(step, 1),
		log:   logging.ForEntry(logging.Component("layout-view"), state.ID()),
	}
}

// SetMode changes how clicks are interpreted and what is highlighted.
func (v *LayoutView) SetMode(m Mode) { v.mode = m }

// Select highlights the node at c in layout mode.
func (v *LayoutView) Select(c layout.Coord) { v.selected = c.Clone() }

// Window returns the scroll window of the last render.
func (v *LayoutView) Window() layout.Window { return v.window }

// Result returns the evaluation of the last render, in canvas space.
func (v *LayoutView) Result() layout.Result { return v.result }

// Offset returns the scroll offset.
func (v *LayoutView) Offset() layout.Point { return v.offset }

// Scroll moves the window by dx, dy steps, clamped to the last render.
func (v *LayoutView) Scroll(dx, dy int) {
	maxOff := v.window.MaxOffset()
	v.offset.X = min(max(v.offset.X+dx*v.step, 0), maxOff.X)
	v.offset.Y = min(max(v.offset.Y+dy*v.step, 0), maxOff.Y)
}

// PlacementOf returns the on-screen interior of the first leaf showing the
// section at index.
func (v *LayoutView) PlacementOf(index int) (layout.Rect, bool) {
	p, ok := v.result.Placement(index)
	if !ok {
		return layout.Rect{}, false
	}
	r := v.window.ToScreen(p.Inner)
	return r, !r.Empty()
}

// Render evaluates the tree against area and draws the visible window.
func (v *LayoutView) Render(c *ui.Canvas, area layout.Rect, hint ui.Hint) {
	var (
		tree   *layout.Node
		secs   []entry.Section
		active int
		has    bool
	)
	err := v.state.View(func(d *document.Doc) error {
		tree = d.Tree().Clone()
		secs = d.Sections()
		active, has = d.ActiveIndex()
		return nil
	})
	if err != nil {
		c.Line(area, 0, err.Error(), c.Style(styles.RoleError, hint))
		return
	}

	v.result, v.window = layout.EvaluateScrolled(tree, layout.Viewport{Area: area, Offset: v.offset})
	v.offset = v.window.Offset()

	// Draw in canvas space; the window view shifts and clips to area.
	view := c.Window(area, v.offset)
	visible := v.window.Visible

	for _, reg := range v.result.Regions {
		if reg.Outer.Intersect(visible).Empty() {
			continue
		}
		regHint := ui.HintDefault
		if v.mode == ModeLayout && reg.Coord.Equal(v.selected) {
			regHint = ui.HintFocused
		}
		border := c.Style(styles.RoleBorder, regHint)

		if reg.Border.Bordered() {
			view.Box(reg.Outer, reg.Border, border)
		} else if regHint == ui.HintFocused {
			view.Box(reg.Outer, layout.BorderDashed, border)
		}
		if v.mode == ModeLayout && !reg.Leaf {
			view.Title(reg.Outer, reg.Label, c.Style(styles.RoleMuted, regHint))
		}
	}

	for _, p := range v.result.Placements {
		if p.Rect.Intersect(visible).Empty() {
			continue
		}
		pHint := ui.HintDefault
		if v.mode != ModeLayout && has && p.ContentIndex == active {
			pHint = hint
		}
		if v.mode == ModeLayout && p.Coord.Equal(v.selected) {
			pHint = ui.HintFocused
		}

		if p.ContentIndex >= len(secs) {
			view.Title(p.Rect, p.Label, c.Style(styles.RoleMuted, pHint))
			view.Line(p.Inner, 0, "(no section)", c.Style(styles.RoleMuted, ui.HintDefault))
			continue
		}

		sec := secs[p.ContentIndex]
		if p.Border.Bordered() {
			view.Title(p.Rect, sec.DisplayTitle(), c.Style(styles.RoleTitle, pHint))
		}
		if v.mode == ModeEdit && has && p.ContentIndex == active {
			// the page draws the editor here
			continue
		}
		v.drawContent(view, p.Inner.Intersect(visible), p.Inner, sec.Content)
	}
}

func (v *LayoutView) drawContent(c *ui.Canvas, shown, area layout.Rect, src string) {
	if shown.Empty() {
		return
	}
	lines, err := v.md.Render(src, area.W)
	if err != nil {
		v.log.Warn().Err(err).Msg("markdown rendering failed, showing source")
		lines, _ = markdown.Plain{}.Render(src, area.W)
	}
	text := c.Style(styles.RoleText, ui.HintDefault)
	first := shown.Y - area.Y
	for row := first; row < min(len(lines), first+shown.H); row++ {
		c.Line(area, row, lines[row], text)
	}
}

// Handle scrolls with the wheel and selects by click.
func (v *LayoutView) Handle(ev ui.Event) ([]ui.Intent, error) {
	switch e := ev.(type) {
	case ui.ScrollEvent:
		if v.window.Screen.Contains(layout.Point{X: e.X, Y: e.Y}) {
			v.Scroll(e.DX, e.DY)
		}
	case ui.ClickEvent:
		return v.click(e), nil
	}
	return nil, nil
}

func (v *LayoutView) click(e ui.ClickEvent) []ui.Intent {
	p, ok := v.window.ToCanvas(layout.Point{X: e.X, Y: e.Y})
	if !ok {
		return nil
	}
	at, ok := v.result.At(p.X, p.Y)
	if !ok {
		return nil
	}

	if v.mode == ModeLayout {
		return []ui.Intent{SelectNode{At: at}}
	}
	for _, pl := range v.result.Placements {
		if pl.Coord.Equal(at) {
			return []ui.Intent{SelectSection{Index: pl.ContentIndex}}
		}
	}
	return nil
}
