package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/cellbuf"
	"github.com/mattn/go-runewidth"

	"github.com/undefinedpatient/glyph/internal/core/layout"
	"github.com/undefinedpatient/glyph/internal/core/styles"
)

// Canvas is a grid of terminal cells that nodes draw into. Writes outside the
// canvas are dropped.
//
// A canvas returned by Window shares its cells with the parent but has its own
// coordinate space and clip rectangle.
type Canvas struct {
	buf    *cellbuf.Buffer
	theme  styles.Theme
	clip   layout.Rect // drawable cells, in buffer space
	dx, dy int         // added to canvas coordinates to reach buffer space
}

// NewCanvas creates a blank canvas.
func NewCanvas(w, h int, theme styles.Theme) *Canvas {
	w, h = max(w, 0), max(h, 0)
	buf := cellbuf.NewBuffer(w, h)
	for y := range h {
		for x := range w {
			buf.SetCell(x, y, blank(cellbuf.Style{}))
		}
	}
	return &Canvas{buf: buf, theme: theme, clip: layout.Rect{W: w, H: h}}
}

func blank(st cellbuf.Style) *cellbuf.Cell {
	return &cellbuf.Cell{Rune: ' ', Width: 1, Style: st}
}

// Window returns a canvas drawing into the screen rectangle of c, in which
// the point scroll of the new coordinate space lands on the top-left corner
// of screen. Cells outside screen are dropped, so only the visible part of
// a larger virtual surface is ever touched.
func (c *Canvas) Window(screen layout.Rect, scroll layout.Point) *Canvas {
	visible := screen.Intersect(c.Bounds())
	return &Canvas{
		buf:   c.buf,
		theme: c.theme,
		clip:  visible.Offset(c.dx, c.dy),
		dx:    c.dx + screen.X - scroll.X,
		dy:    c.dy + screen.Y - scroll.Y,
	}
}

// Size returns the canvas dimensions.
func (c *Canvas) Size() (w, h int) { return c.clip.W, c.clip.H }

// Bounds returns the drawable rectangle in canvas coordinates. For a canvas
// made by NewCanvas it sits at the origin.
func (c *Canvas) Bounds() layout.Rect { return c.clip.Offset(-c.dx, -c.dy) }

// Theme returns the theme nodes should style with.
func (c *Canvas) Theme() styles.Theme { return c.theme }

// Style is shorthand for c.Theme().Style.
func (c *Canvas) Style(role styles.Role, hint Hint) lipgloss.Style {
	return c.theme.Style(role, hint)
}

func (c *Canvas) at(x, y int) *cellbuf.Cell {
	if !c.Bounds().Contains(layout.Point{X: x, Y: y}) {
		return nil
	}
	return c.buf.Cell(x+c.dx, y+c.dy)
}

// Cell returns the text at a cell, or "" outside the canvas or on the
// trailing half of a wide rune.
func (c *Canvas) Cell(x, y int) string {
	cl := c.at(x, y)
	if cl == nil || cl.Width == 0 {
		return ""
	}
	return string(cl.Rune) + string(cl.Comb)
}

// set writes one cell at x,y. A wide cell that does not fit in clip is
// replaced by a space.
func (c *Canvas) set(x, y int, cl cellbuf.Cell, clip layout.Rect) {
	if !clip.Contains(layout.Point{X: x, Y: y}) {
		return
	}
	if cl.Width > 1 && !clip.Contains(layout.Point{X: x + cl.Width - 1, Y: y}) {
		cl = *blank(cl.Style)
	}
	c.buf.SetCell(x+c.dx, y+c.dy, &cl)
}

// Styled places a string that already carries escape sequences, such as the
// view of a bubbles component, at x,y. The SGR sequences become cell styles
// and the text is truncated to the area.
func (c *Canvas) Styled(x, y int, s string, area layout.Rect) {
	clip := area.Intersect(c.Bounds())
	if clip.Empty() || y < clip.Y || y >= clip.Bottom() {
		return
	}
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}

	var (
		pen   cellbuf.Style
		state byte
		col   = x
	)
	for len(s) > 0 && col < clip.Right() {
		seq, width, n, next := ansi.DecodeSequence(s, state, nil)
		state = next
		s = s[n:]

		switch {
		case strings.HasPrefix(seq, "\x1b[") && strings.HasSuffix(seq, "m"):
			applySGR(&pen, seq[2:len(seq)-1])
		case width > 0:
			runes := []rune(seq)
			c.set(col, y, cellbuf.Cell{Rune: runes[0], Comb: runes[1:], Width: width, Style: pen}, clip)
			col += width
		}
	}
}

// StyledBlock places each line of s on consecutive rows of area.
func (c *Canvas) StyledBlock(area layout.Rect, s string) {
	for i, line := range strings.Split(s, "\n") {
		if i >= area.H {
			break
		}
		c.Styled(area.X, area.Y+i, line, area)
	}
}

// Text writes s starting at x,y, clipped to area and the canvas. Zero width
// runes attach to the preceding cell. It returns the number of cells
// consumed.
func (c *Canvas) Text(x, y int, s string, style lipgloss.Style, area layout.Rect) int {
	clip := area.Intersect(c.Bounds())
	if clip.Empty() || y < clip.Y || y >= clip.Bottom() {
		return 0
	}
	return c.write(x, y, s, cellStyle(style), clip)
}

func (c *Canvas) write(x, y int, s string, st cellbuf.Style, clip layout.Rect) int {
	col := x
	for _, r := range s {
		if r == '\n' || r == '\r' {
			break
		}
		if r == '\t' {
			r = ' '
		}
		w := runewidth.RuneWidth(r)
		if w == 0 {
			prev := c.at(col-1, y)
			if prev != nil && prev.Width > 0 && clip.Contains(layout.Point{X: col - 1, Y: y}) {
				joined := *prev
				joined.Comb = append(append([]rune(nil), prev.Comb...), r)
				c.buf.SetCell(col-1+c.dx, y+c.dy, &joined)
			}
			continue
		}
		if col >= clip.Right() {
			break
		}
		c.set(col, y, cellbuf.Cell{Rune: r, Width: w, Style: st}, clip)
		col += w
	}
	return col - x
}

// Line writes s on row y of area, truncated with an ellipsis when it does
// not fit.
func (c *Canvas) Line(area layout.Rect, row int, s string, style lipgloss.Style) {
	if row < 0 || row >= area.H {
		return
	}
	if runewidth.StringWidth(s) > area.W {
		s = runewidth.Truncate(s, area.W, styles.IconEllipsis)
	}
	c.Text(area.X, area.Y+row, s, style, area)
}

// Fill paints every cell of area with r.
func (c *Canvas) Fill(area layout.Rect, r rune, style lipgloss.Style) {
	clip := area.Intersect(c.Bounds())
	if clip.Empty() {
		return
	}
	st := cellStyle(style)
	w := max(runewidth.RuneWidth(r), 1)
	for y := clip.Y; y < clip.Bottom(); y++ {
		for x := clip.X; x+w <= clip.Right(); x += w {
			c.set(x, y, cellbuf.Cell{Rune: r, Width: w, Style: st}, clip)
		}
	}
}

// Clear blanks area with the default style.
func (c *Canvas) Clear(area layout.Rect) {
	c.Fill(area, ' ', lipgloss.NewStyle())
}

var dashedBorder = lipgloss.Border{
	Top:         "╌",
	Bottom:      "╌",
	Left:        "╎",
	Right:       "╎",
	TopLeft:     "┌",
	TopRight:    "┐",
	BottomLeft:  "└",
	BottomRight: "┘",
}

// BorderGlyphs returns the glyph set for a border mode.
func BorderGlyphs(mode layout.BorderMode) (lipgloss.Border, bool) {
	switch mode {
	case layout.BorderPlain:
		return lipgloss.NormalBorder(), true
	case layout.BorderDashed:
		return dashedBorder, true
	case layout.BorderRounded:
		return lipgloss.RoundedBorder(), true
	default:
		return lipgloss.Border{}, false
	}
}

// Box draws a frame on the outermost cells of area. Areas smaller than 2x2
// and BorderNone draw nothing. Only the edges crossing the canvas are
// visited.
func (c *Canvas) Box(area layout.Rect, mode layout.BorderMode, style lipgloss.Style) {
	b, ok := BorderGlyphs(mode)
	if !ok || area.W < 2 || area.H < 2 {
		return
	}

	clip := area.Intersect(c.Bounds())
	if clip.Empty() {
		return
	}

	st := cellStyle(style)
	right, bottom := area.Right()-1, area.Bottom()-1
	for x := max(area.X+1, clip.X); x < min(right, clip.Right()); x++ {
		c.write(x, area.Y, b.Top, st, clip)
		c.write(x, bottom, b.Bottom, st, clip)
	}
	for y := max(area.Y+1, clip.Y); y < min(bottom, clip.Bottom()); y++ {
		c.write(area.X, y, b.Left, st, clip)
		c.write(right, y, b.Right, st, clip)
	}
	c.write(area.X, area.Y, b.TopLeft, st, clip)
	c.write(right, area.Y, b.TopRight, st, clip)
	c.write(area.X, bottom, b.BottomLeft, st, clip)
	c.write(right, bottom, b.BottomRight, st, clip)
}

// Title writes a label into the top edge of a framed area.
func (c *Canvas) Title(area layout.Rect, title string, style lipgloss.Style) {
	if title == "" || area.W < 5 {
		return
	}
	c.Line(layout.Rect{X: area.X + 2, Y: area.Y, W: area.W - 4, H: 1}, 0, " "+title+" ", style)
}

// String renders the canvas rows with styles applied, joined by newlines.
func (c *Canvas) String() string {
	return c.render(true)
}

// Plain renders the canvas without styles.
func (c *Canvas) Plain() string {
	return c.render(false)
}

func (c *Canvas) render(styled bool) string {
	var sb strings.Builder
	for y := c.clip.Y; y < c.clip.Bottom(); y++ {
		if y > c.clip.Y {
			sb.WriteByte('\n')
		}

		var (
			run strings.Builder
			pen cellbuf.Style
		)
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if styled && !pen.Empty() {
				sb.WriteString(lipglossStyle(pen).Render(run.String()))
			} else {
				sb.WriteString(run.String())
			}
			run.Reset()
		}

		for x := c.clip.X; x < c.clip.Right(); x++ {
			cl := c.buf.Cell(x, y)
			if cl == nil {
				cl = blank(cellbuf.Style{})
			}
			if cl.Width == 0 {
				continue
			}
			if !sameStyle(cl.Style, pen) {
				flush()
				pen = cl.Style
			}
			run.WriteRune(cl.Rune)
			run.WriteString(string(cl.Comb))
		}
		flush()
	}
	return sb.String()
}
