package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/cellbuf"
)

// cellStyle keeps the per-cell parts of a lipgloss style: colors and text
// attributes. Layout properties such as padding have no meaning for a single
// cell and are dropped.
func cellStyle(s lipgloss.Style) cellbuf.Style {
	var st cellbuf.Style
	if fg := s.GetForeground(); !isNoColor(fg) {
		st.Fg = fg
	}
	if bg := s.GetBackground(); !isNoColor(bg) {
		st.Bg = bg
	}
	st.Bold(s.GetBold())
	st.Faint(s.GetFaint())
	st.Italic(s.GetItalic())
	st.Reverse(s.GetReverse())
	st.Strikethrough(s.GetStrikethrough())
	st.Underline(s.GetUnderline())
	return st
}

func isNoColor(c lipgloss.TerminalColor) bool {
	_, ok := c.(lipgloss.NoColor)
	return c == nil || ok
}

// lipglossStyle is the inverse of cellStyle. Rendering through lipgloss
// keeps the output in step with the detected color profile.
func lipglossStyle(st cellbuf.Style) lipgloss.Style {
	s := lipgloss.NewStyle().
		Bold(st.Attrs.Contains(cellbuf.BoldAttr)).
		Faint(st.Attrs.Contains(cellbuf.FaintAttr)).
		Italic(st.Attrs.Contains(cellbuf.ItalicAttr)).
		Reverse(st.Attrs.Contains(cellbuf.ReverseAttr)).
		Strikethrough(st.Attrs.Contains(cellbuf.StrikethroughAttr)).
		Underline(st.UlStyle != cellbuf.NoUnderline)
	if fg, ok := st.Fg.(lipgloss.TerminalColor); ok {
		s = s.Foreground(fg)
	}
	if bg, ok := st.Bg.(lipgloss.TerminalColor); ok {
		s = s.Background(bg)
	}
	return s
}

// sameStyle compares colors by identity rather than by RGBA, which depends
// on the color profile of the running terminal.
func sameStyle(a, b cellbuf.Style) bool {
	return a.Attrs == b.Attrs && a.UlStyle == b.UlStyle && a.Fg == b.Fg && a.Bg == b.Bg
}

// applySGR updates pen from the parameters of an SGR sequence, the part
// between "ESC [" and "m".
func applySGR(pen *cellbuf.Style, params string) {
	if params == "" {
		pen.Reset()
		return
	}

	codes := strings.FieldsFunc(params, func(r rune) bool { return r == ';' || r == ':' })
	num := func(i int) (int, bool) {
		if i >= len(codes) {
			return 0, false
		}
		n, err := strconv.Atoi(codes[i])
		return n, err == nil
	}

	for i := 0; i < len(codes); i++ {
		code, ok := num(i)
		if !ok {
			continue
		}
		switch {
		case code == 0:
			pen.Reset()
		case code == 1:
			pen.Bold(true)
		case code == 2:
			pen.Faint(true)
		case code == 3:
			pen.Italic(true)
		case code == 4:
			pen.Underline(true)
		case code == 7:
			pen.Reverse(true)
		case code == 9:
			pen.Strikethrough(true)
		case code == 22:
			pen.Bold(false)
			pen.Faint(false)
		case code == 23:
			pen.Italic(false)
		case code == 24:
			pen.Underline(false)
		case code == 27:
			pen.Reverse(false)
		case code == 29:
			pen.Strikethrough(false)
		case code >= 30 && code <= 37:
			pen.Fg = lipgloss.Color(strconv.Itoa(code - 30))
		case code >= 90 && code <= 97:
			pen.Fg = lipgloss.Color(strconv.Itoa(code - 90 + 8))
		case code == 39:
			pen.Fg = nil
		case code >= 40 && code <= 47:
			pen.Bg = lipgloss.Color(strconv.Itoa(code - 40))
		case code >= 100 && code <= 107:
			pen.Bg = lipgloss.Color(strconv.Itoa(code - 100 + 8))
		case code == 49:
			pen.Bg = nil
		case code == 38 || code == 48:
			c, n := extendedColor(num, i+1)
			i += n
			if c == nil {
				continue
			}
			if code == 38 {
				pen.Fg = *c
			} else {
				pen.Bg = *c
			}
		}
	}
}

// extendedColor reads a "5;n" or "2;r;g;b" color starting at codes[i]. It
// returns the color, if valid, and how many codes it consumed.
func extendedColor(num func(int) (int, bool), i int) (*lipgloss.Color, int) {
	kind, ok := num(i)
	if !ok {
		return nil, 0
	}
	switch kind {
	case 5:
		n, ok := num(i + 1)
		if !ok {
			return nil, 1
		}
		c := lipgloss.Color(strconv.Itoa(n))
		return &c, 2
	case 2:
		r, okr := num(i + 1)
		g, okg := num(i + 2)
		b, okb := num(i + 3)
		if !okr || !okg || !okb {
			return nil, 1
		}
		c := lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r, g, b))
		return &c, 4
	default:
		return nil, 1
	}
}
