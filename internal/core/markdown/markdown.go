// Package markdown turns section markdown into plain text rows for the
// terminal canvas.
package markdown

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"

	"github.com/undefinedpatient/glyph/pkg/cache"
)

// Renderer converts markdown into rows no wider than width cells.
type Renderer interface {
	Render(src string, width int) ([]string, error)
}

type key struct {
	width int
	src   string
}

// Glamour renders with a glamour standard style and strips the escape
// sequences so rows can be placed onto a canvas.
type Glamour struct {
	style     string
	renderers *cache.Cache[int, *glamour.TermRenderer]
	rendered  *cache.Cache[key, []string]
}

var _ Renderer = (*Glamour)(nil)

// NewGlamour creates a renderer for the named glamour style ("notty",
// "ascii", "dark"...). cacheSize bounds the number of rendered sections kept;
// zero disables caching.
func NewGlamour(style string, cacheSize int) *Glamour {
	return &Glamour{
		style:     style,
		renderers: cache.New[int, *glamour.TermRenderer](8),
		rendered:  cache.New[key, []string](cacheSize),
	}
}

// Render implements Renderer.
func (g *Glamour) Render(src string, width int) ([]string, error) {
	if width <= 0 {
		return nil, nil
	}
	if strings.TrimSpace(src) == "" {
		return nil, nil
	}

	return g.rendered.GetOrSet(key{width: width, src: src}, func() ([]string, error) {
		r, err := g.renderers.GetOrSet(width, func() (*glamour.TermRenderer, error) {
			return glamour.NewTermRenderer(
				glamour.WithStylePath(g.style),
				glamour.WithWordWrap(width),
			)
		})
		if err != nil {
			return nil, fmt.Errorf("create markdown renderer: %w", err)
		}

		out, err := r.Render(src)
		if err != nil {
			return nil, fmt.Errorf("render markdown: %w", err)
		}
		return Lines(out), nil
	})
}

// Lines strips escape sequences from out and splits it into rows with
// trailing blanks and surrounding empty rows removed.
func Lines(out string) []string {
	rows := strings.Split(ansi.Strip(out), "\n")
	for i, row := range rows {
		rows[i] = strings.TrimRight(row, " ")
	}

	start, end := 0, len(rows)
	for start < end && rows[start] == "" {
		start++
	}
	for end > start && rows[end-1] == "" {
		end--
	}
	return rows[start:end]
}

// Plain splits src into rows without interpreting markdown, hard wrapping
// rows wider than width. It is the fallback when rendering fails.
type Plain struct{}

var _ Renderer = Plain{}

// Render implements Renderer.
func (Plain) Render(src string, width int) ([]string, error) {
	if width <= 0 {
		return nil, nil
	}

	var rows []string
	for _, line := range strings.Split(src, "\n") {
		wrapped := ansi.Hardwrap(line, width, true)
		rows = append(rows, strings.Split(wrapped, "\n")...)
	}
	return rows, nil
}
