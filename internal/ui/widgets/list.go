package widgets

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/undefinedpatient/glyph/internal/core/layout"
	"github.com/undefinedpatient/glyph/internal/core/styles"
	"github.com/undefinedpatient/glyph/internal/ui"
)

// ListKeys are the bindings of a List.
type ListKeys struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Choose key.Binding
}

// DefaultListKeys returns vim style list bindings.
func DefaultListKeys() ListKeys {
	return ListKeys{
		Up:     key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:   key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		Top:    key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "first")),
		Bottom: key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "last")),
		Choose: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	}
}

// ListItem is one row of a List.
type ListItem struct {
	Title  string
	Detail string // drawn muted after the title
}

// List is a hoverable column of items.
type List struct {
	ui.Focus
	Keys     ListKeys
	OnChoose func(i int) []ui.Intent
	items    []ListItem
	hover    ui.Hover
	offset   int
	empty    string
}

var _ ui.Node = (*List)(nil)

// NewList creates a list. empty is shown when there are no items.
func NewList(empty string) *List {
	return &List{Keys: DefaultListKeys(), empty: empty}
}

// SetItems replaces the items, keeping the hover in range. The first item is
// hovered when nothing was.
func (l *List) SetItems(items []ListItem) {
	l.items = items
	l.hover.Clamp(len(items))
	if _, ok := l.hover.Index(); !ok && len(items) > 0 {
		_ = l.hover.Set(0, len(items))
	}
}

// Items returns the items.
func (l *List) Items() []ListItem { return l.items }

// Hovered returns the hovered position.
func (l *List) Hovered() (int, bool) { return l.hover.Index() }

// Hover moves the hover to i.
func (l *List) Hover(i int) error { return l.hover.Set(i, len(l.items)) }

// Bindings implements ui.KeyMap.
func (l *List) Bindings() []key.Binding {
	return []key.Binding{l.Keys.Up, l.Keys.Down, l.Keys.Top, l.Keys.Bottom, l.Keys.Choose}
}

// Handle moves the hover and chooses items.
func (l *List) Handle(ev ui.Event) ([]ui.Intent, error) {
	n := len(l.items)
	switch {
	case ui.Matches(ev, l.Keys.Up):
		if n > 0 {
			return nil, l.hover.Move(-1, n)
		}
	case ui.Matches(ev, l.Keys.Down):
		if n > 0 {
			return nil, l.hover.Move(1, n)
		}
	case ui.Matches(ev, l.Keys.Top):
		if n > 0 {
			return nil, l.hover.Set(0, n)
		}
	case ui.Matches(ev, l.Keys.Bottom):
		if n > 0 {
			return nil, l.hover.Set(n-1, n)
		}
	case ui.Matches(ev, l.Keys.Choose):
		if i, ok := l.hover.Index(); ok && l.OnChoose != nil {
			return l.OnChoose(i), nil
		}
	}
	return nil, nil
}

// Render draws the visible rows, scrolling so the hovered row stays in view.
func (l *List) Render(c *ui.Canvas, area layout.Rect, hint ui.Hint) {
	if area.Empty() {
		return
	}
	if len(l.items) == 0 {
		c.Line(area, 0, l.empty, c.Style(styles.RoleMuted, hint))
		return
	}

	if i, ok := l.hover.Index(); ok {
		if i < l.offset {
			l.offset = i
		}
		if i >= l.offset+area.H {
			l.offset = i - area.H + 1
		}
	}
	l.offset = min(l.offset, max(len(l.items)-area.H, 0))

	for row := 0; row < area.H && l.offset+row < len(l.items); row++ {
		i := l.offset + row
		item := l.items[i]

		rowHint := ui.HintDefault
		prefix := "  "
		if l.hover.Is(i) {
			rowHint = ui.HintHovered
			if hint == ui.HintFocused {
				rowHint = ui.HintFocused
			}
			prefix = styles.IconPointer + " "
		}

		line := layout.Rect{X: area.X, Y: area.Y + row, W: area.W, H: 1}
		n := c.Text(line.X, line.Y, prefix+item.Title, c.Style(styles.RoleSelection, rowHint), line)
		if item.Detail != "" && n+2 < line.W {
			detail := layout.Rect{X: line.X + n + 1, Y: line.Y, W: line.W - n - 1, H: 1}
			c.Line(detail, 0, item.Detail, c.Style(styles.RoleMuted, ui.HintDefault))
		}
	}
}
