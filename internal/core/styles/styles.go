// Package styles maps semantic roles to lipgloss styles for the CLI and TUI.
package styles

import (
	"fmt"

	"github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Hint tells a role how prominently to draw.
type Hint uint8

const (
	HintDefault Hint = iota
	HintHovered
	HintFocused
)

func (h Hint) String() string {
	switch h {
	case HintHovered:
		return "hovered"
	case HintFocused:
		return "focused"
	default:
		return "default"
	}
}

// Role names what a piece of output is, independent of its colours.
type Role uint8

const (
	RoleText Role = iota
	RoleMuted
	RoleTitle
	RoleBorder
	RoleSelection
	RoleButton
	RoleInput
	RoleCursor
	RoleStatus
	RoleSuccess
	RoleWarning
	RoleError
)

// Theme resolves roles against a palette.
type Theme struct {
	Name    string
	Palette Palette
}

// New returns the named built-in theme.
func New(name string) (Theme, error) {
	p, ok := GetPalette(name)
	if !ok {
		return Theme{}, fmt.Errorf("unknown theme %q (available: %v)", name, ThemeNames())
	}
	return Theme{Name: name, Palette: p}, nil
}

// Default returns DefaultTheme.
func Default() Theme {
	return Theme{Name: DefaultTheme, Palette: themes[DefaultTheme]}
}

// Style returns the style for a role drawn with the given hint.
func (t Theme) Style(role Role, hint Hint) lipgloss.Style {
	p := t.Palette
	s := lipgloss.NewStyle()

	switch role {
	case RoleText:
		s = s.Foreground(p.Foreground)
		if hint == HintHovered {
			s = s.Foreground(p.Secondary)
		}
		if hint == HintFocused {
			s = s.Foreground(p.Primary).Bold(true)
		}
	case RoleMuted:
		s = s.Foreground(p.Muted)
	case RoleTitle:
		s = s.Foreground(p.Primary).Bold(true)
		if hint == HintDefault {
			s = s.Foreground(p.Muted)
		}
	case RoleBorder:
		switch hint {
		case HintFocused:
			s = s.Foreground(p.Primary)
		case HintHovered:
			s = s.Foreground(p.Secondary)
		default:
			s = s.Foreground(p.Muted)
		}
	case RoleSelection:
		switch hint {
		case HintFocused:
			s = s.Background(p.Primary).Foreground(p.Background).Bold(true)
		case HintHovered:
			s = s.Background(p.Surface).Foreground(p.Foreground)
		default:
			s = s.Foreground(p.Foreground)
		}
	case RoleButton:
		if hint == HintFocused {
			s = s.Background(p.Primary).Foreground(p.Background).Bold(true)
		} else {
			s = s.Background(p.Surface).Foreground(p.Muted)
		}
	case RoleInput:
		s = s.Foreground(p.Foreground)
		if hint != HintFocused {
			s = s.Foreground(p.Muted)
		}
	case RoleCursor:
		s = s.Reverse(true)
	case RoleStatus:
		s = s.Foreground(p.Muted)
	case RoleSuccess:
		s = s.Foreground(p.Success)
	case RoleWarning:
		s = s.Foreground(p.Warning)
	case RoleError:
		s = s.Foreground(p.Error).Bold(true)
	}

	return s
}

// GlamourStyle returns a glamour style config derived from the theme, for
// output written straight to a terminal.
func (t Theme) GlamourStyle() ansi.StyleConfig {
	cfg := glamourstyles.DarkStyleConfig
	if t.Name == "paper" {
		cfg = glamourstyles.LightStyleConfig
	}

	hex := func(c lipgloss.Color) *string {
		s := string(c)
		return &s
	}

	fg := hex(t.Palette.Foreground)
	primary := hex(t.Palette.Primary)
	secondary := hex(t.Palette.Secondary)
	muted := hex(t.Palette.Muted)

	cfg.Document.Color = fg
	cfg.Paragraph.Color = fg

	cfg.Heading.Color = primary
	cfg.H1.Color = fg
	cfg.H1.BackgroundColor = hex(t.Palette.Surface)
	cfg.H2.Color = primary
	cfg.H3.Color = primary

	cfg.BlockQuote.Color = muted
	cfg.HorizontalRule.Color = muted
	cfg.Link.Color = secondary
	cfg.LinkText.Color = secondary
	cfg.Code.Color = secondary
	cfg.CodeBlock.Color = muted

	return cfg
}

// CLI styles.

// Header styles a command output heading.
func (t Theme) Header() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Palette.Primary).Bold(true)
}

// Divider styles separators and secondary columns.
func (t Theme) Divider() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Palette.Muted)
}

// FormTheme returns the huh theme used by interactive CLI prompts.
func (t Theme) FormTheme() *huh.Theme {
	ft := huh.ThemeCharm()
	p := t.Palette

	ft.Focused.Base = ft.Focused.Base.BorderForeground(p.Primary)
	ft.Focused.Title = ft.Focused.Title.Foreground(p.Primary)
	ft.Focused.Description = ft.Focused.Description.Foreground(p.Muted)
	ft.Focused.TextInput.Cursor = ft.Focused.TextInput.Cursor.Foreground(p.Secondary)
	ft.Focused.TextInput.Prompt = ft.Focused.TextInput.Prompt.Foreground(p.Secondary)
	ft.Focused.FocusedButton = ft.Focused.FocusedButton.Background(p.Primary).Foreground(p.Background)
	ft.Focused.ErrorMessage = ft.Focused.ErrorMessage.Foreground(p.Error)
	ft.Focused.ErrorIndicator = ft.Focused.ErrorIndicator.Foreground(p.Error)
	ft.Blurred.Title = ft.Blurred.Title.Foreground(p.Muted)

	return ft
}
