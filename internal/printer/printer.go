// Package printer writes human readable command output with status icons
// coloured from the active theme.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/undefinedpatient/glyph/internal/core/styles"
)

type ctxKey struct{}

// Printer formats command output.
type Printer struct {
	out     io.Writer
	success lipgloss.Style
	info    lipgloss.Style
	warn    lipgloss.Style
	err     lipgloss.Style
	muted   lipgloss.Style
	section lipgloss.Style
}

// New creates a printer writing to out with colours from theme.
func New(out io.Writer, theme styles.Theme) *Printer {
	p := theme.Palette
	return &Printer{
		out:     out,
		success: lipgloss.NewStyle().Foreground(p.Success),
		info:    lipgloss.NewStyle().Foreground(p.Primary),
		warn:    lipgloss.NewStyle().Foreground(p.Warning),
		err:     lipgloss.NewStyle().Foreground(p.Error),
		muted:   lipgloss.NewStyle().Foreground(p.Muted),
		section: lipgloss.NewStyle().Foreground(p.Primary).Bold(true),
	}
}

// NewContext returns a context carrying p.
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the printer stored in ctx, or one writing to stdout with the
// default theme.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stdout, styles.Default())
}

func (p *Printer) line(icon string, style lipgloss.Style, msg string) {
	_, _ = fmt.Fprintf(p.out, "%s %s\n", style.Render(icon), msg)
}

// Success prints a success line with an optional muted detail.
func (p *Printer) Success(title, detail string) {
	if detail == "" {
		p.line("✔", p.success, title)
		return
	}
	p.line("✔", p.success, title+" "+p.muted.Render(detail))
}

// Successf prints a formatted success line.
func (p *Printer) Successf(format string, args ...any) {
	p.line("✔", p.success, fmt.Sprintf(format, args...))
}

// Infof prints a formatted informational line.
func (p *Printer) Infof(format string, args ...any) {
	p.line("•", p.info, fmt.Sprintf(format, args...))
}

// Warnf prints a formatted warning line.
func (p *Printer) Warnf(format string, args ...any) {
	p.line("!", p.warn, fmt.Sprintf(format, args...))
}

// Errorf prints a formatted error line.
func (p *Printer) Errorf(format string, args ...any) {
	p.line("✘", p.err, fmt.Sprintf(format, args...))
}

// Printf prints an unadorned line.
func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format+"\n", args...)
}

// Section prints a bold heading.
func (p *Printer) Section(title string) {
	_, _ = fmt.Fprintln(p.out, p.section.Render(title))
}
