package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/undefinedpatient/glyph/internal/glyph"
)

const defaultWidth = 80

type ShowCmd struct {
	flags *Flags
	app   *glyph.App

	raw   bool
	width int
}

// NewShowCmd creates a new show command
func NewShowCmd(flags *Flags, app *glyph.App) *ShowCmd {
	return &ShowCmd{flags: flags, app: app}
}

// Register adds the show command to the application
func (cmd *ShowCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "show",
		Usage:     "Print an entry as rendered markdown",
		UsageText: "glyph show [--raw] [--width N] <id>",
		Description: `Prints every section of an entry in order, rendered with the configured
theme. Use --raw for the markdown source as written by 'glyph export'.`,
		ShellComplete: EntryCompleter(cmd.app),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "raw",
				Usage:       "print markdown source without rendering",
				Destination: &cmd.raw,
			},
			&cli.IntFlag{
				Name:        "width",
				Aliases:     []string{"w"},
				Usage:       "wrap width (defaults to the terminal width)",
				Destination: &cmd.width,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ShowCmd) run(ctx context.Context, c *cli.Command) error {
	id, err := entryID(c)
	if err != nil {
		return err
	}

	out := c.Root().Writer
	if cmd.raw {
		md, err := cmd.app.Entries.Markdown(ctx, id)
		if err != nil {
			return fmt.Errorf("load entry %d: %w", id, err)
		}
		_, err = fmt.Fprint(out, md)
		return err
	}

	// The layout comment is only meaningful to import.
	e, err := cmd.app.Entries.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("load entry %d: %w", id, err)
	}
	secs, err := cmd.app.Entries.Sections(ctx, id)
	if err != nil {
		return fmt.Errorf("load sections: %w", err)
	}
	md, err := glyph.FormatMarkdown(glyph.Document{Name: e.Name, Sections: secs})
	if err != nil {
		return err
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(cmd.app.Theme.GlamourStyle()),
		glamour.WithWordWrap(cmd.wrapWidth()),
	)
	if err != nil {
		return fmt.Errorf("create markdown renderer: %w", err)
	}
	rendered, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	_, err = fmt.Fprint(out, rendered)
	return err
}

func (cmd *ShowCmd) wrapWidth() int {
	if cmd.width > 0 {
		return cmd.width
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return defaultWidth
}
