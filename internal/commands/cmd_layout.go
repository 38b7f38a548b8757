package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/undefinedpatient/glyph/internal/core/layout"
	"github.com/undefinedpatient/glyph/internal/glyph"
	"github.com/undefinedpatient/glyph/internal/printer"
	"github.com/undefinedpatient/glyph/pkg/iojson"
)

type LayoutCmd struct {
	flags *Flags
	app   *glyph.App

	// show
	format string

	// set
	input iojson.FileReader

	// svg
	cols   int
	rows   int
	output string
}

// NewLayoutCmd creates a new layout command
func NewLayoutCmd(flags *Flags, app *glyph.App) *LayoutCmd {
	return &LayoutCmd{flags: flags, app: app}
}

// Register adds the layout command group to the application
func (cmd *LayoutCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "layout",
		Usage: "Inspect and replace entry layouts",
		Commands: []*cli.Command{
			{
				Name:          "show",
				Usage:         "Print the layout tree of an entry",
				UsageText:     "glyph layout show [--format yaml|json] <id>",
				ShellComplete: EntryCompleter(cmd.app),
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (yaml, json)",
						Value:       "yaml",
						Destination: &cmd.format,
					},
				},
				Action: cmd.runShow,
			},
			{
				Name:      "set",
				Usage:     "Replace the layout tree of an entry",
				UsageText: "glyph layout set [-f file] <id>",
				Description: `Reads a layout tree as JSON, in the format printed by
'glyph layout show --format json', validates it and stores it.`,
				ShellComplete: EntryCompleter(cmd.app),
				Flags:         []cli.Flag{cmd.input.Flag()},
				Action:        cmd.runSet,
			},
			{
				Name:      "svg",
				Usage:     "Draw the evaluated layout of an entry as SVG",
				UsageText: "glyph layout svg [--width N] [--height N] [-o file] <id>",
				Description: `Evaluates the layout against a terminal of the given size and draws one
box per region, labelled with node labels and bound section titles.`,
				ShellComplete: EntryCompleter(cmd.app),
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:        "width",
						Usage:       "terminal columns to evaluate against",
						Value:       120,
						Destination: &cmd.cols,
					},
					&cli.IntFlag{
						Name:        "height",
						Usage:       "terminal rows to evaluate against",
						Value:       40,
						Destination: &cmd.rows,
					},
					&cli.StringFlag{
						Name:        "output",
						Aliases:     []string{"o"},
						Usage:       "write to file instead of stdout",
						Destination: &cmd.output,
					},
				},
				Action: cmd.runSVG,
			},
		},
	})

	return app
}

func (cmd *LayoutCmd) runShow(ctx context.Context, c *cli.Command) error {
	id, err := entryID(c)
	if err != nil {
		return err
	}
	root, err := cmd.app.Entries.Layout(ctx, id)
	if err != nil {
		return fmt.Errorf("load layout: %w", err)
	}

	out := c.Root().Writer
	switch cmd.format {
	case "json":
		return iojson.WriteWith(out, c.Root().ErrWriter, root)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(root); err != nil {
			return fmt.Errorf("encode layout: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (expected yaml or json)", cmd.format)
	}
}

func (cmd *LayoutCmd) runSet(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	id, err := entryID(c)
	if err != nil {
		return err
	}
	data, err := cmd.input.ReadBytes()
	if err != nil {
		return err
	}
	root, err := layout.Decode(data)
	if err != nil {
		return err
	}
	if err := cmd.app.Entries.SetLayout(ctx, id, root); err != nil {
		return fmt.Errorf("set layout: %w", err)
	}

	p.Success("Layout updated", fmt.Sprintf("%d nodes, %d leaves", root.Count(), len(root.Leaves())))
	return nil
}

func (cmd *LayoutCmd) runSVG(ctx context.Context, c *cli.Command) error {
	id, err := entryID(c)
	if err != nil {
		return err
	}
	root, err := cmd.app.Entries.Layout(ctx, id)
	if err != nil {
		return fmt.Errorf("load layout: %w", err)
	}
	secs, err := cmd.app.Entries.Sections(ctx, id)
	if err != nil {
		return fmt.Errorf("load sections: %w", err)
	}

	var out io.Writer = c.Root().Writer
	if cmd.output != "" {
		f, err := os.Create(cmd.output)
		if err != nil {
			return fmt.Errorf("create %s: %w", cmd.output, err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	return glyph.RenderDiagram(out, root, glyph.DiagramOptions{
		Cols:  cmd.cols,
		Rows:  cmd.rows,
		Theme: cmd.app.Theme,
		Titles: func(i int) (string, bool) {
			if i < 0 || i >= len(secs) {
				return "", false
			}
			return secs[i].DisplayTitle(), true
		},
	})
}
