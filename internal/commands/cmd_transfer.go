package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/undefinedpatient/glyph/internal/glyph"
	"github.com/undefinedpatient/glyph/internal/printer"
)

type ImportCmd struct {
	flags *Flags
	app   *glyph.App
}

// NewImportCmd creates a new import command
func NewImportCmd(flags *Flags, app *glyph.App) *ImportCmd {
	return &ImportCmd{flags: flags, app: app}
}

// Register adds the import command to the application
func (cmd *ImportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "import",
		Usage:     "Create entries from markdown files",
		UsageText: "glyph import <glob>...",
		Description: `Creates one entry per markdown file. The first level heading names the
entry (the file name is used otherwise) and every second level heading
starts a section. Files written by 'glyph export' keep their layout.

Patterns support ** to match nested directories, e.g. 'notes/**/*.md'.
Quote them so the shell does not expand them first.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *ImportCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	if c.Args().Len() == 0 {
		return fmt.Errorf("at least one file or glob is required")
	}

	results, err := cmd.app.Entries.Import(ctx, c.Args().Slice()...)
	for _, r := range results {
		p.Success(fmt.Sprintf("Imported %s", r.Path), fmt.Sprintf("id %d %q", r.Entry.ID, r.Entry.Name))
	}
	if err != nil {
		return err
	}

	p.Successf("%d entries imported", len(results))
	return nil
}

type ExportCmd struct {
	flags *Flags
	app   *glyph.App

	dir string
}

// NewExportCmd creates a new export command
func NewExportCmd(flags *Flags, app *glyph.App) *ExportCmd {
	return &ExportCmd{flags: flags, app: app}
}

// Register adds the export command to the application
func (cmd *ExportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:          "export",
		Usage:         "Write an entry to a markdown file",
		UsageText:     "glyph export [-o dir] <id>",
		Description:   "Writes the entry to <dir>/<slug>.md with its layout in a leading comment, so 'glyph import' restores it.",
		ShellComplete: EntryCompleter(cmd.app),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "directory to write to",
				Value:       ".",
				Destination: &cmd.dir,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ExportCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	id, err := entryID(c)
	if err != nil {
		return err
	}
	path, err := cmd.app.Entries.Export(ctx, id, cmd.dir)
	if err != nil {
		return fmt.Errorf("export entry %d: %w", id, err)
	}

	p.Success("Exported", path)
	return nil
}
