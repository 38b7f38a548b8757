package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/undefinedpatient/glyph/internal/core/layout"
	"github.com/undefinedpatient/glyph/internal/glyph"
	"github.com/undefinedpatient/glyph/internal/printer"
)

type NewCmd struct {
	flags *Flags
	app   *glyph.App

	// Command-specific flags
	template string
	preset   string
	sections []string
}

// NewNewCmd creates a new new command
func NewNewCmd(flags *Flags, app *glyph.App) *NewCmd {
	return &NewCmd{flags: flags, app: app}
}

// Register adds the new command to the application
func (cmd *NewCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "new",
		Usage:     "Create a new entry",
		UsageText: "glyph new [options] [name]",
		Description: `Creates an entry with its sections and a layout.

Sections come from a configured template (--template) or from repeated
--section flags; without either the entry starts with one empty section.
The layout preset (single, columns, stack, sidebar) defaults to the
template's preset, or single.

When the name is omitted and stdin is a terminal, an interactive form
prompts for it.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "template",
				Aliases:     []string{"t"},
				Usage:       "configured template to seed sections from",
				Destination: &cmd.template,
			},
			&cli.StringFlag{
				Name:        "preset",
				Aliases:     []string{"p"},
				Usage:       fmt.Sprintf("layout preset (%s)", strings.Join(layout.PresetNames(), ", ")),
				Destination: &cmd.preset,
			},
			&cli.StringSliceFlag{
				Name:        "section",
				Aliases:     []string{"s"},
				Usage:       "section title, repeatable",
				Destination: &cmd.sections,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *NewCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	name := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(name) == "" {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("entry name is required when stdin is not a terminal")
		}
		if err := cmd.runForm(&name); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("form: %w", err)
		}
	}

	e, err := cmd.app.Entries.Create(ctx, glyph.CreateOptions{
		Name:     name,
		Template: cmd.template,
		Preset:   cmd.preset,
		Sections: cmd.sections,
	})
	if err != nil {
		return fmt.Errorf("create entry: %w", err)
	}

	p.Success("Entry created", fmt.Sprintf("id %d", e.ID))
	return nil
}

func (cmd *NewCmd) runForm(name *string) error {
	fields := []huh.Field{
		huh.NewInput().
			Title("Entry name").
			Validate(validateName).
			Value(name),
	}

	if cmd.template == "" && len(cmd.app.Config.Templates) > 0 {
		names := make([]string, 0, len(cmd.app.Config.Templates))
		for n := range cmd.app.Config.Templates {
			names = append(names, n)
		}
		sort.Strings(names)

		opts := []huh.Option[string]{huh.NewOption("none", "")}
		for _, n := range names {
			label := n
			if desc := cmd.app.Config.Templates[n].Description; desc != "" {
				label = n + " - " + desc
			}
			opts = append(opts, huh.NewOption(label, n))
		}
		fields = append(fields, huh.NewSelect[string]().
			Title("Template").
			Options(opts...).
			Value(&cmd.template))
	}

	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(cmd.app.Theme.FormTheme()).Run()
}

func validateName(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}
