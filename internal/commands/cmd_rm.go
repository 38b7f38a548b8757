package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/undefinedpatient/glyph/internal/glyph"
	"github.com/undefinedpatient/glyph/internal/printer"
)

type RmCmd struct {
	flags *Flags
	app   *glyph.App

	yes bool
}

// NewRmCmd creates a new rm command
func NewRmCmd(flags *Flags, app *glyph.App) *RmCmd {
	return &RmCmd{flags: flags, app: app}
}

// Register adds the rm command to the application
func (cmd *RmCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:          "rm",
		Usage:         "Delete an entry",
		UsageText:     "glyph rm [--yes] <id>",
		Description:   "Deletes an entry together with its sections. Asks for confirmation unless --yes is given.",
		ShellComplete: EntryCompleter(cmd.app),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "skip the confirmation prompt",
				Destination: &cmd.yes,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *RmCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	id, err := entryID(c)
	if err != nil {
		return err
	}
	e, err := cmd.app.Entries.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get entry %d: %w", id, err)
	}

	if !cmd.yes {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("refusing to delete without --yes when stdin is not a terminal")
		}

		confirmed := false
		err := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %q?", e.Name)).
				Description("Its sections are deleted too.").
				Affirmative("Delete").
				Negative("Cancel").
				Value(&confirmed),
		)).WithTheme(cmd.app.Theme.FormTheme()).Run()
		if err != nil && !errors.Is(err, huh.ErrUserAborted) {
			return fmt.Errorf("confirm: %w", err)
		}
		if !confirmed {
			p.Infof("Aborted")
			return nil
		}
	}

	if err := cmd.app.Entries.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	p.Success("Entry deleted", e.Name)
	return nil
}
