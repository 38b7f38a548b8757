package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/undefinedpatient/glyph/internal/glyph"
)

// EntryCompleter returns a ShellCompleteFunc that suggests entry ids, with
// the entry name as the description, as positional completions.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func EntryCompleter(app *glyph.App) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		if args := cmd.Args(); args.Present() {
			last := args.Slice()[args.Len()-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
		}

		entries, err := app.Entries.List(ctx)
		if err != nil {
			return
		}

		w := cmd.Root().Writer
		for _, e := range entries {
			_, _ = fmt.Fprintf(w, "%d:%s\n", e.ID, e.Name)
		}
	}
}

// entryID parses the entry id given as the first positional argument.
func entryID(c *cli.Command) (int64, error) {
	if c.Args().Len() == 0 {
		return 0, fmt.Errorf("entry id is required")
	}
	arg := c.Args().First()
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid entry id %q", arg)
	}
	return id, nil
}
