package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/undefinedpatient/glyph/internal/core/entry"
	"github.com/undefinedpatient/glyph/internal/glyph"
	"github.com/undefinedpatient/glyph/pkg/iojson"
)

type LsCmd struct {
	flags *Flags
	app   *glyph.App

	// flags
	jsonOutput bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags, app *glyph.App) *LsCmd {
	return &LsCmd{flags: flags, app: app}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List all entries",
		UsageText: "glyph ls [--json]",
		Description: `Displays a table of all entries with their id, name, section count and
last update time, most recently updated first.

Use --json for machine readable output, one object per line.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

// entryInfo is the JSON output format for glyph ls --json.
type entryInfo struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Sections int    `json:"sections"`
	Updated  string `json:"updated_at"`
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	entries, err := cmd.app.Entries.List(ctx)
	if err != nil {
		return fmt.Errorf("list entries: %w", err)
	}

	if len(entries) == 0 {
		if !cmd.jsonOutput {
			fmt.Fprintf(os.Stderr, "No entries found\n")
		}
		return nil
	}

	infos := make([]entryInfo, 0, len(entries))
	for _, e := range entries {
		info, err := cmd.buildEntryInfo(ctx, e)
		if err != nil {
			return err
		}
		infos = append(infos, info)
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, info := range infos {
			if err := iojson.WriteLine(out, info); err != nil {
				return fmt.Errorf("encode entry: %w", err)
			}
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tSECTIONS\tUPDATED")
	for _, info := range infos {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", info.ID, info.Name, info.Sections, info.Updated)
	}
	return w.Flush()
}

func (cmd *LsCmd) buildEntryInfo(ctx context.Context, e entry.Entry) (entryInfo, error) {
	secs, err := cmd.app.Entries.Sections(ctx, e.ID)
	if err != nil {
		return entryInfo{}, fmt.Errorf("list sections of %d: %w", e.ID, err)
	}
	return entryInfo{
		ID:       e.ID,
		Name:     e.Name,
		Slug:     e.Slug(),
		Sections: len(secs),
		Updated:  e.UpdatedAt.Format("2006-01-02 15:04"),
	}, nil
}
