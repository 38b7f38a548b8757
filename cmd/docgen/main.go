// Command docgen generates CLI reference documentation from the glyph command
// definitions. Output is written to docs/cli-reference.md.
package main

import (
	"fmt"
	"os"

	docs "github.com/urfave/cli-docs/v3"
	"github.com/urfave/cli/v3"

	"github.com/undefinedpatient/glyph/internal/commands"
	"github.com/undefinedpatient/glyph/internal/glyph"
)

func main() {
	md, err := docs.ToMarkdown(rootCommand())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error generating docs: %v\n", err)
		os.Exit(1)
	}

	outPath := "docs/cli-reference.md"
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	if err := os.WriteFile(outPath, []byte(md), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "error writing %s: %v\n", outPath, err)
		os.Exit(1)
	}

	fmt.Printf("Generated %s\n", outPath)
}

// rootCommand mirrors the command tree assembled in the glyph binary. Actions
// are never run, so the app is left empty.
func rootCommand() *cli.Command {
	flags := &commands.Flags{}
	app := &glyph.App{}

	root := &cli.Command{
		Name:      "glyph",
		Usage:     "Write notes laid out as terminal panels",
		UsageText: "glyph [global options] command [command options]",
		Description: `Glyph keeps entries made of markdown sections and shows each entry through
its own layout: a tree of panels splitting the terminal into rows and
columns, each panel showing one section.

Run 'glyph' with no arguments to open the interactive editor.
Run 'glyph new <name>' to create an entry from the command line.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error, fatal, panic)",
				Sources: cli.EnvVars("GLYPH_LOG_LEVEL"),
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "log-file",
				Usage:   "path to log file (defaults to <data-dir>/glyph.log)",
				Sources: cli.EnvVars("GLYPH_LOG_FILE"),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to config file",
				Sources: cli.EnvVars("GLYPH_CONFIG"),
				Value:   commands.DefaultConfigPath(),
			},
			&cli.StringFlag{
				Name:    "data-dir",
				Usage:   "path to data directory",
				Sources: cli.EnvVars("GLYPH_DATA_DIR"),
				Value:   commands.DefaultDataDir(),
			},
		},
	}

	tuiCmd := commands.NewTuiCmd(flags, app)
	root.Flags = append(root.Flags, tuiCmd.Flags()...)

	root = commands.NewLsCmd(flags, app).Register(root)
	root = commands.NewNewCmd(flags, app).Register(root)
	root = commands.NewRmCmd(flags, app).Register(root)
	root = commands.NewShowCmd(flags, app).Register(root)
	root = commands.NewLayoutCmd(flags, app).Register(root)
	root = commands.NewImportCmd(flags, app).Register(root)
	root = commands.NewExportCmd(flags, app).Register(root)
	root = commands.NewConfigValidateCmd(flags).Register(root)

	return root
}
