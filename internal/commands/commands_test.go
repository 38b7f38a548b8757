package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/undefinedpatient/glyph/internal/core/config"
	"github.com/undefinedpatient/glyph/internal/core/entry"
	"github.com/undefinedpatient/glyph/internal/core/layout"
	"github.com/undefinedpatient/glyph/internal/data/db"
	"github.com/undefinedpatient/glyph/internal/data/stores"
	"github.com/undefinedpatient/glyph/internal/glyph"
	"github.com/undefinedpatient/glyph/internal/printer"
	"github.com/undefinedpatient/glyph/pkg/tuitest"
)

type cliHarness struct {
	flags *Flags
	app   *glyph.App
}

func newCLI(t *testing.T) *cliHarness {
	t.Helper()

	dataDir := t.TempDir()
	database, err := db.Open(dataDir, db.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	cfg := config.DefaultConfig()
	cfg.DataDir = dataDir

	app, err := glyph.NewApp(stores.NewEntryStore(database), stores.NewSectionStore(database), &cfg, database)
	require.NoError(t, err)

	return &cliHarness{
		flags: &Flags{DataDir: dataDir, Config: &cfg},
		app:   app,
	}
}

// run executes one command line against fresh command structs and returns
// the stripped output.
func (h *cliHarness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := &cli.Command{
		Name:           "glyph",
		Writer:         &out,
		ErrWriter:      &out,
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
	root = NewLsCmd(h.flags, h.app).Register(root)
	root = NewNewCmd(h.flags, h.app).Register(root)
	root = NewRmCmd(h.flags, h.app).Register(root)
	root = NewShowCmd(h.flags, h.app).Register(root)
	root = NewLayoutCmd(h.flags, h.app).Register(root)
	root = NewImportCmd(h.flags, h.app).Register(root)
	root = NewExportCmd(h.flags, h.app).Register(root)
	root = NewConfigValidateCmd(h.flags).Register(root)

	ctx := printer.NewContext(context.Background(), printer.New(&out, h.app.Theme))
	err := root.Run(ctx, append([]string{"glyph"}, args...))
	return tuitest.StripANSI(out.String()), err
}

func (h *cliHarness) create(t *testing.T, opts glyph.CreateOptions) entry.Entry {
	t.Helper()
	e, err := h.app.Entries.Create(context.Background(), opts)
	require.NoError(t, err)
	return e
}

func TestLs(t *testing.T) {
	h := newCLI(t)

	out, err := h.run(t, "ls")
	require.NoError(t, err)
	assert.Empty(t, out)

	h.create(t, glyph.CreateOptions{Name: "Trip", Sections: []string{"a", "b"}})
	h.create(t, glyph.CreateOptions{Name: "Groceries"})

	out, err = h.run(t, "ls")
	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"ID", "NAME", "SECTIONS", "UPDATED"}, strings.Fields(lines[0]))
	assert.Contains(t, out, "Trip")
	assert.Contains(t, out, "Groceries")

	out, err = h.run(t, "ls", "--json")
	require.NoError(t, err)
	lines = strings.Split(out, "\n")
	require.Len(t, lines, 2)

	got := map[string]entryInfo{}
	for _, line := range lines {
		var info entryInfo
		require.NoError(t, json.Unmarshal([]byte(line), &info))
		got[info.Name] = info
	}
	assert.Equal(t, 2, got["Trip"].Sections)
	assert.Equal(t, "trip", got["Trip"].Slug)
	assert.Equal(t, 1, got["Groceries"].Sections)
}

func TestNew(t *testing.T) {
	h := newCLI(t)
	ctx := context.Background()

	out, err := h.run(t, "new", "--preset", "columns", "-s", "left", "-s", "right", "Trip", "plan")
	require.NoError(t, err)
	assert.Contains(t, out, "✔ Entry created id 1")

	e, err := h.app.Entries.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Trip plan", e.Name)

	secs, err := h.app.Entries.Sections(ctx, e.ID)
	require.NoError(t, err)
	require.Len(t, secs, 2)
	assert.Equal(t, "right", secs[1].Title)

	tree, err := h.app.Entries.Layout(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, layout.Horizontal, tree.Orientation)

	_, err = h.run(t, "new", "--template", "missing", "x")
	assert.ErrorContains(t, err, "missing")

	_, err = h.run(t, "new", "--preset", "spiral", "x")
	assert.ErrorContains(t, err, "unknown layout preset")
}

func TestRm(t *testing.T) {
	h := newCLI(t)
	e := h.create(t, glyph.CreateOptions{Name: "Trip"})

	_, err := h.run(t, "rm", "--yes", "abc")
	assert.ErrorContains(t, err, `invalid entry id "abc"`)

	_, err = h.run(t, "rm", "--yes")
	assert.ErrorContains(t, err, "entry id is required")

	_, err = h.run(t, "rm", "--yes", "99")
	assert.ErrorIs(t, err, entry.ErrNotFound)

	out, err := h.run(t, "rm", "--yes", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Entry deleted Trip")

	_, err = h.app.Entries.Get(context.Background(), e.ID)
	assert.ErrorIs(t, err, entry.ErrNotFound)
}

func TestShow(t *testing.T) {
	h := newCLI(t)
	e := h.create(t, glyph.CreateOptions{Name: "Trip", Sections: []string{"Packing", "Route"}})
	secs, err := h.app.Entries.Sections(context.Background(), e.ID)
	require.NoError(t, err)

	st, err := h.app.Entries.Open(context.Background(), e.ID)
	require.NoError(t, err)
	require.NoError(t, st.SetContent(secs[0].ID, "- tent\n- stove"))
	require.NoError(t, st.Save(context.Background()))

	out, err := h.run(t, "show", "--raw", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "# Trip")
	assert.Contains(t, out, "## Packing")
	assert.Contains(t, out, "- tent")
	assert.Contains(t, out, "glyph:layout")

	out, err = h.run(t, "show", "--width", "60", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Packing")
	assert.Contains(t, out, "tent")
	assert.NotContains(t, out, "glyph:layout")
}

func TestLayoutCommands(t *testing.T) {
	h := newCLI(t)
	ctx := context.Background()
	h.create(t, glyph.CreateOptions{Name: "Trip", Preset: layout.PresetColumns, Sections: []string{"a", "b"}})

	out, err := h.run(t, "layout", "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "label: columns")
	assert.Contains(t, out, "orientation: horizontal")

	out, err = h.run(t, "layout", "show", "--format", "json", "1")
	require.NoError(t, err)
	tree, err := layout.Decode([]byte(out))
	require.NoError(t, err)
	assert.Len(t, tree.Leaves(), 2)

	_, err = h.run(t, "layout", "show", "--format", "toml", "1")
	assert.ErrorContains(t, err, "unknown format")

	stacked, err := layout.Preset(layout.PresetStack, 2)
	require.NoError(t, err)
	data, err := layout.Encode(stacked)
	require.NoError(t, err)
	file := filepath.Join(t.TempDir(), "layout.json")
	require.NoError(t, os.WriteFile(file, data, 0o644))

	out, err = h.run(t, "layout", "set", "-f", file, "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Layout updated")

	got, err := h.app.Entries.Layout(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, layout.Vertical, got.Orientation)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"label":"x","size":{"mode":"flex","value":0}}`), 0o644))
	_, err = h.run(t, "layout", "set", "-f", bad, "1")
	assert.ErrorIs(t, err, layout.ErrMalformed)

	svgPath := filepath.Join(t.TempDir(), "layout.svg")
	_, err = h.run(t, "layout", "svg", "--width", "80", "--height", "24", "-o", svgPath, "1")
	require.NoError(t, err)
	svg, err := os.ReadFile(svgPath)
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")
	assert.Contains(t, string(svg), "a")

	out, err = h.run(t, "layout", "svg", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "</svg>")
}

func TestExportImport(t *testing.T) {
	h := newCLI(t)
	h.create(t, glyph.CreateOptions{Name: "Road Trip", Preset: layout.PresetColumns, Sections: []string{"a", "b"}})

	dir := t.TempDir()
	out, err := h.run(t, "export", "-o", dir, "1")
	require.NoError(t, err)
	path := filepath.Join(dir, "road-trip.md")
	assert.Contains(t, out, path)
	require.FileExists(t, path)

	_, err = h.run(t, "import")
	assert.ErrorContains(t, err, "at least one")

	out, err = h.run(t, "import", filepath.Join(dir, "*.md"))
	require.NoError(t, err)
	assert.Contains(t, out, "1 entries imported")

	entries, err := h.app.Entries.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	tree, err := h.app.Entries.Layout(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, layout.Horizontal, tree.Orientation, "layout survives the round trip")

	_, err = h.run(t, "import", filepath.Join(dir, "*.txt"))
	assert.ErrorContains(t, err, "matched no files")
}

func TestConfigValidate(t *testing.T) {
	h := newCLI(t)

	out, err := h.run(t, "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")
	assert.Contains(t, out, "Templates: 0 defined")

	h.flags.Config.Theme = "neon"
	out, err = h.run(t, "config", "validate")
	require.Error(t, err)
	assert.Contains(t, out, "theme: unknown theme")
	assert.Contains(t, out, "1 error(s) found")

	out, err = h.run(t, "config", "validate", "--format", "json")
	require.Error(t, err)
	var result struct {
		Valid  bool              `json:"valid"`
		Errors []validationError `json:"errors"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "theme", result.Errors[0].Field)
}
