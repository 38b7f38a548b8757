package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/undefinedpatient/glyph/internal/core/config"
	"github.com/undefinedpatient/glyph/internal/core/document"
	"github.com/undefinedpatient/glyph/internal/core/entry"
	"github.com/undefinedpatient/glyph/internal/core/markdown"
	"github.com/undefinedpatient/glyph/internal/data/db"
	"github.com/undefinedpatient/glyph/internal/data/stores"
	"github.com/undefinedpatient/glyph/internal/glyph"
)

func isDirty(t *testing.T, st *document.State) bool {
	t.Helper()
	dirty, err := st.IsDirty()
	require.NoError(t, err)
	return dirty
}

func newTestApp(t *testing.T) *glyph.App {
	t.Helper()

	database, err := db.Open(t.TempDir(), db.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()

	app, err := glyph.NewApp(stores.NewEntryStore(database), stores.NewSectionStore(database), &cfg, database)
	require.NoError(t, err)
	app.Markdown = markdown.Plain{}
	return app
}

type harness struct {
	app       *glyph.App
	ui        *Application
	clipboard []string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{app: newTestApp(t)}

	a, err := New(context.Background(), h.app, Options{
		Clipboard: func(s string) error {
			h.clipboard = append(h.clipboard, s)
			return nil
		},
	})
	require.NoError(t, err)
	h.ui = a

	h.send(t, tea.WindowSizeMsg{Width: 80, Height: 24})
	return h
}

// send feeds msgs one by one, rendering after each like the terminal loop.
func (h *harness) send(t *testing.T, msgs ...tea.Msg) {
	t.Helper()
	for _, m := range msgs {
		ev, ok := Event(m)
		require.True(t, ok, "message %T is not an event", m)
		_, err := h.ui.Handle(ev)
		require.NoError(t, err)
		_ = h.ui.View()
	}
}

func (h *harness) create(t *testing.T, opts glyph.CreateOptions) entry.Entry {
	t.Helper()
	e, err := h.app.Entries.Create(context.Background(), opts)
	require.NoError(t, err)
	require.NoError(t, h.home(t).Activate())
	return e
}

func (h *harness) home(t *testing.T) *HomePage {
	t.Helper()
	home, ok := h.ui.Pages()[0].(*HomePage)
	require.True(t, ok)
	return home
}

func (h *harness) page(t *testing.T) *EntryPage {
	t.Helper()
	p, ok := h.ui.Top().(*EntryPage)
	require.True(t, ok, "top page is %T", h.ui.Top())
	return p
}

func (h *harness) sections(t *testing.T, id int64) []entry.Section {
	t.Helper()
	secs, err := h.app.Entries.Sections(context.Background(), id)
	require.NoError(t, err)
	return secs
}
