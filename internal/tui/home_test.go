package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/undefinedpatient/glyph/internal/glyph"
	"github.com/undefinedpatient/glyph/internal/ui"
	"github.com/undefinedpatient/glyph/pkg/tuitest"
)

func TestHomePage_CreateEntry(t *testing.T) {
	h := newHarness(t)
	home := h.home(t)

	h.send(t, tuitest.KeyPress('n'))
	require.Equal(t, 1, home.Dialogs().Len())
	dialog, ok := home.Dialogs().Top().(*TextInputDialog)
	require.True(t, ok)
	assert.True(t, dialog.Focused())

	h.send(t, tuitest.KeyPressString("Trip")...)
	assert.Equal(t, "Trip", dialog.Value())
	h.send(t, tuitest.KeyEnter())

	assert.False(t, home.Dialogs().Open())
	require.Len(t, home.Entries(), 1)
	assert.Equal(t, "Trip", home.Entries()[0].Name)

	msg, ok := h.ui.Status().Message()
	require.True(t, ok)
	assert.Equal(t, `created "Trip"`, msg.Message)
}

func TestHomePage_BlankNameKeepsDialogOpen(t *testing.T) {
	h := newHarness(t)
	home := h.home(t)

	h.send(t, tuitest.KeyPress('n'), tuitest.KeyPress(' '), tuitest.KeyEnter())
	assert.Equal(t, 1, home.Dialogs().Len())
	assert.Empty(t, home.Entries())

	h.send(t, tuitest.KeyEsc())
	assert.False(t, home.Dialogs().Open())
}

func TestHomePage_RenameAndDelete(t *testing.T) {
	h := newHarness(t)
	home := h.home(t)
	e := h.create(t, glyph.CreateOptions{Name: "old"})

	h.send(t, tuitest.KeyPress('r'))
	dialog := home.Dialogs().Top().(*TextInputDialog)
	assert.Equal(t, "old", dialog.Value())
	h.send(t, tuitest.Key(tea.KeyBackspace), tuitest.Key(tea.KeyBackspace), tuitest.Key(tea.KeyBackspace))
	h.send(t, tuitest.KeyPressString("new")...)
	h.send(t, tuitest.KeyEnter())

	got, err := h.app.Entries.Get(context.Background(), e.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Name)

	// cancel first, then confirm
	h.send(t, tuitest.KeyPress('d'))
	require.IsType(t, &ConfirmDialog{}, home.Dialogs().Top())
	h.send(t, tuitest.Key(tea.KeyTab), tuitest.KeyEnter())
	assert.Len(t, home.Entries(), 1)

	h.send(t, tuitest.KeyPress('d'), tuitest.KeyEnter())
	assert.Empty(t, home.Entries())
}

func TestHomePage_OpenAndReturn(t *testing.T) {
	h := newHarness(t)
	e := h.create(t, glyph.CreateOptions{Name: "Trip"})

	h.send(t, tuitest.KeyEnter())
	p := h.page(t)
	assert.Equal(t, e.ID, p.State().ID())
	assert.Equal(t, "glyph › Trip › outline", Breadcrumb(ui.FocusPath(h.ui)))

	// rename from inside the entry, then come back to a refreshed list
	h.send(t, tuitest.KeyPress('R'))
	h.send(t, tuitest.KeyPressString("!")...)
	h.send(t, tuitest.KeyEnter())
	h.send(t, tuitest.KeyEsc())

	require.Len(t, h.ui.Pages(), 1)
	assert.Equal(t, "Trip!", h.home(t).Entries()[0].Name)
}

func TestHomePage_HelpAndQuit(t *testing.T) {
	h := newHarness(t)
	home := h.home(t)

	h.send(t, tuitest.KeyPress('?'))
	help, ok := home.Dialogs().Top().(*HelpDialog)
	require.True(t, ok)
	assert.NotEmpty(t, help.Bindings())
	h.send(t, tuitest.KeyPress('?'))
	assert.False(t, home.Dialogs().Open())

	h.send(t, tuitest.KeyPress('q'))
	assert.True(t, h.ui.Quitting())
}
