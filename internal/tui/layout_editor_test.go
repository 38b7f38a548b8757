package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/undefinedpatient/glyph/internal/core/layout"
	"github.com/undefinedpatient/glyph/internal/glyph"
	"github.com/undefinedpatient/glyph/internal/ui"
	"github.com/undefinedpatient/glyph/pkg/tuitest"
)

func layoutPage(t *testing.T, h *harness) *EntryPage {
	t.Helper()
	p := openEntry(t, h, glyph.CreateOptions{Name: "Trip", Preset: layout.PresetColumns, Sections: []string{"a", "b"}})
	h.send(t, tuitest.KeyPress('L'))
	require.Equal(t, ModeLayout, p.Mode())
	return p
}

func tree(t *testing.T, p *EntryPage) *layout.Node {
	t.Helper()
	root, err := p.State().Layout()
	require.NoError(t, err)
	return root
}

func TestLayoutEditor_Navigate(t *testing.T) {
	h := newHarness(t)
	p := layoutPage(t, h)
	ed := p.LayoutEditor()

	assert.True(t, ed.Selected().IsRoot())

	h.send(t, tuitest.KeyPress('j'))
	assert.True(t, ed.Selected().IsRoot(), "the root has no siblings")

	h.send(t, tuitest.KeyPress('l'))
	assert.Equal(t, layout.Coord{0}, ed.Selected())

	h.send(t, tuitest.KeyPress('j'))
	assert.Equal(t, layout.Coord{1}, ed.Selected())
	h.send(t, tuitest.KeyPress('j'))
	assert.Equal(t, layout.Coord{0}, ed.Selected(), "siblings wrap around")
	h.send(t, tuitest.KeyPress('k'))
	assert.Equal(t, layout.Coord{1}, ed.Selected())

	h.send(t, tuitest.KeyPress('l'))
	assert.Equal(t, layout.Coord{1}, ed.Selected(), "leaves have no children")

	h.send(t, tuitest.KeyPress('h'))
	assert.True(t, ed.Selected().IsRoot())

	screen := tuitest.StripANSI(h.ui.View())
	assert.Contains(t, screen, "◆ columns horizontal")
	assert.Contains(t, screen, "◇ section 2 → b")
	assert.Contains(t, screen, "layout")

	h.send(t, tuitest.KeyEsc())
	assert.Equal(t, ModeNormal, p.Mode())
	assert.False(t, isDirty(t, p.State()), "navigation does not touch the tree")
}

func TestLayoutEditor_InsertRemove(t *testing.T) {
	h := newHarness(t)
	p := layoutPage(t, h)
	ed := p.LayoutEditor()

	h.send(t, tuitest.KeyPress('a'))
	assert.Len(t, tree(t, p).Children, 3)
	assert.Equal(t, layout.Coord{2}, ed.Selected(), "the new node is selected")
	assert.True(t, isDirty(t, p.State()))

	h.send(t, tuitest.KeyPress('x'))
	require.IsType(t, &ConfirmDialog{}, p.Dialogs().Top())
	h.send(t, tuitest.KeyEnter())
	assert.Len(t, tree(t, p).Children, 2)
	assert.True(t, ed.Selected().IsRoot(), "removal selects the parent")

	_, err := h.ui.Handle(ui.PressRune('x'))
	require.ErrorIs(t, err, layout.ErrRoot)
	assert.False(t, p.Dialogs().Open())
}

func TestLayoutEditor_Attributes(t *testing.T) {
	h := newHarness(t)
	p := layoutPage(t, h)

	h.send(t, tuitest.KeyPress('o'))
	assert.Equal(t, layout.Vertical, tree(t, p).Orientation)

	h.send(t, tuitest.KeyPress('b'))
	assert.Equal(t, layout.BorderNone, tree(t, p).Border, "rounded wraps to none")

	h.send(t, tuitest.KeyPress('l'), tuitest.KeyPress('s'))
	assert.Equal(t, layout.Length(10), tree(t, p).Children[0].Size)
	h.send(t, tuitest.KeyPress('+'), tuitest.KeyPress('+'), tuitest.KeyPress('-'))
	assert.Equal(t, layout.Length(11), tree(t, p).Children[0].Size)
	h.send(t, tuitest.KeyPress('s'))
	assert.Equal(t, layout.Flex(1), tree(t, p).Children[0].Size)

	_, err := h.ui.Handle(ui.PressRune('-'))
	require.ErrorIs(t, err, layout.ErrInvalidNode)
	assert.Equal(t, layout.Flex(1), tree(t, p).Children[0].Size, "a rejected edit leaves the tree unchanged")

	h.send(t, tuitest.KeyPress('c'))
	content, ok := tree(t, p).Children[0].Content()
	require.True(t, ok)
	assert.Equal(t, 1, content)

	h.send(t, tuitest.KeyPress('C'))
	_, ok = tree(t, p).Children[0].Content()
	assert.False(t, ok)

	h.send(t, tuitest.KeyPress('c'))
	content, _ = tree(t, p).Children[0].Content()
	assert.Equal(t, 0, content, "binding starts over at the first section")
}

func TestLayoutEditor_RenameAndMove(t *testing.T) {
	h := newHarness(t)
	p := layoutPage(t, h)
	ed := p.LayoutEditor()

	h.send(t, tuitest.KeyPress('l'), tuitest.KeyPress('r'))
	for range len("section 1") {
		h.send(t, tuitest.Key(tea.KeyBackspace))
	}
	h.send(t, tuitest.KeyPressString("intro")...)
	h.send(t, tuitest.KeyEnter())
	assert.Equal(t, "intro", tree(t, p).Children[0].Label)

	h.send(t, tuitest.KeyPress('J'))
	assert.Equal(t, layout.Coord{1}, ed.Selected())
	assert.Equal(t, "intro", tree(t, p).Children[1].Label)

	h.send(t, tuitest.KeyPress('J'))
	assert.Equal(t, layout.Coord{0}, ed.Selected(), "moves wrap around")
}

func TestLayoutEditor_ClickSelects(t *testing.T) {
	h := newHarness(t)
	p := layoutPage(t, h)

	h.send(t, tuitest.Click(60, 5))
	assert.Equal(t, layout.Coord{1}, p.LayoutEditor().Selected())

	h.send(t, tuitest.Click(28, 0))
	assert.True(t, p.LayoutEditor().Selected().IsRoot(), "the frame belongs to the root")
}

func TestLayoutEditor_StaleSelection(t *testing.T) {
	h := newHarness(t)
	p := layoutPage(t, h)
	ed := p.LayoutEditor()

	ed.Select(layout.Coord{7, 3})
	_ = h.ui.View()
	assert.True(t, ed.Selected().IsRoot(), "an unresolvable selection falls back to the root")

	_, err := p.router.Route([]ui.Intent{SelectNode{At: layout.Coord{9}}})
	require.ErrorIs(t, err, layout.ErrUnresolvable)
	assert.True(t, ed.Selected().IsRoot())
}

func TestLayoutEditor_StaleSelectionIsReported(t *testing.T) {
	h := newHarness(t)
	p := layoutPage(t, h)
	ed := p.LayoutEditor()

	ed.Select(layout.Coord{7})

	intents, err := ed.Handle(ui.PressRune('j'))
	require.NoError(t, err)
	require.Len(t, intents, 2)

	notify, ok := intents[0].(ui.Notify)
	require.True(t, ok)
	assert.Equal(t, ui.LevelError, notify.Level)
	assert.Contains(t, notify.Message, "7")
	assert.Equal(t, SelectNode{At: layout.Coord{}}, intents[1])
	assert.True(t, ed.Selected().IsRoot(), "the selection is reset explicitly")
}
