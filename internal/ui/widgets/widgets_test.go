package widgets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/undefinedpatient/glyph/internal/core/styles"
	"github.com/undefinedpatient/glyph/internal/ui"
	"github.com/undefinedpatient/glyph/pkg/tuitest"
)

func render(n ui.Node, w, h int, hint ui.Hint) []string {
	c := ui.NewCanvas(w, h, styles.Default())
	n.Render(c, c.Bounds(), hint)
	return tuitest.Lines(c.Plain())
}

func typeText(t *testing.T, n ui.Node, s string) {
	t.Helper()
	for _, r := range s {
		_, err := n.Handle(ui.PressRune(r))
		require.NoError(t, err)
	}
}

func TestLabel(t *testing.T) {
	l := NewLabel("first\nsecond line", styles.RoleText)

	assert.Equal(t, []string{"first", "second…"}, render(l, 7, 3, ui.HintDefault))

	out, err := l.Handle(ui.PressRune('x'))
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestButton(t *testing.T) {
	b := NewButton("Save", ui.PopDialog{}, ui.PopPage{})

	assert.Equal(t, []string{"[ Save ]"}, render(b, 10, 1, ui.HintFocused))
	assert.Equal(t, 8, b.Width())

	out, err := b.Handle(ui.Press(ui.KeyEnter))
	require.NoError(t, err)
	assert.Equal(t, []ui.Tag{ui.TagPopDialog, ui.TagPopPage}, ui.Tags(out))

	out, err = b.Handle(ui.PressRune('x'))
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = b.Handle(ui.PressRune(' '))
	require.NoError(t, err)
	require.Len(t, out, 2)

	// returned slices are copies
	out[0] = ui.Quit{}
	assert.Equal(t, ui.TagPopDialog, b.Press()[0].Tag())
}

func TestTextField_TypingAndSubmit(t *testing.T) {
	f := NewTextField("name", "ab")
	var submitted string
	f.OnSubmit = func(v string) []ui.Intent {
		submitted = v
		return []ui.Intent{ui.PopDialog{}}
	}
	f.OnCancel = func() []ui.Intent { return []ui.Intent{ui.PopDialog{}} }

	typeText(t, f, "c")
	assert.Equal(t, "ab", f.Value(), "blurred fields ignore keys")

	f.SetFocused(true)
	typeText(t, f, "cd")
	_, err := f.Handle(ui.Press(ui.KeyBackspace))
	require.NoError(t, err)
	assert.Equal(t, "abc", f.Value())

	out, err := f.Handle(ui.Press(ui.KeyEnter))
	require.NoError(t, err)
	assert.Equal(t, "abc", submitted)
	assert.Equal(t, []ui.Tag{ui.TagPopDialog}, ui.Tags(out))

	out, err = f.Handle(ui.Press(ui.KeyEsc))
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestTextField_IgnoresRelease(t *testing.T) {
	f := NewTextField("", "")
	f.SetFocused(true)

	_, err := f.Handle(ui.KeyEvent{Code: ui.KeyRune, Rune: 'x', Phase: ui.PhaseRelease})
	require.NoError(t, err)
	assert.Empty(t, f.Value())
}

func TestTextField_Render(t *testing.T) {
	f := NewTextField("", "hello")
	lines := render(f, 12, 1, ui.HintDefault)
	assert.Contains(t, lines[0], "hello")
}

func TestTextArea_ReportsChanges(t *testing.T) {
	a := NewTextArea("x")
	var changes []string
	a.OnChange = func(v string) []ui.Intent {
		changes = append(changes, v)
		return []ui.Intent{ui.Info("changed")}
	}

	typeText(t, a, "y")
	assert.Empty(t, changes, "blurred editors ignore keys")

	a.SetFocused(true)
	// cursor starts at the end of the value
	out, err := a.Handle(ui.PressRune('y'))
	require.NoError(t, err)
	assert.Equal(t, []ui.Tag{ui.TagNotify}, ui.Tags(out))
	assert.Equal(t, "xy", a.Value())

	// moving the cursor does not change the text
	out, err = a.Handle(ui.Press(ui.KeyLeft))
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Len(t, changes, 1)

	_, err = a.Handle(ui.Press(ui.KeyEnter))
	require.NoError(t, err)
	assert.Equal(t, "x\ny", a.Value())
	line, col := a.Cursor()
	assert.Equal(t, 1, line)
	assert.Equal(t, 0, col)
}

func TestTextArea_Render(t *testing.T) {
	a := NewTextArea("one\ntwo")
	lines := render(a, 10, 3, ui.HintDefault)
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Equal(t, "one", lines[0])
	assert.Equal(t, "two", lines[1])
}

func TestList_HoverAndChoose(t *testing.T) {
	l := NewList("nothing")
	var chosen []int
	l.OnChoose = func(i int) []ui.Intent {
		chosen = append(chosen, i)
		return []ui.Intent{ui.Quit{}}
	}

	assert.Equal(t, []string{"nothing"}, render(l, 10, 2, ui.HintFocused))

	l.SetItems([]ListItem{{Title: "a"}, {Title: "b", Detail: "2"}, {Title: "c"}})
	i, ok := l.Hovered()
	require.True(t, ok)
	assert.Equal(t, 0, i)

	_, err := l.Handle(ui.PressRune('k'))
	require.NoError(t, err)
	i, _ = l.Hovered()
	assert.Equal(t, 2, i, "wraps to the last item")

	_, err = l.Handle(ui.PressRune('g'))
	require.NoError(t, err)
	_, err = l.Handle(ui.Press(ui.KeyDown))
	require.NoError(t, err)

	out, err := l.Handle(ui.Press(ui.KeyEnter))
	require.NoError(t, err)
	assert.Equal(t, []int{1}, chosen)
	assert.Equal(t, []ui.Tag{ui.TagQuit}, ui.Tags(out))

	assert.Equal(t, []string{"  a", "› b 2", "  c"}, render(l, 10, 3, ui.HintFocused))
}

func TestList_ScrollsToHover(t *testing.T) {
	l := NewList("")
	l.SetItems([]ListItem{{Title: "a"}, {Title: "b"}, {Title: "c"}, {Title: "d"}})
	require.NoError(t, l.Hover(3))

	assert.Equal(t, []string{"  c", "› d"}, render(l, 6, 2, ui.HintDefault))

	l.SetItems(l.Items()[:2])
	i, _ := l.Hovered()
	assert.Equal(t, 1, i)
}

func TestList_EmptyIgnoresKeys(t *testing.T) {
	l := NewList("")
	for _, ev := range []ui.Event{ui.PressRune('j'), ui.PressRune('k'), ui.PressRune('G'), ui.Press(ui.KeyEnter)} {
		out, err := l.Handle(ev)
		require.NoError(t, err)
		assert.Empty(t, out)
	}
	assert.Len(t, l.Bindings(), 5)
}
