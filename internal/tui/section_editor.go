package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/undefinedpatient/glyph/internal/core/document"
	"github.com/undefinedpatient/glyph/internal/core/entry"
	"github.com/undefinedpatient/glyph/internal/core/layout"
	"github.com/undefinedpatient/glyph/internal/ui"
	"github.com/undefinedpatient/glyph/internal/ui/widgets"
)

// SectionEditor edits the text of one section. Every change is written to
// the shared state at once; saving is left to the page.
type SectionEditor struct {
	state   *document.State
	keys    editorKeys
	area    *widgets.TextArea
	section int64
	loaded  bool
}

var (
	_ ui.Node   = (*SectionEditor)(nil)
	_ ui.KeyMap = (*SectionEditor)(nil)
)

// NewSectionEditor creates an editor over state with no section loaded.
func NewSectionEditor(state *document.State) *SectionEditor {
	e := &SectionEditor{
		state: state,
		keys:  defaultEditorKeys(),
		area:  widgets.NewTextArea(""),
	}
	e.area.OnChange = e.changed
	return e
}

// Load starts editing sec.
func (e *SectionEditor) Load(sec entry.Section) {
	e.section, e.loaded = sec.ID, true
	e.area.SetValue(sec.Content)
}

// Section returns the ID of the loaded section.
func (e *SectionEditor) Section() (int64, bool) { return e.section, e.loaded }

// Value returns the editor text.
func (e *SectionEditor) Value() string { return e.area.Value() }

// Title names the view in the status line.
func (e *SectionEditor) Title() string { return "edit" }

// Bindings implements ui.KeyMap.
func (e *SectionEditor) Bindings() []key.Binding { return []key.Binding{e.keys.Done} }

// Focused reports whether the editor takes input.
func (e *SectionEditor) Focused() bool { return e.area.Focused() }

// SetFocused focuses or blurs the text area.
func (e *SectionEditor) SetFocused(focused bool) { e.area.SetFocused(focused) }

func (e *SectionEditor) changed(value string) []ui.Intent {
	if !e.loaded {
		return nil
	}
	// SetContent marks the section dirty itself.
	if err := e.state.SetContent(e.section, value); err != nil {
		return []ui.Intent{ui.Failure(err)}
	}
	return nil
}

// Render draws the text area.
func (e *SectionEditor) Render(c *ui.Canvas, area layout.Rect, hint ui.Hint) {
	e.area.Render(c, area, hint)
}

// Handle edits text until escape.
func (e *SectionEditor) Handle(ev ui.Event) ([]ui.Intent, error) {
	if ui.Matches(ev, e.keys.Done) {
		return []ui.Intent{SwitchMode{Mode: ModeNormal}}, nil
	}
	return e.area.Handle(ev)
}
