package tui

import (
	"github.com/undefinedpatient/glyph/internal/core/document"
	"github.com/undefinedpatient/glyph/internal/core/layout"
	"github.com/undefinedpatient/glyph/internal/ui"
)

// Mode is the interaction mode of an entry page.
type Mode uint8

const (
	ModeNormal Mode = iota // browse sections
	ModeEdit               // edit the active section
	ModeLayout             // edit the layout tree
)

func (m Mode) String() string {
	switch m {
	case ModeEdit:
		return "edit"
	case ModeLayout:
		return "layout"
	default:
		return "normal"
	}
}

// Document intents. Entry pages consume everything that names a section or
// the layout; the home page consumes entry level intents.
const (
	TagSwitchMode    ui.Tag = "switch-mode"
	TagMarkDirty     ui.Tag = "mark-dirty"
	TagSaveEntry     ui.Tag = "save-entry"
	TagSelectSection ui.Tag = "select-section"
	TagSelectNode    ui.Tag = "select-node"
	TagCreateEntry   ui.Tag = "create-entry"
	TagDeleteEntry   ui.Tag = "delete-entry"
	TagRenameEntry   ui.Tag = "rename-entry"
	TagOpenEntry     ui.Tag = "open-entry"
	TagCreateSection ui.Tag = "create-section"
	TagDeleteSection ui.Tag = "delete-section"
	TagRenameSection ui.Tag = "rename-section"
	TagLayoutEdit    ui.Tag = "layout-edit"
)

// SwitchMode changes the mode of the entry page.
type SwitchMode struct {
	Mode Mode
}

func (SwitchMode) Tag() ui.Tag { return TagSwitchMode }

// MarkDirty records an unsaved change.
type MarkDirty struct {
	Ref document.Ref
}

func (MarkDirty) Tag() ui.Tag { return TagMarkDirty }

// SaveEntry writes every dirty record of the open entry.
type SaveEntry struct{}

func (SaveEntry) Tag() ui.Tag { return TagSaveEntry }

// SelectSection makes the section at Index active.
type SelectSection struct {
	Index int
}

func (SelectSection) Tag() ui.Tag { return TagSelectSection }

// SelectNode moves the layout editor selection.
type SelectNode struct {
	At layout.Coord
}

func (SelectNode) Tag() ui.Tag { return TagSelectNode }

// CreateEntry creates an entry with the default sections.
type CreateEntry struct {
	Name string
}

func (CreateEntry) Tag() ui.Tag { return TagCreateEntry }

// DeleteEntry removes an entry and its sections.
type DeleteEntry struct {
	ID int64
}

func (DeleteEntry) Tag() ui.Tag { return TagDeleteEntry }

// RenameEntry changes an entry's name.
type RenameEntry struct {
	ID   int64
	Name string
}

func (RenameEntry) Tag() ui.Tag { return TagRenameEntry }

// OpenEntry opens an entry page.
type OpenEntry struct {
	ID int64
}

func (OpenEntry) Tag() ui.Tag { return TagOpenEntry }

// CreateSection appends a section to the open entry.
type CreateSection struct {
	Title string
}

func (CreateSection) Tag() ui.Tag { return TagCreateSection }

// DeleteSection removes a section of the open entry.
type DeleteSection struct {
	ID int64
}

func (DeleteSection) Tag() ui.Tag { return TagDeleteSection }

// RenameSection changes a section title.
type RenameSection struct {
	ID    int64
	Title string
}

func (RenameSection) Tag() ui.Tag { return TagRenameSection }

// LayoutOp is the tree operation a LayoutEdit performs.
type LayoutOp uint8

const (
	LayoutInsert LayoutOp = iota // append Node under At
	LayoutRemove                 // detach the node at At
	LayoutPatch                  // apply Delta to the node at At
	LayoutMove                   // shift the node at At by Offset among its siblings
)

func (op LayoutOp) String() string {
	switch op {
	case LayoutInsert:
		return "insert"
	case LayoutRemove:
		return "remove"
	case LayoutPatch:
		return "patch"
	case LayoutMove:
		return "move"
	default:
		return "unknown"
	}
}

// LayoutEdit mutates the layout tree of the open entry.
type LayoutEdit struct {
	Op     LayoutOp
	At     layout.Coord
	Node   *layout.Node
	Delta  layout.Delta
	Offset int
}

func (LayoutEdit) Tag() ui.Tag { return TagLayoutEdit }
