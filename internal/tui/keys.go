package tui

import "github.com/charmbracelet/bubbles/key"

type homeKeys struct {
	New    key.Binding
	Rename key.Binding
	Delete key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultHomeKeys() homeKeys {
	return homeKeys{
		New:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new entry")),
		Rename: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename entry")),
		Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete entry")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+q"), key.WithHelp("q", "quit")),
	}
}

func (k homeKeys) bindings() []key.Binding {
	return []key.Binding{k.New, k.Rename, k.Delete, k.Help, k.Quit}
}

// pageKeys are handled by the entry page before its focused view.
type pageKeys struct {
	Save        key.Binding
	Help        key.Binding
	Back        key.Binding
	ScrollUp    key.Binding
	ScrollDown  key.Binding
	ScrollLeft  key.Binding
	ScrollRight key.Binding
}

func defaultPageKeys() pageKeys {
	return pageKeys{
		Save:        key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Back:        key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc", "back")),
		ScrollUp:    key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
		ScrollDown:  key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdown", "scroll down")),
		ScrollLeft:  key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "scroll left")),
		ScrollRight: key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "scroll right")),
	}
}

func (k pageKeys) bindings() []key.Binding {
	return []key.Binding{k.Save, k.Help, k.Back, k.ScrollUp, k.ScrollDown, k.ScrollLeft, k.ScrollRight}
}

type outlineKeys struct {
	Up          key.Binding
	Down        key.Binding
	Edit        key.Binding
	Layout      key.Binding
	New         key.Binding
	Rename      key.Binding
	RenameEntry key.Binding
	Delete      key.Binding
	MoveUp      key.Binding
	MoveDown    key.Binding
	Copy        key.Binding
}

func defaultOutlineKeys() outlineKeys {
	return outlineKeys{
		Up:          key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "previous section")),
		Down:        key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "next section")),
		Edit:        key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit section")),
		Layout:      key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "edit layout")),
		New:         key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new section")),
		Rename:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename section")),
		RenameEntry: key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "rename entry")),
		Delete:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete section")),
		MoveUp:      key.NewBinding(key.WithKeys("K"), key.WithHelp("K", "move section up")),
		MoveDown:    key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "move section down")),
		Copy:        key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy section")),
	}
}

func (k outlineKeys) bindings() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Edit, k.Layout, k.New, k.Rename,
		k.RenameEntry, k.Delete, k.MoveUp, k.MoveDown, k.Copy,
	}
}

type layoutKeys struct {
	Next        key.Binding
	Prev        key.Binding
	Descend     key.Binding
	Ascend      key.Binding
	Insert      key.Binding
	Remove      key.Binding
	Orientation key.Binding
	Border      key.Binding
	SizeMode    key.Binding
	Grow        key.Binding
	Shrink      key.Binding
	Content     key.Binding
	Unbind      key.Binding
	Rename      key.Binding
	MoveUp      key.Binding
	MoveDown    key.Binding
	Done        key.Binding
}

func defaultLayoutKeys() layoutKeys {
	return layoutKeys{
		Next:        key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "next sibling")),
		Prev:        key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "previous sibling")),
		Descend:     key.NewBinding(key.WithKeys("l", "right", "enter"), key.WithHelp("l/→", "first child")),
		Ascend:      key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "parent")),
		Insert:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add child")),
		Remove:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove node")),
		Orientation: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "orientation")),
		Border:      key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "border")),
		SizeMode:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "flex/length")),
		Grow:        key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "grow")),
		Shrink:      key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "shrink")),
		Content:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "next section")),
		Unbind:      key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "unbind section")),
		Rename:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename node")),
		MoveUp:      key.NewBinding(key.WithKeys("K"), key.WithHelp("K", "move up")),
		MoveDown:    key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "move down")),
		Done:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "done")),
	}
}

func (k layoutKeys) bindings() []key.Binding {
	return []key.Binding{
		k.Next, k.Prev, k.Descend, k.Ascend, k.Insert, k.Remove, k.Orientation, k.Border,
		k.SizeMode, k.Grow, k.Shrink, k.Content, k.Unbind, k.Rename, k.MoveUp, k.MoveDown, k.Done,
	}
}

type editorKeys struct {
	Done key.Binding
}

func defaultEditorKeys() editorKeys {
	return editorKeys{
		Done: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "stop editing")),
	}
}
