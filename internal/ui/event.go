package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Event is input delivered to the node tree.
type Event interface {
	isEvent()
}

// Key identifies a key. KeyRune keys carry their character in KeyEvent.Rune.
type Key uint8

const (
	KeyUnknown Key = iota
	KeyRune
	KeyEnter
	KeyEsc
	KeyTab
	KeyBackTab
	KeyBackspace
	KeyDelete
	KeySpace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPgUp
	KeyPgDown
)

var keyNames = map[Key]string{
	KeyEnter:     "enter",
	KeyEsc:       "esc",
	KeyTab:       "tab",
	KeyBackTab:   "shift+tab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeySpace:     " ",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPgUp:      "pgup",
	KeyPgDown:    "pgdown",
}

// Modifiers is a set of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
)

// Has reports whether every modifier in m is held.
func (mods Modifiers) Has(m Modifiers) bool { return mods&m == m }

// Phase distinguishes presses from releases and auto repeats. Only presses
// carry meaning; the other phases are delivered so nodes can ignore them.
type Phase uint8

const (
	PhasePress Phase = iota
	PhaseRelease
	PhaseRepeat
)

// KeyEvent is one key transition.
type KeyEvent struct {
	Code  Key
	Rune  rune
	Mods  Modifiers
	Phase Phase
}

func (KeyEvent) isEvent() {}

// Press builds a press event for a named key.
func Press(code Key) KeyEvent { return KeyEvent{Code: code} }

// PressRune builds a press event for a character.
func PressRune(r rune) KeyEvent { return KeyEvent{Code: KeyRune, Rune: r} }

// PressCtrl builds a press event for ctrl plus a character.
func PressCtrl(r rune) KeyEvent { return KeyEvent{Code: KeyRune, Rune: r, Mods: ModCtrl} }

// Pressed reports whether the event is a key press.
func (k KeyEvent) Pressed() bool { return k.Phase == PhasePress }

// String returns the key in the notation used by key bindings, e.g.
// "ctrl+s", "alt+x", "enter" or "J".
func (k KeyEvent) String() string {
	var base string
	switch k.Code {
	case KeyRune:
		base = string(k.Rune)
	case KeyUnknown:
		return ""
	default:
		base = keyNames[k.Code]
	}

	var sb strings.Builder
	if k.Mods.Has(ModCtrl) {
		sb.WriteString("ctrl+")
	}
	if k.Mods.Has(ModAlt) {
		sb.WriteString("alt+")
	}
	sb.WriteString(base)
	return sb.String()
}

// ClickEvent is a primary button press at a screen cell.
type ClickEvent struct {
	X, Y int
}

func (ClickEvent) isEvent() {}

// ScrollEvent is a wheel movement at a screen cell. DY is negative for up.
type ScrollEvent struct {
	X, Y   int
	DX, DY int
}

func (ScrollEvent) isEvent() {}

// ResizeEvent reports new terminal dimensions.
type ResizeEvent struct {
	W, H int
}

func (ResizeEvent) isEvent() {}

var fromTeaType = map[tea.KeyType]Key{
	tea.KeyEnter:     KeyEnter,
	tea.KeyEsc:       KeyEsc,
	tea.KeyTab:       KeyTab,
	tea.KeyShiftTab:  KeyBackTab,
	tea.KeyBackspace: KeyBackspace,
	tea.KeyDelete:    KeyDelete,
	tea.KeySpace:     KeySpace,
	tea.KeyUp:        KeyUp,
	tea.KeyDown:      KeyDown,
	tea.KeyLeft:      KeyLeft,
	tea.KeyRight:     KeyRight,
	tea.KeyHome:      KeyHome,
	tea.KeyEnd:       KeyEnd,
	tea.KeyPgUp:      KeyPgUp,
	tea.KeyPgDown:    KeyPgDown,
}

// FromTea converts a bubbletea key message. Terminals report presses only,
// so the result is always a press.
func FromTea(msg tea.KeyMsg) KeyEvent {
	var ev KeyEvent
	if msg.Alt {
		ev.Mods |= ModAlt
	}

	if code, ok := fromTeaType[msg.Type]; ok {
		ev.Code = code
		if code == KeySpace {
			ev.Rune = ' '
		}
		return ev
	}

	switch {
	case msg.Type == tea.KeyRunes && len(msg.Runes) > 0:
		ev.Code, ev.Rune = KeyRune, msg.Runes[0]
	case msg.Type >= tea.KeyCtrlA && msg.Type <= tea.KeyCtrlZ:
		ev.Code, ev.Rune = KeyRune, 'a'+rune(msg.Type-tea.KeyCtrlA)
		ev.Mods |= ModCtrl
	}
	return ev
}

// ToTea converts a key event back into a bubbletea message so it can be fed
// to bubbles components. The second result is false for non-press events and
// keys bubbletea cannot express.
func ToTea(k KeyEvent) (tea.KeyMsg, bool) {
	if !k.Pressed() {
		return tea.KeyMsg{}, false
	}
	msg := tea.KeyMsg{Alt: k.Mods.Has(ModAlt)}

	switch k.Code {
	case KeyUnknown:
		return msg, false
	case KeyRune:
		if k.Mods.Has(ModCtrl) {
			if k.Rune < 'a' || k.Rune > 'z' {
				return msg, false
			}
			msg.Type = tea.KeyCtrlA + tea.KeyType(k.Rune-'a')
			return msg, true
		}
		msg.Type, msg.Runes = tea.KeyRunes, []rune{k.Rune}
		return msg, true
	case KeySpace:
		msg.Type, msg.Runes = tea.KeySpace, []rune{' '}
		return msg, true
	}

	for t, code := range fromTeaType {
		if code == k.Code {
			msg.Type = t
			return msg, true
		}
	}
	return msg, false
}
