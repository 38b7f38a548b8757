package ui

import (
	"slices"

	"github.com/charmbracelet/bubbles/key"
)

// Matches reports whether ev is a key press bound by any enabled binding.
func Matches(ev Event, bindings ...key.Binding) bool {
	k, ok := ev.(KeyEvent)
	if !ok || !k.Pressed() {
		return false
	}
	s := k.String()
	for _, b := range bindings {
		if b.Enabled() && slices.Contains(b.Keys(), s) {
			return true
		}
	}
	return false
}

// KeyMap is implemented by nodes that advertise their bindings in the help
// dialog.
type KeyMap interface {
	Bindings() []key.Binding
}

// KeyPress extracts a key press from ev. Releases and repeats report false.
func KeyPress(ev Event) (KeyEvent, bool) {
	k, ok := ev.(KeyEvent)
	if !ok || !k.Pressed() {
		return KeyEvent{}, false
	}
	return k, true
}
