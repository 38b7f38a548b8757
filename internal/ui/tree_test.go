package ui

import (
	"github.com/undefinedpatient/glyph/internal/core/layout"
)

// tagged is a test intent whose tag is chosen per value.
type tagged struct {
	tag Tag
	id  int
}

func (t tagged) Tag() Tag { return t.tag }

type testLeaf struct {
	Focus
	emit   []Intent
	events []Event
	err    error
}

func (l *testLeaf) Render(*Canvas, layout.Rect, Hint) {}

func (l *testLeaf) Handle(ev Event) ([]Intent, error) {
	l.events = append(l.events, ev)
	return l.emit, l.err
}

type testBox struct {
	Focus
	group    *FocusGroup
	router   *Router
	consumed []Intent
}

func newTestBox(children ...Node) *testBox {
	return &testBox{group: NewFocusGroup(children...), router: NewRouter()}
}

// owns makes the box consume intents tagged tag.
func (b *testBox) owns(tag Tag) *testBox {
	b.router.Handle(tag, func(it Intent) ([]Intent, error) {
		b.consumed = append(b.consumed, it)
		return nil, nil
	})
	return b
}

func (b *testBox) Render(*Canvas, layout.Rect, Hint) {}
func (b *testBox) Children() []Node                   { return b.group.Nodes() }
func (b *testBox) FocusedChild() Node                 { return b.group.Focused() }

func (b *testBox) Handle(ev Event) ([]Intent, error) {
	return Dispatch(b.FocusedChild(), ev, b.router)
}

var _ Container = (*testBox)(nil)
