// Package tui is the interactive interface: an application root holding a
// stack of pages, each page a tree of ui nodes over one shared document.
package tui

import (
	"context"
	"errors"

	"github.com/atotto/clipboard"
	"github.com/rs/zerolog"

	"github.com/undefinedpatient/glyph/internal/core/layout"
	"github.com/undefinedpatient/glyph/internal/core/logging"
	"github.com/undefinedpatient/glyph/internal/core/styles"
	"github.com/undefinedpatient/glyph/internal/glyph"
	"github.com/undefinedpatient/glyph/internal/ui"
)

const maxRootRounds = 8

// Activator is implemented by pages that refresh when they become the top
// page again.
type Activator interface {
	Activate() error
}

// Options configures an Application.
type Options struct {
	// Clipboard writes text to the system clipboard. Defaults to
	// clipboard.WriteAll.
	Clipboard func(string) error
}

// Application is the root of the node tree. It owns the page stack and
// consumes the intents no page handled.
type Application struct {
	ui.Focus
	pages     []ui.Node
	status    StatusLine
	router    *ui.Router
	theme     styles.Theme
	clipboard func(string) error
	quitting  bool
	w, h      int
	log       zerolog.Logger
}

var _ ui.Container = (*Application)(nil)

// New creates an application showing the entry list.
func New(ctx context.Context, app *glyph.App, opts Options) (*Application, error) {
	home, err := NewHomePage(ctx, app)
	if err != nil {
		return nil, err
	}
	return NewApplication(home, app.Theme, opts), nil
}

// NewApplication creates an application with root as its first page.
func NewApplication(root ui.Node, theme styles.Theme, opts Options) *Application {
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}

	a := &Application{
		router:    ui.NewRouter(),
		theme:     theme,
		clipboard: opts.Clipboard,
		log:       logging.Component("tui"),
	}
	a.SetFocused(true)
	a.push(root)

	ui.On(a.router, func(ui.Quit) ([]ui.Intent, error) {
		a.quitting = true
		return nil, nil
	})
	ui.On(a.router, func(it ui.PushPage) ([]ui.Intent, error) {
		a.push(it.Page)
		return nil, nil
	})
	ui.On(a.router, func(ui.PopPage) ([]ui.Intent, error) {
		return nil, a.pop()
	})
	ui.On(a.router, func(it ui.Notify) ([]ui.Intent, error) {
		a.status.Set(it)
		return nil, nil
	})
	ui.On(a.router, func(it ui.CopyText) ([]ui.Intent, error) {
		if err := a.clipboard(it.Text); err != nil {
			return nil, err
		}
		return []ui.Intent{ui.Info("copied to clipboard")}, nil
	})
	return a
}

func (a *Application) push(p ui.Node) {
	if p == nil {
		return
	}
	if top := a.Top(); top != nil {
		top.SetFocused(false)
	}
	p.SetFocused(true)
	a.pages = append(a.pages, p)
}

// pop closes the top page. Closing the last page quits.
func (a *Application) pop() error {
	if len(a.pages) == 0 {
		return nil
	}
	a.pages[len(a.pages)-1].SetFocused(false)
	a.pages = a.pages[:len(a.pages)-1]

	top := a.Top()
	if top == nil {
		a.quitting = true
		return nil
	}
	top.SetFocused(true)
	if act, ok := top.(Activator); ok {
		return act.Activate()
	}
	return nil
}

// Top returns the visible page.
func (a *Application) Top() ui.Node {
	if len(a.pages) == 0 {
		return nil
	}
	return a.pages[len(a.pages)-1]
}

// Pages returns the page stack, bottom first.
func (a *Application) Pages() []ui.Node { return a.pages }

// Children implements ui.Container.
func (a *Application) Children() []ui.Node { return a.pages }

// FocusedChild implements ui.Container.
func (a *Application) FocusedChild() ui.Node { return a.Top() }

// Quitting reports whether a Quit intent was consumed or the last page closed.
func (a *Application) Quitting() bool { return a.quitting }

// Status returns the status line.
func (a *Application) Status() *StatusLine { return &a.status }

// Report shows err in the status line.
func (a *Application) Report(err error) {
	if err != nil {
		a.status.Set(ui.Failure(err))
	}
}

// Handle delivers ev to the top page and resolves what bubbles out. Intents
// nobody consumes are logged and dropped. The error of the page, or of the
// first failing handler, is returned after the intents that preceded it were
// resolved.
func (a *Application) Handle(ev ui.Event) ([]ui.Intent, error) {
	switch e := ev.(type) {
	case ui.ResizeEvent:
		a.w, a.h = e.W, e.H
		return nil, nil
	case ui.KeyEvent:
		if e.Pressed() {
			a.status.Clear()
		}
	}

	top := a.Top()
	if top == nil {
		return nil, nil
	}

	intents, herr := top.Handle(ev)
	return nil, errors.Join(herr, a.resolve(intents))
}

// resolve routes intents at the root. Follow-ups the root owns, such as the
// notification a clipboard copy produces, are routed again, up to
// maxRootRounds times.
func (a *Application) resolve(intents []ui.Intent) error {
	for range maxRootRounds {
		if len(intents) == 0 {
			return nil
		}
		rest, err := a.router.Route(intents)
		if err != nil {
			return err
		}

		intents = intents[:0:0]
		for _, it := range rest {
			if a.router.Owns(it.Tag()) {
				intents = append(intents, it)
				continue
			}
			a.log.Debug().Str("tag", string(it.Tag())).Msg("intent reached the root unhandled")
		}
	}
	if len(intents) > 0 {
		a.log.Warn().Int("intents", len(intents)).Msg("dropping intents after too many rounds")
	}
	return nil
}

// Size returns the last reported terminal size.
func (a *Application) Size() (w, h int) { return a.w, a.h }

// Render draws the top page above a one row status line.
func (a *Application) Render(c *ui.Canvas, area layout.Rect, hint ui.Hint) {
	if area.Empty() {
		return
	}
	page := layout.Rect{X: area.X, Y: area.Y, W: area.W, H: area.H - 1}
	if top := a.Top(); top != nil {
		top.Render(c, page, ui.HintFocused)
	}
	a.status.Render(c, layout.Rect{X: area.X, Y: area.Bottom() - 1, W: area.W, H: 1}, Breadcrumb(ui.FocusPath(a)))
}

// View renders the whole screen.
func (a *Application) View() string {
	if a.w <= 0 || a.h <= 0 {
		return ""
	}
	c := ui.NewCanvas(a.w, a.h, a.theme)
	a.Render(c, c.Bounds(), ui.HintFocused)
	return c.String()
}

// Title names the application in the status line.
func (a *Application) Title() string { return "glyph" }
