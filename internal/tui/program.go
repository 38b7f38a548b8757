package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/undefinedpatient/glyph/internal/core/logging"
	"github.com/undefinedpatient/glyph/internal/ui"
)

// Program adapts an Application to the bubbletea loop. Each message is
// translated into one event, handled synchronously and followed by a render.
type Program struct {
	app *Application
	log zerolog.Logger
}

var _ tea.Model = (*Program)(nil)

// NewProgram wraps app.
func NewProgram(app *Application) *Program {
	return &Program{app: app, log: logging.Component("tui")}
}

// Init implements tea.Model.
func (p *Program) Init() tea.Cmd { return nil }

// Event translates a bubbletea message. ok is false for messages the node
// tree does not receive.
func Event(msg tea.Msg) (ui.Event, bool) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		return ui.FromTea(m), true
	case tea.WindowSizeMsg:
		return ui.ResizeEvent{W: m.Width, H: m.Height}, true
	case tea.MouseMsg:
		if m.Action != tea.MouseActionPress {
			return nil, false
		}
		switch m.Button {
		case tea.MouseButtonLeft:
			return ui.ClickEvent{X: m.X, Y: m.Y}, true
		case tea.MouseButtonWheelUp:
			return ui.ScrollEvent{X: m.X, Y: m.Y, DY: -1}, true
		case tea.MouseButtonWheelDown:
			return ui.ScrollEvent{X: m.X, Y: m.Y, DY: 1}, true
		case tea.MouseButtonWheelLeft:
			return ui.ScrollEvent{X: m.X, Y: m.Y, DX: -1}, true
		case tea.MouseButtonWheelRight:
			return ui.ScrollEvent{X: m.X, Y: m.Y, DX: 1}, true
		}
	}
	return nil, false
}

// Update implements tea.Model. ctrl+c always quits. Handler errors are
// logged and shown in the status line; the loop keeps running.
func (p *Program) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyCtrlC {
		return p, tea.Quit
	}

	ev, ok := Event(msg)
	if !ok {
		return p, nil
	}

	if _, err := p.app.Handle(ev); err != nil {
		p.log.Error().Err(err).Msg("event handling failed")
		p.app.Report(err)
	}
	if p.app.Quitting() {
		return p, tea.Quit
	}
	return p, nil
}

// View implements tea.Model.
func (p *Program) View() string {
	return p.app.View()
}

// Run starts the terminal loop on the alternate screen and blocks until the
// application quits or ctx is cancelled.
func Run(ctx context.Context, app *Application) error {
	prog := tea.NewProgram(NewProgram(app),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
