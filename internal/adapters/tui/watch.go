package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/arkadyv/bellhop/internal/engine"
)

// Watch runs the full-screen watch view and blocks until the user quits
// or the context is cancelled. Engine-side state changes (alarms fired
// by the scheduler, MCP mutations) repaint through the render hook.
func Watch(ctx context.Context, eng *engine.Engine) error {
	program := tea.NewProgram(
		NewModel(eng),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	eng.SetRender(func() {
		program.Send(refreshMsg{})
	})
	defer eng.SetRender(nil)

	if _, err := program.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
