// Package tui provides the terminal watch interface implementation
// using the Bubbletea framework.
package tui

import (
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/arkadyv/bellhop/internal/engine"
)

// tickMsg is sent once per second to refresh countdowns.
type tickMsg time.Time

// refreshMsg is sent by the engine when state changes outside the TUI,
// for example when the scheduler fires an alarm.
type refreshMsg struct{}

// Model represents the watch view state.
type Model struct {
	eng      *engine.Engine
	progress progress.Model
	width    int
	height   int

	// snoozeMode captures a minute count before rescheduling the
	// active alarm.
	snoozeMode  bool
	snoozeInput textinput.Model

	lastError error
}

// NewModel creates a new watch model bound to the engine.
func NewModel(eng *engine.Engine) Model {
	in := textinput.New()
	in.Placeholder = "minutes"
	in.CharLimit = 4
	in.Width = 8
	return Model{
		eng:         eng,
		progress:    progress.New(progress.WithDefaultGradient()),
		snoozeInput: in,
	}
}

// Init starts the per-second tick.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.snoozeMode {
		return m.updateSnoozeInput(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(msg.Width-8, 40)

	case tickMsg:
		// The scheduler loop owns due-detection; this tick only
		// repaints the countdowns.
		return m, tickCmd()

	case refreshMsg:
		// State already changed inside the engine, a render is enough.

	case tea.KeyMsg:
		m.lastError = nil
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "d":
			if m.eng.ActiveAlarm() != nil {
				_, m.lastError = m.eng.Apply(engine.Dismiss{})
			}
		case "s":
			if m.eng.ActiveAlarm() != nil {
				m.snoozeMode = true
				m.snoozeInput.SetValue("")
				return m, m.snoozeInput.Focus()
			}
		}
	}

	var cmd tea.Cmd
	newProgress, cmd := m.progress.Update(msg)
	if p, ok := newProgress.(progress.Model); ok {
		m.progress = p
	}
	return m, cmd
}

// updateSnoozeInput handles input while capturing a snooze delay.
// An empty value falls back to the configured default.
func (m Model) updateSnoozeInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, tickCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.snoozeMode = false
			m.snoozeInput.Blur()
			return m, nil
		case "enter":
			minutes := 0
			if v := m.snoozeInput.Value(); v != "" {
				n, err := strconv.Atoi(v)
				if err != nil || n <= 0 {
					return m, nil
				}
				minutes = n
			}
			m.snoozeMode = false
			m.snoozeInput.Blur()
			_, m.lastError = m.eng.Apply(engine.Snooze{Minutes: minutes})
			return m, nil
		case "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	var cmd tea.Cmd
	m.snoozeInput, cmd = m.snoozeInput.Update(msg)
	return m, cmd
}
