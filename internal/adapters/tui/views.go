package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/arkadyv/bellhop/internal/domain"
	"github.com/arkadyv/bellhop/internal/timeformat"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).MarginBottom(1)
	nameStyle      = lipgloss.NewStyle().Bold(true)
	kindStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	countdownStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	alarmStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	statStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	cardStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 2)
)

// View renders the watch screen.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var sections []string
	sections = append(sections, titleStyle.Render("🔔 Bellhop"))

	if active := m.eng.ActiveAlarm(); active != nil {
		sections = m.viewAlarm(sections, active)
	} else {
		sections = m.viewSessions(sections)
	}

	if m.lastError != nil {
		sections = append(sections, "", errStyle.Render(m.lastError.Error()))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// viewAlarm renders the ringing overlay with dismiss and snooze actions.
func (m Model) viewAlarm(sections []string, s *domain.Session) []string {
	sections = append(sections, alarmStyle.Render(fmt.Sprintf("⏰ %s", s.Name)))
	if s.Description != "" {
		sections = append(sections, kindStyle.Render(s.Description))
	}
	sections = append(sections, kindStyle.Render(domain.KindLabel(s.Kind)))
	if s.SnoozeCount > 0 {
		sections = append(sections, kindStyle.Render(fmt.Sprintf("Snoozed %d times", s.SnoozeCount)))
	}
	if pending := m.eng.PendingAlarms(); pending > 0 {
		sections = append(sections, kindStyle.Render(fmt.Sprintf("%d more waiting", pending)))
	}

	sections = append(sections, "")
	if m.snoozeMode {
		sections = append(sections, "Snooze for how long? (empty = default)")
		sections = append(sections, m.snoozeInput.View())
		sections = append(sections, helpStyle.Render("[enter] snooze  [esc] cancel"))
	} else {
		sections = append(sections, helpStyle.Render("[d]ismiss  [s]nooze  [q]uit"))
	}
	return sections
}

// viewSessions renders the countdown list, soonest first.
func (m Model) viewSessions(sections []string) []string {
	sessions := m.eng.Sessions()
	now := m.eng.Now()

	if len(sessions) == 0 {
		sections = append(sections, kindStyle.Render("No sessions scheduled"))
		sections = append(sections, "")
		sections = append(sections, helpStyle.Render("[q]uit"))
		return sections
	}

	for _, s := range sessions {
		sections = append(sections, m.renderSession(s, now))
	}
	sections = append(sections, "")
	sections = append(sections, helpStyle.Render("[q]uit"))
	return sections
}

// renderSession draws a single session card. Pomodoro cards include
// phase progress and cycle stats.
func (m Model) renderSession(s *domain.Session, now time.Time) string {
	var lines []string

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		nameStyle.Render(s.Name),
		kindStyle.Render("  "+domain.KindLabel(s.Kind)),
	)
	lines = append(lines, header)
	lines = append(lines, countdownStyle.Render(timeformat.Countdown(s.Remaining(now))))

	if p := s.Pomodoro; p != nil {
		lines = append(lines, statStyle.Render(domain.PhaseLabel(p.Phase)))
		lines = append(lines, statStyle.Render(fmt.Sprintf(
			"Session %d/%d · Cycle %d/%d · %d done",
			p.CurrentSession, p.SessionsPerCycle,
			p.CurrentCycle, p.TotalCycles,
			p.CompletedSessions,
		)))
		lines = append(lines, m.progress.ViewAs(phaseProgress(s, now)))
	} else {
		lines = append(lines, kindStyle.Render("at "+timeformat.Stamp(s.TargetTime)))
	}

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// phaseProgress returns elapsed fraction of the current phase in [0,1].
func phaseProgress(s *domain.Session, now time.Time) float64 {
	p := s.Pomodoro
	var total time.Duration
	switch p.Phase {
	case domain.PhaseWork:
		total = p.WorkDuration
	case domain.PhaseBreak:
		total = p.BreakDuration
	case domain.PhaseLongBreak:
		total = p.LongBreakDuration
	}
	if total <= 0 {
		return 0
	}
	frac := 1 - float64(s.Remaining(now))/float64(total)
	if frac < 0 {
		return 0
	}
	if frac > 1 {
		return 1
	}
	return frac
}
