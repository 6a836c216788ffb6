package domain

import "time"

// Phase is the current pomodoro interval type.
type Phase string

const (
	PhaseWork      Phase = "work"
	PhaseBreak     Phase = "break"
	PhaseLongBreak Phase = "longBreak"
)

// PomodoroState carries the cycle bookkeeping for a pomodoro session.
// Invariants while the session is live:
// 1 <= CurrentSession <= SessionsPerCycle and 1 <= CurrentCycle <= TotalCycles.
type PomodoroState struct {
	Phase             Phase
	WorkDuration      time.Duration
	BreakDuration     time.Duration
	LongBreakDuration time.Duration
	SessionsPerCycle  int
	TotalCycles       int
	CurrentSession    int
	CurrentCycle      int
	CompletedSessions int
}

// PomodoroConfig is the user-facing session shape before defaulting.
type PomodoroConfig struct {
	WorkDuration      time.Duration
	BreakDuration     time.Duration
	LongBreakDuration time.Duration
	SessionsPerCycle  int
	TotalCycles       int
}

// DefaultPomodoroConfig returns the standard 25/5/15 configuration with
// four sessions per cycle and a single cycle.
func DefaultPomodoroConfig() PomodoroConfig {
	return PomodoroConfig{
		WorkDuration:      25 * time.Minute,
		BreakDuration:     5 * time.Minute,
		LongBreakDuration: 15 * time.Minute,
		SessionsPerCycle:  4,
		TotalCycles:       1,
	}
}

// withDefaults replaces unset or non-positive values with the standard ones.
func (c PomodoroConfig) withDefaults() PomodoroConfig {
	d := DefaultPomodoroConfig()
	if c.WorkDuration <= 0 {
		c.WorkDuration = d.WorkDuration
	}
	if c.BreakDuration <= 0 {
		c.BreakDuration = d.BreakDuration
	}
	if c.LongBreakDuration <= 0 {
		c.LongBreakDuration = d.LongBreakDuration
	}
	if c.SessionsPerCycle <= 0 {
		c.SessionsPerCycle = d.SessionsPerCycle
	}
	if c.TotalCycles <= 0 {
		c.TotalCycles = d.TotalCycles
	}
	return c
}

// NewPomodoro builds a pomodoro session starting in its first work phase.
func NewPomodoro(id int64, name, description string, sound SoundProfile, cfg PomodoroConfig, now time.Time) *Session {
	cfg = cfg.withDefaults()
	if name == "" {
		name = DefaultName(KindPomodoro)
	}
	return &Session{
		ID:               id,
		Kind:             KindPomodoro,
		Name:             name,
		Description:      description,
		TargetTime:       now.Add(cfg.WorkDuration),
		OriginalDuration: cfg.WorkDuration,
		Sound:            normalizeSound(sound),
		CreatedAt:        now,
		Pomodoro: &PomodoroState{
			Phase:             PhaseWork,
			WorkDuration:      cfg.WorkDuration,
			BreakDuration:     cfg.BreakDuration,
			LongBreakDuration: cfg.LongBreakDuration,
			SessionsPerCycle:  cfg.SessionsPerCycle,
			TotalCycles:       cfg.TotalCycles,
			CurrentSession:    1,
			CurrentCycle:      1,
		},
	}
}

// PhaseChange describes the result of advancing a pomodoro session.
type PhaseChange struct {
	Phase    Phase
	Terminal bool
}

// AdvancePhase moves a due pomodoro session to its next phase.
//
// Work -> Break (or LongBreak on the last session of a cycle),
// Break -> Work, LongBreak -> Work of the next cycle. When the long break
// of the final cycle ends the change is terminal: the caller removes the
// session and records its history entry. On every non-terminal transition
// the session re-arms (Triggered reset, TargetTime moved forward).
func (s *Session) AdvancePhase(now time.Time) PhaseChange {
	p := s.Pomodoro

	switch p.Phase {
	case PhaseWork:
		p.CompletedSessions++
		if p.CurrentSession >= p.SessionsPerCycle {
			p.Phase = PhaseLongBreak
			s.TargetTime = now.Add(p.LongBreakDuration)
		} else {
			p.Phase = PhaseBreak
			s.TargetTime = now.Add(p.BreakDuration)
		}

	case PhaseBreak:
		p.CurrentSession++
		p.Phase = PhaseWork
		s.TargetTime = now.Add(p.WorkDuration)

	case PhaseLongBreak:
		p.CurrentCycle++
		if p.CurrentCycle > p.TotalCycles {
			return PhaseChange{Phase: p.Phase, Terminal: true}
		}
		p.CurrentSession = 1
		p.Phase = PhaseWork
		s.TargetTime = now.Add(p.WorkDuration)
	}

	s.Triggered = false
	return PhaseChange{Phase: p.Phase}
}

// PhaseLabel returns a human-readable label for a phase.
func PhaseLabel(p Phase) string {
	switch p {
	case PhaseWork:
		return "Work Session"
	case PhaseBreak:
		return "Break"
	case PhaseLongBreak:
		return "Long Break"
	default:
		return "Unknown"
	}
}
