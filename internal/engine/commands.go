package engine

import (
	"time"

	"github.com/arkadyv/bellhop/internal/domain"
)

// Command is the closed set of state transitions the engine accepts.
// Every caller — CLI, TUI, MCP, scheduler — funnels through Apply, which
// keeps the core testable with no presentation layer attached.
type Command interface {
	isCommand()
}

// CreateTimer starts a countdown of Hours/Minutes/Seconds.
type CreateTimer struct {
	Name        string
	Description string
	Sound       domain.SoundProfile
	Hours       int
	Minutes     int
	Seconds     int
}

// CreateReminder schedules an alarm at an absolute instant.
type CreateReminder struct {
	Name        string
	Description string
	Sound       domain.SoundProfile
	At          time.Time
}

// CreatePomodoro starts a work/break cycle.
type CreatePomodoro struct {
	Name        string
	Description string
	Sound       domain.SoundProfile
	Config      domain.PomodoroConfig
}

// Dismiss resolves the active alarm.
type Dismiss struct{}

// Snooze re-arms the active alarm Minutes into the future.
type Snooze struct {
	Minutes int
}

// Repeat re-runs a duration-based session under a fresh id.
type Repeat struct {
	ID int64
}

// Remove deletes a session outright.
type Remove struct {
	ID int64
}

// ClearHistory empties the completed-session log.
type ClearHistory struct{}

// Tick is one scheduler pass at the given instant.
type Tick struct {
	Now time.Time
}

func (CreateTimer) isCommand()    {}
func (CreateReminder) isCommand() {}
func (CreatePomodoro) isCommand() {}
func (Dismiss) isCommand()        {}
func (Snooze) isCommand()         {}
func (Repeat) isCommand()         {}
func (Remove) isCommand()         {}
func (ClearHistory) isCommand()   {}
func (Tick) isCommand()           {}
