package domain

import "time"

// MaxHistoryEntries bounds the completed-session log; oldest entries drop.
const MaxHistoryEntries = 50

// HistoryEntry is a snapshot of a completed reminder or pomodoro.
// Timers never reach history.
type HistoryEntry struct {
	ID          int64
	Name        string
	Kind        Kind
	SetTime     time.Time
	CompletedAt time.Time

	// Pomodoro-only stats.
	CompletedSessions int
	TotalCycles       int
	SessionsPerCycle  int
}

// NewHistoryEntry derives an entry from a completed session. ok is false
// for kinds excluded from history.
func NewHistoryEntry(s *Session, now time.Time) (HistoryEntry, bool) {
	if s.Kind != KindReminder && s.Kind != KindPomodoro {
		return HistoryEntry{}, false
	}
	e := HistoryEntry{
		ID:          s.ID,
		Name:        s.Name,
		Kind:        s.Kind,
		SetTime:     s.TargetTime,
		CompletedAt: now,
	}
	if s.Kind == KindPomodoro && s.Pomodoro != nil {
		e.CompletedSessions = s.Pomodoro.CompletedSessions
		e.TotalCycles = s.Pomodoro.TotalCycles
		e.SessionsPerCycle = s.Pomodoro.SessionsPerCycle
	}
	return e, true
}

// HistoryLog is a bounded, newest-first log of completed sessions.
type HistoryLog struct {
	entries []HistoryEntry
}

// NewHistoryLog builds a log seeded with existing entries, newest first.
func NewHistoryLog(entries []HistoryEntry) *HistoryLog {
	if len(entries) > MaxHistoryEntries {
		entries = entries[:MaxHistoryEntries]
	}
	return &HistoryLog{entries: append([]HistoryEntry(nil), entries...)}
}

// Append prepends an entry and truncates to the bound.
func (l *HistoryLog) Append(e HistoryEntry) {
	l.entries = append([]HistoryEntry{e}, l.entries...)
	if len(l.entries) > MaxHistoryEntries {
		l.entries = l.entries[:MaxHistoryEntries]
	}
}

// Clear empties the log.
func (l *HistoryLog) Clear() {
	l.entries = nil
}

// All returns the entries newest-first.
func (l *HistoryLog) All() []HistoryEntry {
	return append([]HistoryEntry(nil), l.entries...)
}

// Len returns the number of entries.
func (l *HistoryLog) Len() int {
	return len(l.entries)
}
