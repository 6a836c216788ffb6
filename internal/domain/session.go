package domain

import (
	"time"
)

// Kind discriminates the three session variants.
type Kind string

const (
	KindTimer    Kind = "timer"
	KindReminder Kind = "reminder"
	KindPomodoro Kind = "pomodoro"
)

// SoundType selects one of the built-in alarm sounds, or a user-supplied clip.
type SoundType string

const (
	SoundLight  SoundType = "light"
	SoundStrong SoundType = "strong"
	SoundSchool SoundType = "school"
	SoundSiren  SoundType = "siren"
	SoundCustom SoundType = "custom"
)

// ValidSoundType reports whether s names a known sound.
func ValidSoundType(s SoundType) bool {
	switch s {
	case SoundLight, SoundStrong, SoundSchool, SoundSiren, SoundCustom:
		return true
	}
	return false
}

// SoundProfile describes how a session's alarm should sound.
// Custom clips are not embedded here; CustomKey is an indirection key into
// the payload store so session records stay small.
type SoundProfile struct {
	Type       SoundType
	Volume     float64
	CustomKey  string
	CustomName string
}

// DefaultSoundProfile returns the profile used when the user picks nothing.
func DefaultSoundProfile() SoundProfile {
	return SoundProfile{Type: SoundSchool, Volume: 0.25}
}

// Session is a live timer, reminder, or pomodoro cycle.
//
// TargetTime is always the absolute instant of the next pending event,
// never a duration. Triggered flips to true exactly once per due instant
// and is reset only by snooze or a pomodoro phase advance.
type Session struct {
	ID               int64
	Kind             Kind
	Name             string
	Description      string
	TargetTime       time.Time
	OriginalDuration time.Duration // zero unless created from a duration
	Sound            SoundProfile
	Triggered        bool
	SnoozeCount      int
	CreatedAt        time.Time

	// Pomodoro is set only for KindPomodoro sessions.
	Pomodoro *PomodoroState
}

// defaultNames maps each kind to the name used when the user leaves it blank.
var defaultNames = map[Kind]string{
	KindTimer:    "Timer",
	KindReminder: "Reminder",
	KindPomodoro: "Pomodoro",
}

// DefaultName returns the fallback display name for a kind.
func DefaultName(k Kind) string {
	return defaultNames[k]
}

func normalizeSound(sound SoundProfile) SoundProfile {
	if !ValidSoundType(sound.Type) {
		sound.Type = SoundSchool
	}
	if sound.Volume <= 0 || sound.Volume > 1 {
		sound.Volume = 0.25
	}
	return sound
}

// NewTimer builds a countdown session due after the given duration.
// The duration must be strictly positive.
func NewTimer(id int64, name, description string, sound SoundProfile, d time.Duration, now time.Time) (*Session, error) {
	if d <= 0 {
		return nil, ErrZeroDuration
	}
	if name == "" {
		name = DefaultName(KindTimer)
	}
	return &Session{
		ID:               id,
		Kind:             KindTimer,
		Name:             name,
		Description:      description,
		TargetTime:       now.Add(d),
		OriginalDuration: d,
		Sound:            normalizeSound(sound),
		CreatedAt:        now,
	}, nil
}

// NewReminder builds a session due at an absolute instant, which must be
// strictly in the future.
func NewReminder(id int64, name, description string, sound SoundProfile, at, now time.Time) (*Session, error) {
	if !at.After(now) {
		return nil, ErrPastTarget
	}
	if name == "" {
		name = DefaultName(KindReminder)
	}
	return &Session{
		ID:          id,
		Kind:        KindReminder,
		Name:        name,
		Description: description,
		TargetTime:  at,
		Sound:       normalizeSound(sound),
		CreatedAt:   now,
	}, nil
}

// Remaining returns the time until the session is due, floored at zero.
func (s *Session) Remaining(now time.Time) time.Duration {
	r := s.TargetTime.Sub(now)
	if r < 0 {
		return 0
	}
	return r
}

// Due reports whether the session should fire at now.
func (s *Session) Due(now time.Time) bool {
	return !s.Triggered && !s.TargetTime.After(now)
}

// Snooze re-arms the session at now plus the given delay.
func (s *Session) Snooze(d time.Duration, now time.Time) {
	s.TargetTime = now.Add(d)
	s.Triggered = false
	s.SnoozeCount++
}

// Repeatable reports whether the session can be re-run from its original
// duration.
func (s *Session) Repeatable() bool {
	return s.OriginalDuration > 0
}

// KindLabel returns a human-readable label for the session kind.
func KindLabel(k Kind) string {
	switch k {
	case KindTimer:
		return "Timer"
	case KindReminder:
		return "Reminder"
	case KindPomodoro:
		return "Pomodoro"
	default:
		return "Unknown"
	}
}
