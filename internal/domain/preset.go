package domain

import "time"

// MaxRecentTimers bounds the quick-reuse preset list.
const MaxRecentTimers = 8

// TimerPreset is an hours/minutes/seconds tuple remembered for reuse.
type TimerPreset struct {
	Hours   int
	Minutes int
	Seconds int
}

// Duration returns the preset's total duration.
func (p TimerPreset) Duration() time.Duration {
	return time.Duration(p.Hours)*time.Hour +
		time.Duration(p.Minutes)*time.Minute +
		time.Duration(p.Seconds)*time.Second
}

// PresetList keeps the most recent timer presets, newest first,
// deduplicated by exact value.
type PresetList struct {
	presets []TimerPreset
}

// NewPresetList builds a list seeded with existing presets, newest first.
func NewPresetList(presets []TimerPreset) *PresetList {
	if len(presets) > MaxRecentTimers {
		presets = presets[:MaxRecentTimers]
	}
	return &PresetList{presets: append([]TimerPreset(nil), presets...)}
}

// Add records a preset. Re-adding an existing value moves it to the front
// instead of duplicating it; the list stays bounded.
func (l *PresetList) Add(p TimerPreset) {
	kept := l.presets[:0]
	for _, existing := range l.presets {
		if existing != p {
			kept = append(kept, existing)
		}
	}
	l.presets = append([]TimerPreset{p}, kept...)
	if len(l.presets) > MaxRecentTimers {
		l.presets = l.presets[:MaxRecentTimers]
	}
}

// All returns the presets newest-first.
func (l *PresetList) All() []TimerPreset {
	return append([]TimerPreset(nil), l.presets...)
}
