package domain

import (
	"testing"
	"time"
)

func TestTimerPresetDuration(t *testing.T) {
	p := TimerPreset{Hours: 1, Minutes: 30, Seconds: 15}
	want := time.Hour + 30*time.Minute + 15*time.Second
	if got := p.Duration(); got != want {
		t.Errorf("Duration() = %v, want %v", got, want)
	}
}

func TestPresetList_AddMovesToFront(t *testing.T) {
	l := NewPresetList(nil)
	l.Add(TimerPreset{Minutes: 5})
	l.Add(TimerPreset{Minutes: 10})
	l.Add(TimerPreset{Minutes: 5}) // duplicate of first

	presets := l.All()
	if len(presets) != 2 {
		t.Fatalf("len = %d, want 2 (duplicate kept)", len(presets))
	}
	if presets[0].Minutes != 5 {
		t.Errorf("presets[0].Minutes = %d, want 5", presets[0].Minutes)
	}
	if presets[1].Minutes != 10 {
		t.Errorf("presets[1].Minutes = %d, want 10", presets[1].Minutes)
	}
}

func TestPresetList_Bounded(t *testing.T) {
	l := NewPresetList(nil)
	for i := 1; i <= MaxRecentTimers+2; i++ {
		l.Add(TimerPreset{Minutes: i})
	}

	presets := l.All()
	if len(presets) != MaxRecentTimers {
		t.Fatalf("len = %d, want %d", len(presets), MaxRecentTimers)
	}
	if presets[0].Minutes != MaxRecentTimers+2 {
		t.Errorf("presets[0].Minutes = %d, want %d", presets[0].Minutes, MaxRecentTimers+2)
	}
}

func TestPresetList_DistinctComponentsNotDeduped(t *testing.T) {
	// 1m30s and 90s are different presets even though the durations match.
	l := NewPresetList(nil)
	l.Add(TimerPreset{Minutes: 1, Seconds: 30})
	l.Add(TimerPreset{Seconds: 90})

	if len(l.All()) != 2 {
		t.Errorf("len = %d, want 2", len(l.All()))
	}
}
