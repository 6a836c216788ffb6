package cmd

import (
	"testing"
	"time"
)

func TestParseTimerArg(t *testing.T) {
	tests := []struct {
		arg  string
		want time.Duration
	}{
		{"25", 25 * time.Minute},
		{"90s", 90 * time.Second},
		{"1h30m", time.Hour + 30*time.Minute},
	}
	for _, tt := range tests {
		got, err := parseTimerArg(tt.arg)
		if err != nil {
			t.Errorf("parseTimerArg(%q) error = %v", tt.arg, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseTimerArg(%q) = %v, want %v", tt.arg, got, tt.want)
		}
	}

	if _, err := parseTimerArg("soon"); err == nil {
		t.Error("parseTimerArg(\"soon\") error = nil")
	}
}

func TestParseRemindArgs(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	// A future time today stays on today.
	at, err := parseRemindArgs([]string{"17:30"}, now)
	if err != nil {
		t.Fatalf("parseRemindArgs() error = %v", err)
	}
	want := time.Date(2026, 8, 29, 17, 30, 0, 0, time.UTC)
	if !at.Equal(want) {
		t.Errorf("at = %v, want %v", at, want)
	}

	// A time already passed today rolls to tomorrow.
	at, err = parseRemindArgs([]string{"09:00"}, now)
	if err != nil {
		t.Fatalf("parseRemindArgs() error = %v", err)
	}
	want = time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	if !at.Equal(want) {
		t.Errorf("at = %v, want %v", at, want)
	}

	// An explicit date is taken as given, even in the past; validation
	// happens in the engine.
	at, err = parseRemindArgs([]string{"09:00", "2026-09-15"}, now)
	if err != nil {
		t.Fatalf("parseRemindArgs() error = %v", err)
	}
	want = time.Date(2026, 9, 15, 9, 0, 0, 0, time.UTC)
	if !at.Equal(want) {
		t.Errorf("at = %v, want %v", at, want)
	}

	if _, err := parseRemindArgs([]string{"noonish"}, now); err == nil {
		t.Error("parseRemindArgs(invalid time) error = nil")
	}
	if _, err := parseRemindArgs([]string{"09:00", "someday"}, now); err == nil {
		t.Error("parseRemindArgs(invalid date) error = nil")
	}
}
