package timeformat

import (
	"testing"
	"time"
)

func TestCountdown(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00"},
		{-time.Minute, "00:00:00"},
		{time.Second, "00:00:01"},
		{90 * time.Second, "00:01:30"},
		{time.Hour + 5*time.Minute + 3*time.Second, "01:05:03"},
		{25 * time.Hour, "1d 01:00:00"},
		{8 * 24 * time.Hour, "1w 1d 00:00:00"},
		{15 * 24 * time.Hour, "2w 1d 00:00:00"},
	}
	for _, tt := range tests {
		if got := Countdown(tt.d); got != tt.want {
			t.Errorf("Countdown(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestAgo(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		t    time.Time
		want string
	}{
		{now.Add(-10 * time.Second), "Just now"},
		{now.Add(-5 * time.Minute), "5m ago"},
		{now.Add(-2 * time.Hour), "2h ago"},
		{now.Add(-72 * time.Hour), "3d ago"},
	}
	for _, tt := range tests {
		if got := Ago(tt.t, now); got != tt.want {
			t.Errorf("Ago(%v) = %q, want %q", tt.t, got, tt.want)
		}
	}
}

func TestTimerLabel(t *testing.T) {
	tests := []struct {
		h, m, s int
		want    string
	}{
		{0, 0, 0, "0s"},
		{0, 0, 45, "45s"},
		{0, 25, 0, "25m"},
		{1, 30, 0, "1h 30m"},
		{2, 0, 5, "2h 5s"},
	}
	for _, tt := range tests {
		if got := TimerLabel(tt.h, tt.m, tt.s); got != tt.want {
			t.Errorf("TimerLabel(%d, %d, %d) = %q, want %q", tt.h, tt.m, tt.s, got, tt.want)
		}
	}
}

func TestStamp(t *testing.T) {
	at := time.Date(2026, 8, 29, 17, 30, 0, 0, time.UTC)
	if got := Stamp(at); got != "Aug 29 17:30" {
		t.Errorf("Stamp() = %q, want %q", got, "Aug 29 17:30")
	}
}
