// Package timeformat renders durations and instants for display.
package timeformat

import (
	"fmt"
	"strings"
	"time"
)

// Countdown formats a remaining duration as HH:MM:SS, prefixed with weeks
// and days when the span is long enough. Negative values floor at zero.
func Countdown(d time.Duration) string {
	if d <= 0 {
		return "00:00:00"
	}

	totalSeconds := int64(d / time.Second)
	seconds := totalSeconds % 60
	totalMinutes := totalSeconds / 60
	minutes := totalMinutes % 60
	totalHours := totalMinutes / 60
	hours := totalHours % 24
	totalDays := totalHours / 24
	days := totalDays % 7
	weeks := totalDays / 7

	clock := fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	switch {
	case weeks > 0:
		return fmt.Sprintf("%dw %dd %s", weeks, days, clock)
	case totalDays > 0:
		return fmt.Sprintf("%dd %s", totalDays, clock)
	default:
		return clock
	}
}

// Ago renders how long before now an instant was: "3d ago", "2h ago",
// "5m ago", or "Just now" under a minute.
func Ago(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff >= 24*time.Hour:
		return fmt.Sprintf("%dd ago", int64(diff/(24*time.Hour)))
	case diff >= time.Hour:
		return fmt.Sprintf("%dh ago", int64(diff/time.Hour))
	case diff >= time.Minute:
		return fmt.Sprintf("%dm ago", int64(diff/time.Minute))
	default:
		return "Just now"
	}
}

// TimerLabel renders an hours/minutes/seconds tuple compactly: "1h 30m",
// "45s", "0s" for the zero tuple.
func TimerLabel(hours, minutes, seconds int) string {
	var parts []string
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	if seconds > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%ds", seconds))
	}
	return strings.Join(parts, " ")
}

// Stamp renders an absolute instant for listings.
func Stamp(t time.Time) string {
	return t.Format("Jan 2 15:04")
}
