package config

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if !cfg.FirstRun {
		t.Error("FirstRun = false, want true")
	}
	if cfg.Sound.DefaultType != "school" {
		t.Errorf("Sound.DefaultType = %q, want %q", cfg.Sound.DefaultType, "school")
	}
	if cfg.Sound.DefaultVolume != 0.25 {
		t.Errorf("Sound.DefaultVolume = %v, want 0.25", cfg.Sound.DefaultVolume)
	}
	if cfg.Snooze.DefaultMinutes != 5 {
		t.Errorf("Snooze.DefaultMinutes = %d, want 5", cfg.Snooze.DefaultMinutes)
	}
	if cfg.Notifications.Permission != PermissionDefault {
		t.Errorf("Notifications.Permission = %v, want %v", cfg.Notifications.Permission, PermissionDefault)
	}
	if cfg.DailyTimes.MorningOffset != 96 || cfg.DailyTimes.PrepOffset != 510 || cfg.DailyTimes.EveOffset != 720 {
		t.Errorf("DailyTimes offsets = %d/%d/%d, want 96/510/720",
			cfg.DailyTimes.MorningOffset, cfg.DailyTimes.PrepOffset, cfg.DailyTimes.EveOffset)
	}
}
