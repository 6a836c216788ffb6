package store

import (
	"errors"
	"testing"
	"time"

	"github.com/arkadyv/bellhop/internal/adapters/storage"
	"github.com/arkadyv/bellhop/internal/domain"
	"github.com/arkadyv/bellhop/internal/ports"
)

var testNow = time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) (*Store, ports.StateStore) {
	t.Helper()
	state, err := storage.NewMemory()
	if err != nil {
		t.Fatalf("storage.NewMemory() error = %v", err)
	}
	t.Cleanup(func() { state.Close() })
	return New(state), state
}

func TestCreateTimer(t *testing.T) {
	s, _ := newTestStore(t)

	session, err := s.CreateTimer("Tea", "", domain.DefaultSoundProfile(), 3*time.Minute, testNow)
	if err != nil {
		t.Fatalf("CreateTimer() error = %v", err)
	}
	if session.ID != 1 {
		t.Errorf("ID = %d, want 1", session.ID)
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestCreateTimer_InvalidDurationRollsBackID(t *testing.T) {
	s, _ := newTestStore(t)

	if _, err := s.CreateTimer("", "", domain.DefaultSoundProfile(), 0, testNow); !errors.Is(err, domain.ErrZeroDuration) {
		t.Fatalf("CreateTimer(0) error = %v, want ErrZeroDuration", err)
	}

	session, err := s.CreateTimer("", "", domain.DefaultSoundProfile(), time.Minute, testNow)
	if err != nil {
		t.Fatalf("CreateTimer() error = %v", err)
	}
	if session.ID != 1 {
		t.Errorf("ID after failed create = %d, want 1", session.ID)
	}
}

func TestIDsNeverReused(t *testing.T) {
	s, _ := newTestStore(t)

	first, _ := s.CreateTimer("", "", domain.DefaultSoundProfile(), time.Minute, testNow)
	s.Remove(first.ID)

	second, _ := s.CreateTimer("", "", domain.DefaultSoundProfile(), time.Minute, testNow)
	if second.ID == first.ID {
		t.Errorf("ID %d reused after removal", first.ID)
	}
}

func TestRemove_AbsentIsNoop(t *testing.T) {
	s, _ := newTestStore(t)
	s.Remove(42) // must not panic
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
}

func TestReschedule(t *testing.T) {
	s, _ := newTestStore(t)
	session, _ := s.CreateTimer("", "", domain.DefaultSoundProfile(), time.Minute, testNow)
	session.Triggered = true

	target := testNow.Add(10 * time.Minute)
	if err := s.Reschedule(session.ID, target); err != nil {
		t.Fatalf("Reschedule() error = %v", err)
	}

	if session.Triggered {
		t.Error("Triggered not reset")
	}
	if session.SnoozeCount != 1 {
		t.Errorf("SnoozeCount = %d, want 1", session.SnoozeCount)
	}
	if !session.TargetTime.Equal(target) {
		t.Errorf("TargetTime = %v, want %v", session.TargetTime, target)
	}

	if err := s.Reschedule(999, target); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("Reschedule(absent) error = %v, want ErrSessionNotFound", err)
	}
}

func TestRepeat(t *testing.T) {
	s, _ := newTestStore(t)
	src, _ := s.CreateTimer("Tea", "green", domain.DefaultSoundProfile(), 3*time.Minute, testNow)
	src.Triggered = true

	later := testNow.Add(time.Hour)
	fresh, err := s.Repeat(src.ID, later)
	if err != nil {
		t.Fatalf("Repeat() error = %v", err)
	}

	if fresh.ID == src.ID {
		t.Error("repeated session reused the id")
	}
	if fresh.Triggered {
		t.Error("repeated session starts triggered")
	}
	if !fresh.TargetTime.Equal(later.Add(3 * time.Minute)) {
		t.Errorf("TargetTime = %v, want %v", fresh.TargetTime, later.Add(3*time.Minute))
	}
	if fresh.Name != "Tea" || fresh.Description != "green" {
		t.Errorf("Name/Description = %q/%q, want Tea/green", fresh.Name, fresh.Description)
	}
}

func TestRepeat_PomodoroResetsState(t *testing.T) {
	s, _ := newTestStore(t)
	cfg := domain.PomodoroConfig{SessionsPerCycle: 2, TotalCycles: 2}
	src := s.CreatePomodoro("", "", domain.DefaultSoundProfile(), cfg, testNow)
	src.Pomodoro.Phase = domain.PhaseLongBreak
	src.Pomodoro.CompletedSessions = 3
	src.Pomodoro.CurrentCycle = 2

	fresh, err := s.Repeat(src.ID, testNow.Add(time.Hour))
	if err != nil {
		t.Fatalf("Repeat() error = %v", err)
	}

	p := fresh.Pomodoro
	if p.Phase != domain.PhaseWork {
		t.Errorf("Phase = %v, want %v", p.Phase, domain.PhaseWork)
	}
	if p.CompletedSessions != 0 || p.CurrentSession != 1 || p.CurrentCycle != 1 {
		t.Errorf("state = %d/%d/%d, want 0/1/1", p.CompletedSessions, p.CurrentSession, p.CurrentCycle)
	}
	if p.SessionsPerCycle != 2 || p.TotalCycles != 2 {
		t.Errorf("config not carried over: %d/%d", p.SessionsPerCycle, p.TotalCycles)
	}
}

func TestRepeat_ReminderRejected(t *testing.T) {
	s, _ := newTestStore(t)
	src, _ := s.CreateReminder("", "", domain.DefaultSoundProfile(), testNow.Add(time.Hour), testNow)

	if _, err := s.Repeat(src.ID, testNow); !errors.Is(err, domain.ErrNotRepeatable) {
		t.Errorf("Repeat(reminder) error = %v, want ErrNotRepeatable", err)
	}
}

func TestAll_SortedByTargetTime(t *testing.T) {
	s, _ := newTestStore(t)
	s.CreateTimer("later", "", domain.DefaultSoundProfile(), time.Hour, testNow)
	s.CreateTimer("sooner", "", domain.DefaultSoundProfile(), time.Minute, testNow)

	all := s.All()
	if all[0].Name != "sooner" {
		t.Errorf("All()[0].Name = %q, want %q", all[0].Name, "sooner")
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s, state := newTestStore(t)
	s.CreateTimer("Tea", "", domain.DefaultSoundProfile(), 3*time.Minute, testNow)
	s.CreateReminder("Dentist", "", domain.DefaultSoundProfile(), testNow.Add(time.Hour), testNow)
	pomo := s.CreatePomodoro("Focus", "", domain.DefaultSoundProfile(), domain.PomodoroConfig{}, testNow)
	pomo.Pomodoro.CompletedSessions = 2
	s.Save()

	reloaded := New(state)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if reloaded.Len() != 3 {
		t.Fatalf("Len after reload = %d, want 3", reloaded.Len())
	}

	tea := reloaded.Get(1)
	if tea == nil || tea.Name != "Tea" {
		t.Fatalf("session 1 = %+v, want Tea", tea)
	}
	if tea.OriginalDuration != 3*time.Minute {
		t.Errorf("OriginalDuration = %v, want 3m", tea.OriginalDuration)
	}
	if !tea.TargetTime.Equal(testNow.Add(3 * time.Minute)) {
		t.Errorf("TargetTime = %v, want %v", tea.TargetTime, testNow.Add(3*time.Minute))
	}

	focus := reloaded.Get(3)
	if focus == nil || focus.Pomodoro == nil {
		t.Fatal("pomodoro session lost state")
	}
	if focus.Pomodoro.CompletedSessions != 2 {
		t.Errorf("CompletedSessions = %d, want 2", focus.Pomodoro.CompletedSessions)
	}
}

func TestLoad_DropsTriggeredSessions(t *testing.T) {
	s, state := newTestStore(t)
	kept, _ := s.CreateTimer("kept", "", domain.DefaultSoundProfile(), time.Hour, testNow)
	dropped, _ := s.CreateTimer("dropped", "", domain.DefaultSoundProfile(), time.Minute, testNow)
	dropped.Triggered = true
	s.Save()

	reloaded := New(state)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if reloaded.Len() != 1 {
		t.Fatalf("Len = %d, want 1", reloaded.Len())
	}
	if reloaded.Get(kept.ID) == nil {
		t.Error("untriggered session lost")
	}
	if reloaded.Get(dropped.ID) != nil {
		t.Error("triggered session survived reload")
	}
}

func TestLoad_RestoresIDCounter(t *testing.T) {
	s, state := newTestStore(t)
	s.CreateTimer("", "", domain.DefaultSoundProfile(), time.Minute, testNow)
	s.CreateTimer("", "", domain.DefaultSoundProfile(), time.Minute, testNow)
	s.Save()

	reloaded := New(state)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	fresh, _ := reloaded.CreateTimer("", "", domain.DefaultSoundProfile(), time.Minute, testNow)
	if fresh.ID != 3 {
		t.Errorf("ID after reload = %d, want 3", fresh.ID)
	}
}

func TestHistoryRoundTrip(t *testing.T) {
	s, state := newTestStore(t)

	l := domain.NewHistoryLog(nil)
	l.Append(domain.HistoryEntry{ID: 1, Name: "Dentist", Kind: domain.KindReminder, CompletedAt: testNow})
	s.SaveHistory(l)

	reloaded := New(state)
	got, err := reloaded.LoadHistory()
	if err != nil {
		t.Fatalf("LoadHistory() error = %v", err)
	}
	entries := got.All()
	if len(entries) != 1 || entries[0].Name != "Dentist" {
		t.Fatalf("entries = %+v, want one Dentist entry", entries)
	}
	if !entries[0].CompletedAt.Equal(testNow) {
		t.Errorf("CompletedAt = %v, want %v", entries[0].CompletedAt, testNow)
	}
}

func TestPresetRoundTrip(t *testing.T) {
	s, state := newTestStore(t)

	l := domain.NewPresetList(nil)
	l.Add(domain.TimerPreset{Minutes: 25})
	l.Add(domain.TimerPreset{Hours: 1})
	s.SavePresets(l)

	reloaded := New(state)
	got, err := reloaded.LoadPresets()
	if err != nil {
		t.Fatalf("LoadPresets() error = %v", err)
	}
	presets := got.All()
	if len(presets) != 2 {
		t.Fatalf("len = %d, want 2", len(presets))
	}
	if presets[0].Hours != 1 {
		t.Errorf("presets[0].Hours = %d, want 1 (newest first)", presets[0].Hours)
	}
}

func TestCustomSoundLifecycle(t *testing.T) {
	s, _ := newTestStore(t)
	session, _ := s.CreateTimer("", "", domain.DefaultSoundProfile(), time.Minute, testNow)

	payload := []byte{0x52, 0x49, 0x46, 0x46}
	if err := s.PutSound(session.ID, "ding.wav", payload); err != nil {
		t.Fatalf("PutSound() error = %v", err)
	}

	if session.Sound.Type != domain.SoundCustom {
		t.Errorf("Sound.Type = %v, want %v", session.Sound.Type, domain.SoundCustom)
	}
	if session.Sound.CustomKey == "" {
		t.Fatal("CustomKey empty after PutSound")
	}

	got := s.GetSound(session)
	if string(got) != string(payload) {
		t.Errorf("GetSound() = %v, want %v", got, payload)
	}

	s.DeleteSound(session)
	if got := s.GetSound(session); got != nil {
		t.Errorf("GetSound() after delete = %v, want nil", got)
	}
}

func TestPutSound_AbsentSession(t *testing.T) {
	s, _ := newTestStore(t)
	if err := s.PutSound(7, "x.wav", nil); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("PutSound(absent) error = %v, want ErrSessionNotFound", err)
	}
}
