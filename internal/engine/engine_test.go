package engine

import (
	"bytes"
	"encoding/binary"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/arkadyv/bellhop/internal/adapters/storage"
	"github.com/arkadyv/bellhop/internal/alarm"
	"github.com/arkadyv/bellhop/internal/domain"
	"github.com/arkadyv/bellhop/internal/store"
)

var testNow = time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
	return c.t
}

type fakeAudio struct {
	mu    sync.Mutex
	plays int
}

func (f *fakeAudio) Play(kind domain.SoundType, volume float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.plays++
	return nil
}

func (f *fakeAudio) PlayClip(payload []byte, volume float64) error { return nil }

type fakeNotifier struct {
	mu     sync.Mutex
	bodies []string
}

func (f *fakeNotifier) Send(title, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bodies = append(f.bodies, body)
	return nil
}

func (f *fakeNotifier) sent() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.bodies...)
}

func newTestEngine(t *testing.T) (*Engine, *fakeClock, *fakeNotifier) {
	t.Helper()
	state, err := storage.NewMemory()
	if err != nil {
		t.Fatalf("storage.NewMemory() error = %v", err)
	}
	t.Cleanup(func() { state.Close() })

	clock := &fakeClock{t: testNow}
	notifier := &fakeNotifier{}
	eng := New(Config{
		Clock:    clock,
		Store:    store.New(state),
		Audio:    &fakeAudio{},
		Notifier: notifier,
	})
	return eng, clock, notifier
}

func TestCreateTimer_ZeroDurationRejected(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	if _, err := eng.Apply(CreateTimer{}); !errors.Is(err, domain.ErrZeroDuration) {
		t.Errorf("Apply(0/0/0) error = %v, want ErrZeroDuration", err)
	}
	if len(eng.Sessions()) != 0 {
		t.Error("rejected timer entered the store")
	}
}

func TestCreateTimer_OneSecondAccepted(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	s, err := eng.Apply(CreateTimer{Seconds: 1})
	if err != nil {
		t.Fatalf("Apply(0/0/1) error = %v", err)
	}
	if !s.TargetTime.Equal(testNow.Add(time.Second)) {
		t.Errorf("TargetTime = %v, want %v", s.TargetTime, testNow.Add(time.Second))
	}
}

func TestCreateTimer_RecordsPreset(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	if _, err := eng.Apply(CreateTimer{Minutes: 25}); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	presets := eng.Presets()
	if len(presets) != 1 {
		t.Fatalf("presets = %d, want 1", len(presets))
	}
	if presets[0].Minutes != 25 {
		t.Errorf("preset = %+v, want 25 minutes", presets[0])
	}
}

func TestCreateReminder_AtNowRejected(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	if _, err := eng.Apply(CreateReminder{At: testNow}); !errors.Is(err, domain.ErrPastTarget) {
		t.Errorf("Apply(reminder at now) error = %v, want ErrPastTarget", err)
	}
}

func TestTick_FiresDueTimerOnce(t *testing.T) {
	eng, clock, notifier := newTestEngine(t)
	s, err := eng.Apply(CreateTimer{Minutes: 1, Name: "Tea"})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	eng.TickAt(clock.Now())
	if eng.ActiveAlarm() != nil {
		t.Fatal("alarm fired before the target time")
	}

	due := clock.Advance(time.Minute)
	eng.TickAt(due)
	if eng.ActiveAlarm() == nil {
		t.Fatal("alarm did not fire at the target time")
	}
	if !s.Triggered {
		t.Error("fired session not marked triggered")
	}

	// Further ticks must not re-fire the same session.
	eng.TickAt(clock.Advance(time.Second))
	eng.TickAt(clock.Advance(time.Second))
	if eng.PendingAlarms() != 0 {
		t.Errorf("PendingAlarms = %d, want 0 (no double fire)", eng.PendingAlarms())
	}
	if got := len(notifier.sent()); got != 1 {
		t.Errorf("notifications = %d, want 1", got)
	}
}

func TestSnoozeSevenMinutes(t *testing.T) {
	eng, clock, _ := newTestEngine(t)
	s, _ := eng.Apply(CreateTimer{Minutes: 1})

	fired := clock.Advance(time.Minute)
	eng.TickAt(fired)
	if eng.ActiveAlarm() == nil {
		t.Fatal("alarm did not fire")
	}

	if _, err := eng.Apply(Snooze{Minutes: 7}); err != nil {
		t.Fatalf("Snooze error = %v", err)
	}
	if eng.ActiveAlarm() != nil {
		t.Error("alarm still active after snooze")
	}
	if !s.TargetTime.Equal(fired.Add(7 * time.Minute)) {
		t.Errorf("TargetTime = %v, want %v", s.TargetTime, fired.Add(7*time.Minute))
	}
	if s.Triggered {
		t.Error("snoozed session still triggered")
	}

	// It rings again when the snooze elapses.
	eng.TickAt(clock.Advance(7 * time.Minute))
	if eng.ActiveAlarm() != s {
		t.Error("snoozed session did not re-fire")
	}
}

func TestDismissWithoutAlarm(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	if _, err := eng.Apply(Dismiss{}); !errors.Is(err, domain.ErrNoActiveAlarm) {
		t.Errorf("Dismiss error = %v, want ErrNoActiveAlarm", err)
	}
	if _, err := eng.Apply(Snooze{Minutes: 5}); !errors.Is(err, domain.ErrNoActiveAlarm) {
		t.Errorf("Snooze error = %v, want ErrNoActiveAlarm", err)
	}
}

func TestDismissedReminderEntersHistory(t *testing.T) {
	eng, clock, _ := newTestEngine(t)
	eng.Apply(CreateReminder{Name: "Dentist", At: testNow.Add(time.Hour)})

	eng.TickAt(clock.Advance(time.Hour))
	if eng.ActiveAlarm() == nil {
		t.Fatal("reminder did not fire")
	}
	if _, err := eng.Apply(Dismiss{}); err != nil {
		t.Fatalf("Dismiss error = %v", err)
	}

	history := eng.History()
	if len(history) != 1 || history[0].Name != "Dentist" {
		t.Fatalf("history = %+v, want one Dentist entry", history)
	}
	if len(eng.Sessions()) != 0 {
		t.Error("dismissed reminder still scheduled")
	}
}

// Driving a 2-sessions, 2-cycles pomodoro to completion over ticks
// removes the session and leaves exactly one history entry with the
// final stats.
func TestPomodoroRunsToCompletion(t *testing.T) {
	eng, clock, notifier := newTestEngine(t)
	s, err := eng.Apply(CreatePomodoro{
		Name: "Focus",
		Config: domain.PomodoroConfig{
			WorkDuration:      10 * time.Minute,
			BreakDuration:     2 * time.Minute,
			LongBreakDuration: 5 * time.Minute,
			SessionsPerCycle:  2,
			TotalCycles:       2,
		},
	})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	// Tick until the session resolves; each phase ends at its target.
	for i := 0; i < 16 && len(eng.Sessions()) > 0; i++ {
		next := s.TargetTime
		if d := next.Sub(clock.Now()); d > 0 {
			clock.Advance(d)
		}
		eng.TickAt(clock.Now())
		if eng.ActiveAlarm() != nil {
			t.Fatal("pomodoro phase change went through the alarm slot")
		}
	}

	if len(eng.Sessions()) != 0 {
		t.Fatal("pomodoro never completed")
	}

	history := eng.History()
	if len(history) != 1 {
		t.Fatalf("history entries = %d, want 1", len(history))
	}
	entry := history[0]
	if entry.CompletedSessions != 4 {
		t.Errorf("CompletedSessions = %d, want 4", entry.CompletedSessions)
	}
	if entry.TotalCycles != 2 {
		t.Errorf("TotalCycles = %d, want 2", entry.TotalCycles)
	}

	bodies := notifier.sent()
	if len(bodies) == 0 || bodies[len(bodies)-1] != "Focus - Pomodoro complete" {
		t.Errorf("last notification = %v, want completion message", bodies)
	}
}

func TestAutoTimeoutResolvesAlarm(t *testing.T) {
	eng, clock, _ := newTestEngine(t)
	eng.Apply(CreateTimer{Minutes: 1})

	eng.TickAt(clock.Advance(time.Minute))
	if eng.ActiveAlarm() == nil {
		t.Fatal("alarm did not fire")
	}

	eng.TickAt(clock.Advance(alarm.AutoTimeout))
	if eng.ActiveAlarm() != nil {
		t.Error("alarm survived the auto-timeout")
	}
	if len(eng.Sessions()) != 0 {
		t.Error("timed-out session still scheduled")
	}
}

func TestConcurrentDueAlarmsQueue(t *testing.T) {
	eng, clock, _ := newTestEngine(t)
	first, _ := eng.Apply(CreateTimer{Minutes: 1, Name: "first"})
	second, _ := eng.Apply(CreateTimer{Minutes: 1, Name: "second"})

	eng.TickAt(clock.Advance(time.Minute))

	if eng.ActiveAlarm() != first {
		t.Errorf("active = %v, want first", eng.ActiveAlarm())
	}
	if eng.PendingAlarms() != 1 {
		t.Fatalf("PendingAlarms = %d, want 1", eng.PendingAlarms())
	}

	if _, err := eng.Apply(Dismiss{}); err != nil {
		t.Fatalf("Dismiss error = %v", err)
	}
	if eng.ActiveAlarm() != second {
		t.Error("second alarm not promoted after dismiss")
	}
}

func TestRemoveSession(t *testing.T) {
	eng, _, _ := newTestEngine(t)
	s, _ := eng.Apply(CreateTimer{Minutes: 1})

	eng.Apply(Remove{ID: s.ID})
	if len(eng.Sessions()) != 0 {
		t.Error("removed session still scheduled")
	}

	// Removing an absent id is a no-op.
	if _, err := eng.Apply(Remove{ID: 99}); err != nil {
		t.Errorf("Remove(absent) error = %v, want nil", err)
	}
}

func TestClearHistory(t *testing.T) {
	eng, clock, _ := newTestEngine(t)
	eng.Apply(CreateReminder{At: testNow.Add(time.Minute)})
	eng.TickAt(clock.Advance(time.Minute))
	eng.Apply(Dismiss{})

	if len(eng.History()) != 1 {
		t.Fatalf("history = %d, want 1", len(eng.History()))
	}
	eng.Apply(ClearHistory{})
	if len(eng.History()) != 0 {
		t.Error("history survived ClearHistory")
	}
}

// wavPayload builds a minimal decodable WAV file with n 16-bit samples.
func wavPayload(n int) []byte {
	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+n*2))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	buf.Write(make([]byte, 16))
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(n*2))
	buf.Write(make([]byte, n*2))
	return buf.Bytes()
}

func TestAttachSound_RejectsUndecodablePayload(t *testing.T) {
	eng, _, _ := newTestEngine(t)
	s, _ := eng.Apply(CreateTimer{Minutes: 5})

	err := eng.AttachSound(s.ID, "song.mp3", []byte("not a wav"))
	if !errors.Is(err, domain.ErrSoundDecode) {
		t.Fatalf("AttachSound(bad payload) error = %v, want ErrSoundDecode", err)
	}
	if s.Sound.Type == domain.SoundCustom {
		t.Error("sound type switched to custom for a rejected payload")
	}
	if s.Sound.CustomKey != "" || s.Sound.CustomName != "" {
		t.Errorf("custom sound fields set after rejection: key=%q name=%q",
			s.Sound.CustomKey, s.Sound.CustomName)
	}
}

func TestAttachSound_AcceptsWAVPayload(t *testing.T) {
	eng, _, _ := newTestEngine(t)
	s, _ := eng.Apply(CreateTimer{Minutes: 5})

	if err := eng.AttachSound(s.ID, "chime.wav", wavPayload(8)); err != nil {
		t.Fatalf("AttachSound(wav) error = %v", err)
	}
	if s.Sound.Type != domain.SoundCustom {
		t.Errorf("Sound.Type = %v, want %v", s.Sound.Type, domain.SoundCustom)
	}
	if s.Sound.CustomKey == "" {
		t.Error("no indirection key attached for accepted payload")
	}
	if s.Sound.CustomName != "chime.wav" {
		t.Errorf("Sound.CustomName = %q, want chime.wav", s.Sound.CustomName)
	}
}

func TestRenderRunsAfterDueDetection(t *testing.T) {
	eng, clock, _ := newTestEngine(t)
	eng.Apply(CreateTimer{Seconds: 30})

	var sawAlarm bool
	eng.SetRender(func() {
		sawAlarm = eng.ActiveAlarm() != nil
	})

	eng.TickAt(clock.Advance(30 * time.Second))
	if !sawAlarm {
		t.Error("render callback observed stale state")
	}
}
