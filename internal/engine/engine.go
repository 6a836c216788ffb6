// Package engine is the session lifecycle core: it applies commands to
// the store, drives due-detection on each tick, and dispatches due
// sessions to the alarm controller or the pomodoro state machine.
package engine

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/arkadyv/bellhop/internal/adapters/sound"
	"github.com/arkadyv/bellhop/internal/alarm"
	"github.com/arkadyv/bellhop/internal/domain"
	"github.com/arkadyv/bellhop/internal/ports"
	"github.com/arkadyv/bellhop/internal/store"
)

// Engine holds the full application state. One mutex serializes the
// scheduler goroutine, the TUI, and MCP callers; all mutation is
// synchronous under it, so the state model matches a single-threaded
// event loop.
type Engine struct {
	mu sync.Mutex

	clock    ports.Clock
	store    *store.Store
	history  *domain.HistoryLog
	presets  *domain.PresetList
	alarm    *alarm.Controller
	audio    ports.AudioEffect
	notifier ports.Notifier

	// render runs after due-detection on every tick, never before.
	render func()
}

// Config carries the engine's collaborators.
type Config struct {
	Clock    ports.Clock
	Store    *store.Store
	History  *domain.HistoryLog
	Presets  *domain.PresetList
	Audio    ports.AudioEffect
	Notifier ports.Notifier
}

// New builds an engine. Nil history/presets start empty; a nil clock
// falls back to the system clock.
func New(cfg Config) *Engine {
	if cfg.Clock == nil {
		cfg.Clock = ports.SystemClock{}
	}
	if cfg.History == nil {
		cfg.History = domain.NewHistoryLog(nil)
	}
	if cfg.Presets == nil {
		cfg.Presets = domain.NewPresetList(nil)
	}
	return &Engine{
		clock:    cfg.Clock,
		store:    cfg.Store,
		history:  cfg.History,
		presets:  cfg.Presets,
		alarm:    alarm.NewController(cfg.Store, cfg.History, cfg.Audio, cfg.Notifier),
		audio:    cfg.Audio,
		notifier: cfg.Notifier,
	}
}

// SetRender installs the per-tick render callback.
func (e *Engine) SetRender(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.render = fn
}

// SetSnoozeDefault sets the fallback snooze delay.
func (e *Engine) SetSnoozeDefault(d time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.alarm.SetSnoozeDefault(d)
}

// Apply executes a command. The returned session is non-nil for the
// create and repeat commands.
func (e *Engine) Apply(cmd Command) (*domain.Session, error) {
	switch c := cmd.(type) {
	case CreateTimer:
		return e.CreateTimer(c)
	case CreateReminder:
		return e.CreateReminder(c)
	case CreatePomodoro:
		return e.CreatePomodoro(c)
	case Dismiss:
		return nil, e.Dismiss()
	case Snooze:
		return nil, e.Snooze(c.Minutes)
	case Repeat:
		return e.Repeat(c.ID)
	case Remove:
		e.Remove(c.ID)
		return nil, nil
	case ClearHistory:
		e.ClearHistory()
		return nil, nil
	case Tick:
		if c.Now.IsZero() {
			e.Tick()
		} else {
			e.TickAt(c.Now)
		}
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown command %T", cmd)
	}
}

// CreateTimer validates and starts a countdown, recording its preset for
// quick reuse.
func (e *Engine) CreateTimer(c CreateTimer) (*domain.Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	d := time.Duration(c.Hours)*time.Hour +
		time.Duration(c.Minutes)*time.Minute +
		time.Duration(c.Seconds)*time.Second
	s, err := e.store.CreateTimer(c.Name, c.Description, c.Sound, d, e.clock.Now())
	if err != nil {
		return nil, err
	}
	e.presets.Add(domain.TimerPreset{Hours: c.Hours, Minutes: c.Minutes, Seconds: c.Seconds})
	e.store.SavePresets(e.presets)
	e.store.Save()
	return s, nil
}

// CreateReminder validates and schedules a date-time alarm.
func (e *Engine) CreateReminder(c CreateReminder) (*domain.Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.store.CreateReminder(c.Name, c.Description, c.Sound, c.At, e.clock.Now())
	if err != nil {
		return nil, err
	}
	e.store.Save()
	return s, nil
}

// CreatePomodoro starts a work/break cycle.
func (e *Engine) CreatePomodoro(c CreatePomodoro) (*domain.Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.store.CreatePomodoro(c.Name, c.Description, c.Sound, c.Config, e.clock.Now())
	e.store.Save()
	return s, nil
}

// AttachSound stores a custom sound payload for a session. A payload
// that does not decode is rejected here, before anything is stored, so
// the session keeps its built-in sound.
func (e *Engine) AttachSound(id int64, name string, payload []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := sound.ExtractPCM(payload); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSoundDecode, err)
	}
	if err := e.store.PutSound(id, name, payload); err != nil {
		return err
	}
	e.store.Save()
	return nil
}

// Dismiss resolves the active alarm.
func (e *Engine) Dismiss() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.alarm.Active() == nil {
		return domain.ErrNoActiveAlarm
	}
	e.alarm.Dismiss(e.clock.Now())
	e.store.SaveHistory(e.history)
	e.store.Save()
	return nil
}

// Snooze re-arms the active alarm.
func (e *Engine) Snooze(minutes int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.alarm.Active() == nil {
		return domain.ErrNoActiveAlarm
	}
	e.alarm.Snooze(minutes, e.clock.Now())
	e.store.Save()
	return nil
}

// Repeat re-runs a duration-based session under a fresh id.
func (e *Engine) Repeat(id int64) (*domain.Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.store.Repeat(id, e.clock.Now())
	if err != nil {
		return nil, err
	}
	e.store.Save()
	return s, nil
}

// Remove deletes a session by id; absent ids are a no-op.
func (e *Engine) Remove(id int64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if s := e.store.Get(id); s != nil {
		e.store.DeleteSound(s)
	}
	e.store.Remove(id)
	e.store.Save()
}

// ClearHistory empties the completed-session log.
func (e *Engine) ClearHistory() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.history.Clear()
	e.store.SaveHistory(e.history)
}

// Tick runs one scheduler pass at the current instant.
func (e *Engine) Tick() {
	e.TickAt(e.clock.Now())
}

// TickAt scans every session for dueness at now. A due session is marked
// triggered before any side effect so a slow or panicking dispatch can
// never double-fire it, and a failure for one session never stops the
// scan. Due-detection always precedes the render callback.
func (e *Engine) TickAt(now time.Time) {
	e.mu.Lock()

	fired := false
	for _, s := range e.store.Scan() {
		if !s.Due(now) {
			continue
		}
		s.Triggered = true
		fired = true
		e.dispatch(s, now)
	}
	if e.alarm.EnforceTimeout(now) {
		fired = true
	}
	if fired {
		e.store.Save()
		e.store.SaveHistory(e.history)
	}

	render := e.render
	e.mu.Unlock()

	if render != nil {
		render()
	}
}

// dispatch routes one due session, isolating panics.
func (e *Engine) dispatch(s *domain.Session, now time.Time) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("bellhop: dispatching session %d: %v", s.ID, r)
		}
	}()

	if s.Kind == domain.KindPomodoro {
		e.advancePomodoro(s, now)
		return
	}
	e.alarm.Trigger(s, now)
}

// advancePomodoro applies a phase transition and its side effects: one
// sound burst, a notification, and on the terminal transition a history
// entry plus removal.
func (e *Engine) advancePomodoro(s *domain.Session, now time.Time) {
	change := s.AdvancePhase(now)
	if change.Terminal {
		if entry, ok := domain.NewHistoryEntry(s, now); ok {
			e.history.Append(entry)
		}
		e.store.DeleteSound(s)
		e.store.Remove(s.ID)
		if err := e.notifier.Send("🍅 Bellhop", s.Name+" - Pomodoro complete"); err != nil {
			log.Printf("bellhop: pomodoro notification: %v", err)
		}
		return
	}

	if err := e.audio.Play(s.Sound.Type, s.Sound.Volume); err != nil {
		log.Printf("bellhop: phase sound: %v", err)
	}
	if err := e.notifier.Send("🍅 Bellhop", s.Name+" - Starting "+domain.PhaseLabel(change.Phase)); err != nil {
		log.Printf("bellhop: phase notification: %v", err)
	}
}

// Sessions returns the live sessions ordered by ascending target time.
func (e *Engine) Sessions() []*domain.Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.All()
}

// ActiveAlarm returns the session holding the alarm slot, or nil.
func (e *Engine) ActiveAlarm() *domain.Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.alarm.Active()
}

// PendingAlarms returns the number of queued alarms.
func (e *Engine) PendingAlarms() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.alarm.PendingCount()
}

// History returns the completed-session log, newest first.
func (e *Engine) History() []domain.HistoryEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.All()
}

// Presets returns the recent timer presets, newest first.
func (e *Engine) Presets() []domain.TimerPreset {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.presets.All()
}

// Now exposes the engine clock for display math.
func (e *Engine) Now() time.Time {
	return e.clock.Now()
}
