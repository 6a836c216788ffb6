// Package alarm owns the single actively-firing alarm: triggering,
// snoozing, dismissing, and the auto-timeout backstop.
package alarm

import (
	"log"
	"time"

	"github.com/arkadyv/bellhop/internal/domain"
	"github.com/arkadyv/bellhop/internal/ports"
	"github.com/arkadyv/bellhop/internal/store"
)

// AutoTimeout is the hard ceiling on an unattended alarm. When the alarm
// surface is closed without a dismiss or snooze, this is the only
// guaranteed resolution.
const AutoTimeout = 60 * time.Minute

// DefaultSnoozeMinutes applies when a snooze request carries no usable
// minute count.
const DefaultSnoozeMinutes = 5

// repeat intervals per built-in sound, matching each burst's length.
var repeatIntervals = map[domain.SoundType]time.Duration{
	domain.SoundLight:  1000 * time.Millisecond,
	domain.SoundStrong: 1200 * time.Millisecond,
	domain.SoundSchool: 2000 * time.Millisecond,
	domain.SoundSiren:  2500 * time.Millisecond,
	domain.SoundCustom: 3000 * time.Millisecond,
}

// Controller holds the alarm slot. Only one timer/reminder alarm is
// active system-wide; further due sessions queue and are promoted in FIFO
// order as the slot frees up. Pomodoro phase changes never pass through
// here — they self-resolve in the state machine.
//
// The controller is not goroutine-safe on its own; the engine serializes
// every caller.
type Controller struct {
	store    *store.Store
	history  *domain.HistoryLog
	audio    ports.AudioEffect
	notifier ports.Notifier

	active   *domain.Session
	pending  []int64
	deadline time.Time
	repeater *Repeater

	snoozeDefault time.Duration
}

// NewController wires the alarm slot to its collaborators.
func NewController(st *store.Store, history *domain.HistoryLog, audio ports.AudioEffect, notifier ports.Notifier) *Controller {
	return &Controller{
		store:         st,
		history:       history,
		audio:         audio,
		notifier:      notifier,
		snoozeDefault: DefaultSnoozeMinutes * time.Minute,
	}
}

// SetSnoozeDefault overrides the fallback snooze delay.
func (c *Controller) SetSnoozeDefault(d time.Duration) {
	if d > 0 {
		c.snoozeDefault = d
	}
}

// Active returns the session currently holding the alarm slot, or nil.
func (c *Controller) Active() *domain.Session {
	return c.active
}

// PendingCount returns the number of queued alarms waiting for the slot.
func (c *Controller) PendingCount() int {
	return len(c.pending)
}

// Deadline returns the auto-timeout instant for the active alarm.
func (c *Controller) Deadline() time.Time {
	return c.deadline
}

// Trigger fires an alarm for a due timer or reminder. If the slot is
// already occupied the session queues instead; it was already marked
// triggered by the scheduler, so it cannot re-fire meanwhile.
func (c *Controller) Trigger(s *domain.Session, now time.Time) {
	if c.active != nil {
		c.pending = append(c.pending, s.ID)
		return
	}
	c.occupy(s, now)
}

func (c *Controller) occupy(s *domain.Session, now time.Time) {
	c.active = s
	c.deadline = now.Add(AutoTimeout)
	c.startSound(s)
	if err := c.notifier.Send("⏰ Bellhop", "Time's up: "+s.Name); err != nil {
		log.Printf("bellhop: alarm notification: %v", err)
	}
}

func (c *Controller) startSound(s *domain.Session) {
	interval, ok := repeatIntervals[s.Sound.Type]
	if !ok {
		interval = repeatIntervals[domain.SoundStrong]
	}

	volume := s.Sound.Volume
	var play func()
	if s.Sound.Type == domain.SoundCustom {
		payload := c.store.GetSound(s)
		// Once the clip fails, every later burst plays the built-in
		// fallback instead. The alarm must stay audible.
		fallback := len(payload) == 0
		play = func() {
			if !fallback {
				err := c.audio.PlayClip(payload, volume)
				if err == nil {
					return
				}
				log.Printf("bellhop: custom sound playback: %v", err)
				fallback = true
			}
			if err := c.audio.Play(domain.SoundStrong, volume); err != nil {
				log.Printf("bellhop: fallback sound: %v", err)
			}
		}
	} else {
		kind := s.Sound.Type
		play = func() {
			if err := c.audio.Play(kind, volume); err != nil {
				log.Printf("bellhop: alarm sound: %v", err)
			}
		}
	}

	c.repeater = NewRepeater(interval, play)
	c.repeater.Start()
}

// stopAlarm is the single authoritative teardown: every exit path funnels
// through it so neither the repeater nor the deadline can leak.
func (c *Controller) stopAlarm() {
	if c.repeater != nil {
		c.repeater.Stop()
		c.repeater = nil
	}
	c.deadline = time.Time{}
}

// Dismiss resolves the active alarm: sound stops, a dismissed reminder is
// recorded in history, and the session leaves the store. No-op when the
// slot is empty.
func (c *Controller) Dismiss(now time.Time) {
	if c.active == nil {
		return
	}
	c.stopAlarm()

	s := c.active
	if entry, ok := domain.NewHistoryEntry(s, now); ok && s.Kind == domain.KindReminder {
		c.history.Append(entry)
	}
	c.store.DeleteSound(s)
	c.store.Remove(s.ID)
	c.active = nil

	c.promote(now)
}

// Snooze reschedules the active alarm minutes into the future. Values at
// or below zero fall back to the default. No-op when the slot is empty.
func (c *Controller) Snooze(minutes int, now time.Time) {
	if c.active == nil {
		return
	}
	c.stopAlarm()

	delay := time.Duration(minutes) * time.Minute
	if delay <= 0 {
		delay = c.snoozeDefault
	}
	if err := c.store.Reschedule(c.active.ID, now.Add(delay)); err != nil {
		log.Printf("bellhop: snoozing session %d: %v", c.active.ID, err)
	}
	c.active = nil

	c.promote(now)
}

// EnforceTimeout dismisses an alarm that outlived its deadline. Called
// from the scheduler tick. Returns true when a timeout fired.
func (c *Controller) EnforceTimeout(now time.Time) bool {
	if c.active == nil || now.Before(c.deadline) {
		return false
	}
	c.Dismiss(now)
	return true
}

// promote moves the next queued alarm, if any still lives in the store,
// into the freed slot.
func (c *Controller) promote(now time.Time) {
	for len(c.pending) > 0 {
		id := c.pending[0]
		c.pending = c.pending[1:]
		if s := c.store.Get(id); s != nil {
			c.occupy(s, now)
			return
		}
	}
}
