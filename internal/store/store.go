// Package store owns the live session collection: id allocation, ordered
// views, rescheduling, and the persistence round-trip.
package store

import (
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/arkadyv/bellhop/internal/domain"
	"github.com/arkadyv/bellhop/internal/ports"
)

// Store is the only writer of the live session collection. It is not
// safe for concurrent use on its own; the engine serializes access.
type Store struct {
	state    ports.StateStore
	sessions []*domain.Session
	nextID   int64
}

// New builds an empty store backed by the given state store.
func New(state ports.StateStore) *Store {
	return &Store{state: state, nextID: 1}
}

func (s *Store) allocID() int64 {
	id := s.nextID
	s.nextID++
	return id
}

// CreateTimer validates and adds a countdown session.
func (s *Store) CreateTimer(name, description string, sound domain.SoundProfile, d time.Duration, now time.Time) (*domain.Session, error) {
	session, err := domain.NewTimer(s.allocID(), name, description, sound, d, now)
	if err != nil {
		s.nextID--
		return nil, err
	}
	s.sessions = append(s.sessions, session)
	return session, nil
}

// CreateReminder validates and adds a date-time session.
func (s *Store) CreateReminder(name, description string, sound domain.SoundProfile, at, now time.Time) (*domain.Session, error) {
	session, err := domain.NewReminder(s.allocID(), name, description, sound, at, now)
	if err != nil {
		s.nextID--
		return nil, err
	}
	s.sessions = append(s.sessions, session)
	return session, nil
}

// CreatePomodoro adds a pomodoro session, defaulting any unset or
// non-positive durations and counts.
func (s *Store) CreatePomodoro(name, description string, sound domain.SoundProfile, cfg domain.PomodoroConfig, now time.Time) *domain.Session {
	session := domain.NewPomodoro(s.allocID(), name, description, sound, cfg, now)
	s.sessions = append(s.sessions, session)
	return session
}

// Repeat re-creates a duration-based session with a fresh id, due after
// its original duration.
func (s *Store) Repeat(id int64, now time.Time) (*domain.Session, error) {
	src := s.Get(id)
	if src == nil {
		return nil, domain.ErrSessionNotFound
	}
	if !src.Repeatable() {
		return nil, domain.ErrNotRepeatable
	}
	fresh := &domain.Session{
		ID:               s.allocID(),
		Kind:             src.Kind,
		Name:             src.Name,
		Description:      src.Description,
		TargetTime:       now.Add(src.OriginalDuration),
		OriginalDuration: src.OriginalDuration,
		Sound:            src.Sound,
		CreatedAt:        now,
	}
	if src.Kind == domain.KindPomodoro && src.Pomodoro != nil {
		p := *src.Pomodoro
		p.Phase = domain.PhaseWork
		p.CurrentSession = 1
		p.CurrentCycle = 1
		p.CompletedSessions = 0
		fresh.Pomodoro = &p
	}
	s.sessions = append(s.sessions, fresh)
	return fresh, nil
}

// Get returns the session with the given id, or nil.
func (s *Store) Get(id int64) *domain.Session {
	for _, session := range s.sessions {
		if session.ID == id {
			return session
		}
	}
	return nil
}

// Remove deletes a session by id. Removing an absent id is a no-op.
func (s *Store) Remove(id int64) {
	for i, session := range s.sessions {
		if session.ID == id {
			s.sessions = append(s.sessions[:i], s.sessions[i+1:]...)
			return
		}
	}
}

// Reschedule moves a session's target to a new instant, re-arming it and
// counting the snooze.
func (s *Store) Reschedule(id int64, target time.Time) error {
	session := s.Get(id)
	if session == nil {
		return domain.ErrSessionNotFound
	}
	session.TargetTime = target
	session.Triggered = false
	session.SnoozeCount++
	return nil
}

// Scan returns the sessions in collection order. Due-detection iterates
// this, not the display ordering.
func (s *Store) Scan() []*domain.Session {
	return append([]*domain.Session(nil), s.sessions...)
}

// All returns the sessions ordered by ascending target time, for display.
func (s *Store) All() []*domain.Session {
	out := append([]*domain.Session(nil), s.sessions...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TargetTime.Before(out[j].TargetTime)
	})
	return out
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	return len(s.sessions)
}

// PutSound stores a custom sound payload under a fresh indirection key
// and attaches the key to the session's sound profile. A storage failure
// (oversized payload, quota) is recovered locally: the session keeps its
// built-in sound and the failure is logged, not surfaced.
func (s *Store) PutSound(id int64, name string, payload []byte) error {
	session := s.Get(id)
	if session == nil {
		return domain.ErrSessionNotFound
	}
	key := "sound:" + uuid.New().String()
	if err := s.state.Put(key, payload); err != nil {
		log.Printf("bellhop: custom sound for session %d not stored: %v", id, err)
		return nil
	}
	session.Sound.Type = domain.SoundCustom
	session.Sound.CustomKey = key
	session.Sound.CustomName = name
	return nil
}

// GetSound fetches the custom sound payload for a session, or nil when
// the session has none or the payload is gone.
func (s *Store) GetSound(session *domain.Session) []byte {
	if session.Sound.CustomKey == "" {
		return nil
	}
	payload, err := s.state.Get(session.Sound.CustomKey)
	if err != nil {
		log.Printf("bellhop: custom sound %s unavailable: %v", session.Sound.CustomKey, err)
		return nil
	}
	return payload
}

// DeleteSound drops a session's stored payload, if any.
func (s *Store) DeleteSound(session *domain.Session) {
	if session.Sound.CustomKey == "" {
		return
	}
	if err := s.state.Delete(session.Sound.CustomKey); err != nil {
		log.Printf("bellhop: deleting custom sound %s: %v", session.Sound.CustomKey, err)
	}
}

// Save serializes the session collection and id counter. Failures are
// logged, not surfaced: the next successful save repairs the gap.
func (s *Store) Save() {
	if err := s.save(); err != nil {
		log.Printf("bellhop: saving sessions: %v", err)
	}
}

func (s *Store) save() error {
	records := make([]sessionRecord, 0, len(s.sessions))
	for _, session := range s.sessions {
		records = append(records, toRecord(session))
	}
	data, err := marshal(records)
	if err != nil {
		return fmt.Errorf("encoding sessions: %w", err)
	}
	if err := s.state.Put(keySessions, data); err != nil {
		return fmt.Errorf("writing sessions: %w", err)
	}
	if err := s.state.Put(keyNextID, []byte(fmt.Sprintf("%d", s.nextID))); err != nil {
		return fmt.Errorf("writing id counter: %w", err)
	}
	return nil
}

// Load restores the collection and id counter. Sessions persisted with
// triggered set are abandoned alarms from a previous run and are dropped.
func (s *Store) Load() error {
	data, err := s.state.Get(keySessions)
	if err != nil {
		return fmt.Errorf("reading sessions: %w", err)
	}
	if data != nil {
		var records []sessionRecord
		if err := unmarshal(data, &records); err != nil {
			return fmt.Errorf("decoding sessions: %w", err)
		}
		s.sessions = s.sessions[:0]
		for _, r := range records {
			if r.Triggered {
				continue
			}
			s.sessions = append(s.sessions, fromRecord(r))
		}
	}

	raw, err := s.state.Get(keyNextID)
	if err != nil {
		return fmt.Errorf("reading id counter: %w", err)
	}
	if raw != nil {
		var next int64
		if _, err := fmt.Sscanf(string(raw), "%d", &next); err == nil && next > s.nextID {
			s.nextID = next
		}
	}
	// Never reuse an id even if the counter record was lost.
	for _, session := range s.sessions {
		if session.ID >= s.nextID {
			s.nextID = session.ID + 1
		}
	}
	return nil
}
