package store

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/arkadyv/bellhop/internal/domain"
)

// Persisted-state keys.
const (
	keySessions = "sessions"
	keyNextID   = "next_id"
	keyHistory  = "history"
	keyRecent   = "recent_timers"
)

// sessionRecord is the wire shape of a persisted session. Instants are
// epoch milliseconds and durations are milliseconds, matching the stored
// JSON exactly across save/load.
type sessionRecord struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	Description      string  `json:"description,omitempty"`
	Kind             string  `json:"type"`
	TargetTime       int64   `json:"targetTime"`
	OriginalDuration int64   `json:"originalDuration,omitempty"`
	SoundType        string  `json:"soundType"`
	Volume           float64 `json:"volume"`
	CustomSoundKey   string  `json:"customSoundKey,omitempty"`
	CustomSoundName  string  `json:"customSoundName,omitempty"`
	Triggered        bool    `json:"triggered"`
	SnoozeCount      int     `json:"snoozeCount"`
	CreatedAt        int64   `json:"createdAt"`

	// Pomodoro-only fields.
	Phase             string `json:"phase,omitempty"`
	WorkDuration      int64  `json:"workDuration,omitempty"`
	BreakDuration     int64  `json:"breakDuration,omitempty"`
	LongBreakDuration int64  `json:"longBreakDuration,omitempty"`
	SessionsPerCycle  int    `json:"sessionsPerCycle,omitempty"`
	TotalCycles       int    `json:"totalCycles,omitempty"`
	CurrentSession    int    `json:"currentSession,omitempty"`
	CurrentCycle      int    `json:"currentCycle,omitempty"`
	CompletedSessions int    `json:"completedSessions,omitempty"`
}

type historyRecord struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	Kind              string `json:"type"`
	SetTime           int64  `json:"setTime"`
	CompletedAt       int64  `json:"completedAt"`
	CompletedSessions int    `json:"completedSessions,omitempty"`
	TotalCycles       int    `json:"totalCycles,omitempty"`
	SessionsPerCycle  int    `json:"sessionsPerCycle,omitempty"`
}

type presetRecord struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

func marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

func msToTime(ms int64) time.Time {
	return time.UnixMilli(ms)
}

func toRecord(s *domain.Session) sessionRecord {
	r := sessionRecord{
		ID:               s.ID,
		Name:             s.Name,
		Description:      s.Description,
		Kind:             string(s.Kind),
		TargetTime:       s.TargetTime.UnixMilli(),
		OriginalDuration: s.OriginalDuration.Milliseconds(),
		SoundType:        string(s.Sound.Type),
		Volume:           s.Sound.Volume,
		CustomSoundKey:   s.Sound.CustomKey,
		CustomSoundName:  s.Sound.CustomName,
		Triggered:        s.Triggered,
		SnoozeCount:      s.SnoozeCount,
		CreatedAt:        s.CreatedAt.UnixMilli(),
	}
	if s.Pomodoro != nil {
		p := s.Pomodoro
		r.Phase = string(p.Phase)
		r.WorkDuration = p.WorkDuration.Milliseconds()
		r.BreakDuration = p.BreakDuration.Milliseconds()
		r.LongBreakDuration = p.LongBreakDuration.Milliseconds()
		r.SessionsPerCycle = p.SessionsPerCycle
		r.TotalCycles = p.TotalCycles
		r.CurrentSession = p.CurrentSession
		r.CurrentCycle = p.CurrentCycle
		r.CompletedSessions = p.CompletedSessions
	}
	return r
}

func fromRecord(r sessionRecord) *domain.Session {
	s := &domain.Session{
		ID:               r.ID,
		Kind:             domain.Kind(r.Kind),
		Name:             r.Name,
		Description:      r.Description,
		TargetTime:       msToTime(r.TargetTime),
		OriginalDuration: time.Duration(r.OriginalDuration) * time.Millisecond,
		Sound: domain.SoundProfile{
			Type:       domain.SoundType(r.SoundType),
			Volume:     r.Volume,
			CustomKey:  r.CustomSoundKey,
			CustomName: r.CustomSoundName,
		},
		Triggered:   r.Triggered,
		SnoozeCount: r.SnoozeCount,
		CreatedAt:   msToTime(r.CreatedAt),
	}
	if s.Kind == domain.KindPomodoro {
		s.Pomodoro = &domain.PomodoroState{
			Phase:             domain.Phase(r.Phase),
			WorkDuration:      time.Duration(r.WorkDuration) * time.Millisecond,
			BreakDuration:     time.Duration(r.BreakDuration) * time.Millisecond,
			LongBreakDuration: time.Duration(r.LongBreakDuration) * time.Millisecond,
			SessionsPerCycle:  r.SessionsPerCycle,
			TotalCycles:       r.TotalCycles,
			CurrentSession:    r.CurrentSession,
			CurrentCycle:      r.CurrentCycle,
			CompletedSessions: r.CompletedSessions,
		}
	}
	return s
}

// SaveHistory persists the history log, newest first.
func (s *Store) SaveHistory(l *domain.HistoryLog) {
	records := make([]historyRecord, 0, l.Len())
	for _, e := range l.All() {
		records = append(records, historyRecord{
			ID:                e.ID,
			Name:              e.Name,
			Kind:              string(e.Kind),
			SetTime:           e.SetTime.UnixMilli(),
			CompletedAt:       e.CompletedAt.UnixMilli(),
			CompletedSessions: e.CompletedSessions,
			TotalCycles:       e.TotalCycles,
			SessionsPerCycle:  e.SessionsPerCycle,
		})
	}
	data, err := marshal(records)
	if err == nil {
		err = s.state.Put(keyHistory, data)
	}
	if err != nil {
		log.Printf("bellhop: saving history: %v", err)
	}
}

// LoadHistory restores the history log.
func (s *Store) LoadHistory() (*domain.HistoryLog, error) {
	data, err := s.state.Get(keyHistory)
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	if data == nil {
		return domain.NewHistoryLog(nil), nil
	}
	var records []historyRecord
	if err := unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decoding history: %w", err)
	}
	entries := make([]domain.HistoryEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, domain.HistoryEntry{
			ID:                r.ID,
			Name:              r.Name,
			Kind:              domain.Kind(r.Kind),
			SetTime:           msToTime(r.SetTime),
			CompletedAt:       msToTime(r.CompletedAt),
			CompletedSessions: r.CompletedSessions,
			TotalCycles:       r.TotalCycles,
			SessionsPerCycle:  r.SessionsPerCycle,
		})
	}
	return domain.NewHistoryLog(entries), nil
}

// SavePresets persists the recent-timer presets, newest first.
func (s *Store) SavePresets(l *domain.PresetList) {
	records := make([]presetRecord, 0, domain.MaxRecentTimers)
	for _, p := range l.All() {
		records = append(records, presetRecord{Hours: p.Hours, Minutes: p.Minutes, Seconds: p.Seconds})
	}
	data, err := marshal(records)
	if err == nil {
		err = s.state.Put(keyRecent, data)
	}
	if err != nil {
		log.Printf("bellhop: saving recent timers: %v", err)
	}
}

// LoadPresets restores the recent-timer presets.
func (s *Store) LoadPresets() (*domain.PresetList, error) {
	data, err := s.state.Get(keyRecent)
	if err != nil {
		return nil, fmt.Errorf("reading recent timers: %w", err)
	}
	if data == nil {
		return domain.NewPresetList(nil), nil
	}
	var records []presetRecord
	if err := unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decoding recent timers: %w", err)
	}
	presets := make([]domain.TimerPreset, 0, len(records))
	for _, r := range records {
		presets = append(presets, domain.TimerPreset{Hours: r.Hours, Minutes: r.Minutes, Seconds: r.Seconds})
	}
	return domain.NewPresetList(presets), nil
}
