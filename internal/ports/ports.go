// Package ports defines the interfaces between the session engine and
// external infrastructure: persistence, sound, notifications, the system
// clock, and the solar calculator. These are driven ports, implemented by
// adapters.
package ports

import (
	"time"

	"github.com/arkadyv/bellhop/internal/domain"
)

// Clock supplies the current time. The engine never calls time.Now
// directly so tests can drive due-detection deterministically.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall-clock implementation.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// StateStore is an opaque keyed-document store. Get returns (nil, nil)
// for an absent key.
type StateStore interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) error
	Close() error
}

// Notifier dispatches OS-level notifications. Implementations gate on the
// user's permission setting and must never fail hard: a send error is the
// caller's to log and ignore.
type Notifier interface {
	Send(title, body string) error
}

// AudioEffect produces one alarm-sound burst. Continuous alarms are the
// alarm controller's job: it replays bursts on a repeat handle.
type AudioEffect interface {
	// Play synthesizes one burst of a built-in sound at the given volume.
	Play(kind domain.SoundType, volume float64) error

	// PlayClip plays a decoded custom sound payload once. An empty
	// payload is skipped without error.
	PlayClip(payload []byte, volume float64) error
}

// SunTimeProvider supplies the next sunrise/sunset after now for a
// coordinate. ok is false when the sun does not rise or set there
// (polar conditions).
type SunTimeProvider interface {
	NextSunrise(now time.Time, lat, lng float64) (time.Time, bool)
	NextSunset(now time.Time, lat, lng float64) (time.Time, bool)
}
