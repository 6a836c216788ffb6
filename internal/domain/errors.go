package domain

import "errors"

var (
	// ErrZeroDuration rejects a timer created with a non-positive countdown.
	ErrZeroDuration = errors.New("countdown duration must be positive")

	// ErrPastTarget rejects a reminder whose date-time is not strictly in the future.
	ErrPastTarget = errors.New("reminder time must be in the future")

	// ErrSessionNotFound reports an id absent from the live collection.
	ErrSessionNotFound = errors.New("session not found")

	// ErrNoActiveAlarm reports a dismiss or snooze with no alarm firing.
	ErrNoActiveAlarm = errors.New("no alarm is active")

	// ErrNotRepeatable reports a repeat request for a session without an
	// original duration.
	ErrNotRepeatable = errors.New("session was not created from a duration")

	// ErrSoundDecode reports an unusable custom sound payload.
	ErrSoundDecode = errors.New("unsupported audio format")
)
