package alarm

import (
	"sync"
	"time"
)

// Repeater replays a sound effect at a fixed interval until stopped.
// It is the single cancellable handle for a continuous alarm: the
// controller must call Stop on every exit path (dismiss, snooze, timeout)
// or the effect leaks.
type Repeater struct {
	interval time.Duration
	fn       func()
	stop     chan struct{}
	once     sync.Once
}

// NewRepeater builds a repeater that fires fn immediately on Start and
// then every interval.
func NewRepeater(interval time.Duration, fn func()) *Repeater {
	return &Repeater{
		interval: interval,
		fn:       fn,
		stop:     make(chan struct{}),
	}
}

// Start launches the repeat loop.
func (r *Repeater) Start() {
	go func() {
		r.fn()
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-r.stop:
				return
			case <-ticker.C:
				r.fn()
			}
		}
	}()
}

// Stop cancels the repeat loop. Safe to call more than once.
func (r *Repeater) Stop() {
	r.once.Do(func() { close(r.stop) })
}
