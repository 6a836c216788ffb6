// Package scheduler drives the engine's due-detection on a fixed
// 1-second cadence.
package scheduler

import (
	"context"
	"time"
)

// TickInterval is the fixed scan period. Due-detection tolerates
// second-level granularity only; the interval is deliberately not
// configurable.
const TickInterval = time.Second

// Ticker is the engine surface the loop drives.
type Ticker interface {
	Tick()
}

// Loop runs a Ticker until the context is cancelled.
type Loop struct {
	ticker Ticker
}

// NewLoop builds a loop over the given ticker.
func NewLoop(t Ticker) *Loop {
	return &Loop{ticker: t}
}

// Run blocks, ticking once per interval, until ctx is done. Intended to
// be called as a goroutine next to a presentation surface.
func (l *Loop) Run(ctx context.Context) {
	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.ticker.Tick()
		}
	}
}
