package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type countingTicker struct {
	ticks atomic.Int64
}

func (c *countingTicker) Tick() { c.ticks.Add(1) }

func TestRun_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		NewLoop(&countingTicker{}).Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestRun_TicksPeriodically(t *testing.T) {
	if testing.Short() {
		t.Skip("ticks on a 1s cadence")
	}

	ticker := &countingTicker{}
	ctx, cancel := context.WithTimeout(context.Background(), 2500*time.Millisecond)
	defer cancel()

	NewLoop(ticker).Run(ctx)

	if got := ticker.ticks.Load(); got < 2 {
		t.Errorf("ticks = %d, want at least 2", got)
	}
}
