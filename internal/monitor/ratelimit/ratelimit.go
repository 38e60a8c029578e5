// Package ratelimit provides a fixed-interval gate used to pace
// per-ticker work in the monitor cycle.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Gate enforces a minimum time between releases. Callers block in
// Wait until the interval has elapsed since the last release, or
// return early if the context is canceled. The first call passes
// immediately.
type Gate struct {
	Interval time.Duration

	mu   sync.Mutex
	last time.Time
}

func New(interval time.Duration) *Gate {
	return &Gate{Interval: interval}
}

// Wait blocks until the gate opens or ctx is canceled.
func (g *Gate) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if g.Interval <= 0 {
		return nil
	}
	g.mu.Lock()
	wait := time.Until(g.last.Add(g.Interval))
	g.mu.Unlock()
	if wait > 0 {
		t := time.NewTimer(wait)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
	g.mu.Lock()
	g.last = time.Now()
	g.mu.Unlock()
	return nil
}
