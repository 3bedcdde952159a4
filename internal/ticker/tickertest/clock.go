// Package tickertest provides a manually driven ticker.Clock for tests.
package tickertest

import (
	"slices"
	"sync"
	"time"

	"github.com/wandb/lapwatch/internal/ticker"
)

// ManualClock fires scheduled callbacks only when advanced.
type ManualClock struct {
	mu      sync.Mutex
	now     time.Time
	pending []*manualTimer
}

type manualTimer struct {
	clock   *ManualClock
	at      time.Time
	f       func()
	stopped bool
}

func NewManualClock() *ManualClock {
	return &ManualClock{now: time.Unix(1_700_000_000, 0)}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *ManualClock) AfterFunc(d time.Duration, f func()) ticker.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{clock: c, at: c.now.Add(d), f: f}
	c.pending = append(c.pending, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	wasActive := !t.stopped
	t.stopped = true
	return wasActive
}

// Advance moves time forward by d, running due callbacks in order on the
// calling goroutine.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		next := c.popDue(target)
		if next == nil {
			return
		}
		next.f()
	}
}

// popDue removes and returns the earliest callback due at or before target.
// When none is due, time is moved to target and nil is returned.
func (c *ManualClock) popDue(target time.Time) *manualTimer {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := -1
	for i, t := range c.pending {
		if t.stopped || t.at.After(target) {
			continue
		}
		if idx < 0 || t.at.Before(c.pending[idx].at) {
			idx = i
		}
	}
	if idx < 0 {
		c.now = target
		c.pending = slices.DeleteFunc(c.pending, func(t *manualTimer) bool { return t.stopped })
		return nil
	}

	next := c.pending[idx]
	c.pending = append(c.pending[:idx], c.pending[idx+1:]...)
	next.stopped = true
	c.now = next.at
	return next
}
