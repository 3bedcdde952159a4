// Package ticker drives a stopwatch with recurring, cancelable ticks.
package ticker

import (
	"fmt"
	"sync"
	"time"

	"github.com/wandb/lapwatch/internal/observability"
)

const (
	DefaultInterval = 10 * time.Millisecond
	MinInterval     = time.Millisecond
	MaxInterval     = time.Second
)

// Tick reports wall time that passed while the ticker was running.
type Tick struct {
	// Gen is the generation of the Start call that produced the tick.
	Gen uint64

	// Delta is the number of whole milliseconds since the previous tick.
	Delta int64
}

// Manager emits Ticks on a channel at a fixed interval between Start and Stop.
//
// The receiver credits a tick only after Claim accepts it. Each Start opens a
// new generation; once Stop returns, no tick of the stopped generation is
// sent or claimed, and Stop's result covers everything that was not claimed.
type Manager struct {
	mu sync.Mutex

	clock    Clock
	interval time.Duration
	out      chan<- Tick

	// timer is the pending callback, nil when stopped.
	timer Timer

	// gen is incremented on every Start and Stop.
	gen uint64

	// last is when time was last accounted for.
	last time.Time

	// carry is time measured but not yet emitted.
	carry time.Duration

	// unclaimed is the sum of emitted deltas of this generation that were
	// not claimed yet.
	unclaimed int64

	logger *observability.CoreLogger
}

func NewManager(
	interval time.Duration,
	out chan<- Tick,
	clock Clock,
	logger *observability.CoreLogger,
) *Manager {
	if clock == nil {
		clock = SystemClock
	}
	if logger == nil {
		logger = observability.NewNoOpLogger()
	}
	return &Manager{
		clock:    clock,
		interval: ClampInterval(interval),
		out:      out,
		logger:   logger,
	}
}

// ClampInterval bounds d to [MinInterval, MaxInterval]; zero selects the default.
func ClampInterval(d time.Duration) time.Duration {
	switch {
	case d == 0:
		return DefaultInterval
	case d < MinInterval:
		return MinInterval
	case d > MaxInterval:
		return MaxInterval
	default:
		return d
	}
}

// Interval returns the tick period.
func (m *Manager) Interval() time.Duration {
	return m.interval
}

// Start begins emitting ticks, replacing any running schedule.
func (m *Manager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cancelLocked()
	m.gen++
	m.last = m.clock.Now()
	m.carry = 0
	m.unclaimed = 0

	m.logger.Debug(fmt.Sprintf("ticker: starting generation %d with interval %v", m.gen, m.interval))
	m.armLocked(m.gen)
}

// Stop cancels the schedule and returns the whole milliseconds of this
// generation that were never claimed: ticks still queued plus the time since
// the last emission.
//
// Stop is safe to call when the manager is not running.
func (m *Manager) Stop() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.timer == nil {
		return 0
	}

	m.cancelLocked()
	m.gen++

	pending := (m.carry + m.clock.Now().Sub(m.last)).Milliseconds() + m.unclaimed
	m.carry = 0
	m.unclaimed = 0
	m.logger.Debug(fmt.Sprintf("ticker: stopped, %dms unclaimed", pending))
	return pending
}

// Running reports whether a schedule is active.
func (m *Manager) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.timer != nil
}

// Claim accepts t if it belongs to the active generation. The caller must
// credit t.Delta exactly when Claim returns true.
func (m *Manager) Claim(t Tick) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.timer == nil || t.Gen != m.gen {
		return false
	}
	m.unclaimed -= t.Delta
	return true
}

func (m *Manager) cancelLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

func (m *Manager) armLocked(gen uint64) {
	m.timer = m.clock.AfterFunc(m.interval, func() { m.fire(gen) })
}

// fire runs on the timer goroutine.
func (m *Manager) fire(gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Stopped or restarted after this callback was scheduled.
	if gen != m.gen || m.timer == nil {
		return
	}

	now := m.clock.Now()
	m.carry += now.Sub(m.last)
	m.last = now

	delta := m.carry.Milliseconds()
	if delta > 0 {
		select {
		case m.out <- Tick{Gen: gen, Delta: delta}:
			m.carry -= time.Duration(delta) * time.Millisecond
			m.unclaimed += delta
		default:
			m.logger.CaptureWarn("ticker: channel full, carrying delta to next tick",
				"carry", m.carry.String())
		}
	}

	m.armLocked(gen)
}
