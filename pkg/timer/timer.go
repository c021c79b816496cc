// Package timer abstracts the one-shot timers behaviors arm for buffer expiry
// and debounced interactions.
//
// Behaviors never call time.AfterFunc directly. They take a Scheduler so that
// tests and scripted scenarios can drive time with a Manual scheduler.
package timer

import (
	"sort"
	"sync"
	"time"
)

// Stopper cancels a pending callback. Stop reports whether the call stopped
// the callback before it ran; calling it more than once is safe.
type Stopper interface {
	Stop() bool
}

// Scheduler arms one-shot callbacks.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Stopper
}

type realScheduler struct{}

// Real returns a Scheduler backed by the runtime timer wheel. Callbacks run on
// their own goroutine.
func Real() Scheduler {
	return realScheduler{}
}

func (realScheduler) AfterFunc(d time.Duration, fn func()) Stopper {
	return time.AfterFunc(d, fn)
}

// OrReal returns s, or the real scheduler when s is nil.
func OrReal(s Scheduler) Scheduler {
	if s == nil {
		return Real()
	}
	return s
}

// Manual is a Scheduler whose clock only moves when Advance is called.
// Callbacks run synchronously on the goroutine calling Advance, in due-time
// order (ties broken by arming order).
type Manual struct {
	mu      sync.Mutex
	now     time.Duration
	seq     int
	pending []*manualTimer
}

type manualTimer struct {
	m   *Manual
	at  time.Duration
	seq int
	fn  func()
}

// NewManual creates a Manual scheduler at elapsed time zero.
func NewManual() *Manual {
	return &Manual{}
}

// AfterFunc arms fn to run once Advance moves the clock d past now.
func (m *Manual) AfterFunc(d time.Duration, fn func()) Stopper {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	t := &manualTimer{m: m, at: m.now + d, seq: m.seq, fn: fn}
	m.pending = append(m.pending, t)
	return t
}

// Stop removes the timer if it has not fired yet.
func (t *manualTimer) Stop() bool {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	return t.m.remove(t)
}

func (m *Manual) remove(t *manualTimer) bool {
	for i, p := range m.pending {
		if p == t {
			m.pending = append(m.pending[:i], m.pending[i+1:]...)
			return true
		}
	}
	return false
}

// Advance moves the clock forward by d and runs every callback that came due.
// Callbacks armed by other callbacks run too if they fall inside the window.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	for {
		next := m.nextDue(target)
		if next == nil {
			break
		}
		m.remove(next)
		m.now = next.at
		m.mu.Unlock()
		next.fn()
		m.mu.Lock()
	}
	m.now = target
	m.mu.Unlock()
}

func (m *Manual) nextDue(limit time.Duration) *manualTimer {
	if len(m.pending) == 0 {
		return nil
	}
	sort.SliceStable(m.pending, func(i, j int) bool {
		if m.pending[i].at == m.pending[j].at {
			return m.pending[i].seq < m.pending[j].seq
		}
		return m.pending[i].at < m.pending[j].at
	})
	if m.pending[0].at > limit {
		return nil
	}
	return m.pending[0]
}

// Pending returns the number of armed callbacks.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// Elapsed returns how far the clock has been advanced.
func (m *Manual) Elapsed() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}
