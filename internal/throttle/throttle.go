// Package throttle coalesces event bursts to at most one execution per
// interval without ever dropping the final event of a burst.
//
// The type is clock-driven rather than goroutine-driven so it slots
// into an Elm update loop: Offer answers "run now or not", and when the
// answer is "not" the caller schedules a single trailing flush (via
// tea.Tick) carrying the returned generation token. Reset invalidates
// outstanding tokens, so a flush scheduled before a drag ended arrives
// as a stale no-op instead of replaying against fresh state.
package throttle

import (
	"time"
)

// Throttle limits executions to one per interval with a trailing edge.
type Throttle struct {
	interval time.Duration
	now      func() time.Time

	last    time.Time
	pending bool
	gen     int
}

// New returns a throttle using the wall clock.
func New(interval time.Duration) *Throttle {
	return NewWithClock(interval, time.Now)
}

// NewWithClock returns a throttle reading time from now. Tests inject a
// fake clock here.
func NewWithClock(interval time.Duration, now func() time.Time) *Throttle {
	return &Throttle{interval: interval, now: now}
}

// Offer asks whether the caller should process the current event now.
//
// When runNow is true the throttle has recorded an execution and the
// caller processes immediately. When runNow is false and flushIn is
// positive, the caller must schedule exactly one flush after flushIn
// carrying gen; a zero flushIn means a flush is already owed and the
// caller only updates its latest-event slot.
func (t *Throttle) Offer() (runNow bool, flushIn time.Duration, gen int) {
	now := t.now()
	if t.pending {
		return false, 0, t.gen
	}
	since := now.Sub(t.last)
	if t.last.IsZero() || since >= t.interval {
		t.last = now
		return true, 0, t.gen
	}
	t.pending = true
	return false, t.interval - since, t.gen
}

// Flush validates a trailing flush. It reports whether the token is
// still live; on success the throttle records an execution and the
// caller processes its latest-event slot.
func (t *Throttle) Flush(gen int) bool {
	if gen != t.gen || !t.pending {
		return false
	}
	t.pending = false
	t.last = t.now()
	return true
}

// Pending reports whether a trailing flush is owed.
func (t *Throttle) Pending() bool {
	return t.pending
}

// Reset clears the execution clock and invalidates any outstanding
// flush token. The next Offer runs immediately.
func (t *Throttle) Reset() {
	t.gen++
	t.pending = false
	t.last = time.Time{}
}

// Interval returns the configured coalescing window.
func (t *Throttle) Interval() time.Duration {
	return t.interval
}
