package coalesce

import (
	"sync"
	"time"
)

// DefaultInterval is the quiet period required before a commit fires.
const DefaultInterval = 500 * time.Millisecond

// Coalescer debounces content changes into history commits.
//
// Thread-safety: all methods are safe for concurrent use. The commit and
// current callbacks run with the coalescer's lock held, which serializes
// a firing commit with SuppressNext, Flush and Close: once SuppressNext
// returns, no earlier-scheduled commit can still land. The callbacks
// must not call back into the coalescer.
type Coalescer struct {
	mu sync.Mutex

	interval time.Duration
	current  func() string  // reads the snapshot at fire time
	commit   func(snapshot string)

	timer   *time.Timer
	pending bool
	seq     uint64 // invalidates stale timer callbacks
	guard   bool   // one-shot navigation guard
	closed  bool
}

// New creates a coalescer. current supplies the snapshot value at fire
// time; commit receives it. An interval <= 0 selects DefaultInterval.
func New(interval time.Duration, current func() string, commit func(snapshot string)) *Coalescer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Coalescer{
		interval: interval,
		current:  current,
		commit:   commit,
	}
}

// ContentChanged records a content change.
//
// If the navigation guard is set, it is cleared and nothing is scheduled:
// the change originated from undo/redo, not typing. Otherwise any pending
// commit is superseded and a new one is scheduled after the quiet
// interval.
func (c *Coalescer) ContentChanged() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	if c.guard {
		c.guard = false
		return
	}

	c.pending = true
	c.seq++
	currentSeq := c.seq

	if c.timer != nil {
		c.timer.Stop()
	}

	c.timer = time.AfterFunc(c.interval, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		// Only the most recently scheduled commit may fire. The commit
		// runs under the lock so a concurrent SuppressNext cannot slip
		// in between the check and the commit landing.
		if c.pending && c.seq == currentSeq && !c.closed {
			c.pending = false
			c.commit(c.current())
		}
	})
}

// SuppressNext sets the navigation guard and cancels any pending commit.
// Called immediately before an undo/redo restoration reaches the store;
// the next ContentChanged consumes the guard instead of scheduling.
func (c *Coalescer) SuppressNext() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.cancelLocked()
	c.guard = true
}

// Flush runs a pending commit immediately, cancelling its timer.
// A no-op when nothing is pending.
func (c *Coalescer) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.seq++

	if c.pending {
		c.pending = false
		c.commit(c.current())
	}
}

// Pending returns true if a commit is scheduled but has not fired.
func (c *Coalescer) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// Suppressed returns true while the navigation guard is set.
func (c *Coalescer) Suppressed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.guard
}

// Interval returns the configured quiet period.
func (c *Coalescer) Interval() time.Duration {
	return c.interval
}

// Close cancels any pending commit and disables the coalescer.
// Safe to call more than once.
func (c *Coalescer) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelLocked()
	c.guard = false
	c.closed = true
}

// cancelLocked stops the timer and invalidates in-flight callbacks.
func (c *Coalescer) cancelLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.seq++
	c.pending = false
}
