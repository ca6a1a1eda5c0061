// Package coalesce turns the high-frequency content-change stream into
// infrequent history commits.
//
// A Coalescer watches content-change notifications and commits a snapshot
// only after a quiet period (the debounce window), so a burst of
// keystrokes produces a single undo step. Rescheduling supersedes any
// pending commit, and the committed value is read at fire time, so the
// commit always carries the last snapshot seen before the quiet window
// elapsed.
//
// The coalescer also owns the navigation guard: a one-shot flag set just
// before an undo/redo restoration reaches the store, consumed by the very
// next change notification so navigation is never recorded as an edit.
package coalesce
