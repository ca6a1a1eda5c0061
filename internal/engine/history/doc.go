// Package history provides the snapshot stack behind undo/redo.
//
// The stack holds full-document snapshots in chronological order plus a
// cursor marking the currently displayed snapshot. Key behaviors:
//
// # Commit
//
// Commit appends a snapshot after the cursor, discarding any redo entries
// beyond it. A commit equal to the snapshot at the cursor is dropped, so
// adjacent entries are never equal.
//
// # Navigation
//
// StepBack and StepForward move the cursor without changing the entries.
// Both are silent no-ops at the ends of the stack; CanStepBack and
// CanStepForward drive UI affordance instead of errors.
//
// # Bounds
//
// An optional max-entries cap trims the oldest entries on commit. The
// stack is never empty: it is seeded with the initial document snapshot
// at construction.
package history
