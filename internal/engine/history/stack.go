package history

import (
	"sync"
	"time"
)

// DefaultMaxEntries bounds the stack when no explicit cap is given.
const DefaultMaxEntries = 1000

// entry wraps a snapshot with commit metadata.
type entry struct {
	snapshot  string
	timestamp time.Time
}

// Stack manages the undo/redo snapshot sequence for one document session.
// All methods are safe for concurrent use.
type Stack struct {
	mu sync.Mutex

	entries []entry
	cursor  int

	maxEntries int
}

// NewStack creates a stack seeded with the initial document snapshot.
// The stack is never empty; the seed occupies index 0 with the cursor on it.
func NewStack(seed string, maxEntries int) *Stack {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Stack{
		entries:    []entry{{snapshot: seed, timestamp: time.Now()}},
		cursor:     0,
		maxEntries: maxEntries,
	}
}

// Commit records a new snapshot at the cursor.
//
// A snapshot equal to the one at the cursor is dropped. Otherwise entries
// beyond the cursor (the redo branch) are discarded, the snapshot is
// appended, and the cursor moves to it.
func (s *Stack) Commit(snapshot string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if snapshot == s.entries[s.cursor].snapshot {
		return
	}

	s.entries = append(s.entries[:s.cursor+1], entry{
		snapshot:  snapshot,
		timestamp: time.Now(),
	})
	s.cursor = len(s.entries) - 1

	s.trimLocked()
}

// trimLocked enforces maxEntries by dropping the oldest entries.
func (s *Stack) trimLocked() {
	if len(s.entries) <= s.maxEntries {
		return
	}
	excess := len(s.entries) - s.maxEntries
	s.entries = s.entries[excess:]
	s.cursor -= excess
	if s.cursor < 0 {
		s.cursor = 0
	}
}

// StepBack moves the cursor to the previous snapshot and returns it.
// At the oldest entry it is a no-op and reports false.
func (s *Stack) StepBack() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cursor == 0 {
		return "", false
	}
	s.cursor--
	return s.entries[s.cursor].snapshot, true
}

// StepForward moves the cursor to the next snapshot and returns it.
// At the newest entry it is a no-op and reports false.
func (s *Stack) StepForward() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cursor == len(s.entries)-1 {
		return "", false
	}
	s.cursor++
	return s.entries[s.cursor].snapshot, true
}

// CanStepBack returns true if an older snapshot is available.
func (s *Stack) CanStepBack() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor > 0
}

// CanStepForward returns true if a newer snapshot is available.
func (s *Stack) CanStepForward() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor < len(s.entries)-1
}

// Current returns the snapshot at the cursor.
func (s *Stack) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries[s.cursor].snapshot
}

// Len returns the number of entries in the stack.
func (s *Stack) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Cursor returns the index of the current snapshot.
func (s *Stack) Cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// Entries returns a copy of all snapshots in chronological order.
func (s *Stack) Entries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]string, len(s.entries))
	for i, e := range s.entries {
		result[i] = e.snapshot
	}
	return result
}

// Reset discards all history and reseeds the stack with the given snapshot.
func (s *Stack) Reset(seed string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = []entry{{snapshot: seed, timestamp: time.Now()}}
	s.cursor = 0
}

// SetMaxEntries changes the entry cap, trimming oldest entries if needed.
func (s *Stack) SetMaxEntries(max int) {
	if max <= 0 {
		max = DefaultMaxEntries
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.maxEntries = max
	s.trimLocked()
}

// MaxEntries returns the current entry cap.
func (s *Stack) MaxEntries() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxEntries
}
