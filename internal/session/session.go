package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/splitmark/splitmark/internal/engine/coalesce"
	"github.com/splitmark/splitmark/internal/engine/history"
	"github.com/splitmark/splitmark/internal/engine/snapshot"
)

// Session coordinates the store, stack and coalescer for one document.
//
// Undo/redo run as one logical unit under the session lock: guard-set,
// cursor move and store restoration cannot interleave with each other.
type Session struct {
	mu sync.Mutex

	id    string
	store *snapshot.Store
	stack *history.Stack
	coal  *coalesce.Coalescer

	coalSub *snapshot.Subscription
	closed  bool
}

// Option configures a Session.
type Option func(*options)

type options struct {
	debounce   time.Duration
	maxHistory int
}

// WithDebounce sets the quiet window before an edit becomes a history
// entry. Zero or negative selects the coalescer default.
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		o.debounce = d
	}
}

// WithMaxHistory caps the number of history entries.
func WithMaxHistory(n int) Option {
	return func(o *options) {
		o.maxHistory = n
	}
}

// New creates a session seeded with the initial document content.
func New(initial string, opts ...Option) *Session {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	s := &Session{
		id:    uuid.NewString(),
		store: snapshot.NewStore(initial),
		stack: history.NewStack(initial, o.maxHistory),
	}
	s.coal = coalesce.New(o.debounce, s.store.Content, s.stack.Commit)

	// The coalescer observes the store like any other subscriber; edits
	// and restorations reach it through the same notification path.
	s.coalSub = s.store.Subscribe(func(string) {
		s.coal.ContentChanged()
	})

	return s
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// OnContentChange feeds a new snapshot from either editor view. The store
// is updated and subscribers notified synchronously; the history commit
// happens later, after the debounce window.
func (s *Session) OnContentChange(content string) {
	s.store.SetContent(content)
}

// CurrentSnapshot returns the value both editor views must render.
func (s *Session) CurrentSnapshot() string {
	return s.store.Content()
}

// Subscribe registers an observer for content changes (edits and
// undo/redo restorations alike).
func (s *Session) Subscribe(obs snapshot.Observer) *snapshot.Subscription {
	return s.store.Subscribe(obs)
}

// Undo steps back one history entry and restores it. Reports false when
// no older entry exists; the document is untouched in that case.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || !s.stack.CanStepBack() {
		return false
	}

	// Guard first: the restoration below must not be recorded as an edit.
	s.coal.SuppressNext()
	restored, ok := s.stack.StepBack()
	if !ok {
		return false
	}
	s.store.SetContent(restored)
	return true
}

// Redo steps forward one history entry and restores it. Reports false
// when no newer entry exists.
func (s *Session) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || !s.stack.CanStepForward() {
		return false
	}

	s.coal.SuppressNext()
	restored, ok := s.stack.StepForward()
	if !ok {
		return false
	}
	s.store.SetContent(restored)
	return true
}

// CanUndo reports whether an older snapshot is available.
func (s *Session) CanUndo() bool {
	return s.stack.CanStepBack()
}

// CanRedo reports whether a newer snapshot is available.
func (s *Session) CanRedo() bool {
	return s.stack.CanStepForward()
}

// Flush commits any pending debounced edit immediately. Used before save
// so the saved state is also the top history entry.
func (s *Session) Flush() {
	s.coal.Flush()
}

// HistoryLen returns the number of entries in the history stack.
func (s *Session) HistoryLen() int {
	return s.stack.Len()
}

// HistoryEntries returns a copy of the history snapshots, oldest first.
func (s *Session) HistoryEntries() []string {
	return s.stack.Entries()
}

// Close cancels any pending commit and detaches the coalescer.
// Safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true

	s.coal.Close()
	s.coalSub.Unsubscribe()
}
