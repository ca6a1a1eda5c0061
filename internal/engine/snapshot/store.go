package snapshot

import (
	"sync"
)

// Observer is called with the new document value after each change.
type Observer func(content string)

// Subscription represents an active observer registration.
type Subscription struct {
	id    uint64
	store *Store
}

// Unsubscribe removes this subscription. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s.store != nil {
		s.store.unsubscribe(s.id)
	}
}

// subscriber pairs an observer with its registration order.
type subscriber struct {
	id       uint64
	observer Observer
}

// Store holds the current document snapshot and its subscribers.
// All methods are safe for concurrent use.
type Store struct {
	mu sync.RWMutex

	content string

	// Ordered by subscription; delivery order is part of the contract.
	subscribers []subscriber
	nextID      uint64
}

// NewStore creates a store holding the initial document value.
func NewStore(initial string) *Store {
	return &Store{content: initial}
}

// Content returns the current document value.
func (s *Store) Content() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.content
}

// SetContent replaces the document value and notifies all subscribers
// synchronously, in subscription order. The call returns after every
// observer has run.
func (s *Store) SetContent(content string) {
	s.mu.Lock()
	s.content = content

	observers := make([]Observer, len(s.subscribers))
	for i, sub := range s.subscribers {
		observers[i] = sub.observer
	}
	s.mu.Unlock()

	// Observers run outside the lock so they may read the store.
	for _, obs := range observers {
		obs(content)
	}
}

// Subscribe registers an observer for content changes.
func (s *Store) Subscribe(observer Observer) *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subscribers = append(s.subscribers, subscriber{id: id, observer: observer})

	return &Subscription{id: id, store: s}
}

// SubscriberCount returns the number of active subscriptions.
func (s *Store) SubscriberCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subscribers)
}

// unsubscribe removes a subscriber by ID, preserving order of the rest.
func (s *Store) unsubscribe(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, sub := range s.subscribers {
		if sub.id == id {
			s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
			return
		}
	}
}
