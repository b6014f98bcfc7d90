package config

import (
	"sync"

	"github.com/google/uuid"
)

// Observer is called with the new settings after a reload.
type Observer func(cfg Config)

// Subscription is the handle for one registered observer.
type Subscription struct {
	id       uuid.UUID
	notifier *Notifier
}

// Unsubscribe removes the observer. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s.notifier != nil {
		s.notifier.unsubscribe(s.id)
		s.notifier = nil
	}
}

// Notifier fans out configuration reloads to subscribed observers.
// Observers are called synchronously on the goroutine that publishes.
type Notifier struct {
	mu        sync.RWMutex
	observers map[uuid.UUID]Observer
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{observers: make(map[uuid.UUID]Observer)}
}

// Subscribe registers an observer and returns its handle.
func (n *Notifier) Subscribe(obs Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := uuid.New()
	n.observers[id] = obs
	return &Subscription{id: id, notifier: n}
}

// Publish delivers the new settings to every observer.
func (n *Notifier) Publish(cfg Config) {
	n.mu.RLock()
	observers := make([]Observer, 0, len(n.observers))
	for _, obs := range n.observers {
		observers = append(observers, obs)
	}
	n.mu.RUnlock()

	// Called outside the lock so an observer may unsubscribe itself.
	for _, obs := range observers {
		obs(cfg)
	}
}

// Len returns the number of active subscriptions.
func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.observers)
}

func (n *Notifier) unsubscribe(id uuid.UUID) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.observers, id)
}
