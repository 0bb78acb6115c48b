// ABOUTME: Named publish/subscribe channel for decoupled components
// ABOUTME: Synchronous delivery, no payload, no cross-talk between names

// Package signal lets distant components request actions from each other
// without knowing about one another.
package signal

import "sync"

// Name identifies a signal
type Name string

// OpenContact asks the contact panel to open
const OpenContact Name = "open-contact"

// Handler is invoked on every publish of a subscribed signal
type Handler func()

// Bus is an explicit, non-global signal channel. It is passed to
// components at construction. The zero value is ready to use.
type Bus struct {
	mu       sync.Mutex
	handlers map[Name]map[uint64]Handler
	nextID   uint64
}

// New creates an empty bus
func New() *Bus {
	return &Bus{}
}

// Subscribe registers handler for name. The returned function removes it
// and is safe to call more than once.
func (b *Bus) Subscribe(name Name, handler Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.handlers == nil {
		b.handlers = make(map[Name]map[uint64]Handler)
	}

	if b.handlers[name] == nil {
		b.handlers[name] = make(map[uint64]Handler)
	}

	b.nextID++
	id := b.nextID
	b.handlers[name][id] = handler

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		delete(b.handlers[name], id)

		if len(b.handlers[name]) == 0 {
			delete(b.handlers, name)
		}
	}
}

// Publish notifies every current subscriber of name synchronously.
// Publishing with no subscribers is a no-op.
func (b *Bus) Publish(name Name) {
	b.mu.Lock()
	subscribers := make([]Handler, 0, len(b.handlers[name]))

	for _, h := range b.handlers[name] {
		subscribers = append(subscribers, h)
	}
	b.mu.Unlock()

	// Handlers run outside the lock so they may subscribe or publish
	for _, h := range subscribers {
		h()
	}
}

// Subscribers returns the number of handlers registered for name
func (b *Bus) Subscribers(name Name) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.handlers[name])
}
