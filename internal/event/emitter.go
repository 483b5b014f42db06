// Package event provides generic event emission utilities.
package event

import "sync"

// Emitter fans events out to registered handlers. Safe for concurrent
// use; handlers run synchronously on the emitting goroutine.
type Emitter[E any] struct {
	mu sync.RWMutex
	// +checklocks:mu
	handlers map[int]func(E)
	// +checklocks:mu
	nextID int
}

// Subscribe registers a handler and returns a cancel function that
// removes it. Handlers registered during an Emit do not receive the
// in-flight event.
func (e *Emitter[E]) Subscribe(handler func(E)) (cancel func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.handlers == nil {
		e.handlers = make(map[int]func(E))
	}
	id := e.nextID
	e.nextID++
	e.handlers[id] = handler

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.handlers, id)
	}
}

// Emit delivers the event to every registered handler. The handler set
// is copied first so a handler may subscribe or cancel without
// deadlocking.
func (e *Emitter[E]) Emit(ev E) {
	e.mu.RLock()
	handlers := make([]func(E), 0, len(e.handlers))
	for _, h := range e.handlers {
		handlers = append(handlers, h)
	}
	e.mu.RUnlock()

	for _, h := range handlers {
		h(ev)
	}
}
