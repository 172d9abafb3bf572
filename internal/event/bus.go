// Package event carries real-time notifications from the backend to
// interested views. The dashboard subscribes to learn that its aggregate
// data changed without polling for it.
package event

import (
	"encoding/json"
	"sync"
	"time"
)

// Event names published by the backend.
const (
	DashboardUpdated = "dashboard.updated"
	CheckinCreated   = "checkin.created"
	EnrollmentSaved  = "enrollment.saved"
)

// Event is one named notification with an optional payload.
type Event struct {
	Name      string          `json:"name"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// Handler receives published events. Handlers run on the publisher's
// goroutine and must not block.
type Handler func(Event)

// Bus fans events out to named subscriptions.
type Bus interface {
	On(name string, fn Handler) (unsubscribe func())
	Publish(e Event)
}

// MemoryBus is an in-process Bus.
type MemoryBus struct {
	mu     sync.RWMutex
	subs   map[string]map[int]Handler
	nextID int
}

// NewBus creates an empty in-memory bus.
func NewBus() *MemoryBus {
	return &MemoryBus{subs: make(map[string]map[int]Handler)}
}

// On registers fn for events with the given name. The returned function
// removes the subscription; calling it more than once is harmless.
func (b *MemoryBus) On(name string, fn Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subs[name] == nil {
		b.subs[name] = make(map[int]Handler)
	}
	id := b.nextID
	b.nextID++
	b.subs[name][id] = fn

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs[name], id)
	}
}

// Publish delivers e to every handler subscribed to its name.
func (b *MemoryBus) Publish(e Event) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subs[e.Name]))
	for _, fn := range b.subs[e.Name] {
		handlers = append(handlers, fn)
	}
	b.mu.RUnlock()

	for _, fn := range handlers {
		fn(e)
	}
}
