package event

import (
	"context"
	"sync"
)

// Topics published by the auth store. Subscribers are invoked
// synchronously in registration order, which is what guarantees the
// account row is hydrated before any profile loading starts.
const (
	TopicAccountResolved = "auth.account_resolved"
	TopicSessionCleared  = "auth.session_cleared"
)

// Handler receives a published payload for one topic.
type Handler func(ctx context.Context, payload interface{})

// Bus is a minimal synchronous in-process event bus. It decouples the
// auth store from the stores that react to session changes: the auth
// store publishes, everything else subscribes.
type Bus struct {
	mu   sync.RWMutex
	subs map[string][]Handler
}

func NewBus() *Bus {
	return &Bus{subs: make(map[string][]Handler)}
}

// Subscribe registers a handler for a topic. Registration is expected
// to happen during wiring, before any publishing starts.
func (b *Bus) Subscribe(topic string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[topic] = append(b.subs[topic], h)
}

// Publish delivers the payload to every subscriber of the topic,
// in registration order, on the caller's goroutine.
func (b *Bus) Publish(ctx context.Context, topic string, payload interface{}) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.subs[topic]))
	copy(handlers, b.subs[topic])
	b.mu.RUnlock()

	for _, h := range handlers {
		h(ctx, payload)
	}
}
