package memory

import (
	"context"
	"sync"

	"github.com/example/casetrack/internal/ports/secondary"
)

// Bus implements secondary.Bus in-process. Every subscriber on the same Bus
// value sees every published message, the publisher's own included, matching
// the redis adapter's delivery.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(secondary.Message)
}

// NewBus creates an in-memory bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]func(secondary.Message))}
}

// Publish delivers msg synchronously to every subscriber.
func (b *Bus) Publish(ctx context.Context, msg secondary.Message) error {
	b.mu.Lock()
	handlers := make([]func(secondary.Message), 0, len(b.subs))
	for _, h := range b.subs {
		handlers = append(handlers, h)
	}
	b.mu.Unlock()

	for _, h := range handlers {
		h(msg)
	}
	return nil
}

// Subscribe registers handler and returns its unsubscribe function.
func (b *Bus) Subscribe(ctx context.Context, handler func(secondary.Message)) (func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	b.subs[id] = handler
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}, nil
}

// Close drops all subscribers.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = make(map[int]func(secondary.Message))
	return nil
}
