// Package eventbus provides the contract for publishing domain events and
// an in-memory implementation suitable for a single-process deployment.
package eventbus

import (
	"context"
	"log/slog"
	"sync"
)

// Event is anything with an event type for routing. Domain events satisfy
// this implicitly.
type Event interface {
	EventType() string
}

// Bus publishes domain events to subscribed handlers.
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType string, handler func(context.Context, Event))
}

// Memory is an in-process Bus. Handlers run synchronously on the
// publishing goroutine, in subscription order.
type Memory struct {
	mu       sync.RWMutex
	handlers map[string][]func(context.Context, Event)
}

// NewMemory returns an empty in-memory bus.
func NewMemory() *Memory {
	return &Memory{handlers: make(map[string][]func(context.Context, Event))}
}

// Publish delivers the event to every handler subscribed to its type.
func (b *Memory) Publish(ctx context.Context, event Event) error {
	slog.Debug("eventbus publish", "event_type", event.EventType())
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, handler := range b.handlers[event.EventType()] {
		handler(ctx, event)
	}
	return nil
}

// Subscribe registers a handler for the given event type.
func (b *Memory) Subscribe(eventType string, handler func(context.Context, Event)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
