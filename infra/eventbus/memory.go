package eventbus

import (
	"context"
	"log/slog"
	"sync"

	"github.com/amirasaad/corebank/pkg/domain/events"
	"github.com/amirasaad/corebank/pkg/eventbus"
)

// MemoryPublisher keeps published events in memory and hands them to any
// subscribed handler synchronously. It stands in for the broker in tests and
// in single-process runs without RABBITMQ_URL.
type MemoryPublisher struct {
	mu        sync.RWMutex
	handlers  []eventbus.HandlerFunc
	published []events.Event
	logger    *slog.Logger
}

// NewWithMemory creates an in-memory publisher.
func NewWithMemory(logger *slog.Logger) *MemoryPublisher {
	return &MemoryPublisher{logger: logger.With("bus", "memory")}
}

// Subscribe registers a handler for every published event.
func (b *MemoryPublisher) Subscribe(handler eventbus.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, handler)
}

func (b *MemoryPublisher) Publish(ctx context.Context, evt events.Event) {
	b.mu.Lock()
	b.published = append(b.published, evt)
	handlers := append([]eventbus.HandlerFunc(nil), b.handlers...)
	b.mu.Unlock()

	for _, handler := range handlers {
		if err := handler(ctx, evt); err != nil {
			b.logger.Error("Event handling failed", "event_id", evt.ID(), "action", evt.Type(), "error", err)
		}
	}
}

// Published returns a copy of every event published so far.
func (b *MemoryPublisher) Published() []events.Event {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]events.Event(nil), b.published...)
}

// ClearPublished forgets recorded events.
func (b *MemoryPublisher) ClearPublished() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = nil
}

var _ eventbus.Publisher = (*MemoryPublisher)(nil)
