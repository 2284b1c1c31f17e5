// Package events is an in-process bus for domain events. Subscribers run after
// the publishing request has returned, so they must not fail the request.
package events

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type Event interface {
	Kind() string
	ID() string
	At() time.Time
}

// Envelope carries the identity every event shares. Concrete events embed it.
type Envelope struct {
	EventID   string    `json:"id"`
	EventKind string    `json:"kind"`
	Occurred  time.Time `json:"occurred_at"`
}

func (e Envelope) Kind() string  { return e.EventKind }
func (e Envelope) ID() string    { return e.EventID }
func (e Envelope) At() time.Time { return e.Occurred }

type Handler func(ctx context.Context, event Event) error

// Publisher is the side of the bus that services depend on.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type EventBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	inflight sync.WaitGroup
	logger   *slog.Logger
}

func NewEventBus(logger *slog.Logger) *EventBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventBus{
		handlers: make(map[string][]Handler),
		logger:   logger,
	}
}

func (b *EventBus) Subscribe(kind string, handler Handler) {
	b.mu.Lock()
	b.handlers[kind] = append(b.handlers[kind], handler)
	n := len(b.handlers[kind])
	b.mu.Unlock()

	b.logger.Debug("event handler registered", "kind", kind, "handlers", n)
}

func (b *EventBus) subscribers(kind string) []Handler {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]Handler(nil), b.handlers[kind]...)
}

// Publish hands the event to every subscriber on its own goroutine and
// returns at once. Handler errors are logged.
func (b *EventBus) Publish(ctx context.Context, event Event) error {
	handlers := b.subscribers(event.Kind())
	if len(handlers) == 0 {
		b.logger.Debug("no handlers for event", "kind", event.Kind())
		return nil
	}

	detached := context.WithoutCancel(ctx)
	for _, h := range handlers {
		b.inflight.Add(1)
		go func(h Handler) {
			defer b.inflight.Done()
			if err := h(detached, event); err != nil {
				b.logger.ErrorContext(detached, "event handler failed",
					"kind", event.Kind(),
					"event_id", event.ID(),
					"error", err)
			}
		}(h)
	}
	return nil
}

// Drain waits for handlers started by Publish, or for ctx to end.
func (b *EventBus) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		b.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
