// Package events carries the registry's notification signal.
//
// NewStudent is published once for every AddUser call made with the
// student role. Delivery is synchronous and in subscription order, so a
// caller that returns from AddUser knows every handler has already run.
package events

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNilHandler is returned by Subscribe when handler is nil.
var ErrNilHandler = errors.New("events: handler cannot be nil")

// NewStudent announces a student registration event.
type NewStudent struct {
	ID          uuid.UUID `json:"id"`
	Participant string    `json:"participant"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// NewStudentFor stamps a fresh event for participant.
func NewStudentFor(participant string) NewStudent {
	return NewStudent{
		ID:          uuid.New(),
		Participant: participant,
		OccurredAt:  time.Now().UTC(),
	}
}

// Handler reacts to a NewStudent event. A returned error is logged by
// the bus and never reaches the publisher.
type Handler func(NewStudent) error

// Publisher is what the academy needs from a bus.
type Publisher interface {
	Publish(NewStudent)
}

// Bus is an in-memory, synchronous Publisher.
type Bus struct {
	mu       sync.RWMutex
	handlers []Handler
	logger   *slog.Logger
}

// NewBus creates an empty bus. A nil logger falls back to slog.Default().
func NewBus(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{logger: logger}
}

// Subscribe appends handler to the delivery list.
func (b *Bus) Subscribe(handler Handler) error {
	if handler == nil {
		return ErrNilHandler
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers = append(b.handlers, handler)
	b.logger.Debug("subscribed handler", slog.Int("handlers", len(b.handlers)))
	return nil
}

// Publish delivers event to every handler subscribed so far.
func (b *Bus) Publish(event NewStudent) {
	// Snapshot so handlers may Subscribe without deadlocking.
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.RUnlock()

	if len(handlers) == 0 {
		b.logger.Debug("no handlers for event", slog.String("participant", event.Participant))
		return
	}

	for _, handler := range handlers {
		if err := handler(event); err != nil {
			b.logger.Error("handler error",
				slog.String("event_id", event.ID.String()),
				slog.String("participant", event.Participant),
				slog.String("error", err.Error()),
			)
		}
	}
}
