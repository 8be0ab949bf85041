// Package eventlog provides a structured-log implementation of the event
// publisher port. Domain events are a best-effort hook; logging them gives
// operators a timeline without coupling the core to a message broker.
package eventlog

import (
	"context"
	"log/slog"

	"coffeeshop/internal/core/domain/events"
)

// Publisher logs every published domain event at info level.
type Publisher struct {
	logger *slog.Logger
}

// NewPublisher creates an event publisher writing to the given logger.
func NewPublisher(logger *slog.Logger) *Publisher {
	return &Publisher{
		logger: logger.With("component", "event_publisher"),
	}
}

// Publish logs the event. It never fails and never blocks on anything but
// the logger itself.
func (p *Publisher) Publish(ctx context.Context, event events.Event) {
	p.logger.InfoContext(ctx, "Domain event",
		"kind", event.Kind(),
		"occurred_at", event.OccurredAt(),
		"payload", event,
	)
}
