package ports

import (
	"context"

	"coffeeshop/internal/core/domain/events"
)

// EventPublisher is the best-effort sink for domain events. Publish is
// fire-and-forget: implementations log or forward the event but never
// block the calling use case, and the core does not depend on delivery.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event)
}
