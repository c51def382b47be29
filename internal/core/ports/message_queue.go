package ports

import (
	"context"

	"github.com/villa-93/mini-store/internal/messaging/payloads"
)

// OrderEventPublisher publishes order-placed events after a successful
// order placement. Used by the HTTP side.
type OrderEventPublisher interface {
	PublishOrderPlaced(ctx context.Context, payload payloads.OrderPlacedPayload) error
}

// OrderEventConsumer consumes order-placed events. Used by the worker to
// send confirmation email.
type OrderEventConsumer interface {
	// StartConsumingOrderPlaced starts listening on the queue and invokes
	// handler for every delivered event.
	StartConsumingOrderPlaced(ctx context.Context, handler func(context.Context, payloads.OrderPlacedPayload) error) error
}

// EmailSender delivers plain text mail.
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}
