package app

import (
	"context"
	"fmt"

	"github.com/villa-93/mini-store/internal/messaging/payloads"
)

// runWorker consumes order-placed events and sends the confirmation mail.
// It blocks until ctx is cancelled.
func (a *App) runWorker(ctx context.Context) error {
	if a.mail == nil {
		return fmt.Errorf("worker mode requires SMTP configuration (SMTP_HOST, SMTP_PORT, SMTP_SENDER_EMAIL)")
	}

	a.logger.Info("worker started, waiting for order events")

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	messageHandler := func(ctx context.Context, payload payloads.OrderPlacedPayload) error {
		a.logger.Info("processing order event",
			"order_id", payload.OrderID,
			"reference", payload.Reference,
		)

		subject := fmt.Sprintf("Pedido #%d confirmado", payload.OrderID)
		body := fmt.Sprintf(
			"Hola %s,\n\nTu pedido #%d fue recibido.\nTotal: %s\nReferencia de pago: %s\n\nGracias por tu compra.",
			payload.UserName, payload.OrderID, payload.Total, payload.Reference,
		)

		if err := a.mail.Send(ctx, payload.UserEmail, subject, body); err != nil {
			return fmt.Errorf("sending confirmation email: %w", err)
		}

		a.logger.Info("confirmation email sent", "order_id", payload.OrderID)
		return nil
	}

	if err := a.consumer.StartConsumingOrderPlaced(workerCtx, messageHandler); err != nil {
		return fmt.Errorf("starting order event consumer: %w", err)
	}

	<-ctx.Done()
	a.logger.Info("worker shutting down")
	return nil
}
