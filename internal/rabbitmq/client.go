package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/villa-93/mini-store/internal/config"
	"github.com/villa-93/mini-store/internal/messaging/payloads"
)

// Client is the RabbitMQ connection shared by publisher and consumer.
// It implements both ports.OrderEventPublisher and ports.OrderEventConsumer.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
	logger  *slog.Logger
}

// NewClient connects, opens a channel and declares the order events queue.
// Queue declaration is idempotent.
func NewClient(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	conn, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		return nil, fmt.Errorf("connecting to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("opening channel: %w", err)
	}

	q, err := ch.QueueDeclare(
		cfg.RabbitMQ.QueueName,
		true,  // durable, survive broker restarts
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return nil, fmt.Errorf("declaring queue: %w", err)
	}

	logger.Info("RabbitMQ connected", "queue", q.Name, "messages", q.Messages)

	return &Client{conn: conn, channel: ch, queue: q, logger: logger}, nil
}

// Close closes the channel and the connection.
func (c *Client) Close() error {
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			c.logger.Error("failed to close RabbitMQ channel", "error", err)
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			c.logger.Error("failed to close RabbitMQ connection", "error", err)
			return err
		}
	}
	return nil
}

// PublishOrderPlaced publishes an order-placed event to the queue.
func (c *Client) PublishOrderPlaced(ctx context.Context, payload payloads.OrderPlacedPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	publishCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = c.channel.PublishWithContext(
		publishCtx,
		"",           // exchange
		c.queue.Name, // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("publishing message: %w", err)
	}

	c.logger.Info("order event published", "order_id", payload.OrderID, "queue", c.queue.Name)
	return nil
}

// StartConsumingOrderPlaced starts consuming order events. Deliveries are
// acked only after the handler succeeds; handler failures NACK with
// requeue, malformed payloads NACK without.
func (c *Client) StartConsumingOrderPlaced(ctx context.Context, handler func(context.Context, payloads.OrderPlacedPayload) error) error {
	msgs, err := c.channel.Consume(
		c.queue.Name,
		"",    // consumer tag
		false, // auto-ack off, we ack manually
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("registering consumer: %w", err)
	}

	c.logger.Info("consumer registered, waiting for messages", "queue", c.queue.Name)

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					c.logger.Info("RabbitMQ channel closed, stopping consumer")
					return
				}

				var payload payloads.OrderPlacedPayload
				if err := json.Unmarshal(msg.Body, &payload); err != nil {
					c.logger.Error("failed to unmarshal message, discarding",
						"error", err,
						"body", string(msg.Body),
					)
					// Bad format, requeueing would loop forever.
					if err := msg.Nack(false, false); err != nil {
						c.logger.Error("failed to NACK message", "error", err)
					}
					continue
				}

				if err := handler(ctx, payload); err != nil {
					c.logger.Error("failed to process order event",
						"order_id", payload.OrderID,
						"error", err,
					)
					if err := msg.Nack(false, true); err != nil {
						c.logger.Error("failed to NACK message", "error", err)
					}
					continue
				}

				if err := msg.Ack(false); err != nil {
					c.logger.Error("failed to ACK message", "error", err)
				}
			case <-ctx.Done():
				c.logger.Info("context cancelled, stopping RabbitMQ consumer")
				return
			}
		}
	}()

	return nil
}
