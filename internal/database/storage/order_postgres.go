package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/villa-93/mini-store/internal/domain"
)

// OrderStorage persists orders, line items and payment records with sqlx.
type OrderStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewOrderStorage(db *sqlx.DB, logger *slog.Logger) *OrderStorage {
	return &OrderStorage{db: db, logger: logger}
}

// CreateOrder writes the order, its line items and its payment and clears
// the user's cart in a single transaction. Either everything lands or
// nothing does; there is no partially placed order.
func (s *OrderStorage) CreateOrder(ctx context.Context, order *domain.Order, items []domain.OrderLineItem, payment *domain.Payment) error {
	start := time.Now()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning order transaction: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowxContext(ctx, `
        INSERT INTO orders (user_id, total, shipping_address, status, created_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `, order.UserID, order.Total, order.ShippingAddress, order.Status, order.CreatedAt).Scan(&order.ID)
	if err != nil {
		s.logger.Error("failed to insert order", "user_id", order.UserID, "error", err)
		return fmt.Errorf("inserting order: %w", err)
	}

	for i := range items {
		items[i].OrderID = order.ID
		if _, err = tx.ExecContext(ctx, `
            INSERT INTO order_items (order_id, product_id, quantity, unit_price, subtotal)
            VALUES ($1, $2, $3, $4, $5)
        `, items[i].OrderID, items[i].ProductID, items[i].Quantity, items[i].UnitPrice, items[i].Subtotal); err != nil {
			s.logger.Error("failed to insert order item",
				"order_id", order.ID,
				"product_id", items[i].ProductID,
				"error", err,
			)
			return fmt.Errorf("inserting order item: %w", err)
		}
	}

	payment.OrderID = order.ID
	err = tx.QueryRowxContext(ctx, `
        INSERT INTO payments (order_id, method, total, status, reference)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `, payment.OrderID, payment.Method, payment.Total, payment.Status, payment.Reference).Scan(&payment.ID)
	if err != nil {
		s.logger.Error("failed to insert payment", "order_id", order.ID, "error", err)
		return fmt.Errorf("inserting payment: %w", err)
	}

	if _, err = tx.ExecContext(ctx,
		`DELETE FROM cart_items WHERE user_id = $1`, order.UserID); err != nil {
		s.logger.Error("failed to clear cart", "user_id", order.UserID, "error", err)
		return fmt.Errorf("clearing cart: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing order transaction: %w", err)
	}

	s.logger.Info("order created",
		"order_id", order.ID,
		"user_id", order.UserID,
		"total", order.Total.String(),
		"items", len(items),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// ListByUser returns the user's orders, newest first.
func (s *OrderStorage) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	var orders []domain.Order
	q := `SELECT * FROM orders WHERE user_id = $1 ORDER BY created_at DESC`

	if err := s.db.SelectContext(ctx, &orders, q, userID); err != nil {
		s.logger.Error("failed to list orders", "user_id", userID, "error", err)
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	return orders, nil
}

// GetDetail returns the joined detail rows of one of the user's orders
// (order + payment + line items + product names). An order belonging to a
// different user yields no rows.
func (s *OrderStorage) GetDetail(ctx context.Context, userID, orderID int64) ([]domain.OrderDetailRow, error) {
	q := `
	SELECT o.id AS order_id, o.total, o.shipping_address, o.status, o.created_at,
	       pa.method, pa.reference, pa.status AS payment_status,
	       pr.name AS product_name, d.quantity, d.unit_price, d.subtotal
	FROM orders o
	JOIN payments pa ON pa.order_id = o.id
	JOIN order_items d ON d.order_id = o.id
	JOIN products pr ON pr.id = d.product_id
	WHERE o.id = $1 AND o.user_id = $2
	ORDER BY d.id
	`

	var rows []domain.OrderDetailRow
	if err := s.db.SelectContext(ctx, &rows, q, orderID, userID); err != nil {
		s.logger.Error("failed to get order detail", "order_id", orderID, "error", err)
		return nil, fmt.Errorf("selecting order detail: %w", err)
	}
	return rows, nil
}
