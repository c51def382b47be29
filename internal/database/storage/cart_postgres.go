package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/villa-93/mini-store/internal/core/ports"
	"github.com/villa-93/mini-store/internal/domain"
)

// CartStorage persists cart rows with sqlx.
type CartStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewCartStorage(db *sqlx.DB, logger *slog.Logger) *CartStorage {
	return &CartStorage{db: db, logger: logger}
}

// AddItem inserts the (user, product) row or increments its quantity when
// one already exists. The unique constraint on (user_id, product_id) makes
// the upsert safe under concurrent adds.
func (s *CartStorage) AddItem(ctx context.Context, userID, productID int64, quantity int) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO cart_items (user_id, product_id, quantity)
        VALUES ($1, $2, $3)
        ON CONFLICT (user_id, product_id)
        DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
    `, userID, productID, quantity)
	if err != nil {
		s.logger.Error("failed to add cart item",
			"user_id", userID,
			"product_id", productID,
			"error", err,
		)
		return fmt.Errorf("adding cart item: %w", err)
	}

	s.logger.Info("cart item added", "user_id", userID, "product_id", productID, "quantity", quantity)
	return nil
}

// ListForUser returns the user's cart rows joined with their products,
// using the current product price.
func (s *CartStorage) ListForUser(ctx context.Context, userID int64) ([]domain.CartLine, error) {
	q := `
	SELECT c.id, c.product_id, p.name AS product_name, p.image_url, p.price, c.quantity
	FROM cart_items c
	JOIN products p ON p.id = c.product_id
	WHERE c.user_id = $1
	ORDER BY c.id
	`

	var lines []domain.CartLine
	if err := s.db.SelectContext(ctx, &lines, q, userID); err != nil {
		s.logger.Error("failed to list cart", "user_id", userID, "error", err)
		return nil, fmt.Errorf("listing cart: %w", err)
	}
	return lines, nil
}

// UpdateQuantity sets the quantity of a cart row. The user_id predicate
// keeps users from touching rows that are not theirs.
func (s *CartStorage) UpdateQuantity(ctx context.Context, userID, itemID int64, quantity int) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE cart_items SET quantity = $1 WHERE id = $2 AND user_id = $3`,
		quantity, itemID, userID)
	if err != nil {
		s.logger.Error("failed to update cart item", "item_id", itemID, "error", err)
		return fmt.Errorf("updating cart item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("cart item %d for user %d: %w", itemID, userID, ports.ErrNotFound)
	}

	s.logger.Info("cart item updated", "user_id", userID, "item_id", itemID, "quantity", quantity)
	return nil
}

// RemoveItem deletes a cart row owned by the user.
func (s *CartStorage) RemoveItem(ctx context.Context, userID, itemID int64) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE id = $1 AND user_id = $2`,
		itemID, userID)
	if err != nil {
		s.logger.Error("failed to remove cart item", "item_id", itemID, "error", err)
		return fmt.Errorf("removing cart item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("cart item %d for user %d: %w", itemID, userID, ports.ErrNotFound)
	}

	s.logger.Info("cart item removed", "user_id", userID, "item_id", itemID)
	return nil
}
