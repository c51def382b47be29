package usecase

import (
	"context"
	"log/slog"

	"github.com/villa-93/mini-store/internal/core/ports"
	"github.com/villa-93/mini-store/internal/domain"
)

type cartInteractor struct {
	carts    ports.CartStorage
	products ports.ProductStorage
	logger   *slog.Logger
}

// NewCartUseCase builds the cart interactor.
func NewCartUseCase(carts ports.CartStorage, products ports.ProductStorage, logger *slog.Logger) CartUseCase {
	return &cartInteractor{carts: carts, products: products, logger: logger}
}

func (c *cartInteractor) AddItem(ctx context.Context, userID, productID int64, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	product, err := c.products.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}

	return c.carts.AddItem(ctx, userID, productID, quantity)
}

func (c *cartInteractor) GetCart(ctx context.Context, userID int64) (domain.Cart, error) {
	lines, err := c.carts.ListForUser(ctx, userID)
	if err != nil {
		return domain.Cart{}, err
	}
	return domain.NewCart(lines), nil
}

func (c *cartInteractor) UpdateItem(ctx context.Context, userID, itemID int64, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	return c.carts.UpdateQuantity(ctx, userID, itemID, quantity)
}

func (c *cartInteractor) RemoveItem(ctx context.Context, userID, itemID int64) error {
	return c.carts.RemoveItem(ctx, userID, itemID)
}
