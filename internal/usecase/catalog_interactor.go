package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/villa-93/mini-store/internal/core/ports"
	"github.com/villa-93/mini-store/internal/domain"
)

type catalogInteractor struct {
	products ports.ProductStorage
	files    ports.FileStorage
	logger   *slog.Logger
}

// NewCatalogUseCase builds the catalog interactor.
func NewCatalogUseCase(products ports.ProductStorage, files ports.FileStorage, logger *slog.Logger) CatalogUseCase {
	return &catalogInteractor{products: products, files: files, logger: logger}
}

func (c *catalogInteractor) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return c.products.ListAvailable(ctx)
}

func (c *catalogInteractor) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := c.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// UploadProductImage stores the image in the file storage and updates the
// product's image URL. Admin only.
func (c *catalogInteractor) UploadProductImage(ctx context.Context, identity domain.Identity, productID int64, reader io.Reader, contentType string) (string, error) {
	if identity.Role != domain.RoleAdmin {
		return "", ErrForbidden
	}

	product, err := c.products.GetByID(ctx, productID)
	if err != nil {
		return "", err
	}
	if product == nil {
		return "", ErrProductNotFound
	}

	key := fmt.Sprintf("products/%d/%s", productID, uuid.NewString())
	url, err := c.files.UploadFile(ctx, key, reader, contentType)
	if err != nil {
		return "", fmt.Errorf("uploading product image: %w", err)
	}

	if err := c.products.UpdateImage(ctx, productID, url); err != nil {
		// The row update failed, do not leave an orphan object behind.
		if delErr := c.files.DeleteFile(ctx, key); delErr != nil {
			c.logger.Error("failed to delete orphan image", "key", key, "error", delErr)
		}
		return "", err
	}

	c.logger.Info("product image uploaded", "product_id", productID, "url", url)
	return url, nil
}
