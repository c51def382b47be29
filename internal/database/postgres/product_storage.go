package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/villa-93/mini-store/internal/config"
	"github.com/villa-93/mini-store/internal/core/ports"
	"github.com/villa-93/mini-store/internal/domain"
)

// NewGormDB opens the GORM handle used by the catalog storage. It shares
// the DSN with the sqlx client; migrations run there.
func NewGormDB(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		logger.Error("failed to open GORM connection", "error", err)
		return nil, fmt.Errorf("opening GORM connection: %w", err)
	}

	logger.Info("GORM connection established")
	return db, nil
}

// ProductStorage reads the catalog with GORM.
type ProductStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewProductStorage(db *gorm.DB, logger *slog.Logger) *ProductStorage {
	return &ProductStorage{db: db, logger: logger}
}

// ListAvailable returns products with stock, newest first.
func (s *ProductStorage) ListAvailable(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	result := s.db.WithContext(ctx).
		Where("stock > 0").
		Order("id DESC").
		Find(&products)
	if result.Error != nil {
		s.logger.Error("failed to list products", "error", result.Error)
		return nil, fmt.Errorf("listing products: %w", result.Error)
	}
	return products, nil
}

// GetByID fetches one product. Missing products return (nil, nil).
func (s *ProductStorage) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	var product domain.Product
	result := s.db.WithContext(ctx).First(&product, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		s.logger.Error("failed to get product", "product_id", id, "error", result.Error)
		return nil, fmt.Errorf("selecting product: %w", result.Error)
	}
	return &product, nil
}

// UpdateImage sets the product's image URL after an upload.
func (s *ProductStorage) UpdateImage(ctx context.Context, id int64, imageURL string) error {
	result := s.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ?", id).
		Update("image_url", imageURL)
	if result.Error != nil {
		s.logger.Error("failed to update product image", "product_id", id, "error", result.Error)
		return fmt.Errorf("updating product image: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("product %d: %w", id, ports.ErrNotFound)
	}

	s.logger.Info("product image updated", "product_id", id)
	return nil
}
