package client

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/villa-93/mini-store/internal/config"
)

// Client wraps the PostgreSQL connection pool shared by the sqlx storages.
type Client struct {
	DB     *sqlx.DB
	logger *slog.Logger
}

// NewClient opens the PostgreSQL connection and applies pending migrations.
func NewClient(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	start := time.Now()

	db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to open PostgreSQL connection", "error", err)
		return nil, fmt.Errorf("opening database connection: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err = db.Ping(); err != nil {
		logger.Error("failed to ping database", "error", err)
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	logger.Info("PostgreSQL connection established",
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if err := applyMigrations(cfg.DatabaseURL, logger); err != nil {
		return nil, fmt.Errorf("applying migrations: %w", err)
	}

	return &Client{DB: db, logger: logger}, nil
}

// applyMigrations runs all pending migrations against the database.
func applyMigrations(databaseURL string, logger *slog.Logger) error {
	m, err := migrate.New(
		"file://internal/database/client/migrations",
		databaseURL,
	)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}

	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("running migrations: %w", err)
	}

	if err == migrate.ErrNoChange {
		logger.Info("database schema is up to date")
	} else {
		logger.Info("migrations applied")
	}
	return nil
}

func (c *Client) Close() error {
	err := c.DB.Close()
	if err != nil {
		c.logger.Error("failed to close database connection", "error", err)
		return err
	}
	c.logger.Info("database connection closed")
	return nil
}
