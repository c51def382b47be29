package app

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/villa-93/mini-store/internal/config"
	"github.com/villa-93/mini-store/internal/core/ports"
	"github.com/villa-93/mini-store/internal/usecase"
)

// App bundles everything the two run modes need.
type App struct {
	Config *config.Config
	logger *slog.Logger

	auth    usecase.AuthUseCase
	catalog usecase.CatalogUseCase
	carts   usecase.CartUseCase
	orders  usecase.OrderUseCase
	profile usecase.ProfileUseCase

	sessions ports.SessionStore
	consumer ports.OrderEventConsumer
	mail     ports.EmailSender

	closers []func() error
}

func NewApp(
	cfg *config.Config,
	logger *slog.Logger,
	auth usecase.AuthUseCase,
	catalog usecase.CatalogUseCase,
	carts usecase.CartUseCase,
	orders usecase.OrderUseCase,
	profile usecase.ProfileUseCase,
	sessions ports.SessionStore,
	consumer ports.OrderEventConsumer,
	mail ports.EmailSender,
	closers []func() error,
) *App {
	return &App{
		Config:   cfg,
		logger:   logger,
		auth:     auth,
		catalog:  catalog,
		carts:    carts,
		orders:   orders,
		profile:  profile,
		sessions: sessions,
		consumer: consumer,
		mail:     mail,
		closers:  closers,
	}
}

// LoggerIns exposes the configured logger to main.
func (a *App) LoggerIns() *slog.Logger {
	return a.logger
}

// Run starts the selected mode and blocks until a termination signal.
func (a *App) Run(ctx context.Context, mode *string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.logger.Info("starting", "mode", *mode)

	var err error
	switch *mode {
	case "server":
		err = a.runServer(ctx)
	case "worker":
		err = a.runWorker(ctx)
	default:
		err = fmt.Errorf("unknown mode %q (use 'server' or 'worker')", *mode)
	}
	if err != nil {
		return err
	}

	if closeErr := a.Shutdown(); closeErr != nil {
		a.logger.Error("error during shutdown", "error", closeErr)
	}

	a.logger.Info("stopped cleanly")
	return nil
}

// Shutdown closes every resource registered by the container.
func (a *App) Shutdown() error {
	var firstErr error
	for _, close := range a.closers {
		if err := close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
