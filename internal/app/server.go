package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/villa-93/mini-store/internal/handler"
)

// runServer starts the HTTP server and blocks until ctx is cancelled.
func (a *App) runServer(ctx context.Context) error {
	authHandler := handler.NewAuthHandler(a.auth, a.logger)
	productHandler := handler.NewProductHandler(a.catalog, a.logger)
	cartHandler := handler.NewCartHandler(a.carts, a.logger)
	orderHandler := handler.NewOrderHandler(a.orders, a.logger)
	profileHandler := handler.NewProfileHandler(a.profile, a.logger)

	requireSession := handler.RequireSession(a.sessions, a.logger)

	r := chi.NewRouter()
	r.Use(handler.RequestLogger(a.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/api", func(r chi.Router) {
		// Public surface.
		r.Post("/registro", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Get("/sesion", authHandler.Session)
		r.Post("/recuperar-contrasena", authHandler.RecoverPassword)
		r.Post("/restablecer-contrasena", authHandler.ResetPassword)
		r.Get("/productos", productHandler.List)
		r.Get("/productos/{id}", productHandler.Get)

		// Everything else requires a valid session.
		r.Group(func(r chi.Router) {
			r.Use(requireSession)

			r.Post("/logout", authHandler.Logout)

			r.Post("/productos/{id}/imagen", productHandler.UploadImage)

			r.Post("/carrito", cartHandler.Add)
			r.Get("/carrito", cartHandler.Get)
			r.Put("/carrito/{id}", cartHandler.Update)
			r.Delete("/carrito/{id}", cartHandler.Delete)

			r.Post("/pedidos", orderHandler.Place)
			r.Get("/pedidos", orderHandler.List)
			r.Get("/pedidos/{id}", orderHandler.Detail)

			r.Get("/perfil", profileHandler.Get)
			r.Put("/perfil", profileHandler.Update)
		})
	})

	serverAddr := fmt.Sprintf(":%s", a.Config.ServerPort)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server listening", "addr", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	a.logger.Info("HTTP server stopped")
	return nil
}
