package di

import (
	"github.com/villa-93/mini-store/internal/adapter/email"
	"github.com/villa-93/mini-store/internal/adapter/hasher"
	"github.com/villa-93/mini-store/internal/adapter/storage/minio"
	"github.com/villa-93/mini-store/internal/app"
	"github.com/villa-93/mini-store/internal/config"
	"github.com/villa-93/mini-store/internal/core/ports"
	"github.com/villa-93/mini-store/internal/database/client"
	"github.com/villa-93/mini-store/internal/database/postgres"
	"github.com/villa-93/mini-store/internal/database/storage"
	"github.com/villa-93/mini-store/internal/logger"
	"github.com/villa-93/mini-store/internal/rabbitmq"
	"github.com/villa-93/mini-store/internal/session"
	"github.com/villa-93/mini-store/internal/usecase"
)

// BuildApp initializes every dependency and returns the assembled App.
func BuildApp() (*app.App, error) {
	// 1. Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogger := logger.NewSlog(logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	// 2. PostgreSQL (sqlx pool + migrations, shared GORM handle)
	dbClient, err := client.NewClient(cfg, slogger)
	if err != nil {
		return nil, err
	}

	gormDB, err := postgres.NewGormDB(cfg, slogger)
	if err != nil {
		return nil, err
	}

	// 3. Storages
	userStorage := storage.NewUserStorage(dbClient.DB, slogger)
	cartStorage := storage.NewCartStorage(dbClient.DB, slogger)
	orderStorage := storage.NewOrderStorage(dbClient.DB, slogger)
	productStorage := postgres.NewProductStorage(gormDB, slogger)

	// 4. Session store (Redis)
	redisClient, err := session.NewRedisClient(cfg, slogger)
	if err != nil {
		return nil, err
	}
	sessions := session.NewRedisStore(redisClient, slogger)

	// 5. Password hasher
	passwordHasher := hasher.NewBcrypt(cfg.BcryptCost)

	// 6. File storage (MinIO / S3)
	fileStorage, err := minio.NewMinioClient(cfg, slogger)
	if err != nil {
		return nil, err
	}

	// 7. RabbitMQ (publisher on the server side, consumer on the worker side)
	rabbitClient, err := rabbitmq.NewClient(cfg, slogger)
	if err != nil {
		return nil, err
	}

	// 8. SMTP sender, only wired when configured; the worker refuses to
	// start without it.
	var mailSender ports.EmailSender
	if cfg.SMTP.Host != "" {
		mailSender, err = email.NewSMTPSender(cfg, slogger)
		if err != nil {
			return nil, err
		}
	}

	// 9. Business logic
	authUseCase := usecase.NewAuthUseCase(userStorage, sessions, passwordHasher, slogger)
	catalogUseCase := usecase.NewCatalogUseCase(productStorage, fileStorage, slogger)
	cartUseCase := usecase.NewCartUseCase(cartStorage, productStorage, slogger)
	orderUseCase := usecase.NewOrderUseCase(cartStorage, orderStorage, rabbitClient, slogger)
	profileUseCase := usecase.NewProfileUseCase(userStorage, passwordHasher, slogger)

	closers := []func() error{
		rabbitClient.Close,
		redisClient.Close,
		dbClient.Close,
	}

	// 10. Final assembly
	application := app.NewApp(
		cfg,
		slogger,
		authUseCase,
		catalogUseCase,
		cartUseCase,
		orderUseCase,
		profileUseCase,
		sessions,
		rabbitClient,
		mailSender,
		closers,
	)

	slogger.Info("all dependencies initialized")
	return application, nil
}
