package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds every configuration parameter of the application.
type Config struct {
	DatabaseURL string `env:"DATABASE_URL,required"`
	ServerPort  string `env:"SERVER_PORT" envDefault:"8080"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Redis, backs the session store.
	RedisAddr     string `env:"REDIS_ADDR,required"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB"`

	// Cost passed to bcrypt; 0 means the library default.
	BcryptCost int `env:"BCRYPT_COST"`

	RabbitMQ struct {
		URL       string `env:"RABBITMQ_URL,required"`
		QueueName string `env:"RABBITMQ_QUEUE_NAME" envDefault:"order_events_queue"`
	}

	// MinIO / S3, backs product image storage.
	MinioEndpoint        string `env:"MINIO_ENDPOINT,required"`
	MinioAccessKeyID     string `env:"MINIO_ACCESS_KEY_ID,required"`
	MinioSecretAccessKey string `env:"MINIO_SECRET_ACCESS_KEY,required"`
	MinioUseSSL          bool   `env:"MINIO_USE_SSL"`
	MinioBucketName      string `env:"MINIO_BUCKET_NAME,required"`
	MinioRegion          string `env:"MINIO_REGION,required"`

	// SMTP, used only in worker mode for order confirmation mail.
	SMTP struct {
		Host        string `env:"SMTP_HOST"`
		Port        int    `env:"SMTP_PORT" envDefault:"587"`
		Username    string `env:"SMTP_USERNAME"`
		Password    string `env:"SMTP_PASSWORD"`
		SenderEmail string `env:"SMTP_SENDER_EMAIL"`
	}
}

// LoadConfig reads configuration from the environment. In development it
// loads a .env file first when one is present.
func LoadConfig() (*Config, error) {
	if _, err := os.Stat(".env"); !os.IsNotExist(err) {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("loading .env file: %w", err)
		}
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration from environment: %w", err)
	}

	return &cfg, nil
}
