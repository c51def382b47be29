package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/villa-93/mini-store/internal/config"
	"github.com/villa-93/mini-store/internal/domain"
)

const (
	sessionKeyPrefix = "session:"

	// Matches the session cookie max-age.
	sessionTTL = 24 * time.Hour
)

// RedisStore keeps authenticated identities in Redis under opaque uuid
// session ids with a fixed 24h expiry.
type RedisStore struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(cfg *config.Config, logger *slog.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("failed to ping Redis", "addr", cfg.RedisAddr, "error", err)
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	logger.Info("Redis connection established", "addr", cfg.RedisAddr)
	return client, nil
}

func NewRedisStore(client *redis.Client, logger *slog.Logger) *RedisStore {
	return &RedisStore{client: client, logger: logger}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

// Create stores the identity under a fresh session id and returns the id.
func (s *RedisStore) Create(ctx context.Context, identity domain.Identity) (string, error) {
	id := uuid.NewString()

	data, err := json.Marshal(identity)
	if err != nil {
		return "", fmt.Errorf("marshaling session identity: %w", err)
	}

	if err := s.client.Set(ctx, sessionKey(id), data, sessionTTL).Err(); err != nil {
		s.logger.Error("failed to store session", "user_id", identity.ID, "error", err)
		return "", fmt.Errorf("storing session: %w", err)
	}

	s.logger.Info("session created", "user_id", identity.ID)
	return id, nil
}

// Get resolves a session id. Missing or expired sessions return (nil, nil).
func (s *RedisStore) Get(ctx context.Context, sessionID string) (*domain.Identity, error) {
	val, err := s.client.Get(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		s.logger.Error("failed to get session", "error", err)
		return nil, fmt.Errorf("getting session: %w", err)
	}

	var identity domain.Identity
	if err := json.Unmarshal([]byte(val), &identity); err != nil {
		return nil, fmt.Errorf("unmarshaling session identity: %w", err)
	}
	return &identity, nil
}

// Destroy removes the session. Unknown ids are a no-op.
func (s *RedisStore) Destroy(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		s.logger.Error("failed to destroy session", "error", err)
		return fmt.Errorf("destroying session: %w", err)
	}
	return nil
}
