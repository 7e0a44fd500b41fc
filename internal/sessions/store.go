package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/transferdesk/advising-backend/internal/apierr"
	"github.com/transferdesk/advising-backend/internal/logger"
	"github.com/transferdesk/advising-backend/internal/utils"
)

// Session is the server-side record behind an access token. Deleting it
// revokes the token immediately, independent of the JWT expiry.
type Session struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
}

type Store interface {
	Create(ctx context.Context, userID uuid.UUID, role string) (string, error)
	Get(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
	Ping(ctx context.Context) error
}

type redisStore struct {
	client *redis.Client
	log    *logger.Logger
	ttl    time.Duration
}

func NewRedisStore(log *logger.Logger, ttl time.Duration) Store {
	storeLog := log.With("service", "SessionStore")
	addr := utils.GetEnv("REDIS_ADDR", "localhost:6379", log)
	password := utils.GetEnv("REDIS_PASSWORD", "", log)
	db := utils.GetEnvAsInt("REDIS_DB", 0, log)

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &redisStore{client: client, log: storeLog, ttl: ttl}
}

func sessionKey(id string) string { return "session:" + id }

func (s *redisStore) Create(ctx context.Context, userID uuid.UUID, role string) (string, error) {
	sessionID := uuid.NewString()
	payload, err := json.Marshal(Session{UserID: userID, Role: role})
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(sessionID), payload, s.ttl).Err(); err != nil {
		s.log.Error("Failed to store session", "error", err)
		return "", fmt.Errorf("store session: %w", err)
	}
	return sessionID, nil
}

func (s *redisStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	raw, err := s.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apierr.Unauthorized("session expired or revoked")
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &sess, nil
}

func (s *redisStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionKey(sessionID)).Err()
}

func (s *redisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
