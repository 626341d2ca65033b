package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "caredesk:session:"

// RedisStore keeps sessions in Redis so that multiple replicas share one
// session space. TTL is optional: zero means sessions live until explicit
// logout, matching the in-memory backend.
type RedisStore struct {
	client *redis.Client
	logger *slog.Logger
	ttl    time.Duration
}

// NewRedisStore constructs a Redis-backed store.
func NewRedisStore(client *redis.Client, logger *slog.Logger, ttl time.Duration) *RedisStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisStore{client: client, logger: logger, ttl: ttl}
}

// Create stores the session under a new token.
func (s *RedisStore) Create(ctx context.Context, sess UserSession) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	sess.Token = token
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(sess)
	if err != nil {
		return "", err
	}
	if err := s.client.Set(ctx, redisKeyPrefix+token, payload, s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Get returns the session for the token. Transport failures are logged and
// reported as a miss so that callers fail closed.
func (s *RedisStore) Get(ctx context.Context, token string) (*UserSession, bool) {
	payload, err := s.client.Get(ctx, redisKeyPrefix+token).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("session lookup", slog.Any("error", err))
		}
		return nil, false
	}
	var sess UserSession
	if err := json.Unmarshal(payload, &sess); err != nil {
		s.logger.Warn("session decode", slog.Any("error", err))
		return nil, false
	}
	return &sess, true
}

// Remove deletes the session for the token.
func (s *RedisStore) Remove(ctx context.Context, token string) bool {
	deleted, err := s.client.Del(ctx, redisKeyPrefix+token).Result()
	if err != nil {
		s.logger.Warn("session remove", slog.Any("error", err))
		return false
	}
	return deleted > 0
}

var _ Store = (*RedisStore)(nil)
