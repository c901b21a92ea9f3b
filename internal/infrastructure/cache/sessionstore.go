package cache

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"tzsync/internal/domain/session"
	"tzsync/internal/shared/biztime"
	"tzsync/internal/shared/constants"
	apperrors "tzsync/internal/shared/errors"
	"tzsync/internal/shared/logger"
)

// sessionTokenBytes is the entropy of a session token before encoding.
const sessionTokenBytes = 32

// RedisSessionStore keeps session records as JSON under "session:<token>".
// Expiry is delegated to Redis key TTLs.
type RedisSessionStore struct {
	client *redis.Client
	prefix string
	logger logger.Interface
}

// NewRedisSessionStore creates a session store backed by client
func NewRedisSessionStore(client *redis.Client, logger logger.Interface) *RedisSessionStore {
	return &RedisSessionStore{
		client: client,
		prefix: constants.SessionKeyPrefix,
		logger: logger,
	}
}

// GenerateSessionToken generates a cryptographically secure session token
func GenerateSessionToken() (string, error) {
	b := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Create stores a new session for user and returns it with its token
func (s *RedisSessionStore) Create(ctx context.Context, user session.Identity, provider, accessToken string, ttl time.Duration) (*session.Record, error) {
	if user.ID == "" {
		return nil, apperrors.NewValidationError("session user id cannot be empty")
	}
	if ttl <= 0 {
		return nil, apperrors.NewValidationError("session ttl must be positive")
	}

	token, err := GenerateSessionToken()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to create session").WithCause(err)
	}

	now := biztime.NowUTC()
	record := &session.Record{
		Token:       token,
		User:        user,
		Provider:    provider,
		AccessToken: accessToken,
		CreatedAt:   now,
		ExpiresAt:   now.Add(ttl),
	}

	data, err := json.Marshal(record)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to encode session").WithCause(err)
	}

	// NX so a token collision can never overwrite someone else's session
	ok, err := s.client.SetNX(ctx, s.buildKey(token), data, ttl).Result()
	if err != nil {
		s.logger.Errorw("failed to store session", "user_id", user.ID, "error", err)
		return nil, apperrors.NewStorageError("failed to store session").WithCause(err)
	}
	if !ok {
		return nil, apperrors.NewInternalError("session token collision")
	}

	return record, nil
}

// Resolve loads the session for token. Unknown, expired and corrupt entries
// all resolve as not found.
func (s *RedisSessionStore) Resolve(ctx context.Context, token string) (*session.Record, error) {
	if token == "" {
		return nil, apperrors.NewNotFoundError("session not found")
	}

	data, err := s.client.Get(ctx, s.buildKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.NewNotFoundError("session not found")
		}
		s.logger.Errorw("failed to load session", "error", err)
		return nil, apperrors.NewStorageError("failed to load session").WithCause(err)
	}

	var record session.Record
	if err := json.Unmarshal(data, &record); err != nil || record.User.ID == "" {
		s.logger.Warnw("discarding undecodable session record", "error", err)
		return nil, apperrors.NewNotFoundError("session not found")
	}

	if record.Expired(biztime.NowUTC()) {
		return nil, apperrors.NewNotFoundError("session expired")
	}

	record.Token = token
	return &record, nil
}

// Delete removes the session. Missing tokens are not an error.
func (s *RedisSessionStore) Delete(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.client.Del(ctx, s.buildKey(token)).Err(); err != nil {
		s.logger.Errorw("failed to delete session", "error", err)
		return apperrors.NewStorageError("failed to delete session").WithCause(err)
	}
	return nil
}

// Ping checks Redis connectivity
func (s *RedisSessionStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return apperrors.NewStorageError("redis unavailable").WithCause(err)
	}
	return nil
}

func (s *RedisSessionStore) buildKey(token string) string {
	return s.prefix + token
}
