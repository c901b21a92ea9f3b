package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"tzsync/internal/shared/biztime"
	"tzsync/internal/shared/constants"
	apperrors "tzsync/internal/shared/errors"
)

// DefaultStateTTL bounds how long a user may take at the provider's consent screen.
const DefaultStateTTL = 10 * time.Minute

// StateInfo is the pending login bound to an OAuth state token
type StateInfo struct {
	Provider     string    `json:"provider"`
	Redirect     string    `json:"redirect,omitempty"`
	CodeVerifier string    `json:"code_verifier,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// RedisStateStore provides Redis-based state storage for OAuth flows
type RedisStateStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStateStore creates a new RedisStateStore instance. A zero ttl
// falls back to DefaultStateTTL.
func NewRedisStateStore(client *redis.Client, ttl time.Duration) *RedisStateStore {
	if ttl <= 0 {
		ttl = DefaultStateTTL
	}
	return &RedisStateStore{
		client: client,
		prefix: constants.OAuthStateKeyPrefix,
		ttl:    ttl,
	}
}

// TTL returns how long a saved state stays valid
func (s *RedisStateStore) TTL() time.Duration {
	return s.ttl
}

// Save stores the pending login under state
func (s *RedisStateStore) Save(ctx context.Context, state string, info StateInfo) error {
	if state == "" {
		return apperrors.NewValidationError("state cannot be empty")
	}
	if info.Provider == "" {
		return apperrors.NewValidationError("state provider cannot be empty")
	}
	if info.CreatedAt.IsZero() {
		info.CreatedAt = biztime.NowUTC()
	}

	data, err := json.Marshal(info)
	if err != nil {
		return apperrors.NewInternalError("failed to encode state").WithCause(err)
	}

	if err := s.client.Set(ctx, s.buildKey(state), data, s.ttl).Err(); err != nil {
		return apperrors.NewStorageError("failed to store oauth state").WithCause(err)
	}

	return nil
}

// Consume returns the pending login for state and deletes it in the same
// GETDEL, so a state can be redeemed once.
func (s *RedisStateStore) Consume(ctx context.Context, state string) (*StateInfo, error) {
	if state == "" {
		return nil, apperrors.NewUnauthorizedError("missing oauth state")
	}

	data, err := s.client.GetDel(ctx, s.buildKey(state)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.NewUnauthorizedError("oauth state not found or expired")
		}
		return nil, apperrors.NewStorageError("failed to retrieve oauth state").WithCause(err)
	}

	var info StateInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, apperrors.NewUnauthorizedError("oauth state is corrupt")
	}

	return &info, nil
}

// buildKey constructs the full Redis key with prefix
func (s *RedisStateStore) buildKey(state string) string {
	return s.prefix + state
}
