package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tzsync/internal/domain/session"
	"tzsync/internal/shared/config"
	apperrors "tzsync/internal/shared/errors"
	"tzsync/internal/shared/logger"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func testIdentity() session.Identity {
	avatar := "abc123"
	return session.Identity{ID: "42", Username: "alice", Avatar: &avatar}
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(context.Background(), &config.RedisConfig{
		URL:                   "redis://" + mr.Addr() + "/0",
		PoolSize:              3,
		ConnectTimeoutSeconds: 1,
	})
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, 3, client.Options().PoolSize)
	assert.Equal(t, time.Second, client.Options().PoolTimeout)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisClient(context.Background(), &config.RedisConfig{
		URL:                   "redis://" + addr,
		PoolSize:              1,
		ConnectTimeoutSeconds: 1,
	})
	assert.Error(t, err)
}

func TestGenerateSessionToken(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		token, err := GenerateSessionToken()
		require.NoError(t, err)
		assert.Len(t, token, 43)
		_, dup := seen[token]
		assert.False(t, dup)
		seen[token] = struct{}{}
	}
}

func TestSessionStore_CreateResolveDelete(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewRedisSessionStore(client, logger.NewNop())
	ctx := context.Background()

	record, err := store.Create(ctx, testIdentity(), "discord", "provider-token", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, record.Token)

	assert.True(t, mr.Exists("session:"+record.Token))
	assert.Equal(t, time.Hour, mr.TTL("session:"+record.Token))

	got, err := store.Resolve(ctx, record.Token)
	require.NoError(t, err)
	assert.Equal(t, record.Token, got.Token)
	assert.Equal(t, "42", got.User.ID)
	assert.Equal(t, "alice", got.User.Username)
	require.NotNil(t, got.User.Avatar)
	assert.Equal(t, "abc123", *got.User.Avatar)
	assert.Equal(t, "discord", got.Provider)
	assert.Equal(t, "provider-token", got.AccessToken)

	require.NoError(t, store.Delete(ctx, record.Token))
	require.NoError(t, store.Delete(ctx, record.Token))

	_, err = store.Resolve(ctx, record.Token)
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestSessionStore_ExpiresWithTTL(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewRedisSessionStore(client, logger.NewNop())
	ctx := context.Background()

	record, err := store.Create(ctx, testIdentity(), "discord", "tok", time.Minute)
	require.NoError(t, err)

	mr.FastForward(59 * time.Second)
	_, err = store.Resolve(ctx, record.Token)
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)
	_, err = store.Resolve(ctx, record.Token)
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestSessionStore_UnknownAndCorrupt(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewRedisSessionStore(client, logger.NewNop())
	ctx := context.Background()

	_, err := store.Resolve(ctx, "")
	assert.True(t, apperrors.IsNotFoundError(err))

	_, err = store.Resolve(ctx, "never-issued")
	assert.True(t, apperrors.IsNotFoundError(err))

	require.NoError(t, mr.Set("session:garbage", "{not json"))
	_, err = store.Resolve(ctx, "garbage")
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestSessionStore_CreateValidation(t *testing.T) {
	_, client := setupTestRedis(t)
	store := NewRedisSessionStore(client, logger.NewNop())

	_, err := store.Create(context.Background(), session.Identity{}, "discord", "tok", time.Hour)
	assert.True(t, apperrors.IsValidationError(err))

	_, err = store.Create(context.Background(), testIdentity(), "discord", "tok", 0)
	assert.True(t, apperrors.IsValidationError(err))
}

func TestSessionStore_StorageError(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewRedisSessionStore(client, logger.NewNop())
	mr.SetError("ERR simulated failure")

	_, err := store.Create(context.Background(), testIdentity(), "discord", "tok", time.Hour)
	assert.True(t, apperrors.IsStorageError(err))

	_, err = store.Resolve(context.Background(), "anything")
	assert.True(t, apperrors.IsStorageError(err))

	assert.True(t, apperrors.IsStorageError(store.Delete(context.Background(), "anything")))
	assert.True(t, apperrors.IsStorageError(store.Ping(context.Background())))
}

func TestStateStore_SaveConsumeOnce(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewRedisStateStore(client, 0)
	ctx := context.Background()

	assert.Equal(t, DefaultStateTTL, store.TTL())

	err := store.Save(ctx, "state-1", StateInfo{Provider: "discord", Redirect: "/me", CodeVerifier: "v"})
	require.NoError(t, err)
	assert.Equal(t, DefaultStateTTL, mr.TTL("oauth:state:state-1"))

	info, err := store.Consume(ctx, "state-1")
	require.NoError(t, err)
	assert.Equal(t, "discord", info.Provider)
	assert.Equal(t, "/me", info.Redirect)
	assert.Equal(t, "v", info.CodeVerifier)
	assert.False(t, info.CreatedAt.IsZero())

	_, err = store.Consume(ctx, "state-1")
	assert.True(t, apperrors.IsUnauthorizedError(err))
}

func TestStateStore_Expires(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewRedisStateStore(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s", StateInfo{Provider: "github"}))
	mr.FastForward(61 * time.Second)

	_, err := store.Consume(ctx, "s")
	assert.True(t, apperrors.IsUnauthorizedError(err))
}

func TestStateStore_Validation(t *testing.T) {
	_, client := setupTestRedis(t)
	store := NewRedisStateStore(client, time.Minute)
	ctx := context.Background()

	assert.True(t, apperrors.IsValidationError(store.Save(ctx, "", StateInfo{Provider: "discord"})))
	assert.True(t, apperrors.IsValidationError(store.Save(ctx, "s", StateInfo{})))

	_, err := store.Consume(ctx, "")
	assert.True(t, apperrors.IsUnauthorizedError(err))
}
