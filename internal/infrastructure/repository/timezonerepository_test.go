package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tzsync/internal/domain/preference"
	"tzsync/internal/infrastructure/persistence/models"
	apperrors "tzsync/internal/shared/errors"
	applogger "tzsync/internal/shared/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.TimezoneModel{}))
	return db
}

func newTestRepo(t *testing.T) (preference.Repository, *gorm.DB) {
	db := setupTestDB(t)
	return NewTimezoneRepository(db, 5*time.Second, applogger.NewNop()), db
}

func TestTimezoneRepository_GetMissing(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.Get(context.Background(), "42")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestTimezoneRepository_UpsertThenGet(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	for _, tz := range []string{"Europe/Paris", "America/New_York", "Asia/Tokyo", "UTC", "Australia/Lord_Howe"} {
		t.Run(tz, func(t *testing.T) {
			saved, err := repo.Upsert(ctx, "42", "alice", tz)
			require.NoError(t, err)
			assert.Equal(t, tz, saved.TimezoneOrEmpty())

			got, err := repo.Get(ctx, "42")
			require.NoError(t, err)
			assert.Equal(t, tz, got.TimezoneOrEmpty())
			assert.Equal(t, "alice", got.Username)
		})
	}
}

func TestTimezoneRepository_UpsertUpdatesAndPreservesCreatedAt(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	first, err := repo.Upsert(ctx, "42", "alice", "Europe/Paris")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	second, err := repo.Upsert(ctx, "42", "alice2", "Asia/Tokyo")
	require.NoError(t, err)

	assert.Equal(t, "alice2", second.Username)
	assert.Equal(t, "Asia/Tokyo", second.TimezoneOrEmpty())
	assert.True(t, first.CreatedAt.Equal(second.CreatedAt), "created_at must not change on update")
	assert.False(t, second.UpdatedAt.Before(first.UpdatedAt))
}

func TestTimezoneRepository_InvalidTimezoneLeavesRecord(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Upsert(ctx, "42", "alice", "Europe/Paris")
	require.NoError(t, err)

	_, err = repo.Upsert(ctx, "42", "alice", "Not/AZone")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))

	got, err := repo.Get(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, "Europe/Paris", got.TimezoneOrEmpty())
}

func TestTimezoneRepository_InvalidTimezoneOnFreshUser(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Upsert(ctx, "7", "bob", "Mars/Olympus")
	assert.True(t, apperrors.IsValidationError(err))

	_, err = repo.Get(ctx, "7")
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestTimezoneRepository_DeleteIsIdempotent(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Upsert(ctx, "42", "alice", "Europe/Paris")
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, "42"))
	require.NoError(t, repo.Delete(ctx, "42"))

	_, err = repo.Get(ctx, "42")
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestTimezoneRepository_ListAll(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	zones := []string{"Europe/Paris", "Asia/Tokyo", "America/Chicago", "Africa/Lagos"}
	for i, tz := range zones {
		_, err := repo.Upsert(ctx, fmt.Sprintf("user-%d", len(zones)-i), fmt.Sprintf("name-%d", i), "UTC")
		require.NoError(t, err)
		_, err = repo.Upsert(ctx, fmt.Sprintf("user-%d", len(zones)-i), fmt.Sprintf("name-%d", i), tz)
		require.NoError(t, err)
	}

	records, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, len(zones))

	for i := 1; i < len(records); i++ {
		assert.Less(t, records[i-1].UserID, records[i].UserID)
	}
	// user-4 was written first with Europe/Paris
	assert.Equal(t, "user-1", records[0].UserID)
	assert.Equal(t, "Africa/Lagos", records[0].TimezoneOrEmpty())
	assert.Equal(t, "Europe/Paris", records[3].TimezoneOrEmpty())
}

func TestTimezoneRepository_StorageErrors(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, db.Migrator().DropTable(&models.TimezoneModel{}))

	_, err := repo.Get(ctx, "42")
	assert.True(t, apperrors.IsStorageError(err))

	_, err = repo.Upsert(ctx, "42", "alice", "Europe/Paris")
	assert.True(t, apperrors.IsStorageError(err))

	_, err = repo.ListAll(ctx)
	assert.True(t, apperrors.IsStorageError(err))

	assert.True(t, apperrors.IsStorageError(repo.Delete(ctx, "42")))
}

func TestTimezoneRepository_Ping(t *testing.T) {
	repo, _ := newTestRepo(t)
	assert.NoError(t, repo.Ping(context.Background()))
}
