package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tzsync/internal/domain/preference"
	"tzsync/internal/infrastructure/persistence/mappers"
	"tzsync/internal/infrastructure/persistence/models"
	apperrors "tzsync/internal/shared/errors"
	"tzsync/internal/shared/logger"
)

// TimezoneRepository implements preference.Repository
type TimezoneRepository struct {
	db           *gorm.DB
	logger       logger.Interface
	mapper       mappers.TimezoneMapper
	queryTimeout time.Duration
}

// NewTimezoneRepository creates a new TimezoneRepository. Every call is bounded
// by queryTimeout on top of the caller's context.
func NewTimezoneRepository(db *gorm.DB, queryTimeout time.Duration, logger logger.Interface) preference.Repository {
	return &TimezoneRepository{
		db:           db,
		logger:       logger,
		mapper:       mappers.NewTimezoneMapper(),
		queryTimeout: queryTimeout,
	}
}

func (r *TimezoneRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.queryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.queryTimeout)
}

// Get retrieves the record for userID
func (r *TimezoneRepository) Get(ctx context.Context, userID string) (*preference.Record, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var model models.TimezoneModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("no timezone set for this user")
		}
		r.logger.Errorw("failed to get timezone", "user_id", userID, "error", err)
		return nil, apperrors.NewStorageError("failed to load timezone").WithCause(err)
	}

	return r.mapper.ToDomain(&model), nil
}

// Upsert inserts or updates the record and returns the stored row
func (r *TimezoneRepository) Upsert(ctx context.Context, userID, username, timezone string) (*preference.Record, error) {
	if err := preference.ValidateUserID(userID); err != nil {
		return nil, err
	}
	tz, err := preference.ParseTimezone(timezone)
	if err != nil {
		return nil, err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	model := &models.TimezoneModel{
		UserID:   userID,
		Username: username,
		Timezone: &tz,
	}

	var stored models.TimezoneModel
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"username", "timezone", "updated_at"}),
		}).Create(model).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).First(&stored).Error
	})
	if err != nil {
		r.logger.Errorw("failed to upsert timezone", "user_id", userID, "error", err)
		return nil, apperrors.NewStorageError("failed to save timezone").WithCause(err)
	}

	return r.mapper.ToDomain(&stored), nil
}

// Delete removes the record for userID. Deleting a missing record succeeds.
func (r *TimezoneRepository) Delete(ctx context.Context, userID string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.TimezoneModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to delete timezone", "user_id", userID, "error", result.Error)
		return apperrors.NewStorageError("failed to delete timezone").WithCause(result.Error)
	}

	return nil
}

// ListAll returns every record ordered by user id
func (r *TimezoneRepository) ListAll(ctx context.Context) ([]*preference.Record, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var modelList []*models.TimezoneModel
	err := r.db.WithContext(ctx).
		Order("user_id ASC").
		Find(&modelList).Error
	if err != nil {
		r.logger.Errorw("failed to list timezones", "error", err)
		return nil, apperrors.NewStorageError("failed to list timezones").WithCause(err)
	}

	return r.mapper.ToDomainList(modelList), nil
}

// Ping checks database connectivity
func (r *TimezoneRepository) Ping(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	sqlDB, err := r.db.DB()
	if err != nil {
		return apperrors.NewStorageError("database unavailable").WithCause(err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return apperrors.NewStorageError("database unavailable").WithCause(err)
	}
	return nil
}
