package usecases

import (
	"context"

	"tzsync/internal/domain/preference"
	"tzsync/internal/shared/logger"
)

type GetTimezoneQuery struct {
	UserID string
}

type GetTimezoneUseCase struct {
	repo   preference.Repository
	logger logger.Interface
}

func NewGetTimezoneUseCase(repo preference.Repository, logger logger.Interface) *GetTimezoneUseCase {
	return &GetTimezoneUseCase{
		repo:   repo,
		logger: logger,
	}
}

// Execute returns the stored record, or a not_found error when the user never
// set a timezone.
func (uc *GetTimezoneUseCase) Execute(ctx context.Context, query GetTimezoneQuery) (*preference.Record, error) {
	if err := preference.ValidateUserID(query.UserID); err != nil {
		return nil, err
	}

	return uc.repo.Get(ctx, query.UserID)
}
