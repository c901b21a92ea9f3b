package usecases

import (
	"context"

	"tzsync/internal/domain/preference"
	"tzsync/internal/domain/session"
	"tzsync/internal/shared/errors"
	"tzsync/internal/shared/logger"
)

type GetCurrentUserResult struct {
	User     session.Identity
	Timezone *string
}

type GetCurrentUserUseCase struct {
	repo   preference.Repository
	logger logger.Interface
}

func NewGetCurrentUserUseCase(repo preference.Repository, logger logger.Interface) *GetCurrentUserUseCase {
	return &GetCurrentUserUseCase{
		repo:   repo,
		logger: logger,
	}
}

// Execute pairs the session identity with the stored timezone. A user with no
// record gets a nil timezone; storage faults are returned.
func (uc *GetCurrentUserUseCase) Execute(ctx context.Context, user session.Identity) (*GetCurrentUserResult, error) {
	result := &GetCurrentUserResult{User: user}

	record, err := uc.repo.Get(ctx, user.ID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return result, nil
		}
		return nil, err
	}

	result.Timezone = record.Timezone
	return result, nil
}
