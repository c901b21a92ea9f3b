package usecases

import (
	"context"

	"tzsync/internal/domain/preference"
	"tzsync/internal/shared/logger"
)

type ListTimezonesUseCase struct {
	repo   preference.Repository
	logger logger.Interface
}

func NewListTimezonesUseCase(repo preference.Repository, logger logger.Interface) *ListTimezonesUseCase {
	return &ListTimezonesUseCase{
		repo:   repo,
		logger: logger,
	}
}

// Execute returns every record ordered by user id.
func (uc *ListTimezonesUseCase) Execute(ctx context.Context) ([]*preference.Record, error) {
	return uc.repo.ListAll(ctx)
}
