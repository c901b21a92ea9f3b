package usecases

import (
	"context"

	"tzsync/internal/domain/preference"
	"tzsync/internal/shared/logger"
)

type DeleteTimezoneCommand struct {
	UserID string
}

type DeleteTimezoneUseCase struct {
	repo    preference.Repository
	metrics MetricsRecorder
	logger  logger.Interface
}

func NewDeleteTimezoneUseCase(repo preference.Repository, metrics MetricsRecorder, logger logger.Interface) *DeleteTimezoneUseCase {
	return &DeleteTimezoneUseCase{
		repo:    repo,
		metrics: metrics,
		logger:  logger,
	}
}

// Execute removes the user's record. It succeeds whether or not one existed.
func (uc *DeleteTimezoneUseCase) Execute(ctx context.Context, cmd DeleteTimezoneCommand) error {
	if err := preference.ValidateUserID(cmd.UserID); err != nil {
		return err
	}

	writeCtx, cancel := detached(ctx)
	defer cancel()

	err := uc.repo.Delete(writeCtx, cmd.UserID)
	uc.metrics.RecordPreferenceWrite("delete", outcome(err))
	if err != nil {
		return err
	}

	uc.logger.Infow("timezone deleted", "user_id", cmd.UserID)
	return nil
}
