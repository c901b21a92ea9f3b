package usecases

import (
	"context"

	"tzsync/internal/domain/preference"
	"tzsync/internal/domain/session"
	"tzsync/internal/shared/logger"
)

type SetTimezoneCommand struct {
	User     session.Identity
	Timezone string
}

type SetTimezoneUseCase struct {
	repo    preference.Repository
	metrics MetricsRecorder
	logger  logger.Interface
}

func NewSetTimezoneUseCase(repo preference.Repository, metrics MetricsRecorder, logger logger.Interface) *SetTimezoneUseCase {
	return &SetTimezoneUseCase{
		repo:    repo,
		metrics: metrics,
		logger:  logger,
	}
}

// Execute validates the timezone before touching the store, then upserts it
// under the session user's id and last known username.
func (uc *SetTimezoneUseCase) Execute(ctx context.Context, cmd SetTimezoneCommand) (*preference.Record, error) {
	if err := preference.ValidateUserID(cmd.User.ID); err != nil {
		return nil, err
	}
	tz, err := preference.ParseTimezone(cmd.Timezone)
	if err != nil {
		uc.metrics.RecordPreferenceWrite("set", "invalid")
		return nil, err
	}

	writeCtx, cancel := detached(ctx)
	defer cancel()

	record, err := uc.repo.Upsert(writeCtx, cmd.User.ID, cmd.User.Username, tz)
	uc.metrics.RecordPreferenceWrite("set", outcome(err))
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("timezone set", "user_id", record.UserID, "timezone", record.TimezoneOrEmpty())
	return record, nil
}
