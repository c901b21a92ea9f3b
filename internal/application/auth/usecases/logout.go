package usecases

import (
	"context"

	"tzsync/internal/domain/session"
	"tzsync/internal/shared/logger"
)

type LogoutCommand struct {
	SessionToken string
}

type LogoutUseCase struct {
	sessions session.Store
	logger   logger.Interface
}

func NewLogoutUseCase(sessions session.Store, logger logger.Interface) *LogoutUseCase {
	return &LogoutUseCase{
		sessions: sessions,
		logger:   logger,
	}
}

// Execute deletes the session. An empty or unknown token is not an error.
func (uc *LogoutUseCase) Execute(ctx context.Context, cmd LogoutCommand) error {
	if cmd.SessionToken == "" {
		return nil
	}

	writeCtx, cancel := detached(ctx)
	defer cancel()

	if err := uc.sessions.Delete(writeCtx, cmd.SessionToken); err != nil {
		uc.logger.Errorw("failed to delete session", "error", err)
		return err
	}

	uc.logger.Infow("user logged out")
	return nil
}
