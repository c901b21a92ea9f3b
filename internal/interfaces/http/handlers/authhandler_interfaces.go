package handlers

import (
	"context"

	"tzsync/internal/application/auth/usecases"
)

// Use case interfaces for AuthHandler - enables unit testing with mocks.

type initiateLoginUseCase interface {
	Execute(ctx context.Context, cmd usecases.InitiateLoginCommand) (*usecases.InitiateLoginResult, error)
}

type handleCallbackUseCase interface {
	Execute(ctx context.Context, cmd usecases.HandleCallbackCommand) (*usecases.HandleCallbackResult, error)
}

type logoutUseCase interface {
	Execute(ctx context.Context, cmd usecases.LogoutCommand) error
}
