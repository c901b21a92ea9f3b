package handlers

import (
	"context"

	"tzsync/internal/application/preference/usecases"
	"tzsync/internal/domain/preference"
	"tzsync/internal/domain/session"
)

// Use case interfaces for TimezoneHandler - enables unit testing with mocks.

type getTimezoneUseCase interface {
	Execute(ctx context.Context, query usecases.GetTimezoneQuery) (*preference.Record, error)
}

type setTimezoneUseCase interface {
	Execute(ctx context.Context, cmd usecases.SetTimezoneCommand) (*preference.Record, error)
}

type deleteTimezoneUseCase interface {
	Execute(ctx context.Context, cmd usecases.DeleteTimezoneCommand) error
}

type listTimezonesUseCase interface {
	Execute(ctx context.Context) ([]*preference.Record, error)
}

type getCurrentUserUseCase interface {
	Execute(ctx context.Context, user session.Identity) (*usecases.GetCurrentUserResult, error)
}
