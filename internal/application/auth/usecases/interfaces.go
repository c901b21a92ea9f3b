package usecases

import (
	"context"
	"time"

	"tzsync/internal/infrastructure/auth"
	"tzsync/internal/infrastructure/cache"
)

// StateStore defines the interface for OAuth state storage
type StateStore interface {
	Save(ctx context.Context, state string, info cache.StateInfo) error
	Consume(ctx context.Context, state string) (*cache.StateInfo, error)
}

// ProviderRegistry resolves a provider by route name.
type ProviderRegistry interface {
	Get(name string) (auth.Provider, error)
}

// MetricsRecorder receives login outcomes.
type MetricsRecorder interface {
	RecordLogin(provider, outcome string)
}

// writeTimeout bounds session writes that run detached from the request.
const writeTimeout = 5 * time.Second

func detached(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
}
