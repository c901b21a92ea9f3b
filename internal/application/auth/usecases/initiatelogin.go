package usecases

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"tzsync/internal/infrastructure/cache"
	"tzsync/internal/shared/biztime"
	"tzsync/internal/shared/errors"
	"tzsync/internal/shared/logger"
	"tzsync/internal/shared/utils"
)

type InitiateLoginCommand struct {
	Provider string
	// Redirect is where the browser lands after login. Anything that is not a
	// relative path or an allowed origin is dropped.
	Redirect string
}

type InitiateLoginResult struct {
	AuthURL string
	State   string
}

type InitiateLoginUseCase struct {
	providers      ProviderRegistry
	stateStore     StateStore
	allowedOrigins []string
	logger         logger.Interface
}

func NewInitiateLoginUseCase(
	providers ProviderRegistry,
	stateStore StateStore,
	allowedOrigins []string,
	logger logger.Interface,
) *InitiateLoginUseCase {
	return &InitiateLoginUseCase{
		providers:      providers,
		stateStore:     stateStore,
		allowedOrigins: allowedOrigins,
		logger:         logger,
	}
}

func (uc *InitiateLoginUseCase) Execute(ctx context.Context, cmd InitiateLoginCommand) (*InitiateLoginResult, error) {
	provider, err := uc.providers.Get(cmd.Provider)
	if err != nil {
		return nil, err
	}

	state, err := generateState()
	if err != nil {
		uc.logger.Errorw("failed to generate state", "error", err)
		return nil, errors.NewInternalError("failed to start login").WithCause(err)
	}

	authURL, codeVerifier, err := provider.BuildAuthorizationURL(state, "")
	if err != nil {
		uc.logger.Errorw("failed to build authorization url", "error", err, "provider", cmd.Provider)
		return nil, err
	}

	redirect := utils.SafeRedirect(cmd.Redirect, uc.allowedOrigins)
	if cmd.Redirect != "" && redirect == "" {
		uc.logger.Warnw("dropping disallowed login redirect", "provider", cmd.Provider)
	}

	info := cache.StateInfo{
		Provider:     provider.Name(),
		Redirect:     redirect,
		CodeVerifier: codeVerifier,
		CreatedAt:    biztime.NowUTC(),
	}
	if err := uc.stateStore.Save(ctx, state, info); err != nil {
		uc.logger.Errorw("failed to store oauth state", "error", err, "provider", cmd.Provider)
		return nil, err
	}

	uc.logger.Infow("oauth login initiated", "provider", cmd.Provider)

	return &InitiateLoginResult{
		AuthURL: authURL,
		State:   state,
	}, nil
}

func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
