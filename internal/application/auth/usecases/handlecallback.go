package usecases

import (
	"context"
	"crypto/subtle"
	"time"

	"tzsync/internal/domain/session"
	"tzsync/internal/shared/constants"
	"tzsync/internal/shared/errors"
	"tzsync/internal/shared/logger"
)

type HandleCallbackCommand struct {
	Provider string
	Code     string
	State    string
	// CookieState is the state bound to this browser when login started.
	CookieState string
	// ProviderError is the "error" parameter a provider sends on denial.
	ProviderError string
}

type HandleCallbackResult struct {
	Session  *session.Record
	Redirect string
}

type HandleCallbackUseCase struct {
	providers  ProviderRegistry
	stateStore StateStore
	sessions   session.Store
	sessionTTL time.Duration
	metrics    MetricsRecorder
	logger     logger.Interface
}

func NewHandleCallbackUseCase(
	providers ProviderRegistry,
	stateStore StateStore,
	sessions session.Store,
	sessionTTL time.Duration,
	metrics MetricsRecorder,
	logger logger.Interface,
) *HandleCallbackUseCase {
	return &HandleCallbackUseCase{
		providers:  providers,
		stateStore: stateStore,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		metrics:    metrics,
		logger:     logger,
	}
}

// Execute finishes a login. The state is checked against the browser cookie
// and redeemed from the store before the provider is contacted.
func (uc *HandleCallbackUseCase) Execute(ctx context.Context, cmd HandleCallbackCommand) (*HandleCallbackResult, error) {
	if cmd.ProviderError != "" {
		uc.metrics.RecordLogin(cmd.Provider, "denied")
		uc.logger.Warnw("provider returned an error", "provider", cmd.Provider, "error_code", cmd.ProviderError)
		return nil, errors.NewUnauthorizedError(constants.GetOAuthErrorMessageFromString(cmd.ProviderError))
	}

	if cmd.Code == "" {
		uc.metrics.RecordLogin(cmd.Provider, string(constants.OAuthErrorMissingCode))
		return nil, errors.NewBadRequestError(constants.GetOAuthErrorMessage(constants.OAuthErrorMissingCode))
	}

	if err := uc.verifyState(cmd); err != nil {
		uc.metrics.RecordLogin(cmd.Provider, "state_mismatch")
		return nil, err
	}

	provider, err := uc.providers.Get(cmd.Provider)
	if err != nil {
		return nil, err
	}

	stateInfo, err := uc.stateStore.Consume(ctx, cmd.State)
	if err != nil {
		uc.metrics.RecordLogin(cmd.Provider, "state_mismatch")
		if errors.IsStorageError(err) {
			return nil, err
		}
		uc.logger.Warnw("oauth state not redeemable", "provider", cmd.Provider, "error", err)
		return nil, errors.NewUnauthorizedError(constants.GetOAuthErrorMessage(constants.OAuthErrorInvalidState))
	}
	if stateInfo.Provider != provider.Name() {
		uc.metrics.RecordLogin(cmd.Provider, "state_mismatch")
		uc.logger.Warnw("oauth state issued for another provider",
			"provider", cmd.Provider, "state_provider", stateInfo.Provider)
		return nil, errors.NewUnauthorizedError(constants.GetOAuthErrorMessage(constants.OAuthErrorInvalidState))
	}

	accessToken, err := provider.ExchangeCode(ctx, cmd.Code, stateInfo.CodeVerifier)
	if err != nil {
		uc.metrics.RecordLogin(cmd.Provider, string(constants.OAuthErrorExchangeFailed))
		uc.logger.Errorw("token exchange failed", "provider", cmd.Provider, "error", err)
		return nil, err
	}

	identity, err := provider.FetchProfile(ctx, accessToken)
	if err != nil {
		uc.metrics.RecordLogin(cmd.Provider, string(constants.OAuthErrorProfileFailed))
		uc.logger.Errorw("profile fetch failed", "provider", cmd.Provider, "error", err)
		return nil, err
	}

	writeCtx, cancel := detached(ctx)
	defer cancel()

	record, err := uc.sessions.Create(writeCtx, *identity, provider.Name(), accessToken, uc.sessionTTL)
	if err != nil {
		uc.metrics.RecordLogin(cmd.Provider, "session_failed")
		return nil, err
	}

	uc.metrics.RecordLogin(cmd.Provider, "success")
	uc.logger.Infow("user logged in", "provider", cmd.Provider, "user_id", identity.ID)

	return &HandleCallbackResult{
		Session:  record,
		Redirect: stateInfo.Redirect,
	}, nil
}

// verifyState checks the query state against the cookie bound at login start.
func (uc *HandleCallbackUseCase) verifyState(cmd HandleCallbackCommand) error {
	if cmd.State == "" {
		return errors.NewUnauthorizedError(constants.GetOAuthErrorMessage(constants.OAuthErrorMissingState))
	}
	if cmd.CookieState == "" || subtle.ConstantTimeCompare([]byte(cmd.State), []byte(cmd.CookieState)) != 1 {
		uc.logger.Warnw("oauth state does not match browser cookie", "provider", cmd.Provider)
		return errors.NewUnauthorizedError(constants.GetOAuthErrorMessage(constants.OAuthErrorInvalidState))
	}
	return nil
}
