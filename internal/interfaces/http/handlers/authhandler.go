package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tzsync/internal/application/auth/usecases"
	"tzsync/internal/shared/config"
	"tzsync/internal/shared/errors"
	"tzsync/internal/shared/logger"
	"tzsync/internal/shared/utils"
)

type AuthHandler struct {
	initiateLoginUC  initiateLoginUseCase
	handleCallbackUC handleCallbackUseCase
	logoutUC         logoutUseCase
	cookieConfig     config.CookieConfig
	sessionTTL       time.Duration
	stateTTL         time.Duration
	defaultRedirect  string
	logger           logger.Interface
}

func NewAuthHandler(
	initiateLoginUC *usecases.InitiateLoginUseCase,
	handleCallbackUC *usecases.HandleCallbackUseCase,
	logoutUC *usecases.LogoutUseCase,
	authConfig config.AuthConfig,
	defaultRedirect string,
	logger logger.Interface,
) *AuthHandler {
	return &AuthHandler{
		initiateLoginUC:  initiateLoginUC,
		handleCallbackUC: handleCallbackUC,
		logoutUC:         logoutUC,
		cookieConfig:     authConfig.Cookie,
		sessionTTL:       authConfig.Session.TTL(),
		stateTTL:         authConfig.Session.StateTTL(),
		defaultRedirect:  defaultRedirect,
		logger:           logger,
	}
}

// InitiateLogin handles GET /auth/:provider
func (h *AuthHandler) InitiateLogin(c *gin.Context) {
	provider := c.Param("provider")

	cmd := usecases.InitiateLoginCommand{
		Provider: provider,
		Redirect: c.Query("redirect"),
	}

	result, err := h.initiateLoginUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		h.logger.Warnw("login initiation failed", "error", err, "provider", provider)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SetStateCookie(c, h.cookieConfig, result.State, int(h.stateTTL.Seconds()))
	c.Redirect(http.StatusFound, result.AuthURL)
}

// HandleCallback handles GET /auth/:provider/callback
func (h *AuthHandler) HandleCallback(c *gin.Context) {
	provider := c.Param("provider")

	cmd := usecases.HandleCallbackCommand{
		Provider:      provider,
		Code:          c.Query("code"),
		State:         c.Query("state"),
		CookieState:   utils.GetStateCookie(c),
		ProviderError: c.Query("error"),
	}

	result, err := h.handleCallbackUC.Execute(c.Request.Context(), cmd)

	// the pending login is over either way
	utils.ClearStateCookie(c, h.cookieConfig)

	if err != nil {
		h.logCallbackFailure(provider, err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SetSessionCookie(c, h.cookieConfig, result.Session.Token, int(h.sessionTTL.Seconds()))

	redirect := result.Redirect
	if redirect == "" {
		redirect = h.defaultRedirect
	}
	c.Redirect(http.StatusFound, redirect)
}

// logCallbackFailure keeps rejected logins at warn and upstream outages at error.
func (h *AuthHandler) logCallbackFailure(provider string, err error) {
	switch {
	case errors.IsUnauthorizedError(err):
		h.logger.Warnw("login rejected", "provider", provider, "error", err)
	case errors.IsProviderError(err):
		h.logger.Errorw("identity provider unavailable", "provider", provider, "error", err)
	default:
		h.logger.Warnw("login failed", "provider", provider, "error", err)
	}
}

// Logout handles POST /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	token := utils.GetSessionToken(c, h.cookieConfig)

	if err := h.logoutUC.Execute(c.Request.Context(), usecases.LogoutCommand{SessionToken: token}); err != nil {
		h.logger.Errorw("logout failed", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ClearSessionCookie(c, h.cookieConfig)
	utils.SuccessResponse(c, http.StatusOK, "logged out")
}
