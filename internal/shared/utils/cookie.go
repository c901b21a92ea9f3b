package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tzsync/internal/shared/config"
	"tzsync/internal/shared/constants"
)

// SetSessionCookie stores the opaque session token as an HttpOnly cookie.
func SetSessionCookie(c *gin.Context, cookieConfig config.CookieConfig, token string, maxAge int) {
	c.SetSameSite(parseSameSite(cookieConfig.SameSite))
	c.SetCookie(
		cookieConfig.Name,
		token,
		maxAge,
		cookieConfig.Path,
		cookieConfig.Domain,
		cookieConfig.Secure,
		true, // HttpOnly
	)
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(c *gin.Context, cookieConfig config.CookieConfig) {
	SetSessionCookie(c, cookieConfig, "", -1)
}

// GetSessionToken returns the session cookie value or "" when absent.
func GetSessionToken(c *gin.Context, cookieConfig config.CookieConfig) string {
	token, err := c.Cookie(cookieConfig.Name)
	if err != nil {
		return ""
	}
	return token
}

// SetStateCookie binds a pending OAuth login to this browser. SameSite=Lax is
// required here so the cookie survives the top-level redirect back from the provider.
func SetStateCookie(c *gin.Context, cookieConfig config.CookieConfig, state string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		constants.OAuthStateCookie,
		state,
		maxAge,
		cookieConfig.Path,
		cookieConfig.Domain,
		cookieConfig.Secure,
		true,
	)
}

// ClearStateCookie removes the pending-login cookie.
func ClearStateCookie(c *gin.Context, cookieConfig config.CookieConfig) {
	SetStateCookie(c, cookieConfig, "", -1)
}

// GetStateCookie returns the pending-login state or "".
func GetStateCookie(c *gin.Context) string {
	state, err := c.Cookie(constants.OAuthStateCookie)
	if err != nil {
		return ""
	}
	return state
}

// parseSameSite converts string to http.SameSite
func parseSameSite(sameSite string) http.SameSite {
	switch sameSite {
	case "Strict":
		return http.SameSiteStrictMode
	default:
		return http.SameSiteLaxMode
	}
}
