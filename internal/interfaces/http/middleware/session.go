package middleware

import (
	"github.com/gin-gonic/gin"

	"tzsync/internal/domain/session"
	"tzsync/internal/shared/config"
	"tzsync/internal/shared/constants"
	"tzsync/internal/shared/errors"
	"tzsync/internal/shared/logger"
	"tzsync/internal/shared/utils"
)

// SessionMetrics is the subset of the metrics recorder used here.
type SessionMetrics interface {
	RecordSessionResolution(outcome string)
}

type SessionMiddleware struct {
	store        session.Store
	cookieConfig config.CookieConfig
	metrics      SessionMetrics
	logger       logger.Interface
}

func NewSessionMiddleware(store session.Store, cookieConfig config.CookieConfig, metrics SessionMetrics, logger logger.Interface) *SessionMiddleware {
	return &SessionMiddleware{
		store:        store,
		cookieConfig: cookieConfig,
		metrics:      metrics,
		logger:       logger,
	}
}

// Resolve attaches the caller's session, if any, to the request. It never
// rejects a request; RequireSession does that.
func (m *SessionMiddleware) Resolve() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := utils.GetSessionToken(c, m.cookieConfig)
		if token == "" {
			m.metrics.RecordSessionResolution("anonymous")
			c.Next()
			return
		}

		record, err := m.store.Resolve(c.Request.Context(), token)
		switch {
		case err == nil:
			m.metrics.RecordSessionResolution("resolved")
			c.Request = c.Request.WithContext(session.WithRecord(c.Request.Context(), record))
		case errors.IsNotFoundError(err):
			m.metrics.RecordSessionResolution("stale")
			utils.ClearSessionCookie(c, m.cookieConfig)
		default:
			m.metrics.RecordSessionResolution("error")
			m.logger.Errorw("failed to resolve session", "error", err, "path", c.Request.URL.Path)
			c.Set(constants.ContextKeySessionError, err)
		}

		c.Next()
	}
}

// RequireSession rejects anonymous callers with 401. If resolution failed
// because the store was down, the caller gets the storage error instead.
func (m *SessionMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentSession(c); ok {
			c.Next()
			return
		}

		if v, exists := c.Get(constants.ContextKeySessionError); exists {
			if err, ok := v.(error); ok {
				utils.AbortWithError(c, err)
				return
			}
		}

		utils.AbortWithError(c, errors.NewUnauthorizedError("authentication required"))
	}
}

// ListAccess gates the directory listing unless it is configured public.
func (m *SessionMiddleware) ListAccess(public bool) gin.HandlerFunc {
	if public {
		return func(c *gin.Context) { c.Next() }
	}
	return m.RequireSession()
}

// CurrentSession returns the session resolved for this request.
func CurrentSession(c *gin.Context) (*session.Record, bool) {
	return session.FromContext(c.Request.Context())
}
