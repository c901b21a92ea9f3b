package routes

import (
	"github.com/gin-gonic/gin"

	"tzsync/internal/interfaces/http/handlers"
	"tzsync/internal/interfaces/http/middleware"
)

// TimezoneRouteConfig holds dependencies for the preference routes.
type TimezoneRouteConfig struct {
	TimezoneHandler   *handlers.TimezoneHandler
	SessionMiddleware *middleware.SessionMiddleware
	RateLimiter       *middleware.RateLimiter
	PublicList        bool
}

// SetupTimezoneRoutes configures the timezone preference routes.
func SetupTimezoneRoutes(engine *gin.Engine, cfg *TimezoneRouteConfig) {
	requireSession := cfg.SessionMiddleware.RequireSession()

	engine.GET("/get", cfg.TimezoneHandler.GetTimezone)
	engine.GET("/list", cfg.SessionMiddleware.ListAccess(cfg.PublicList), cfg.TimezoneHandler.ListTimezones)

	engine.POST("/set", requireSession, cfg.RateLimiter.Limit(), cfg.TimezoneHandler.SetTimezone)
	engine.DELETE("/delete", requireSession, cfg.TimezoneHandler.DeleteTimezone)
	engine.GET("/me", requireSession, cfg.TimezoneHandler.GetCurrentUser)
}
