package routes

import (
	"github.com/gin-gonic/gin"

	"tzsync/internal/interfaces/http/handlers"
	"tzsync/internal/interfaces/http/middleware"
)

// AuthRouteConfig holds dependencies for authentication routes.
type AuthRouteConfig struct {
	AuthHandler *handlers.AuthHandler
	RateLimiter *middleware.RateLimiter
}

// SetupAuthRoutes configures authentication routes.
func SetupAuthRoutes(engine *gin.Engine, cfg *AuthRouteConfig) {
	auth := engine.Group("/auth")
	auth.Use(cfg.RateLimiter.Limit())
	{
		auth.GET("/:provider", cfg.AuthHandler.InitiateLogin)
		auth.GET("/:provider/callback", cfg.AuthHandler.HandleCallback)
	}

	engine.POST("/logout", cfg.AuthHandler.Logout)
}
