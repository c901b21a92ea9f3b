package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tzsync/internal/interfaces/http/handlers"
)

// SystemRouteConfig holds dependencies for health and metrics routes.
type SystemRouteConfig struct {
	HealthHandler  *handlers.HealthHandler
	MetricsHandler http.Handler
}

// SetupSystemRoutes configures operational endpoints.
func SetupSystemRoutes(engine *gin.Engine, cfg *SystemRouteConfig) {
	engine.GET("/health", cfg.HealthHandler.HealthCheck)
	engine.GET("/metrics", gin.WrapH(cfg.MetricsHandler))
}
