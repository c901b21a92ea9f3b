package http

import (
	"github.com/gin-gonic/gin"

	"tzsync/internal/infrastructure/metrics"
	"tzsync/internal/interfaces/http/middleware"
	"tzsync/internal/interfaces/http/routes"
)

// Router represents the HTTP router configuration
type Router struct {
	*Container
}

// NewRouter creates a new HTTP router with all dependencies
func NewRouter(deps Dependencies) *Router {
	return &Router{Container: NewContainer(deps)}
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	cfg := r.cfg

	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(r.log))
	r.engine.Use(middleware.Recovery(r.log))
	r.engine.Use(middleware.Metrics(r.metrics))
	r.engine.Use(middleware.SecurityHeaders())
	r.engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.CSRF(cfg.Server.AllowedOrigins))
	r.engine.Use(r.sessionMiddleware.Resolve())

	routes.SetupSystemRoutes(r.engine, &routes.SystemRouteConfig{
		HealthHandler:  r.hdlrs.healthHandler,
		MetricsHandler: metrics.Handler(r.registry),
	})

	routes.SetupAuthRoutes(r.engine, &routes.AuthRouteConfig{
		AuthHandler: r.hdlrs.authHandler,
		RateLimiter: r.rateLimiter,
	})

	routes.SetupTimezoneRoutes(r.engine, &routes.TimezoneRouteConfig{
		TimezoneHandler:   r.hdlrs.timezoneHandler,
		SessionMiddleware: r.sessionMiddleware,
		RateLimiter:       r.rateLimiter,
		PublicList:        cfg.Server.PublicList,
	})
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
