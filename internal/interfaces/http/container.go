package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authUsecases "tzsync/internal/application/auth/usecases"
	preferenceUsecases "tzsync/internal/application/preference/usecases"
	"tzsync/internal/infrastructure/auth"
	"tzsync/internal/infrastructure/cache"
	"tzsync/internal/infrastructure/config"
	"tzsync/internal/infrastructure/metrics"
	"tzsync/internal/infrastructure/ratelimit"
	"tzsync/internal/infrastructure/repository"
	"tzsync/internal/interfaces/http/handlers"
	"tzsync/internal/interfaces/http/middleware"
	"tzsync/internal/shared/logger"
)

// Dependencies are the long-lived resources the container is built from.
// Providers and Registry are optional; they default to the configured OAuth
// providers and a fresh Prometheus registry.
type Dependencies struct {
	Config    *config.Config
	DB        *gorm.DB
	Redis     *redis.Client
	Providers *auth.Registry
	Registry  *prometheus.Registry
	Logger    logger.Interface
}

// Container holds all infrastructure components, repositories, use cases,
// handlers and middlewares, and wires them together.
type Container struct {
	// Core infrastructure
	engine    *gin.Engine
	db        *gorm.DB
	cfg       *config.Config
	log       logger.Interface
	redis     *redis.Client
	providers *auth.Registry
	registry  *prometheus.Registry
	metrics   *metrics.Collector

	// Repositories
	repos *repositories

	// Use cases
	ucs *allUseCases

	// Handlers
	hdlrs *allHandlers

	// Middlewares
	sessionMiddleware *middleware.SessionMiddleware
	rateLimiter       *middleware.RateLimiter
}

// NewContainer creates a new Container with all dependencies wired together.
func NewContainer(deps Dependencies) *Container {
	c := &Container{
		engine:    newEngine(deps.Config.Server.TrustedProxies, deps.Logger),
		db:        deps.DB,
		cfg:       deps.Config,
		log:       deps.Logger,
		redis:     deps.Redis,
		providers: deps.Providers,
		registry:  deps.Registry,
	}

	// Section 1: Infrastructure - stores, providers, metrics
	c.initInfrastructure()

	// Section 2: Use cases
	c.initUseCases()

	// Section 3: Handlers and middlewares
	c.initHandlers()

	return c
}

// newEngine builds the gin engine. Client IPs come from X-Forwarded-For only
// when the peer is a trusted proxy, so the per-IP limiter cannot be dodged by
// rewriting the header.
func newEngine(trustedProxies []string, log logger.Interface) *gin.Engine {
	engine := gin.New()
	if len(trustedProxies) == 0 {
		trustedProxies = nil
	}
	if err := engine.SetTrustedProxies(trustedProxies); err != nil {
		log.Errorw("invalid trusted proxies, trusting none", "error", err)
		_ = engine.SetTrustedProxies(nil)
	}
	return engine
}

func (c *Container) initInfrastructure() {
	if c.providers == nil {
		c.providers = auth.NewRegistry(c.cfg.OAuth)
	}
	if c.registry == nil {
		c.registry = metrics.NewRegistry()
	}
	c.metrics = metrics.NewCollector(c.registry)

	c.repos = &repositories{
		timezoneRepo: repository.NewTimezoneRepository(c.db, c.cfg.Database.QueryTimeout(), c.log),
		sessionStore: cache.NewRedisSessionStore(c.redis, c.log),
		stateStore:   cache.NewRedisStateStore(c.redis, c.cfg.Auth.Session.StateTTL()),
	}

	c.log.Infow("identity providers enabled", "providers", c.providers.Names())
}

func (c *Container) initUseCases() {
	repos := c.repos

	c.ucs = &allUseCases{
		getTimezoneUC:    preferenceUsecases.NewGetTimezoneUseCase(repos.timezoneRepo, c.log),
		setTimezoneUC:    preferenceUsecases.NewSetTimezoneUseCase(repos.timezoneRepo, c.metrics, c.log),
		deleteTimezoneUC: preferenceUsecases.NewDeleteTimezoneUseCase(repos.timezoneRepo, c.metrics, c.log),
		listTimezonesUC:  preferenceUsecases.NewListTimezonesUseCase(repos.timezoneRepo, c.log),
		getCurrentUserUC: preferenceUsecases.NewGetCurrentUserUseCase(repos.timezoneRepo, c.log),

		initiateLoginUC: authUsecases.NewInitiateLoginUseCase(
			c.providers, repos.stateStore, c.cfg.Server.AllowedOrigins, c.log,
		),
		handleCallbackUC: authUsecases.NewHandleCallbackUseCase(
			c.providers, repos.stateStore, repos.sessionStore, c.cfg.Auth.Session.TTL(), c.metrics, c.log,
		),
		logoutUC: authUsecases.NewLogoutUseCase(repos.sessionStore, c.log),
	}
}

func (c *Container) initHandlers() {
	ucs := c.ucs

	c.hdlrs = &allHandlers{
		timezoneHandler: handlers.NewTimezoneHandler(
			ucs.getTimezoneUC, ucs.setTimezoneUC, ucs.deleteTimezoneUC,
			ucs.listTimezonesUC, ucs.getCurrentUserUC, c.log,
		),
		authHandler: handlers.NewAuthHandler(
			ucs.initiateLoginUC, ucs.handleCallbackUC, ucs.logoutUC,
			c.cfg.Auth, c.cfg.Server.DefaultRedirect, c.log,
		),
		healthHandler: handlers.NewHealthHandler(c.repos.timezoneRepo, c.repos.sessionStore, c.log),
	}

	c.sessionMiddleware = middleware.NewSessionMiddleware(c.repos.sessionStore, c.cfg.Auth.Cookie, c.metrics, c.log)

	rateLimit := c.cfg.Auth.RateLimit
	c.rateLimiter = middleware.NewRateLimiter(
		ratelimit.NewRedisRateLimiter(c.redis, rateLimit.Requests, rateLimit.Window()),
		rateLimit.Enabled,
		c.log,
	)
}
