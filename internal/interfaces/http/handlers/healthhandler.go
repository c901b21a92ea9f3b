package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tzsync/internal/shared/biztime"
	"tzsync/internal/shared/logger"
)

const healthCheckTimeout = 2 * time.Second

// Pinger is anything whose reachability the health check reports.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	database Pinger
	redis    Pinger
	logger   logger.Interface
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Database  bool      `json:"database"`
	Redis     bool      `json:"redis"`
	Timestamp time.Time `json:"timestamp"`
}

func NewHealthHandler(database, redis Pinger, logger logger.Interface) *HealthHandler {
	return &HealthHandler{
		database: database,
		redis:    redis,
		logger:   logger,
	}
}

// HealthCheck handles GET /health
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	resp := HealthResponse{
		Database:  h.check(c.Request.Context(), "database", h.database),
		Redis:     h.check(c.Request.Context(), "redis", h.redis),
		Timestamp: biztime.NowUTC(),
	}

	status := http.StatusOK
	resp.Status = "healthy"
	if !resp.Database || !resp.Redis {
		status = http.StatusServiceUnavailable
		resp.Status = "unhealthy"
	}

	c.JSON(status, resp)
}

func (h *HealthHandler) check(ctx context.Context, name string, p Pinger) bool {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	if err := p.Ping(ctx); err != nil {
		h.logger.Warnw("health check failed", "dependency", name, "error", err)
		return false
	}
	return true
}
