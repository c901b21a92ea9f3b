package middleware

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"

	"tzsync/internal/infrastructure/ratelimit"
	"tzsync/internal/shared/errors"
	"tzsync/internal/shared/logger"
	"tzsync/internal/shared/utils"
)

// RateLimiter limits requests per client IP. Every instance sharing the
// same Redis shares the counters.
type RateLimiter struct {
	limiter ratelimit.RateLimiter
	enabled bool
	logger  logger.Interface
}

func NewRateLimiter(limiter ratelimit.RateLimiter, enabled bool, logger logger.Interface) *RateLimiter {
	return &RateLimiter{
		limiter: limiter,
		enabled: enabled,
		logger:  logger,
	}
}

// Limit returns a Gin middleware that enforces the rate limit per client IP.
func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.enabled {
			c.Next()
			return
		}

		decision, err := rl.limiter.Allow(c.Request.Context(), "ip:"+c.ClientIP())
		if err != nil {
			// Redis being down must not take the whole API with it.
			rl.logger.Warnw("rate limiter unavailable, allowing request", "error", err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))

		if !decision.Allowed {
			retryAfter := int(math.Ceil(decision.ResetAfter.Seconds()))
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			utils.AbortWithError(c, errors.NewRateLimitedError("rate limit exceeded, please try again later"))
			return
		}

		c.Next()
	}
}
