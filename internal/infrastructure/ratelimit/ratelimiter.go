package ratelimit

import (
	"context"
	"time"
)

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	// ResetAfter is the time left in the current window.
	ResetAfter time.Duration
}

type RateLimiter interface {
	Allow(ctx context.Context, key string) (*Decision, error)
}
