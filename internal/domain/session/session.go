// Package session defines the authenticated identity and the session record
// that binds it to a browser cookie.
package session

import (
	"context"
	"time"
)

// Identity is the narrow view of a provider profile the service keeps.
type Identity struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Avatar   *string `json:"avatar"`
}

// Record is what the session store keeps under an opaque token.
type Record struct {
	Token       string    `json:"-"`
	User        Identity  `json:"user"`
	Provider    string    `json:"provider"`
	AccessToken string    `json:"access_token"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Expired reports whether the record is past its expiry at now.
func (r *Record) Expired(now time.Time) bool {
	return !r.ExpiresAt.IsZero() && !now.Before(r.ExpiresAt)
}

// Store owns session records. Each method is atomic on a single key.
type Store interface {
	Create(ctx context.Context, user Identity, provider, accessToken string, ttl time.Duration) (*Record, error)
	// Resolve returns a not_found error for unknown or expired tokens.
	Resolve(ctx context.Context, token string) (*Record, error)
	// Delete is idempotent.
	Delete(ctx context.Context, token string) error
}

type contextKey struct{}

// WithRecord returns a copy of ctx carrying the resolved session.
func WithRecord(ctx context.Context, record *Record) context.Context {
	return context.WithValue(ctx, contextKey{}, record)
}

// FromContext returns the session attached by WithRecord, if any.
func FromContext(ctx context.Context) (*Record, bool) {
	record, ok := ctx.Value(contextKey{}).(*Record)
	return record, ok && record != nil
}
