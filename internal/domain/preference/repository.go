package preference

import "context"

// Repository persists preference records keyed by user id.
type Repository interface {
	// Get returns a not_found error when the user has no record.
	Get(ctx context.Context, userID string) (*Record, error)

	// Upsert validates timezone, then inserts or updates the record.
	// created_at is preserved on update.
	Upsert(ctx context.Context, userID, username, timezone string) (*Record, error)

	// Delete is idempotent.
	Delete(ctx context.Context, userID string) error

	// ListAll returns every record ordered by user id.
	ListAll(ctx context.Context) ([]*Record, error)

	// Ping reports whether the backing database is reachable.
	Ping(ctx context.Context) error
}
