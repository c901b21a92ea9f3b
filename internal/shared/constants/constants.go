package constants

const (
	// HTTP Headers
	HeaderXRequestID = "X-Request-ID"

	// Context keys
	ContextKeySessionError = "session_error"
	ContextKeyRequestID    = "request_id"

	// Redis key prefixes
	SessionKeyPrefix    = "session:"
	OAuthStateKeyPrefix = "oauth:state:"

	// Cookies
	OAuthStateCookie = "oauth_state"

	// Database table names
	TableTimezones = "timezones"
)
