package http

import (
	"tzsync/internal/interfaces/http/handlers"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	timezoneHandler *handlers.TimezoneHandler
	authHandler     *handlers.AuthHandler
	healthHandler   *handlers.HealthHandler
}
