package http

import (
	"tzsync/internal/domain/preference"
	"tzsync/internal/infrastructure/cache"
)

// repositories holds all stores used by the application.
type repositories struct {
	timezoneRepo preference.Repository
	sessionStore *cache.RedisSessionStore
	stateStore   *cache.RedisStateStore
}
