package migration

import (
	"fmt"

	"gorm.io/gorm"

	"tzsync/internal/shared/logger"
)

// Manager handles database migrations with different strategies
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks the strategy named in configuration. databaseURL is only
// used by golang_migrate, which opens its own connection.
func NewManager(strategyName, databaseURL string) (*Manager, error) {
	var strategy Strategy

	switch strategyName {
	case "", "goose":
		strategy = NewGooseStrategy()
	case "golang_migrate":
		strategy = NewGolangMigrateStrategy(databaseURL)
	case "auto":
		strategy = NewGormAutoMigrateStrategy()
	default:
		return nil, fmt.Errorf("unknown migration strategy %q", strategyName)
	}

	return NewManagerWithStrategy(strategy), nil
}

// NewManagerWithStrategy creates a new migration manager with a specific strategy
func NewManagerWithStrategy(strategy Strategy) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   logger.NewLogger().Named("migration.manager"),
	}
}

// Migrate executes the configured migration strategy
func (m *Manager) Migrate(db *gorm.DB) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.GetName())

	if err := m.strategy.Migrate(db); err != nil {
		m.logger.Errorw("migration failed",
			"strategy", m.strategy.GetName(),
			"error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed successfully", "strategy", m.strategy.GetName())
	return nil
}

// Rollback undoes steps migrations
func (m *Manager) Rollback(db *gorm.DB, steps int) error {
	if steps < 1 {
		return fmt.Errorf("steps must be positive, got %d", steps)
	}
	if err := m.strategy.MigrateDown(db, steps); err != nil {
		return fmt.Errorf("rollback failed with strategy %s: %w", m.strategy.GetName(), err)
	}
	return nil
}

// Version reports the applied schema version
func (m *Manager) Version(db *gorm.DB) (int64, error) {
	return m.strategy.GetVersion(db)
}

// GetStrategy returns the current migration strategy
func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}

// GetStrategyInfo returns information about the current strategy
func (m *Manager) GetStrategyInfo() map[string]interface{} {
	return map[string]interface{}{
		"name":        m.strategy.GetName(),
		"description": getStrategyDescription(m.strategy.GetName()),
	}
}

// getStrategyDescription returns a description for the given strategy
func getStrategyDescription(strategyName string) string {
	switch strategyName {
	case "auto":
		return "GORM AutoMigrate - schema derived from model definitions"
	case "golang_migrate":
		return "golang-migrate - versioned up/down SQL scripts"
	case "goose":
		return "goose - versioned SQL scripts with embedded up/down sections"
	default:
		return "Unknown migration strategy"
	}
}
