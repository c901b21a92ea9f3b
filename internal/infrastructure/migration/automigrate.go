package migration

import (
	"tzsync/internal/infrastructure/persistence/models"
)

// AutoMigrateModels lists the models the auto strategy creates.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.TimezoneModel{},
	}
}
