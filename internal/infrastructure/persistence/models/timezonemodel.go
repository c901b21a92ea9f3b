package models

import (
	"time"

	"tzsync/internal/shared/constants"
)

// TimezoneModel is the GORM model for the timezones table
type TimezoneModel struct {
	UserID    string    `gorm:"column:user_id;type:varchar(64);primaryKey"`
	Username  string    `gorm:"column:username;type:varchar(255);not null"`
	Timezone  *string   `gorm:"column:timezone;type:varchar(64)"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime;not null;index:idx_timezones_updated_at"`
}

// TableName returns the table name for GORM
func (TimezoneModel) TableName() string {
	return constants.TableTimezones
}
