package system

import "time"

// SettingsID is the primary key of the single system_settings row.
const SettingsID = 1

// SystemSettings represents system_settings table. LastAssessed is the sync checkpoint.
type SystemSettings struct {
	ID           uint      `gorm:"column:id;primaryKey" json:"id"`
	LastAssessed time.Time `gorm:"column:last_assessed;not null" json:"last_assessed"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (SystemSettings) TableName() string {
	return "system_settings"
}
