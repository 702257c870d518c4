package system

import (
	"time"

	"gorm.io/datatypes"
)

const (
	RunStatusRunning   = "running"
	RunStatusSucceeded = "succeeded"
	RunStatusFailed    = "failed"
)

// SyncRun represents sync_run table, one row per reconciliation attempt.
type SyncRun struct {
	ID             string         `gorm:"column:id;primaryKey;type:varchar(36)" json:"id"`
	Kind           string         `gorm:"column:kind;type:varchar(16);not null" json:"kind"`
	Status         string         `gorm:"column:status;type:varchar(16);not null;index" json:"status"`
	StartedAt      time.Time      `gorm:"column:started_at;not null;index" json:"started_at"`
	FinishedAt     *time.Time     `gorm:"column:finished_at" json:"finished_at,omitempty"`
	WindowStart    *time.Time     `gorm:"column:window_start" json:"window_start,omitempty"`
	WindowEnd      *time.Time     `gorm:"column:window_end" json:"window_end,omitempty"`
	NewItems       int            `gorm:"column:new_items;not null;default:0" json:"new_items"`
	Orders         int            `gorm:"column:orders;not null;default:0" json:"orders"`
	SalesProcessed int            `gorm:"column:sales_processed;not null;default:0" json:"sales_processed"`
	Skipped        int            `gorm:"column:skipped;not null;default:0" json:"skipped"`
	Warnings       datatypes.JSON `gorm:"column:warnings" json:"warnings,omitempty"`
	Error          string         `gorm:"column:error;type:text" json:"error,omitempty"`
}

func (SyncRun) TableName() string {
	return "sync_run"
}
