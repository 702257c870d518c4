package system

import (
	"errors"

	"gorm.io/gorm"

	systemEntity "inventory.GO/model/entity/system"
)

// RunRepository records reconciliation attempts.
type RunRepository struct {
	db *gorm.DB
}

func NewRunRepository(db *gorm.DB) *RunRepository {
	return &RunRepository{db: db}
}

func (r *RunRepository) Start(run *systemEntity.SyncRun) error {
	run.Status = systemEntity.RunStatusRunning
	return r.db.Create(run).Error
}

// Finish writes the outcome columns of a started run.
func (r *RunRepository) Finish(run *systemEntity.SyncRun) error {
	return r.db.Model(&systemEntity.SyncRun{}).Where("id = ?", run.ID).Updates(map[string]interface{}{
		"status":          run.Status,
		"finished_at":     run.FinishedAt,
		"window_start":    run.WindowStart,
		"window_end":      run.WindowEnd,
		"new_items":       run.NewItems,
		"orders":          run.Orders,
		"sales_processed": run.SalesProcessed,
		"skipped":         run.Skipped,
		"warnings":        run.Warnings,
		"error":           run.Error,
	}).Error
}

// Latest returns the most recently started run, or nil when none exist.
func (r *RunRepository) Latest() (*systemEntity.SyncRun, error) {
	var run systemEntity.SyncRun
	err := r.db.Order("started_at DESC").First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// Recent returns up to limit runs, newest first.
func (r *RunRepository) Recent(limit int) ([]systemEntity.SyncRun, error) {
	var runs []systemEntity.SyncRun
	err := r.db.Order("started_at DESC").Limit(limit).Find(&runs).Error
	return runs, err
}
