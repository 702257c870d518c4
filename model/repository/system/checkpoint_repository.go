package system

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"inventory.GO/model"
	systemEntity "inventory.GO/model/entity/system"
)

// CheckpointRepository persists the sync checkpoint in the single system_settings row.
type CheckpointRepository struct {
	db *gorm.DB
}

func NewCheckpointRepository(db *gorm.DB) *CheckpointRepository {
	return &CheckpointRepository{db: db}
}

func (r *CheckpointRepository) WithTx(tx *gorm.DB) *CheckpointRepository {
	return &CheckpointRepository{db: tx}
}

// Get returns the checkpoint, creating the row at epoch on first use.
func (r *CheckpointRepository) Get(epoch time.Time) (time.Time, error) {
	row := systemEntity.SystemSettings{ID: systemEntity.SettingsID}
	err := r.db.Where(systemEntity.SystemSettings{ID: systemEntity.SettingsID}).
		Attrs(systemEntity.SystemSettings{LastAssessed: epoch.UTC()}).
		FirstOrCreate(&row).Error
	if err != nil {
		return time.Time{}, err
	}
	return row.LastAssessed.UTC(), nil
}

// Lock reads the checkpoint with a row lock held until the surrounding
// transaction ends. The row must already exist.
func (r *CheckpointRepository) Lock() (time.Time, error) {
	row, err := r.lockRow()
	if err != nil {
		return time.Time{}, err
	}
	return row.LastAssessed.UTC(), nil
}

func (r *CheckpointRepository) lockRow() (*systemEntity.SystemSettings, error) {
	var row systemEntity.SystemSettings
	if err := model.ForUpdate(r.db).First(&row, systemEntity.SettingsID).Error; err != nil {
		return nil, fmt.Errorf("load checkpoint: %w", err)
	}
	return &row, nil
}

// Advance moves the checkpoint to to. Moving it backwards is refused.
func (r *CheckpointRepository) Advance(to time.Time) error {
	row, err := r.lockRow()
	if err != nil {
		return err
	}
	to = to.UTC()
	if to.Before(row.LastAssessed) {
		return fmt.Errorf("checkpoint regression: %s is before %s", to.Format(time.RFC3339Nano), row.LastAssessed.UTC().Format(time.RFC3339Nano))
	}
	return r.db.Model(&systemEntity.SystemSettings{}).
		Where("id = ?", systemEntity.SettingsID).
		Update("last_assessed", to).Error
}
