package sales

import (
	"time"

	"gorm.io/gorm"

	salesEntity "inventory.GO/model/entity/sales"
)

// SalesRepository appends to and reads the sales journal. There is no update or delete.
type SalesRepository struct {
	db *gorm.DB
}

func NewSalesRepository(db *gorm.DB) *SalesRepository {
	return &SalesRepository{db: db}
}

func (r *SalesRepository) WithTx(tx *gorm.DB) *SalesRepository {
	return &SalesRepository{db: tx}
}

// Append inserts journal entries in batches.
func (r *SalesRepository) Append(records []salesEntity.SalesRecord) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.CreateInBatches(records, 200).Error
}

// ListBetween returns entries with start <= date < end, oldest first.
func (r *SalesRepository) ListBetween(start, end time.Time) ([]salesEntity.SalesRecord, error) {
	var records []salesEntity.SalesRecord
	err := r.db.Where("date >= ? AND date < ?", start.UTC(), end.UTC()).
		Order("date ASC").Order("id ASC").
		Find(&records).Error
	return records, err
}

// CountForItem returns the number of journal entries recorded for itemID.
func (r *SalesRepository) CountForItem(itemID string) (int64, error) {
	var n int64
	err := r.db.Model(&salesEntity.SalesRecord{}).Where("item_id = ?", itemID).Count(&n).Error
	return n, err
}
