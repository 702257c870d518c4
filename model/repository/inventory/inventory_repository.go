package inventory

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"inventory.GO/model"
	inventoryEntity "inventory.GO/model/entity/inventory"
)

// ErrNotFound is returned when an item or edge does not exist.
var ErrNotFound = errors.New("not found")

// idChunk bounds IN (...) lists so large catalogs stay under driver parameter limits.
const idChunk = 500

type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *InventoryRepository) WithTx(tx *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: tx}
}

func (r *InventoryRepository) FindByID(id string) (*inventoryEntity.InventoryItem, error) {
	var item inventoryEntity.InventoryItem
	err := r.db.Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// FindByIDs loads the given items keyed by id. Missing ids are absent from the map.
func (r *InventoryRepository) FindByIDs(ids []string) (map[string]*inventoryEntity.InventoryItem, error) {
	return r.findByIDs(ids, false)
}

// LockByIDs is FindByIDs holding row locks until the transaction ends.
func (r *InventoryRepository) LockByIDs(ids []string) (map[string]*inventoryEntity.InventoryItem, error) {
	return r.findByIDs(ids, true)
}

func (r *InventoryRepository) findByIDs(ids []string, lock bool) (map[string]*inventoryEntity.InventoryItem, error) {
	out := make(map[string]*inventoryEntity.InventoryItem, len(ids))
	for start := 0; start < len(ids); start += idChunk {
		end := min(start+idChunk, len(ids))
		q := r.db
		if lock {
			q = model.ForUpdate(q)
		}
		var items []inventoryEntity.InventoryItem
		if err := q.Where("id IN ?", ids[start:end]).Find(&items).Error; err != nil {
			return nil, err
		}
		for i := range items {
			out[items[i].ID] = &items[i]
		}
	}
	return out, nil
}

// ExistingIDs returns the subset of ids already present in the ledger.
func (r *InventoryRepository) ExistingIDs(ids []string) (map[string]struct{}, error) {
	out := make(map[string]struct{}, len(ids))
	for start := 0; start < len(ids); start += idChunk {
		end := min(start+idChunk, len(ids))
		var found []string
		if err := r.db.Model(&inventoryEntity.InventoryItem{}).
			Where("id IN ?", ids[start:end]).
			Pluck("id", &found).Error; err != nil {
			return nil, err
		}
		for _, id := range found {
			out[id] = struct{}{}
		}
	}
	return out, nil
}

func (r *InventoryRepository) Create(item *inventoryEntity.InventoryItem) error {
	return r.db.Create(item).Error
}

// CreateBatch inserts new items in batches.
func (r *InventoryRepository) CreateBatch(items []inventoryEntity.InventoryItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.CreateInBatches(items, 200).Error
}

// Save writes every column of item.
func (r *InventoryRepository) Save(item *inventoryEntity.InventoryItem) error {
	return r.db.Save(item).Error
}

// UpdateStock sets the stock column only, leaving operator-edited fields alone.
func (r *InventoryRepository) UpdateStock(id string, stock float64) error {
	res := r.db.Model(&inventoryEntity.InventoryItem{}).Where("id = ?", id).Update("stock", stock)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the item and every BOM edge that references it, as composite or as subcomponent.
func (r *InventoryRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ? OR subcomponent_id = ?", id, id).
			Delete(&inventoryEntity.ItemSubcomponent{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&inventoryEntity.InventoryItem{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// List returns items ordered by name, optionally filtered by a case-insensitive name substring.
func (r *InventoryRepository) List(search string) ([]inventoryEntity.InventoryItem, error) {
	var items []inventoryEntity.InventoryItem
	q := r.db.Order("name ASC").Order("id ASC")
	if s := strings.TrimSpace(search); s != "" {
		q = q.Where("LOWER(name) LIKE ?", likePattern(s))
	}
	err := q.Find(&items).Error
	return items, err
}

// ListReorderCandidates returns items with a threshold set whose stock is at or below it.
func (r *InventoryRepository) ListReorderCandidates(search string) ([]inventoryEntity.InventoryItem, error) {
	var items []inventoryEntity.InventoryItem
	q := r.db.Where("reorder_threshold IS NOT NULL AND stock <= reorder_threshold").
		Order("name ASC").Order("id ASC")
	if s := strings.TrimSpace(search); s != "" {
		q = q.Where("LOWER(name) LIKE ?", likePattern(s))
	}
	err := q.Find(&items).Error
	return items, err
}

// SearchByName returns up to limit items whose name contains q, skipping excludeID.
func (r *InventoryRepository) SearchByName(q, excludeID string, limit int) ([]inventoryEntity.InventoryItem, error) {
	var items []inventoryEntity.InventoryItem
	query := r.db.Where("LOWER(name) LIKE ?", likePattern(q)).Order("name ASC").Limit(limit)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Find(&items).Error
	return items, err
}

func likePattern(s string) string {
	return "%" + strings.ToLower(s) + "%"
}
