package inventory

import (
	"errors"

	"gorm.io/gorm"

	inventoryEntity "inventory.GO/model/entity/inventory"
)

// ErrDuplicateSubcomponent is returned when the (composite, subcomponent) pair already has an edge.
var ErrDuplicateSubcomponent = errors.New("subcomponent already linked to item")

// SubcomponentDetail is a BOM edge joined with the subcomponent's ledger row.
type SubcomponentDetail struct {
	SubcomponentID   string  `json:"subcomponent_id"`
	Name             string  `json:"name"`
	Stock            float64 `json:"stock"`
	QuantityRequired float64 `json:"quantity_required"`
}

// BOMRepository reads and writes item_subcomponent edges.
type BOMRepository struct {
	db *gorm.DB
}

func NewBOMRepository(db *gorm.DB) *BOMRepository {
	return &BOMRepository{db: db}
}

func (r *BOMRepository) WithTx(tx *gorm.DB) *BOMRepository {
	return &BOMRepository{db: tx}
}

// Add creates an edge. The pair check runs first so the caller gets a typed error
// rather than a driver-specific unique violation.
func (r *BOMRepository) Add(edge *inventoryEntity.ItemSubcomponent) error {
	var count int64
	if err := r.db.Model(&inventoryEntity.ItemSubcomponent{}).
		Where("item_id = ? AND subcomponent_id = ?", edge.ItemID, edge.SubcomponentID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateSubcomponent
	}
	return r.db.Create(edge).Error
}

func (r *BOMRepository) Remove(itemID, subcomponentID string) error {
	res := r.db.Where("item_id = ? AND subcomponent_id = ?", itemID, subcomponentID).
		Delete(&inventoryEntity.ItemSubcomponent{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ComponentsOf returns the direct edges where itemID is the composite.
func (r *BOMRepository) ComponentsOf(itemID string) ([]inventoryEntity.ItemSubcomponent, error) {
	var edges []inventoryEntity.ItemSubcomponent
	err := r.db.Where("item_id = ?", itemID).Order("id ASC").Find(&edges).Error
	return edges, err
}

// ComponentsOfMany returns direct edges for each composite in itemIDs, keyed by composite id.
func (r *BOMRepository) ComponentsOfMany(itemIDs []string) (map[string][]inventoryEntity.ItemSubcomponent, error) {
	out := make(map[string][]inventoryEntity.ItemSubcomponent)
	for start := 0; start < len(itemIDs); start += idChunk {
		end := min(start+idChunk, len(itemIDs))
		var edges []inventoryEntity.ItemSubcomponent
		if err := r.db.Where("item_id IN ?", itemIDs[start:end]).Order("id ASC").Find(&edges).Error; err != nil {
			return nil, err
		}
		for _, e := range edges {
			out[e.ItemID] = append(out[e.ItemID], e)
		}
	}
	return out, nil
}

// Details returns the subcomponents of itemID with their names and current stock.
func (r *BOMRepository) Details(itemID string) ([]SubcomponentDetail, error) {
	var out []SubcomponentDetail
	err := r.db.Table("item_subcomponent AS s").
		Select("s.subcomponent_id, i.name, i.stock, s.quantity_required").
		Joins("JOIN inventory_item AS i ON i.id = s.subcomponent_id").
		Where("s.item_id = ?", itemID).
		Order("i.name ASC").
		Scan(&out).Error
	return out, err
}
