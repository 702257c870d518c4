package inventory

import (
	inventoryEntity "inventory.GO/model/entity/inventory"
)

// ReorderAdvice flags an item at or below its reorder threshold.
type ReorderAdvice struct {
	ItemID            string   `json:"item_id"`
	Name              string   `json:"name"`
	Stock             float64  `json:"stock"`
	ReorderThreshold  float64  `json:"reorder_threshold"`
	SuggestedQuantity *float64 `json:"suggested_quantity"`
	Supplier          *string  `json:"supplier,omitempty"`
}

// Advise returns advice for the items that need reordering, in input order.
func Advise(items []inventoryEntity.InventoryItem) []ReorderAdvice {
	out := make([]ReorderAdvice, 0, len(items))
	for i := range items {
		item := &items[i]
		if !item.NeedsReorder() {
			continue
		}
		out = append(out, ReorderAdvice{
			ItemID:            item.ID,
			Name:              item.Name,
			Stock:             item.Stock,
			ReorderThreshold:  *item.ReorderThreshold,
			SuggestedQuantity: item.ReorderQuantity,
			Supplier:          item.Supplier,
		})
	}
	return out
}

// ReorderAdvisory lists items at or below their threshold, optionally filtered by name.
// It reads only.
func (s *Service) ReorderAdvisory(search string) ([]ReorderAdvice, error) {
	items, err := s.items.ListReorderCandidates(search)
	if err != nil {
		return nil, err
	}
	return Advise(items), nil
}
