package inventory

import "time"

// InventoryItem represents inventory_item table. ID is the catalog object id
// for discovered items, or a generated uuid for manually entered ones.
type InventoryItem struct {
	ID               string    `gorm:"column:id;primaryKey;type:varchar(64)" json:"id"`
	Name             string    `gorm:"column:name;type:varchar(255);not null;index" json:"name"`
	Stock            float64   `gorm:"column:stock;not null;default:0" json:"stock"`
	ReorderThreshold *float64  `gorm:"column:reorder_threshold" json:"reorder_threshold"`
	ReorderQuantity  *float64  `gorm:"column:reorder_quantity" json:"reorder_quantity"`
	Supplier         *string   `gorm:"column:supplier;type:varchar(255)" json:"supplier"`
	IsMix            bool      `gorm:"column:is_mix;not null;default:false" json:"is_mix"`
	CreatedAt        time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (InventoryItem) TableName() string {
	return "inventory_item"
}

// NeedsReorder reports whether stock is at or below a configured threshold.
// Items without a threshold are never flagged.
func (i *InventoryItem) NeedsReorder() bool {
	return i.ReorderThreshold != nil && i.Stock <= *i.ReorderThreshold
}
