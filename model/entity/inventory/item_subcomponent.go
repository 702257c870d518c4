package inventory

// ItemSubcomponent represents item_subcomponent table: one unit of ItemID
// consumes QuantityRequired units of SubcomponentID.
type ItemSubcomponent struct {
	ID               uint    `gorm:"column:id;primaryKey;autoIncrement" json:"id,omitempty"`
	ItemID           string  `gorm:"column:item_id;type:varchar(64);not null;uniqueIndex:idx_item_subcomponent_pair" json:"item_id"`
	SubcomponentID   string  `gorm:"column:subcomponent_id;type:varchar(64);not null;uniqueIndex:idx_item_subcomponent_pair;index" json:"subcomponent_id"`
	QuantityRequired float64 `gorm:"column:quantity_required;not null" json:"quantity_required"`
}

func (ItemSubcomponent) TableName() string {
	return "item_subcomponent"
}
