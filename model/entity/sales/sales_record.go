package sales

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesRecord represents sales_record table, the append-only sales journal.
type SalesRecord struct {
	ID           uint            `gorm:"column:id;primaryKey;autoIncrement" json:"id,omitempty"`
	ItemID       string          `gorm:"column:item_id;type:varchar(64);not null;index" json:"item_id"`
	OrderID      string          `gorm:"column:order_id;type:varchar(64);index" json:"order_id"`
	QuantitySold float64         `gorm:"column:quantity_sold;not null" json:"quantity_sold"`
	TotalMoney   decimal.Decimal `gorm:"column:total_money;type:decimal(12,2);not null" json:"total_money"`
	Date         time.Time       `gorm:"column:date;not null;index" json:"date"`
	SyncRunID    string          `gorm:"column:sync_run_id;type:varchar(36);index" json:"sync_run_id,omitempty"`
}

func (SalesRecord) TableName() string {
	return "sales_record"
}
