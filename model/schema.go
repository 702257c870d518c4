package model

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	authEntity "inventory.GO/model/entity/auth"
	inventoryEntity "inventory.GO/model/entity/inventory"
	salesEntity "inventory.GO/model/entity/sales"
	systemEntity "inventory.GO/model/entity/system"
)

// Entities lists every persisted table of the ledger.
func Entities() []interface{} {
	return []interface{}{
		&inventoryEntity.InventoryItem{},
		&inventoryEntity.ItemSubcomponent{},
		&salesEntity.SalesRecord{},
		&systemEntity.SystemSettings{},
		&systemEntity.SyncRun{},
		&authEntity.APIToken{},
	}
}

// AutoMigrate creates or updates the ledger schema.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Entities()...)
}

// ForUpdate makes the next read take row locks (SELECT ... FOR UPDATE) so a
// concurrent transaction reading the same rows waits for this one to commit.
// SQLite has no row locks and serializes writers on its own, so it is left as is.
func ForUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "sqlite" {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}
