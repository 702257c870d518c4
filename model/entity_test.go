package model_test

import (
	"testing"

	authEntity "inventory.GO/model/entity/auth"
	inventoryEntity "inventory.GO/model/entity/inventory"
	salesEntity "inventory.GO/model/entity/sales"
	systemEntity "inventory.GO/model/entity/system"
	"inventory.GO/model/modeltest"
)

func TestTableNames(t *testing.T) {
	cases := []struct {
		got, want string
	}{
		{inventoryEntity.InventoryItem{}.TableName(), "inventory_item"},
		{inventoryEntity.ItemSubcomponent{}.TableName(), "item_subcomponent"},
		{salesEntity.SalesRecord{}.TableName(), "sales_record"},
		{systemEntity.SystemSettings{}.TableName(), "system_settings"},
		{systemEntity.SyncRun{}.TableName(), "sync_run"},
		{authEntity.APIToken{}.TableName(), "api_token"},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Errorf("TableName() = %q, want %q", c.got, c.want)
		}
	}
}

func TestInventoryItem_NeedsReorder(t *testing.T) {
	cases := []struct {
		name      string
		stock     float64
		threshold *float64
		want      bool
	}{
		{"no threshold", 0, nil, false},
		{"below", 4, modeltest.Float(5), true},
		{"equal", 5, modeltest.Float(5), true},
		{"above", 6, modeltest.Float(5), false},
	}
	for _, c := range cases {
		item := inventoryEntity.InventoryItem{Stock: c.stock, ReorderThreshold: c.threshold}
		if got := item.NeedsReorder(); got != c.want {
			t.Errorf("%s: NeedsReorder() = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestAutoMigrate_CreatesTables(t *testing.T) {
	db := modeltest.OpenDB(t)
	for _, table := range []string{"inventory_item", "item_subcomponent", "sales_record", "system_settings", "sync_run", "api_token"} {
		if !db.Migrator().HasTable(table) {
			t.Errorf("table %s missing after AutoMigrate", table)
		}
	}
}
