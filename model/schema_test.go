package model_test

import (
	"strings"
	"testing"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"inventory.GO/model"
	systemEntity "inventory.GO/model/entity/system"
	"inventory.GO/model/modeltest"
)

func lockedSelect(db *gorm.DB) string {
	return db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var row systemEntity.SystemSettings
		return model.ForUpdate(tx).First(&row, systemEntity.SettingsID)
	})
}

func TestForUpdate_MySQLLocksRows(t *testing.T) {
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "user:pass@tcp(127.0.0.1:3306)/ledger?parseTime=true",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	if err != nil {
		t.Fatalf("open dry-run mysql: %v", err)
	}
	if sql := lockedSelect(db); !strings.HasSuffix(sql, "FOR UPDATE") {
		t.Errorf("sql = %q, want FOR UPDATE", sql)
	}
}

func TestForUpdate_SQLiteUnchanged(t *testing.T) {
	db := modeltest.OpenDB(t)
	if sql := lockedSelect(db); strings.Contains(sql, "FOR UPDATE") {
		t.Errorf("sql = %q, want no locking clause", sql)
	}
}
