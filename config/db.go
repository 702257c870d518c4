package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens the ledger database selected by DB_TYPE (sqlite by default, or mysql).
func NewDB() (*gorm.DB, error) {
	dialector, err := dialectorFromEnv()
	if err != nil {
		return nil, err
	}

	logMode := logger.Warn
	if os.Getenv("GORM_LOG") == "off" {
		logMode = logger.Silent
	} else if strings.EqualFold(os.Getenv("GORM_LOG"), "info") {
		logMode = logger.Info
	}

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // Use log.Logger for Printf support
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logMode,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}

func dialectorFromEnv() (gorm.Dialector, error) {
	switch dbType := strings.ToLower(GetEnv("DB_TYPE", "sqlite")); dbType {
	case "sqlite":
		return sqlite.Open(SQLiteDSN(GetEnv("DB_PATH", "inventory.db"))), nil
	case "mysql":
		return mysql.Open(mysqlDSN()), nil
	default:
		return nil, fmt.Errorf("unsupported DB_TYPE %q", dbType)
	}
}

// SQLiteDSN adds the pragmas the ledger relies on: WAL for concurrent readers
// while a sync pass writes, and a busy timeout instead of immediate SQLITE_BUSY.
func SQLiteDSN(path string) string {
	return path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
}

func mysqlDSN() string {
	if dsn := os.Getenv("MYSQL_DSN"); dsn != "" {
		return dsn
	}
	user := os.Getenv("MYSQL_USER")
	pass := os.Getenv("MYSQL_PASS")
	host := GetEnv("MYSQL_HOST", "127.0.0.1")
	port := GetEnv("MYSQL_PORT", "3306")
	db := os.Getenv("MYSQL_DB")
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=UTC", user, pass, host, port, db)
}
