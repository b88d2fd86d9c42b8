package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tracewing-backend/internal/model"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectDB opens the database selected by DB_DRIVER and migrates the schema.
//
// mysql DSN:    user:pass@tcp(127.0.0.1:3306)/tracewing?charset=utf8mb4&parseTime=True&loc=UTC
// postgres DSN: host=localhost user=postgres password=secret dbname=tracewing port=5432 sslmode=disable TimeZone=UTC
// sqlite DSN:   data/tracewing.db
func ConnectDB(driver, dsn string, logLevel logger.LogLevel) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "mysql":
		dialector = mysql.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		if dir := filepath.Dir(dsn); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create db directory: %w", err)
			}
		}
		if !strings.Contains(dsn, "?") {
			dsn += "?_pragma=foreign_keys(1)"
		}
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported db driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	if driver == "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// one writer at a time, otherwise concurrent inserts hit SQLITE_BUSY
		sqlDB.SetMaxOpenConns(1)
	}

	// Auto Migration: tables are created from the structs in internal/model
	if err := db.AutoMigrate(
		&model.Employee{},
		&model.GeofenceZone{},
		&model.AttendanceDay{},
		&model.LocationSample{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	return db, nil
}
