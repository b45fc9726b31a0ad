// Package db opens the store
package db

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"plate/entity"

	"github.com/glebarez/sqlite"
	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// IsPostgres report whether the dsn points to postgres
func IsPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=")
}

func dialector(dsn string) (gorm.Dialector, error) {
	if !IsPostgres(dsn) {
		if dsn != ":memory:" && !strings.HasPrefix(dsn, "file:") {
			if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
				return nil, fmt.Errorf("failed to create db dir: %w", err)
			}
		}
		return sqlite.Open(dsn), nil
	}
	if strings.Contains(dsn, "://") {
		converted, err := pq.ParseURL(dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to parse dsn: %w", err)
		}
		dsn = converted
	}
	return postgres.Open(dsn), nil
}

// Connect - connection to a db, creates the schema
func Connect(dsn string) (*gorm.DB, error) {
	dial, err := dialector(dsn)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(dial, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	if !IsPostgres(dsn) {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// single writer
		sqlDB.SetMaxOpenConns(1)
	}
	if err = db.AutoMigrate(entity.Models()...); err != nil {
		return nil, fmt.Errorf("db migration: %w", err)
	}
	return db, nil
}

// Close release the underlying connection
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
