package infra

import (
	"fmt"

	"labtrack/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens the SQLite store and runs AutoMigrate for all tables.
// WAL mode and a busy timeout keep the single-file store usable under the
// one-writer-at-a-time request model.
func NewDatabase(path string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	// SQLite permits a single writer; a pool larger than one just queues on
	// the database lock.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&model.Receipt{},
		&model.LabTest{},
		&model.LabTransfer{},
		&model.Report{},
		&model.Invoice{},
		&model.RetestRequest{},
		&model.OwnerPreference{},
		&model.User{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	return db, nil
}
