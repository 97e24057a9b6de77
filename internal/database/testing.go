package database

import (
	"testing"

	logg "server/internal/logger"
	"server/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTest returns a DB backed by an in-memory sqlite database with the full
// schema migrated and no cache clients attached.
func NewTest(tb testing.TB) DB {
	tb.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		tb.Fatalf("failed to open in-memory database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&models.User{},
		&models.Patient{},
		&models.Appointment{},
		&models.RiskHistory{},
		&models.LoadTest{},
	)
	if err != nil {
		tb.Fatalf("failed to migrate test database: %v", err)
	}

	return DB{SQL: gormDB, log: logg.New("database")}
}
