// Package testutil provides helpers for repository integration tests.
// Tests are skipped unless TEST_POSTGRES_DSN points at a disposable
// database; every test runs inside a transaction that is rolled back.
package testutil

import (
	"os"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/foodgram/foodgram-backend/internal/data/db"
	"github.com/foodgram/foodgram-backend/internal/pkg/logger"
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	log, err := logger.New("test")
	if err != nil {
		tb.Fatalf("logger.New: %v", err)
	}
	return log
}

func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		tb.Skip("TEST_POSTGRES_DSN not set; skipping database test")
	}

	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		tb.Fatalf("gorm.Open: %v", err)
	}
	if err := db.AutoMigrateAll(gdb); err != nil {
		tb.Fatalf("automigrate: %v", err)
	}
	return gdb
}

// Tx returns a transaction that is rolled back when the test finishes,
// so tests never leave rows behind.
func Tx(tb testing.TB, gdb *gorm.DB) *gorm.DB {
	tb.Helper()

	tx := gdb.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		tx.Rollback()
	})
	return tx
}
