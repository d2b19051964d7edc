// Package testutil holds shared test helpers: a throwaway SQLite database,
// ledger fixtures and assertions.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/HeyDYF/Money-Manager/internal/models"
)

var dbSeq atomic.Int64

// SetupTestDB opens a migrated in-memory SQLite database private to t. It is
// closed when the test ends.
func SetupTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	// A named shared-cache database keeps every pooled connection on the
	// same data while staying isolated from other tests.
	dsn := fmt.Sprintf("file:ledger_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("test database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&models.KVEntry{}, &models.AuditLog{}); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}
