// Package testutil provides the shared database harness for repository and
// aggregate tests. Tests run against TEST_POSTGRES_DSN when set and fall back
// to an in-memory sqlite database otherwise.
package testutil

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/lcamargo/catalog-backend/internal/data/db"
	"github.com/lcamargo/catalog-backend/internal/platform/logger"
)

var (
	logOnce sync.Once
	testLog *logger.Logger
	dbSeq   atomic.Int64
)

// Logger returns a process-wide logger for tests.
func Logger(t *testing.T) *logger.Logger {
	t.Helper()
	logOnce.Do(func() {
		l, err := logger.New("development")
		if err != nil {
			t.Fatalf("build test logger: %v", err)
		}
		testLog = l
	})
	return testLog
}

// DB opens a migrated database for a test. With TEST_POSTGRES_DSN set it
// connects there; otherwise it uses a private in-memory sqlite database with
// foreign keys enabled.
func DB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := &gorm.Config{Logger: gormLogger.Default.LogMode(gormLogger.Silent)}

	var (
		gdb *gorm.DB
		err error
	)
	usingSQLite := false
	if dsn := os.Getenv("TEST_POSTGRES_DSN"); dsn != "" {
		gdb, err = gorm.Open(postgres.Open(dsn), cfg)
	} else {
		// Each call gets its own named in-memory database. cache=shared keeps
		// it alive across pooled connections; a single open connection makes
		// that deterministic.
		name := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared&_foreign_keys=1", dbSeq.Add(1))
		gdb, err = gorm.Open(sqlite.Open(name), cfg)
		usingSQLite = true
	}
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if usingSQLite {
		sqlDB, err := gdb.DB()
		if err != nil {
			t.Fatalf("unwrap test database: %v", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}
	if err := db.AutoMigrateAll(gdb); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return gdb
}

// Tx begins a transaction that is rolled back when the test finishes, so
// tests sharing a postgres database stay isolated.
func Tx(t *testing.T, gdb *gorm.DB) *gorm.DB {
	t.Helper()
	tx := gdb.Begin()
	if tx.Error != nil {
		t.Fatalf("begin test transaction: %v", tx.Error)
	}
	t.Cleanup(func() { tx.Rollback() })
	return tx
}
