// Package dbtest opens throwaway sqlite stores for tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/synctv-org/authd/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a migrated store backed by a sqlite file in t.TempDir. The
// pool is limited to one connection so concurrent writers queue instead of
// failing with SQLITE_BUSY.
func Open(t testing.TB) *db.Store {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "authd.db") + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	d, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := d.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	s := db.New(d)
	if err := s.AutoMigrate(db.DatabaseTypeSqlite3); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return s
}
