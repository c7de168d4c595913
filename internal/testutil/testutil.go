// Package testutil provides shared test helpers.
package testutil

import (
	"path/filepath"
	"testing"

	"stockadvisors/internal/appconfig"
	"stockadvisors/internal/database"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SetupTestDB opens an in-memory database, runs migrations and installs it as
// the package-level handle for the duration of the test.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := db.AutoMigrate(&database.StoreEntry{}); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
		database.DB = prev
	})
	return db
}

// TestConfig returns a config with a fixed secret and all paths pointed at a
// per-test temp directory.
func TestConfig(t *testing.T) appconfig.Config {
	t.Helper()

	dir := t.TempDir()
	cfg := appconfig.Default()
	cfg.Auth.SessionSecret = "test-secret"
	cfg.Database.SQLitePath = filepath.Join(dir, "test.db")
	cfg.Log.FilePath = filepath.Join(dir, "test.log")
	cfg.FS.Root = filepath.Join(dir, "files")
	return cfg
}
