// Package dbtest opens throwaway databases for package tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"agrosmart/database"
)

// New returns a migrated and seeded SQLite database in a temp dir. The
// connection is closed when the test ends.
func New(t testing.TB) *gorm.DB {
	t.Helper()
	db := Empty(t)
	require.NoError(t, database.Seed(db))
	return db
}

// Empty returns a migrated database with no catalog rows.
func Empty(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := database.Open("sqlite", filepath.Join(t.TempDir(), "test.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	require.NoError(t, database.Migrate(db))
	return db
}
