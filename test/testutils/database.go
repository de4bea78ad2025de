// Package testutils provides common testing utilities and infrastructure setup
package testutils

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/alchemorsel/matchmaker/internal/infrastructure/persistence/sqlite"
)

// SetupTestDatabase opens a migrated in-memory SQLite database that is
// closed when the test ends
func SetupTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := sqlite.SetupDatabase("", logger.Silent, true)
	require.NoError(t, err, "failed to set up test database")

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

// DatabaseHelper provides helper methods for database assertions in tests
type DatabaseHelper struct {
	db *gorm.DB
}

// NewDatabaseHelper creates a new database helper
func NewDatabaseHelper(db *gorm.DB) *DatabaseHelper {
	return &DatabaseHelper{db: db}
}

// CountRecords counts rows in table
func (h *DatabaseHelper) CountRecords(table string) (int64, error) {
	var count int64
	err := h.db.Table(table).Count(&count).Error
	return count, err
}

// RecordExists checks if a row matching whereClause exists in table
func (h *DatabaseHelper) RecordExists(table, whereClause string, args ...interface{}) (bool, error) {
	var count int64
	err := h.db.Table(table).Where(whereClause, args...).Count(&count).Error
	return count > 0, err
}
