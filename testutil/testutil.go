// Package testutil builds throwaway stores and loggers for tests.
package testutil

import (
	"testing"

	"delivery-management-api/store/gormstore"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a migrated in-memory sqlite database. The pool is pinned to a
// single connection so every query sees the same memory database.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, gormstore.Migrate(db))
	return db
}

// NewStore returns a gorm-backed store over NewDB
func NewStore(t testing.TB) *gormstore.Store {
	t.Helper()
	return gormstore.New(NewDB(t))
}

// Logger returns a zap logger that writes through t.Log
func Logger(t testing.TB) *zap.Logger {
	return zaptest.NewLogger(t)
}
