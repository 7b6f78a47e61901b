// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package sqlstore_test

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/go-a2a/a2a-exchange/storage"
	"github.com/go-a2a/a2a-exchange/storage/sqlstore"
	"github.com/go-a2a/a2a-exchange/storage/storagetest"
)

func setupTestDB(t *testing.T) *sqlstore.Backend {
	t.Helper()

	b, err := sqlstore.Open(t.Context(), sqlstore.Config{Dialect: sqlstore.DialectSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { b.Close() })
	return b
}

func TestBackend(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Backend {
		return setupTestDB(t)
	})
}

func TestNewMigratesSchema(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	b, err := sqlstore.New(t.Context(), db)
	require.NoError(t, err)
	assert.True(t, db.Migrator().HasTable(&sqlstore.Record{}))

	require.NoError(t, b.Put(t.Context(), "tasks", "t1", []byte("one")))
	require.NoError(t, b.Put(t.Context(), "tasks", "t1", []byte("two")))

	var count int64
	require.NoError(t, db.Model(&sqlstore.Record{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestNewNilDB(t *testing.T) {
	_, err := sqlstore.New(t.Context(), nil)
	assert.Error(t, err)
}

func TestOpenUnsupportedDialect(t *testing.T) {
	_, err := sqlstore.Open(t.Context(), sqlstore.Config{Dialect: "oracle"})
	assert.ErrorContains(t, err, "unsupported database dialect")
}
