// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package sqlstore is a relational [storage.Backend] driver built on GORM.
//
// All collections share the a2a_records table. SQLite (pure Go) and
// PostgreSQL dialects are supported.
package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/go-a2a/a2a-exchange/storage"
)

// DriverName is the name the driver reports in errors and configuration.
const DriverName = "sql"

// Supported dialects.
const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

// Config holds the database settings of the driver.
type Config struct {
	Dialect string `yaml:"dialect" env:"DIALECT"` // "sqlite" (default) or "postgres"
	DSN     string `yaml:"dsn" env:"DSN"`
	// MaxOpenConns caps the connection pool. Zero keeps the database/sql default.
	MaxOpenConns int `yaml:"max_open_conns" env:"MAX_OPEN_CONNS"`
}

// Backend is a GORM implementation of [storage.Backend].
type Backend struct {
	db *gorm.DB
}

var _ storage.Backend = (*Backend)(nil)

// Open opens the database described by cfg and migrates the schema.
func Open(ctx context.Context, cfg Config) (*Backend, error) {
	var dialector gorm.Dialector
	switch cfg.Dialect {
	case "", DialectSQLite:
		dsn := cfg.DSN
		if dsn == "" {
			dsn = ":memory:"
		}
		dialector = sqlite.Open(dsn)
	case DialectPostgres:
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database dialect: %s (supported: sqlite, postgres)", cfg.Dialect)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	maxOpen := cfg.MaxOpenConns
	if maxOpen == 0 && (cfg.Dialect == "" || cfg.Dialect == DialectSQLite) {
		// every connection to :memory: would see its own database
		maxOpen = 1
	}
	if maxOpen > 0 {
		sqlDB.SetMaxOpenConns(maxOpen)
	}

	b, err := New(ctx, db)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}
	return b, nil
}

// New wraps an existing connection and migrates the schema.
func New(ctx context.Context, db *gorm.DB) (*Backend, error) {
	if db == nil {
		return nil, errors.New("database connection cannot be nil")
	}
	if err := db.WithContext(ctx).AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &Backend{db: db}, nil
}

// Put stores value under key.
func (b *Backend) Put(ctx context.Context, collection, key string, value []byte) error {
	rec := &Record{Collection: collection, Key: key, Value: value}
	err := b.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "collection"}, {Name: "record_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(rec).Error
	if err != nil {
		return storage.NewStoreError(DriverName, "put", collection, key, err)
	}
	return nil
}

// Get returns the value stored under key.
func (b *Backend) Get(ctx context.Context, collection, key string) ([]byte, error) {
	var rec Record
	err := b.db.WithContext(ctx).
		Where("collection = ? AND record_key = ?", collection, key).
		Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, storage.NewStoreError(DriverName, "get", collection, key, err)
	}
	return rec.Value, nil
}

// Delete removes key from the collection.
func (b *Backend) Delete(ctx context.Context, collection, key string) (bool, error) {
	result := b.db.WithContext(ctx).
		Where("collection = ? AND record_key = ?", collection, key).
		Delete(&Record{})
	if result.Error != nil {
		return false, storage.NewStoreError(DriverName, "delete", collection, key, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// List returns the selected values in insertion order.
func (b *Backend) List(ctx context.Context, collection string, match storage.Match) ([][]byte, error) {
	var records []Record
	err := b.db.WithContext(ctx).
		Where("collection = ?", collection).
		Order("id").
		Find(&records).Error
	if err != nil {
		return nil, storage.NewStoreError(DriverName, "list", collection, "", err)
	}

	out := make([][]byte, 0, len(records))
	for _, rec := range records {
		if match == nil || match(rec.Key, rec.Value) {
			out = append(out, rec.Value)
		}
	}
	return out, nil
}

// Close closes the underlying connection pool.
func (b *Backend) Close() error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
