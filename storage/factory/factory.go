// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package factory builds a [storage.Backend] and record codec from configuration.
package factory

import (
	"context"
	"fmt"

	"github.com/go-a2a/a2a-exchange/storage"
	"github.com/go-a2a/a2a-exchange/storage/codec"
	"github.com/go-a2a/a2a-exchange/storage/memory"
	"github.com/go-a2a/a2a-exchange/storage/redis"
	"github.com/go-a2a/a2a-exchange/storage/sqlstore"
)

// Backend types.
const (
	TypeMemory = memory.DriverName
	TypeRedis  = redis.DriverName
	TypeSQL    = sqlstore.DriverName
)

// Config selects and configures a storage driver.
type Config struct {
	Type  string          `yaml:"type" env:"TYPE"`
	Codec string          `yaml:"codec" env:"CODEC"`
	Redis redis.Config    `yaml:"redis" env:"REDIS"`
	SQL   sqlstore.Config `yaml:"sql" env:"SQL"`
}

// NewBackend creates the backend named by cfg.Type. An empty type selects memory.
func NewBackend(ctx context.Context, cfg Config) (storage.Backend, error) {
	switch cfg.Type {
	case "", TypeMemory:
		return memory.New(), nil
	case TypeRedis:
		return redis.Open(ctx, cfg.Redis)
	case TypeSQL:
		return sqlstore.Open(ctx, cfg.SQL)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}

// NewCodec returns the record codec named by cfg.Codec.
func NewCodec(cfg Config) (codec.Codec, error) {
	return codec.ByName(cfg.Codec)
}
