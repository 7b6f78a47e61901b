// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package redis is a Redis-backed [storage.Backend] driver suitable for
// deployments where several exchange processes share state.
//
// Each collection uses a hash for the values, a sorted set for insertion order
// and a counter providing the sort scores.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/go-a2a/a2a-exchange/storage"
)

// DriverName is the name the driver reports in errors and configuration.
const DriverName = "redis"

// DefaultKeyPrefix is used when Config.KeyPrefix is empty.
const DefaultKeyPrefix = "a2a:"

// putScript inserts the value and records the key position only on first insertion.
var putScript = redis.NewScript(`
local seq = redis.call('INCR', KEYS[3])
redis.call('ZADD', KEYS[2], 'NX', seq, ARGV[1])
redis.call('HSET', KEYS[1], ARGV[1], ARGV[2])
return 1
`)

// Config holds the connection settings of the driver.
type Config struct {
	Addr      string `yaml:"addr" env:"ADDR"`
	Password  string `yaml:"password" env:"PASSWORD"`
	DB        int    `yaml:"db" env:"DB"`
	PoolSize  int    `yaml:"pool_size" env:"POOL_SIZE"`
	KeyPrefix string `yaml:"key_prefix" env:"KEY_PREFIX"`
}

// Backend is a Redis implementation of [storage.Backend].
type Backend struct {
	client    *redis.Client
	keyPrefix string
}

var _ storage.Backend = (*Backend)(nil)

// Open connects to Redis and verifies the connection.
func Open(ctx context.Context, cfg Config) (*Backend, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return New(client, cfg.KeyPrefix), nil
}

// New wraps an existing client. An empty keyPrefix selects [DefaultKeyPrefix].
func New(client *redis.Client, keyPrefix string) *Backend {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}
	return &Backend{client: client, keyPrefix: keyPrefix}
}

func (b *Backend) dataKey(collection string) string  { return b.keyPrefix + collection + ":data" }
func (b *Backend) orderKey(collection string) string { return b.keyPrefix + collection + ":order" }
func (b *Backend) seqKey(collection string) string   { return b.keyPrefix + collection + ":seq" }

// Put stores value under key.
func (b *Backend) Put(ctx context.Context, collection, key string, value []byte) error {
	keys := []string{b.dataKey(collection), b.orderKey(collection), b.seqKey(collection)}
	if err := putScript.Run(ctx, b.client, keys, key, value).Err(); err != nil {
		return storage.NewStoreError(DriverName, "put", collection, key, err)
	}
	return nil
}

// Get returns the value stored under key.
func (b *Backend) Get(ctx context.Context, collection, key string) ([]byte, error) {
	data, err := b.client.HGet(ctx, b.dataKey(collection), key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, storage.NewStoreError(DriverName, "get", collection, key, err)
	}
	return data, nil
}

// Delete removes key from the collection.
func (b *Backend) Delete(ctx context.Context, collection, key string) (bool, error) {
	var removed *redis.IntCmd
	_, err := b.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		removed = pipe.HDel(ctx, b.dataKey(collection), key)
		pipe.ZRem(ctx, b.orderKey(collection), key)
		return nil
	})
	if err != nil {
		return false, storage.NewStoreError(DriverName, "delete", collection, key, err)
	}
	return removed.Val() > 0, nil
}

// List returns the selected values in insertion order.
func (b *Backend) List(ctx context.Context, collection string, match storage.Match) ([][]byte, error) {
	keys, err := b.client.ZRange(ctx, b.orderKey(collection), 0, -1).Result()
	if err != nil {
		return nil, storage.NewStoreError(DriverName, "list", collection, "", err)
	}
	out := make([][]byte, 0, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	values, err := b.client.HMGet(ctx, b.dataKey(collection), keys...).Result()
	if err != nil {
		return nil, storage.NewStoreError(DriverName, "list", collection, "", err)
	}
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			// deleted between ZRANGE and HMGET
			continue
		}
		data := []byte(s)
		if match == nil || match(keys[i], data) {
			out = append(out, data)
		}
	}
	return out, nil
}

// Ping checks if the server is reachable.
func (b *Backend) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}

// Close closes the underlying client.
func (b *Backend) Close() error {
	return b.client.Close()
}
