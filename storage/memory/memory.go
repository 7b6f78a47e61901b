// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package memory is the reference in-memory [storage.Backend] driver.
// Data is lost when the process stops.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/go-a2a/a2a-exchange/storage"
)

// DriverName is the name the driver reports in errors and configuration.
const DriverName = "memory"

type collection struct {
	values map[string][]byte
	order  []string
}

// Backend is an in-memory implementation of [storage.Backend].
// All operations are thread-safe using sync.RWMutex.
type Backend struct {
	mu          sync.RWMutex
	collections map[string]*collection
}

var _ storage.Backend = (*Backend)(nil)

// New creates a new in-memory Backend.
func New() *Backend {
	return &Backend{
		collections: make(map[string]*collection),
	}
}

// Put stores a copy of value under key.
func (b *Backend) Put(ctx context.Context, name, key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	c, ok := b.collections[name]
	if !ok {
		c = &collection{values: make(map[string][]byte)}
		b.collections[name] = c
	}
	if _, exists := c.values[key]; !exists {
		c.order = append(c.order, key)
	}
	c.values[key] = slices.Clone(value)
	return nil
}

// Get returns a copy of the value stored under key.
func (b *Backend) Get(ctx context.Context, name, key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	c, ok := b.collections[name]
	if !ok {
		return nil, storage.ErrNotFound
	}
	v, ok := c.values[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return slices.Clone(v), nil
}

// Delete removes key from the collection.
func (b *Backend) Delete(ctx context.Context, name, key string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	c, ok := b.collections[name]
	if !ok {
		return false, nil
	}
	if _, exists := c.values[key]; !exists {
		return false, nil
	}
	delete(c.values, key)
	if i := slices.Index(c.order, key); i >= 0 {
		c.order = slices.Delete(c.order, i, i+1)
	}
	return true, nil
}

// List returns copies of the selected values in insertion order.
func (b *Backend) List(ctx context.Context, name string, match storage.Match) ([][]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	c, ok := b.collections[name]
	if !ok {
		return [][]byte{}, nil
	}
	out := make([][]byte, 0, len(c.order))
	for _, key := range c.order {
		v := c.values[key]
		if match == nil || match(key, v) {
			out = append(out, slices.Clone(v))
		}
	}
	return out, nil
}

// Close drops every collection.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.collections = make(map[string]*collection)
	return nil
}

// Len returns the number of records in the named collection.
// This is useful for testing and monitoring purposes.
func (b *Backend) Len(name string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if c, ok := b.collections[name]; ok {
		return len(c.order)
	}
	return 0
}
