// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package storage defines the minimal key/value and enumerable-collection contract
// the task store and the push notification registry are built on.
//
// Drivers must keep keys unique within a collection and enumerate a collection in
// first-insertion order: overwriting an existing key keeps its original position.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by [Backend.Get] when the key does not exist.
var ErrNotFound = errors.New("storage: record not found")

// Match selects records during [Backend.List]. A nil Match selects every record.
type Match func(key string, value []byte) bool

// Backend is a collection-scoped key/value store.
type Backend interface {
	// Put inserts or replaces the value stored under key.
	Put(ctx context.Context, collection, key string, value []byte) error

	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, collection, key string) ([]byte, error)

	// Delete removes key and reports whether something was removed.
	Delete(ctx context.Context, collection, key string) (bool, error)

	// List returns the values selected by match in insertion order.
	List(ctx context.Context, collection string, match Match) ([][]byte, error)

	// Close releases the resources held by the backend.
	Close() error
}

// StoreError represents a failure reported by a storage driver.
type StoreError struct {
	Driver     string
	Operation  string
	Collection string
	Key        string
	Err        error
}

// Error returns the error message.
func (e *StoreError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s store %s operation failed for collection %s: %v", e.Driver, e.Operation, e.Collection, e.Err)
	}
	return fmt.Sprintf("%s store %s operation failed for %s/%s: %v", e.Driver, e.Operation, e.Collection, e.Key, e.Err)
}

// Unwrap returns the underlying error.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError.
func NewStoreError(driver, operation, collection, key string, err error) *StoreError {
	return &StoreError{
		Driver:     driver,
		Operation:  operation,
		Collection: collection,
		Key:        key,
		Err:        err,
	}
}
