// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"context"
	"fmt"

	"github.com/go-a2a/a2a-exchange/storage/codec"
)

// Collection is a typed view over one collection of a [Backend].
type Collection[T any] struct {
	backend Backend
	codec   codec.Codec
	name    string
}

// NewCollection returns a typed view over the named collection. A nil codec selects JSON.
func NewCollection[T any](backend Backend, c codec.Codec, name string) *Collection[T] {
	if c == nil {
		c = codec.JSON()
	}
	return &Collection[T]{backend: backend, codec: c, name: name}
}

// Name returns the collection name.
func (c *Collection[T]) Name() string { return c.name }

// Put encodes v and stores it under key.
func (c *Collection[T]) Put(ctx context.Context, key string, v *T) error {
	data, err := c.codec.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", c.name, key, err)
	}
	return c.backend.Put(ctx, c.name, key, data)
}

// Get decodes the value stored under key. It returns ErrNotFound if the key does not exist.
func (c *Collection[T]) Get(ctx context.Context, key string) (*T, error) {
	data, err := c.backend.Get(ctx, c.name, key)
	if err != nil {
		return nil, err
	}
	return c.decode(key, data)
}

// Delete removes key and reports whether something was removed.
func (c *Collection[T]) Delete(ctx context.Context, key string) (bool, error) {
	return c.backend.Delete(ctx, c.name, key)
}

// List decodes every value in insertion order and keeps those accepted by keep.
// A nil keep keeps everything.
func (c *Collection[T]) List(ctx context.Context, keep func(*T) bool) ([]*T, error) {
	raw, err := c.backend.List(ctx, c.name, nil)
	if err != nil {
		return nil, err
	}

	out := make([]*T, 0, len(raw))
	for _, data := range raw {
		v, err := c.decode("", data)
		if err != nil {
			return nil, err
		}
		if keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (c *Collection[T]) decode(key string, data []byte) (*T, error) {
	v := new(T)
	if err := c.codec.Unmarshal(data, v); err != nil {
		return nil, fmt.Errorf("decode %s/%s: %w", c.name, key, err)
	}
	return v, nil
}
