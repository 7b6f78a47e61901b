// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package storagetest provides a conformance suite shared by every
// [storage.Backend] driver.
package storagetest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-a2a/a2a-exchange/storage"
)

// Run exercises the Backend contract against backends produced by newBackend.
// Each subtest receives a fresh backend.
func Run(t *testing.T, newBackend func(t *testing.T) storage.Backend) {
	t.Helper()

	t.Run("GetMissing", func(t *testing.T) {
		b := newBackend(t)
		_, err := b.Get(t.Context(), "things", "nope")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("PutGet", func(t *testing.T) {
		b := newBackend(t)
		ctx := t.Context()
		require.NoError(t, b.Put(ctx, "things", "a", []byte(`{"v":1}`)))

		got, err := b.Get(ctx, "things", "a")
		require.NoError(t, err)
		assert.Equal(t, `{"v":1}`, string(got))

		_, err = b.Get(ctx, "other", "a")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("LongKey", func(t *testing.T) {
		b := newBackend(t)
		ctx := t.Context()
		key := "task/" + strings.Repeat("k", 1024)
		require.NoError(t, b.Put(ctx, "things", key, []byte("long")))

		got, err := b.Get(ctx, "things", key)
		require.NoError(t, err)
		assert.Equal(t, "long", string(got))

		removed, err := b.Delete(ctx, "things", key)
		require.NoError(t, err)
		assert.True(t, removed)
	})

	t.Run("OverwriteKeepsPosition", func(t *testing.T) {
		b := newBackend(t)
		ctx := t.Context()
		for _, k := range []string{"a", "b", "c"} {
			require.NoError(t, b.Put(ctx, "things", k, []byte(k)))
		}
		require.NoError(t, b.Put(ctx, "things", "a", []byte("A")))

		got, err := b.List(ctx, "things", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "b", "c"}, asStrings(got))
	})

	t.Run("Delete", func(t *testing.T) {
		b := newBackend(t)
		ctx := t.Context()
		require.NoError(t, b.Put(ctx, "things", "a", []byte("a")))
		require.NoError(t, b.Put(ctx, "things", "b", []byte("b")))

		removed, err := b.Delete(ctx, "things", "a")
		require.NoError(t, err)
		assert.True(t, removed)

		removed, err = b.Delete(ctx, "things", "a")
		require.NoError(t, err)
		assert.False(t, removed)

		_, err = b.Get(ctx, "things", "a")
		assert.ErrorIs(t, err, storage.ErrNotFound)

		got, err := b.List(ctx, "things", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"b"}, asStrings(got))
	})

	t.Run("DeleteThenPutAppends", func(t *testing.T) {
		b := newBackend(t)
		ctx := t.Context()
		require.NoError(t, b.Put(ctx, "things", "a", []byte("a")))
		require.NoError(t, b.Put(ctx, "things", "b", []byte("b")))
		_, err := b.Delete(ctx, "things", "a")
		require.NoError(t, err)
		require.NoError(t, b.Put(ctx, "things", "a", []byte("a2")))

		got, err := b.List(ctx, "things", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "a2"}, asStrings(got))
	})

	t.Run("ListMatch", func(t *testing.T) {
		b := newBackend(t)
		ctx := t.Context()
		for i := range 6 {
			key := fmt.Sprintf("k%d", i)
			require.NoError(t, b.Put(ctx, "things", key, []byte(key)))
		}

		got, err := b.List(ctx, "things", func(key string, _ []byte) bool {
			return strings.HasSuffix(key, "1") || strings.HasSuffix(key, "4")
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"k1", "k4"}, asStrings(got))

		empty, err := b.List(ctx, "missing", nil)
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("ConcurrentPut", func(t *testing.T) {
		b := newBackend(t)
		ctx := context.Background()

		var wg sync.WaitGroup
		for i := range 16 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				key := fmt.Sprintf("k%02d", i)
				assert.NoError(t, b.Put(ctx, "things", key, []byte(key)))
			}()
		}
		wg.Wait()

		got, err := b.List(ctx, "things", nil)
		require.NoError(t, err)
		assert.Len(t, got, 16)
	})
}

func asStrings(values [][]byte) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
