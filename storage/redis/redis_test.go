// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package redis_test

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-a2a/a2a-exchange/storage"
	a2aredis "github.com/go-a2a/a2a-exchange/storage/redis"
	"github.com/go-a2a/a2a-exchange/storage/storagetest"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *a2aredis.Backend) {
	t.Helper()

	mr := miniredis.RunT(t)
	b, err := a2aredis.Open(t.Context(), a2aredis.Config{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { b.Close() })

	return mr, b
}

func TestBackend(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Backend {
		_, b := setupTestRedis(t)
		return b
	})
}

func TestBackendKeyLayout(t *testing.T) {
	mr, b := setupTestRedis(t)
	ctx := t.Context()

	require.NoError(t, b.Put(ctx, "tasks", "t1", []byte(`{"id":"t1"}`)))
	require.NoError(t, b.Put(ctx, "tasks", "t1", []byte(`{"id":"t1","v":2}`)))

	assert.Equal(t, `{"id":"t1","v":2}`, mr.HGet("a2a:tasks:data", "t1"))

	members, err := mr.ZMembers("a2a:tasks:order")
	require.NoError(t, err)
	assert.Equal(t, []string{"t1"}, members)

	score, err := mr.ZScore("a2a:tasks:order", "t1")
	require.NoError(t, err)
	assert.Equal(t, float64(1), score)
}

func TestOpenUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := a2aredis.Open(t.Context(), a2aredis.Config{Addr: addr})
	assert.Error(t, err)
}

func TestBackendPing(t *testing.T) {
	_, b := setupTestRedis(t)
	assert.NoError(t, b.Ping(t.Context()))
}
