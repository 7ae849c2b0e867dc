// Copyright (c) 2025 Henoct Shimanga <henoctshimanga@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cacheutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadWriteRoundTrip(t *testing.T) {
	t.Setenv("TFINV_CACHE_DIR", t.TempDir())

	err := Write([]string{"outputs"}, "s3(bucket/key)", []byte(`{"a":1}`))
	require.NoError(t, err)

	e, ok := Read([]string{"outputs"}, "s3(bucket/key)")
	require.True(t, ok)
	assert.Equal(t, "s3(bucket/key)", e.Key)
	assert.Equal(t, []byte(`{"a":1}`), e.Data)
	assert.NotEqual(t, e.Key, e.EncodedKey)
}

func TestReadMiss(t *testing.T) {
	t.Setenv("TFINV_CACHE_DIR", t.TempDir())

	_, ok := Read([]string{"outputs"}, "never-written")
	assert.False(t, ok)
}

func TestDisabled(t *testing.T) {
	t.Setenv("TFINV_CACHE_DIR", t.TempDir())
	t.Setenv("TFINV_CACHE", "0")

	assert.False(t, Enabled())
	assert.NoError(t, Write([]string{"outputs"}, "k", []byte("v")))

	_, ok := Read([]string{"outputs"}, "k")
	assert.False(t, ok)
}

func TestPurge(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TFINV_CACHE_DIR", dir)

	require.NoError(t, Write([]string{"outputs"}, "old", []byte("v")))
	p, ok := EntryPath([]string{"outputs"}, "old")
	require.True(t, ok)

	stale := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(p, stale, stale))

	require.NoError(t, Purge(24))
	_, err := os.Stat(p)
	assert.True(t, os.IsNotExist(err))

	// hours <= 0 is a no-op.
	require.NoError(t, Write([]string{"outputs"}, "fresh", []byte("v")))
	require.NoError(t, Purge(0))
	p2, _ := EntryPath([]string{"outputs"}, "fresh")
	_, err = os.Stat(filepath.Clean(p2))
	assert.NoError(t, err)
}
