// Copyright © 2025 Sergio Mota <smota@gmail.com>
// SPDX-License-Identifier: MIT

package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")

	s := Open(path, 0)
	require.NoError(t, s.Put("k1", payload{Name: "a", Count: 1}))
	require.NoError(t, s.Flush())

	// A fresh store sees exactly what was written.
	s2 := Open(path, 0)
	var got payload
	require.True(t, s2.Get("k1", &got))
	assert.Equal(t, payload{Name: "a", Count: 1}, got)
	assert.Equal(t, 1, s2.Len())
}

func TestMissingFileStartsEmpty(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "absent.json"), 0)
	assert.Equal(t, 0, s.Len())
}

func TestCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s := Open(path, 0)
	assert.Equal(t, 0, s.Len())

	// The store remains usable and can be flushed over the corrupt file.
	require.NoError(t, s.Put("k", payload{Name: "fresh"}))
	require.NoError(t, s.Flush())
	assert.Equal(t, 1, Open(path, 0).Len())
}

func TestPutIdenticalValueIsNoOp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	s := Open(path, 0)

	require.NoError(t, s.Put("k", payload{Name: "a"}))
	require.NoError(t, s.Flush())
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	// Same value again: nothing is marked dirty, flush rewrites nothing.
	require.NoError(t, s.Put("k", payload{Name: "a"}))
	require.NoError(t, s.Flush())
	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestPutDifferentValueOverwrites(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "cache.json"), 0)

	require.NoError(t, s.Put("k", payload{Name: "a"}))
	require.NoError(t, s.Put("k", payload{Name: "b"}))

	var got payload
	require.True(t, s.Get("k", &got))
	assert.Equal(t, "b", got.Name)
	assert.Equal(t, 1, s.Len())
}

func TestCheckpointFlushes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	s := Open(path, 2)

	require.NoError(t, s.Put("k1", payload{Name: "a"}))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "no flush before the checkpoint")

	require.NoError(t, s.Put("k2", payload{Name: "b"}))
	assert.Equal(t, 2, Open(path, 0).Len(), "checkpoint persisted both entries")
}

func TestGetAbsentKey(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "cache.json"), 0)
	var got payload
	assert.False(t, s.Get("nope", &got))
	assert.False(t, s.Has("nope"))
}

func TestFlushCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "cache.json")
	s := Open(path, 0)
	require.NoError(t, s.Put("k", payload{Name: "a"}))
	require.NoError(t, s.Flush())
	assert.FileExists(t, path)
}
