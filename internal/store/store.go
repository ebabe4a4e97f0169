// Copyright © 2025 Sergio Mota <smota@gmail.com>
// SPDX-License-Identifier: MIT

package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/apex/log"
)

// Store is a durable key-value document store backed by a single JSON file.
// The whole document is loaded at Open and rewritten wholesale at Flush; there
// is no append log and no partial update. Writes are idempotent: putting an
// equal value is a no-op, putting a different value overwrites last-write-wins
// and is surfaced as a warning.
//
// Store is not safe for concurrent use. The run loop is serial; callers
// needing concurrency must coalesce per-key work above this layer.
type Store struct {
	path       string
	entries    map[string]json.RawMessage
	dirty      int
	checkpoint int
}

// Open loads the document at path. A missing file yields an empty store; an
// unreadable or corrupt file also yields an empty store with a warning, never
// an error. checkpoint > 0 flushes automatically after that many mutations.
func Open(path string, checkpoint int) *Store {
	s := &Store{
		path:       path,
		entries:    map[string]json.RawMessage{},
		checkpoint: checkpoint,
	}

	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s
	}
	if err != nil {
		log.WithError(err).Warnf("cache %s unreadable, starting empty", path)
		return s
	}
	if err := json.Unmarshal(b, &s.entries); err != nil {
		log.WithError(err).Warnf("cache %s corrupt, starting empty", path)
		s.entries = map[string]json.RawMessage{}
	}
	return s
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

// Len reports the number of stored entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Get unmarshals the entry for key into v. Returns false when the key is
// absent or the stored bytes no longer decode into v.
func (s *Store) Get(key string, v any) bool {
	raw, ok := s.entries[key]
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		log.WithError(err).Warnf("cache %s: entry %s undecodable", filepath.Base(s.path), key)
		return false
	}
	return true
}

// Has reports whether key is present without decoding it.
func (s *Store) Has(key string) bool {
	_, ok := s.entries[key]
	return ok
}

// Put stores v under key. Writing an identical value leaves the store
// untouched; writing a different value overwrites and logs a warning, since
// provider results may legitimately drift between runs.
func (s *Store) Put(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode cache entry %s: %w", key, err)
	}

	if old, ok := s.entries[key]; ok {
		if bytes.Equal(old, b) {
			return nil
		}
		log.Warnf("cache %s: entry %s rewritten with a different value",
			filepath.Base(s.path), key)
	}

	s.entries[key] = b
	s.dirty++

	if s.checkpoint > 0 && s.dirty >= s.checkpoint {
		if err := s.Flush(); err != nil {
			// Checkpoint failures only cost durability, not correctness.
			log.WithError(err).Warnf("cache %s checkpoint failed", filepath.Base(s.path))
		}
	}
	return nil
}

// Flush rewrites the whole document. A no-op when nothing changed since the
// last flush.
func (s *Store) Flush() error {
	if s.dirty == 0 {
		return nil
	}

	b, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode cache %s: %w", s.path, err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("create cache directory: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0o600); err != nil { //nolint:mnd
		return fmt.Errorf("write cache %s: %w", s.path, err)
	}

	s.dirty = 0
	return nil
}
