package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Document is a durable mapping from string id to a record value, backed by
// a single JSON file on disk. The whole file is loaded into memory when the
// document is opened; every Update rewrites it in full. Reads never touch
// the disk.
type Document[T any] struct {
	mu   sync.RWMutex
	path string
	data map[string]T
}

// Open loads the JSON document at path. A missing file yields an empty
// document; it is created on the first Update.
func Open[T any](path string) (*Document[T], error) {
	d := &Document[T]{
		path: path,
		data: make(map[string]T),
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return d, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read document %s: %w", path, err)
	}

	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &d.data); err != nil {
			return nil, fmt.Errorf("parse document %s: %w", path, err)
		}
	}

	return d, nil
}

// Get returns the record stored under id.
func (d *Document[T]) Get(id string) (T, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	rec, ok := d.data[id]
	return rec, ok
}

// GetAll returns a snapshot of all records. Iteration order is not
// guaranteed to be stable across writes.
func (d *Document[T]) GetAll() []T {
	d.mu.RLock()
	defer d.mu.RUnlock()

	records := make([]T, 0, len(d.data))
	for _, rec := range d.data {
		records = append(records, rec)
	}
	return records
}

// Find returns the first record matching the predicate.
func (d *Document[T]) Find(pred func(T) bool) (T, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, rec := range d.data {
		if pred(rec) {
			return rec, true
		}
	}
	var zero T
	return zero, false
}

// Len returns the number of stored records.
func (d *Document[T]) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return len(d.data)
}

// Update applies fn to the document under an exclusive lock and persists
// the entire document back to disk. Concurrent updates serialize on the
// lock. A failed write is returned to the caller; the in-memory change is
// kept, so memory and disk may diverge until the next successful write.
func (d *Document[T]) Update(fn func(map[string]T)) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	fn(d.data)
	return d.persist()
}

// persist writes the document through a temp file rename so a failed write
// never leaves a truncated file behind. Caller must hold the write lock.
func (d *Document[T]) persist() error {
	raw, err := json.MarshalIndent(d.data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal document %s: %w", d.path, err)
	}

	tmp := d.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(d.path), 0o755); err != nil {
		return fmt.Errorf("create document dir: %w", err)
	}
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write document %s: %w", d.path, err)
	}
	if err := os.Rename(tmp, d.path); err != nil {
		return fmt.Errorf("replace document %s: %w", d.path, err)
	}
	return nil
}
