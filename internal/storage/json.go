// Package storage persists the full board to a single JSON file.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"NoteBoard/internal/state"
)

// Store reads and writes the board's note records. Every save overwrites the
// whole file; there is no partial write.
type Store struct {
	path string
}

// NewStore creates a store backed by the given file path. The file and its
// parent directory need not exist yet.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

// Load returns the previously saved records. A missing file is a valid
// outcome and returns (nil, nil); any other failure is a real I/O error.
func (s *Store) Load() ([]state.Record, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", s.path, err)
	}
	var records []state.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("storage: parse %s: %w", s.path, err)
	}
	return records, nil
}

// Save atomically writes all records: tmp file, fsync, rename.
func (s *Store) Save(records []state.Record) error {
	if records == nil {
		records = []state.Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: marshal: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("storage: mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".noteboard-tmp-*")
	if err != nil {
		return fmt.Errorf("storage: create temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("storage: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("storage: sync temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: close temp: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("storage: rename: %w", err)
	}
	return nil
}
