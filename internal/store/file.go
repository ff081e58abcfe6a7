package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileSlot stores the record as one JSON file.
type FileSlot struct {
	path string
}

// NewFileSlot returns a slot backed by the file at path. The parent
// directory is created on first write.
func NewFileSlot(path string) (*FileSlot, error) {
	if path == "" {
		return nil, errors.New("store: file slot requires a path")
	}
	return &FileSlot{path: path}, nil
}

// Path returns the backing file path.
func (s *FileSlot) Path() string { return s.path }

// Get reads the file. A missing file is ErrEmpty.
func (s *FileSlot) Get(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("store: reading %s: %w", s.path, err)
	}
	return data, nil
}

// Put writes the file atomically (write temp + rename).
func (s *FileSlot) Put(_ context.Context, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("store: creating directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("store: writing temp file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("store: renaming temp file: %w", err)
	}
	return nil
}

// Close is a no-op.
func (s *FileSlot) Close() error { return nil }
