package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// File permissions for snapshot records and their directories.
const (
	recordFilePermission = 0o600
	recordDirPermission  = 0o750
)

// FileStore implements Store with one JSON file per key under
// <dir>/<slot>/<key>.json.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed store rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Put writes data to <dir>/<slot>/<key>.json via a temp file and rename,
// so readers never observe a half-written record.
func (s *FileStore) Put(_ context.Context, slot Slot, key string, data []byte) error {
	slotDir := filepath.Join(s.dir, string(slot))
	if err := os.MkdirAll(slotDir, recordDirPermission); err != nil {
		return fmt.Errorf("create slot dir: %w", err)
	}

	target := filepath.Join(slotDir, key+".json")
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, recordFilePermission); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("publish record: %w", err)
	}
	return nil
}

// Get reads the record for key, mapping a missing file to ErrNotFound.
func (s *FileStore) Get(_ context.Context, slot Slot, key string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, string(slot), key+".json"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read record: %w", err)
	}
	return data, nil
}

// Close is a no-op for the file store.
func (s *FileStore) Close() error { return nil }
