package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DiskStore writes resumes under a local upload directory.
type DiskStore struct {
	dir string
}

// NewDiskStore creates the upload directory if needed.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Save writes the artifact, replacing any previous file under the same key.
func (s *DiskStore) Save(_ context.Context, key string, data []byte, _ string) error {
	if err := os.WriteFile(filepath.Join(s.dir, key), data, 0o644); err != nil {
		return fmt.Errorf("write resume: %w", err)
	}
	return nil
}

// Remove deletes the artifact. Removing a missing file is not an error.
func (s *DiskStore) Remove(_ context.Context, key string) error {
	err := os.Remove(filepath.Join(s.dir, key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove resume: %w", err)
	}
	return nil
}
