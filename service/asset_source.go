package service

import (
	"fmt"
	"os"
	"path/filepath"
)

// AssetSource abstracts a folder of product images. The matcher works on the
// listed names; the publisher reads the bytes.
type AssetSource interface {
	List() ([]string, error)
	Read(name string) ([]byte, error)
}

// LocalDirSource serves assets from a local catalog directory.
// Implements AssetSource
type LocalDirSource struct {
	dir string
}

// NewLocalDirSource creates a LocalDirSource for the given directory.
func NewLocalDirSource(dir string) *LocalDirSource {
	return &LocalDirSource{dir: dir}
}

// Ensure LocalDirSource implements AssetSource
var _ AssetSource = (*LocalDirSource)(nil)

// List returns the regular file names in the directory. os.ReadDir sorts by
// name, so the listing order is stable across runs.
func (s *LocalDirSource) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read asset directory %s: %w", s.dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// Read returns the bytes of one asset file.
func (s *LocalDirSource) Read(name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to read asset %s: %w", name, err)
	}
	return data, nil
}
