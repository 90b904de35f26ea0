package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Backend persists the serialized master document. Save is all-or-nothing:
// after an error the previously stored bytes must still be readable.
type Backend interface {
	// LoadDocument returns the stored document bytes, or nil if nothing has
	// been stored yet.
	LoadDocument(ctx context.Context) ([]byte, error)
	// SaveDocument atomically replaces the stored document.
	SaveDocument(ctx context.Context, data []byte) error
}

// File is a Backend over a single JSON file. Writes go to a temporary file
// in the same directory followed by a rename, so a crash mid-write never
// leaves a torn document behind.
type File struct {
	path string
	mu   sync.Mutex
}

// NewFile creates a file backend, creating the parent directory if needed.
func NewFile(path string) (*File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &File{path: path}, nil
}

// LoadDocument reads the file. A missing file is not an error; it returns
// nil bytes so a fresh deployment starts from an empty document.
func (f *File) LoadDocument(_ context.Context) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", f.path, err)
	}
	return data, nil
}

// SaveDocument writes the document via temp file and rename.
func (f *File) SaveDocument(_ context.Context, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", f.path, err)
	}
	return nil
}
