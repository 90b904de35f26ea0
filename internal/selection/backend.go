// Package selection manages the per-output selection documents that
// reference entities in the master document.
package selection

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Backend persists selection documents keyed by slug. The Postgres backend
// in the store package satisfies this interface as well.
type Backend interface {
	// ListSlugs returns all stored slugs in lexical order.
	ListSlugs(ctx context.Context) ([]string, error)
	// LoadSelection returns the bytes for a slug, or nil if absent.
	LoadSelection(ctx context.Context, slug string) ([]byte, error)
	// SaveSelection atomically replaces the document for a slug.
	SaveSelection(ctx context.Context, slug string, data []byte) error
	// DeleteSelection removes a slug, reporting whether it existed.
	DeleteSelection(ctx context.Context, slug string) (bool, error)
}

// Dir is a Backend over a directory holding one <slug>.json file per
// selection. template.json is reserved for the seed document and never
// listed.
type Dir struct {
	dir string
	mu  sync.Mutex
}

// NewDir creates a directory backend, creating the directory if needed.
func NewDir(dir string) (*Dir, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create selections directory: %w", err)
	}
	return &Dir{dir: dir}, nil
}

func (d *Dir) path(slug string) string {
	return filepath.Join(d.dir, slug+".json")
}

// ListSlugs returns the slugs of all stored selections.
func (d *Dir) ListSlugs(_ context.Context) ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read selections directory: %w", err)
	}

	var slugs []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") || name == "template.json" {
			continue
		}
		slugs = append(slugs, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(slugs)
	return slugs, nil
}

// LoadSelection reads a slug's file; a missing file returns nil bytes.
func (d *Dir) LoadSelection(_ context.Context, slug string) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	data, err := os.ReadFile(d.path(slug))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read selection %s: %w", slug, err)
	}
	return data, nil
}

// SaveSelection writes via temp file and rename.
func (d *Dir) SaveSelection(_ context.Context, slug string, data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	target := d.path(slug)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("failed to replace %s: %w", target, err)
	}
	return nil
}

// DeleteSelection removes a slug's file, reporting whether it existed.
func (d *Dir) DeleteSelection(_ context.Context, slug string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	err := os.Remove(d.path(slug))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to delete selection %s: %w", slug, err)
	}
	return true, nil
}
