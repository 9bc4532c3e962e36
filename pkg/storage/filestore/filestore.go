// Package filestore provides a storage.Slot backed by a single JSON file.
package filestore

import (
	"builtat/pkg/storage"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Store keeps one slot in <dir>/<name>.json. Writes go to a temporary file in
// the same directory which is then renamed over the target, so readers never
// observe a partially written slot.
type Store struct {
	path string
}

// New returns a Store for slot name under dir. An empty dir selects
// <user cache dir>/builtat.
func New(dir string, name string) (*Store, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("%w: %q", storage.ErrInvalidSlotName, name)
	}
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("could not resolve user cache dir: %w", err)
		}
		dir = filepath.Join(base, "builtat")
	}

	return &Store{path: filepath.Join(filepath.Clean(dir), name+".json")}, nil
}

// Path returns the file backing the slot.
func (s *Store) Path() string {
	return s.path
}

// Load implements storage.Slot.
func (s *Store) Load(_ context.Context) ([]byte, bool, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}

		return nil, false, fmt.Errorf("could not read slot: %w", err)
	}

	return b, true, nil
}

// Store implements storage.Slot.
func (s *Store) Store(_ context.Context, data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("could not create slot dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("could not create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()

		return fmt.Errorf("could not write slot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not close slot: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("could not replace slot: %w", err)
	}

	return nil
}

var _ storage.Slot = (*Store)(nil)
