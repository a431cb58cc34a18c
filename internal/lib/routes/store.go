package routes

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
)

// Store reads and writes route documents in a single directory. Writes
// are staged through a temp file so a failed write never leaves a
// half-written document behind, and backups are synced to disk before
// the original is replaced.
type Store struct {
	dir string
	log *zap.Logger
}

// NewStore creates a store rooted at dir.
func NewStore(dir string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{dir: dir, log: log}
}

// Dir returns the store's root directory.
func (s *Store) Dir() string {
	return s.dir
}

// List returns the route files in the store, sorted by name. Route
// files are named R<number>[-<period>].json.
func (s *Store) List() ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(s.dir, "R*.json"))
	if err != nil {
		return nil, fmt.Errorf("list routes in %s: %w", s.dir, err)
	}
	sort.Strings(paths)
	return paths, nil
}

// Resolve turns a bare file name into a path inside the store.
// Absolute paths and paths with directory components pass through.
func (s *Store) Resolve(name string) string {
	if filepath.IsAbs(name) || filepath.Dir(name) != "." {
		return name
	}
	return filepath.Join(s.dir, name)
}

// Load reads and validates one route document.
func (s *Store) Load(path string) (Route, error) {
	return LoadFile(path)
}

// LoadFile reads and validates a route document at any path.
func LoadFile(path string) (Route, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Route{}, fmt.Errorf("read route: %w", err)
	}
	var r Route
	if err := json.Unmarshal(data, &r); err != nil {
		return Route{}, fmt.Errorf("parse route %s: %w", path, err)
	}
	if err := r.Validate(); err != nil {
		return Route{}, err
	}
	return r, nil
}

// Marshal encodes a route document the way Save writes it: two-space
// indent with a trailing newline.
func Marshal(r Route) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode route %s: %w", r.ID, err)
	}
	return append(data, '\n'), nil
}

// Save writes a route document, replacing path atomically.
func (s *Store) Save(path string, r Route) error {
	data, err := Marshal(r)
	if err != nil {
		return err
	}

	// Stage in the same directory so the rename cannot cross devices.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".route-*.tmp")
	if err != nil {
		return fmt.Errorf("stage route write: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write route: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync route: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close route: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace route file: %w", err)
	}
	return nil
}

// Backup copies the document at path to path+".bak", syncing it to
// disk, and returns the backup path. The backup must be durable before
// the caller overwrites the original.
func (s *Store) Backup(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read for backup: %w", err)
	}

	backupPath := path + ".bak"
	f, err := os.OpenFile(backupPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("create backup: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", fmt.Errorf("write backup: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return "", fmt.Errorf("sync backup: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close backup: %w", err)
	}

	s.log.Debug("wrote backup", zap.String("path", backupPath))
	return backupPath, nil
}
