// Package history keeps REPL input lines between sessions in the user
// cache directory, msgpack-encoded.
package history

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when payload format changes
const schemaVersion uint16 = 1

// DefaultLimit is how many entries Save keeps.
const DefaultLimit = 500

// Store reads and writes one history file. Safe for concurrent use.
type Store struct {
	mu    sync.Mutex
	path  string
	limit int
}

type payload struct {
	Schema  uint16
	Entries []string
}

// Open returns the store at $XDG_CACHE_HOME/<app>/history.mp, falling back
// to ~/.cache.
func Open(app string) (*Store, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenAt(filepath.Join(base, app, "history.mp"), DefaultLimit), nil
}

// OpenAt returns a store for path keeping at most limit entries;
// limit <= 0 means DefaultLimit.
func OpenAt(path string, limit int) *Store {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Store{path: path, limit: limit}
}

// Path of the history file.
func (s *Store) Path() string { return s.path }

// Load returns the saved entries, oldest first. A missing file or one
// written by another schema yields no entries.
func (s *Store) Load() ([]string, error) {
	if s == nil {
		return nil, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var p payload
	if err := msgpack.NewDecoder(f).Decode(&p); err != nil {
		return nil, fmt.Errorf("history %s: %w", s.path, err)
	}
	if p.Schema != schemaVersion {
		return nil, nil
	}
	return p.Entries, nil
}

// Save replaces the file with the last entries, up to the limit.
func (s *Store) Save(entries []string) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(entries) > s.limit {
		entries = entries[len(entries)-s.limit:]
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name()) // после Rename файла уже нет

	if err := msgpack.NewEncoder(f).Encode(&payload{Schema: schemaVersion, Entries: entries}); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), s.path)
}
