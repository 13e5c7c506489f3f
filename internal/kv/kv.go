// Package kv provides the byte slots the todo store persists into.
//
// A Store only knows how to load and save bytes under a key; the todo store
// decides what the bytes mean. Backends: a directory of JSON files, a bbolt
// database, a SQLite database, and process memory.
package kv

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Get when nothing was ever saved under the key.
var ErrNotFound = errors.New("kv: key not found")

// Store is a durable key-value slot.
type Store interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendBolt   = "bolt"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Options select and locate a backend.
type Options struct {
	Backend string
	// Path is a directory for the file backend and a database file for
	// bolt and sqlite. Ignored for memory.
	Path string
}

// DefaultPath returns the path used when Options.Path is empty.
func DefaultPath(backend string) string {
	switch backend {
	case BackendBolt:
		return "tada.db"
	case BackendSQLite:
		return "tada.sqlite"
	}
	return "."
}

// Open returns the backend named in opts.
func Open(opts Options) (Store, error) {
	backend := strings.ToLower(strings.TrimSpace(opts.Backend))
	if backend == "" {
		backend = BackendFile
	}
	path := opts.Path
	if path == "" {
		path = DefaultPath(backend)
	}
	switch backend {
	case BackendFile:
		return NewFileStore(path)
	case BackendBolt:
		return NewBoltStore(path)
	case BackendSQLite:
		return NewSQLiteStore(path)
	case BackendMemory:
		return NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("kv: unknown backend %q", opts.Backend)
}

func checkKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("kv: empty key")
	}
	return nil
}
