// Package kv provides the local key-value stores notes are persisted to.
package kv

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("kv: store is closed")

// ErrUnknownBackend is returned by Open for an unrecognized backend name.
var ErrUnknownBackend = errors.New("kv: unknown backend")

// Store is a string key-value store with synchronous operations.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)
	// Set stores value under key, replacing any previous value.
	Set(key, value string) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(key string) error
	Close() error
}

// Watcher is implemented by stores that can report changes made by other
// processes. The returned channel receives a value whenever the stored data
// changes outside this Store and is closed when ctx ends.
type Watcher interface {
	Watch(ctx context.Context) (<-chan struct{}, error)
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Backend string
	Path    string
	// Driver is the database/sql driver for the sqlite backend:
	// "sqlite3" (cgo) or "sqlite" (pure Go).
	Driver string
	Logger *slog.Logger
}

// Open returns the store described by opts.
func Open(opts Options) (Store, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	switch opts.Backend {
	case BackendFile, "":
		return OpenFile(opts.Path, logger)
	case BackendSQLite:
		return OpenSQLite(opts.Driver, opts.Path)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}
