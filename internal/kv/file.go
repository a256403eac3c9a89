package kv

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

// File is a Store backed by a single JSON object file mapping keys to string
// values. Every write replaces the file atomically.
type File struct {
	path   string
	logger *slog.Logger

	mu       sync.Mutex
	closed   bool
	digest   uint64 // xxhash of the file contents as last written or observed
	debounce time.Duration
}

// OpenFile opens (or lazily creates) the store file at path.
func OpenFile(path string, logger *slog.Logger) (*File, error) {
	if path == "" {
		return nil, errors.New("kv: file path is empty")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("kv: create storage dir: %w", err)
	}
	f := &File{path: path, logger: logger, debounce: 100 * time.Millisecond}

	// Record the current digest so the watcher only reports later changes.
	if data, err := os.ReadFile(path); err == nil {
		f.digest = xxhash.Sum64(data)
	}
	return f, nil
}

// Path returns the backing file path.
func (f *File) Path() string { return f.path }

// SetDebounce sets how long the watcher waits for writes to settle.
func (f *File) SetDebounce(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d > 0 {
		f.debounce = d
	}
}

// Get returns the string stored under key. Entries under other keys are not
// decoded, so a malformed sibling never hides a readable value.
func (f *File) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return "", false, ErrClosed
	}
	m, err := f.readLocked()
	if err != nil {
		return "", false, err
	}
	raw, ok := m[key]
	if !ok {
		return "", false, nil
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", false, fmt.Errorf("kv: decode %s key %q: %w", f.path, key, err)
	}
	return v, true, nil
}

// Set stores value under key. Other entries are written back untouched.
func (f *File) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	m, err := f.readLocked()
	if err != nil {
		// An unreadable file is replaced rather than blocking every write.
		f.logger.Warn("kv: replacing unreadable storage file", "path", f.path, "error", err)
		m = make(map[string]json.RawMessage)
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("kv: encode %q: %w", key, err)
	}
	m[key] = raw
	return f.writeLocked(m)
}

// Remove deletes key. A missing key or file is not an error.
func (f *File) Remove(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	m, err := f.readLocked()
	if err != nil {
		return err
	}
	if _, ok := m[key]; !ok {
		return nil
	}
	delete(m, key)
	return f.writeLocked(m)
}

// Close marks the store closed. Later operations return ErrClosed.
func (f *File) Close() error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	return nil
}

// readLocked loads the top-level object without decoding its values. A
// missing or empty file is an empty map.
func (f *File) readLocked() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]json.RawMessage), nil
	}
	if err != nil {
		return nil, fmt.Errorf("kv: read %s: %w", f.path, err)
	}
	m := make(map[string]json.RawMessage)
	if len(data) == 0 {
		return m, nil
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("kv: decode %s: %w", f.path, err)
	}
	if m == nil {
		// The file held JSON null.
		m = make(map[string]json.RawMessage)
	}
	return m, nil
}

func (f *File) writeLocked(m map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("kv: encode: %w", err)
	}
	if err := writeFileAtomic(f.path, data, 0644); err != nil {
		return fmt.Errorf("kv: write %s: %w", f.path, err)
	}
	f.digest = xxhash.Sum64(data)
	return nil
}
