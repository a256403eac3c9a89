package config

import (
	"fmt"
	"time"
)

// Config is the root configuration structure.
type Config struct {
	Storage StorageConfig `json:"storage"`
	Notes   NotesConfig   `json:"notes"`
	Keymap  KeymapConfig  `json:"keymap"`
	UI      UIConfig      `json:"ui"`
}

// StorageConfig selects the key-value backend notes are persisted to.
type StorageConfig struct {
	Backend       string        `json:"backend"` // "file", "sqlite" or "memory"
	Path          string        `json:"path"`    // supports ~ expansion
	Driver        string        `json:"driver"`  // sqlite only: "sqlite3" or "sqlite"
	Key           string        `json:"key"`     // storage key holding the note list
	Watch         bool          `json:"watch"`   // rehydrate on external changes (file backend)
	WatchDebounce time.Duration `json:"watchDebounce"`
}

// NotesConfig configures note defaults.
type NotesConfig struct {
	DateFormat      string `json:"dateFormat"` // Go time layout for createdAt
	DefaultPriority string `json:"defaultPriority"`
	// ConfirmDelete asks before a note is torn off. false opts out.
	ConfirmDelete bool `json:"confirmDelete"`
}

// KeymapConfig holds key binding overrides.
type KeymapConfig struct {
	Overrides map[string]string `json:"overrides"`
}

// UIConfig configures UI appearance.
type UIConfig struct {
	ShowFooter bool         `json:"showFooter"`
	ShowStats  bool         `json:"showStats"`
	Colors     ColorsConfig `json:"colors"`
}

// ColorsConfig overrides the card color for each priority. Empty keeps the
// built-in palette.
type ColorsConfig struct {
	High   string `json:"high,omitempty"`
	Medium string `json:"medium,omitempty"`
	Low    string `json:"low,omitempty"`
}

const (
	defaultBackend       = "file"
	defaultDriver        = "sqlite3"
	defaultKey           = "sticky_tasks"
	defaultDateFormat    = "1/2/2006"
	defaultPriority      = "medium"
	defaultWatchDebounce = 100 * time.Millisecond
	defaultDataDir       = "~/.local/share/pinboard"
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend:       defaultBackend,
			Path:          defaultDataDir + "/storage.json",
			Driver:        defaultDriver,
			Key:           defaultKey,
			Watch:         true,
			WatchDebounce: defaultWatchDebounce,
		},
		Notes: NotesConfig{
			DateFormat:      defaultDateFormat,
			DefaultPriority: defaultPriority,
			ConfirmDelete:   true,
		},
		Keymap: KeymapConfig{
			Overrides: make(map[string]string),
		},
		UI: UIConfig{
			ShowFooter: true,
			ShowStats:  true,
		},
	}
}

// DefaultPath returns the default storage path for a backend.
func DefaultPath(backend string) string {
	if backend == "sqlite" {
		return defaultDataDir + "/storage.db"
	}
	return defaultDataDir + "/storage.json"
}

// isDefaultStoragePath reports whether path is the default path of any
// backend, with or without ~ expanded.
func isDefaultStoragePath(path string) bool {
	for _, backend := range []string{"file", "sqlite"} {
		d := DefaultPath(backend)
		if path == d || path == ExpandPath(d) {
			return true
		}
	}
	return false
}

// Validate checks the configuration for errors. Out-of-range values that have
// a sensible default are corrected in place.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "file", "sqlite", "memory":
	case "":
		c.Storage.Backend = defaultBackend
	default:
		return fmt.Errorf("storage.backend: unknown backend %q", c.Storage.Backend)
	}
	switch c.Storage.Driver {
	case "sqlite3", "sqlite":
	case "":
		c.Storage.Driver = defaultDriver
	default:
		return fmt.Errorf("storage.driver: unknown driver %q", c.Storage.Driver)
	}
	if c.Storage.Key == "" {
		c.Storage.Key = defaultKey
	}
	if c.Storage.WatchDebounce <= 0 {
		c.Storage.WatchDebounce = defaultWatchDebounce
	}
	if c.Notes.DateFormat == "" {
		c.Notes.DateFormat = defaultDateFormat
	}
	switch c.Notes.DefaultPriority {
	case "high", "medium", "low":
	case "":
		c.Notes.DefaultPriority = defaultPriority
	default:
		return fmt.Errorf("notes.defaultPriority: unknown priority %q", c.Notes.DefaultPriority)
	}
	return nil
}
