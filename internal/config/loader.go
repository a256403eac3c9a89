package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	configDir  = ".config/pinboard"
	configFile = "config.json"
)

// rawConfig is the JSON-unmarshaling intermediary.
type rawConfig struct {
	Storage rawStorageConfig `json:"storage"`
	Notes   rawNotesConfig   `json:"notes"`
	Keymap  KeymapConfig     `json:"keymap"`
	UI      rawUIConfig      `json:"ui"`
}

type rawStorageConfig struct {
	Backend       string `json:"backend"`
	Path          string `json:"path"`
	Driver        string `json:"driver"`
	Key           string `json:"key"`
	Watch         *bool  `json:"watch"`
	WatchDebounce string `json:"watchDebounce"`
}

type rawNotesConfig struct {
	DateFormat      string `json:"dateFormat"`
	DefaultPriority string `json:"defaultPriority"`
	ConfirmDelete   *bool  `json:"confirmDelete"`
}

type rawUIConfig struct {
	ShowFooter *bool        `json:"showFooter"`
	ShowStats  *bool        `json:"showStats"`
	Colors     ColorsConfig `json:"colors"`
}

// Load loads configuration from the default location.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom loads configuration from a specific path.
// If path is empty, uses ~/.config/pinboard/config.json
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = ConfigPath()
	}

	var raw rawConfig
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// defaults only
		case err != nil:
			return nil, err
		default:
			if err := json.Unmarshal(data, &raw); err != nil {
				return nil, err
			}
		}
	}

	mergeConfig(cfg, &raw)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.Storage.Path = ExpandPath(cfg.Storage.Path)
	return cfg, nil
}

// mergeConfig merges raw config values into the config.
func mergeConfig(cfg *Config, raw *rawConfig) {
	// Storage
	if raw.Storage.Backend != "" {
		cfg.Storage.Backend = raw.Storage.Backend
		// The default path follows the backend unless one is given.
		cfg.Storage.Path = DefaultPath(raw.Storage.Backend)
	}
	if raw.Storage.Path != "" {
		cfg.Storage.Path = raw.Storage.Path
	}
	// A default path follows the backend even when written out explicitly.
	if isDefaultStoragePath(cfg.Storage.Path) {
		cfg.Storage.Path = DefaultPath(cfg.Storage.Backend)
	}
	if raw.Storage.Driver != "" {
		cfg.Storage.Driver = raw.Storage.Driver
	}
	if raw.Storage.Key != "" {
		cfg.Storage.Key = raw.Storage.Key
	}
	if raw.Storage.Watch != nil {
		cfg.Storage.Watch = *raw.Storage.Watch
	}
	if raw.Storage.WatchDebounce != "" {
		if d, err := time.ParseDuration(raw.Storage.WatchDebounce); err == nil {
			cfg.Storage.WatchDebounce = d
		} else {
			slog.Warn("invalid storage.watchDebounce", "value", raw.Storage.WatchDebounce, "error", err)
		}
	}

	// Notes
	if raw.Notes.DateFormat != "" {
		cfg.Notes.DateFormat = raw.Notes.DateFormat
	}
	if raw.Notes.DefaultPriority != "" {
		cfg.Notes.DefaultPriority = raw.Notes.DefaultPriority
	}
	if raw.Notes.ConfirmDelete != nil {
		cfg.Notes.ConfirmDelete = *raw.Notes.ConfirmDelete
	}

	// Keymap
	for k, v := range raw.Keymap.Overrides {
		cfg.Keymap.Overrides[k] = v
	}

	// UI
	if raw.UI.ShowFooter != nil {
		cfg.UI.ShowFooter = *raw.UI.ShowFooter
	}
	if raw.UI.ShowStats != nil {
		cfg.UI.ShowStats = *raw.UI.ShowStats
	}
	if raw.UI.Colors.High != "" {
		cfg.UI.Colors.High = raw.UI.Colors.High
	}
	if raw.UI.Colors.Medium != "" {
		cfg.UI.Colors.Medium = raw.UI.Colors.Medium
	}
	if raw.UI.Colors.Low != "" {
		cfg.UI.Colors.Low = raw.UI.Colors.Low
	}
}

// ExpandPath expands ~ to home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// testConfigPath overrides ConfigPath in tests.
var testConfigPath string

// SetTestConfigPath points ConfigPath at path. For tests only.
func SetTestConfigPath(path string) { testConfigPath = path }

// ResetTestConfigPath restores the default ConfigPath.
func ResetTestConfigPath() { testConfigPath = "" }

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	if testConfigPath != "" {
		return testConfigPath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDir, configFile)
}

// StateDir returns the directory pinboard keeps its log file in.
func StateDir() string {
	return ExpandPath("~/.local/state/pinboard")
}
