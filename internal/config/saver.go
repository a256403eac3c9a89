package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// saveConfig is the JSON-marshaling intermediary that uses string durations.
type saveConfig struct {
	Storage saveStorageConfig `json:"storage"`
	Notes   saveNotesConfig   `json:"notes"`
	Keymap  KeymapConfig      `json:"keymap"`
	UI      UIConfig          `json:"ui"`
}

type saveStorageConfig struct {
	Backend       string `json:"backend,omitempty"`
	Path          string `json:"path,omitempty"`
	Driver        string `json:"driver,omitempty"`
	Key           string `json:"key,omitempty"`
	Watch         *bool  `json:"watch,omitempty"`
	WatchDebounce string `json:"watchDebounce,omitempty"`
}

type saveNotesConfig struct {
	DateFormat      string `json:"dateFormat,omitempty"`
	DefaultPriority string `json:"defaultPriority,omitempty"`
	ConfirmDelete   *bool  `json:"confirmDelete,omitempty"`
}

// savedPath drops a default storage path so the file keeps following the
// backend.
func savedPath(path string) string {
	if isDefaultStoragePath(path) {
		return ""
	}
	return path
}

// toSaveConfig converts Config to the JSON-serializable format.
func toSaveConfig(cfg *Config) saveConfig {
	return saveConfig{
		Storage: saveStorageConfig{
			Backend:       cfg.Storage.Backend,
			Path:          savedPath(cfg.Storage.Path),
			Driver:        cfg.Storage.Driver,
			Key:           cfg.Storage.Key,
			Watch:         &cfg.Storage.Watch,
			WatchDebounce: cfg.Storage.WatchDebounce.String(),
		},
		Notes: saveNotesConfig{
			DateFormat:      cfg.Notes.DateFormat,
			DefaultPriority: cfg.Notes.DefaultPriority,
			ConfirmDelete:   &cfg.Notes.ConfirmDelete,
		},
		Keymap: cfg.Keymap,
		UI:     cfg.UI,
	}
}

// Save writes the config to ~/.config/pinboard/config.json.
func Save(cfg *Config) error {
	return SaveTo(cfg, ConfigPath())
}

// SaveTo writes the config to path. Top-level keys pinboard does not manage
// are preserved. A file that is not valid JSON is left alone and an error is
// returned.
func SaveTo(cfg *Config, path string) error {
	merged, err := readRaw(path)
	if err != nil {
		return err
	}

	managed, err := json.Marshal(toSaveConfig(cfg))
	if err != nil {
		return err
	}
	var sections map[string]json.RawMessage
	if err := json.Unmarshal(managed, &sections); err != nil {
		return err
	}
	for k, v := range sections {
		merged[k] = v
	}
	return writeRaw(path, merged)
}

// SaveKeymapOverride binds key to command in the config file at path. Only
// keymap.overrides is rewritten; every other setting stays as the user wrote
// it. An empty path means the default location.
func SaveKeymapOverride(path, key, command string) error {
	if path == "" {
		path = ConfigPath()
	}
	merged, err := readRaw(path)
	if err != nil {
		return err
	}

	keymap := make(map[string]json.RawMessage)
	if section, ok := merged["keymap"]; ok && !isNull(section) {
		if err := json.Unmarshal(section, &keymap); err != nil {
			return fmt.Errorf("config: keymap in %s: %w", path, err)
		}
	}
	overrides := make(map[string]string)
	if raw, ok := keymap["overrides"]; ok && !isNull(raw) {
		if err := json.Unmarshal(raw, &overrides); err != nil {
			return fmt.Errorf("config: keymap.overrides in %s: %w", path, err)
		}
	}
	overrides[key] = command

	if keymap["overrides"], err = json.Marshal(overrides); err != nil {
		return err
	}
	if merged["keymap"], err = json.Marshal(keymap); err != nil {
		return err
	}
	return writeRaw(path, merged)
}

// readRaw reads the top-level sections of the config file. A missing file
// is an empty map.
func readRaw(path string) (map[string]json.RawMessage, error) {
	if path == "" {
		return nil, fmt.Errorf("config: cannot resolve config path")
	}
	merged := make(map[string]json.RawMessage)
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		return merged, nil
	case err != nil:
		return nil, err
	}
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, fmt.Errorf("config: %s is not valid JSON, refusing to overwrite it: %w", path, err)
	}
	if merged == nil {
		merged = make(map[string]json.RawMessage)
	}
	return merged, nil
}

func writeRaw(path string, merged map[string]json.RawMessage) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func isNull(raw json.RawMessage) bool {
	return string(raw) == "null"
}
