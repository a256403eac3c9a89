// Package state persists UI preferences that change while pinboard runs.
package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

const fileName = "state.json"

// State holds persistent user preferences.
type State struct {
	// ShowFooter is nil until the footer has been toggled once.
	ShowFooter *bool `json:"showFooter,omitempty"`
}

var (
	current *State
	mu      sync.RWMutex
	path    string
)

// Init loads state from dir. Until Init is called nothing is written to disk.
func Init(dir string) error {
	mu.Lock()
	path = filepath.Join(dir, fileName)
	mu.Unlock()
	return Load()
}

// Load reads state from disk.
func Load() error {
	mu.Lock()
	defer mu.Unlock()

	current = &State{}
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, current)
}

// Save writes state to disk.
func Save() error {
	mu.RLock()
	defer mu.RUnlock()

	if current == nil || path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// GetShowFooter returns the saved footer visibility, or def when none is saved.
func GetShowFooter(def bool) bool {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil || current.ShowFooter == nil {
		return def
	}
	return *current.ShowFooter
}

// SetShowFooter saves the footer visibility.
func SetShowFooter(show bool) error {
	mu.Lock()
	if current == nil {
		current = &State{}
	}
	current.ShowFooter = &show
	mu.Unlock()
	return Save()
}

// reset forgets the loaded state and the file path.
func reset() {
	mu.Lock()
	current = nil
	path = ""
	mu.Unlock()
}
