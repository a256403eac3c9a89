package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/pinboard/internal/kv"
	"github.com/marcus/pinboard/internal/msg"
)

// SessionKey is the storage key of the login flag cleared by logout.
const SessionKey = "loggedIn"

// Logout clears the session flag.
func Logout(store kv.Store) error {
	return store.Remove(SessionKey)
}

// logout clears the session and leaves the TUI.
func (m *Model) logout() tea.Cmd {
	if err := Logout(m.kv); err != nil {
		m.logger.Error("logout failed", "error", err)
		return msg.ShowError("Logout failed", err)
	}
	m.logger.Info("logged out")
	m.loggedOut = true
	return tea.Quit
}
