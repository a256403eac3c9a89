package app

import (
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/pinboard/internal/keymap"
	"github.com/marcus/pinboard/internal/msg"
	"github.com/marcus/pinboard/internal/notes"
	"github.com/marcus/pinboard/internal/ui"
)

// Message types for tea.Cmd
type (
	// TickMsg is sent on each clock tick.
	TickMsg time.Time

	// StorageChangedMsg reports that another process rewrote the storage.
	StorageChangedMsg struct{}
)

// tickCmd returns a command that ticks every second.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// waitForChange blocks until the storage watcher fires.
func waitForChange(changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return StorageChangedMsg{}
	}
}

// clipboardWrite is replaced in tests.
var clipboardWrite = clipboard.WriteAll

// noteCommand acts on the note with the given id.
type noteCommand func(m *Model, id int64) tea.Cmd

// noteCommands is the dispatch table for note interactions. Key presses
// resolve to a command name through the keymap, mouse clicks through the
// region a card registered; both land here with the card's note id.
func noteCommands() map[string]noteCommand {
	return map[string]noteCommand{
		keymap.CmdToggle: toggleNote,
		keymap.CmdEdit:   editNote,
		keymap.CmdDelete: deleteNote,
		keymap.CmdYank:   yankNote,
	}
}

// dispatch runs the named note command. Unknown names are ignored.
func (m *Model) dispatch(name string, id int64) tea.Cmd {
	fn, ok := m.commands[name]
	if !ok {
		return nil
	}
	m.logger.Debug("note command", "command", name, "id", id)
	return fn(m, id)
}

func toggleNote(m *Model, id int64) tea.Cmd {
	found, err := m.store.Toggle(id)
	if !found {
		return nil
	}
	m.selectID(id)
	if err != nil {
		m.logger.Error("save failed", "op", "toggle", "id", id, "error", err)
		return msg.ShowError("Save failed", err)
	}
	return nil
}

func editNote(m *Model, id int64) tea.Cmd {
	n, ok := m.store.BeginEdit(id)
	if !ok {
		return nil
	}
	m.input.SetValue(ui.PlainText(n.Text))
	m.input.CursorEnd()
	m.priority = n.Priority
	m.focus = focusInput
	return m.input.Focus()
}

func deleteNote(m *Model, id int64) tea.Cmd {
	if _, ok := m.store.Get(id); !ok {
		return nil
	}
	if !m.cfg.Notes.ConfirmDelete {
		return m.answerDelete(id, true)
	}
	d := ui.NewConfirmDialog("Tear Off Note", ConfirmDeleteMessage)
	d.ConfirmLabel = " Tear Off "
	m.dialog = d
	m.pendingDelete = id
	return nil
}

// answerDelete removes id when confirmed is true and closes the dialog.
func (m *Model) answerDelete(id int64, confirmed bool) tea.Cmd {
	m.dialog = nil
	m.pendingDelete = 0

	wasEditing := false
	if editID, editing := m.store.Editing(); editing && editID == id {
		wasEditing = true
	}

	removed, err := m.store.Remove(id, func(notes.Note) bool { return confirmed })
	if !removed {
		return nil
	}
	if wasEditing {
		m.resetInput()
	}
	m.clampCursor()
	if err != nil {
		m.logger.Error("save failed", "op", "delete", "id", id, "error", err)
		return msg.ShowError("Save failed", err)
	}
	return msg.ShowToast("Note torn off", msg.ToastShort)
}

func yankNote(m *Model, id int64) tea.Cmd {
	n, ok := m.store.Get(id)
	if !ok {
		return nil
	}
	if err := clipboardWrite(n.Text); err != nil {
		return msg.ShowError("Copy failed", err)
	}
	return msg.ShowToast("Copied note text", msg.ToastShort)
}
