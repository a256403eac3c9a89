package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/pinboard/internal/keymap"
	"github.com/marcus/pinboard/internal/mouse"
	"github.com/marcus/pinboard/internal/msg"
	"github.com/marcus/pinboard/internal/notes"
	"github.com/marcus/pinboard/internal/state"
	"github.com/marcus/pinboard/internal/ui"
)

// Update handles all messages and returns the updated model and commands.
func (m Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(message)

	case tea.MouseMsg:
		return m.handleMouse(message)

	case tea.WindowSizeMsg:
		m.width = message.Width
		m.height = message.Height
		m.input.Width = max(m.cardWidth()-6, 10)
		m.ensureCursorVisible()
		return m, nil

	case TickMsg:
		m.ClearToast()
		return m, tickCmd()

	case msg.ToastMsg:
		m.setStatus(message.Message, message.IsError, message.Duration)
		return m, nil

	case StorageChangedMsg:
		return m, tea.Batch(m.reload(), waitForChange(m.changes))
	}

	if m.focus == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(message)
		return m, cmd
	}
	return m, nil
}

// reload rehydrates from storage after an external write.
func (m *Model) reload() tea.Cmd {
	selected, hadSelection := m.selected()
	_, wasEditing := m.store.Editing()

	err := m.store.Rehydrate()
	if wasEditing {
		m.resetInput()
	}
	if hadSelection {
		m.selectID(selected.ID)
	} else {
		m.clampCursor()
	}
	if err != nil {
		m.logger.Error("reload failed", "error", err)
		return msg.ShowError("Reload failed", err)
	}
	m.logger.Debug("reloaded notes after external change")
	return nil
}

// handleKeyMsg routes key presses through the keymap for the active context.
func (m Model) handleKeyMsg(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := m.context()
	command, bound := m.keymap.Lookup(key.String(), ctx)

	switch ctx {
	case keymap.ContextConfirm:
		return m, m.handleConfirm(command)
	case keymap.ContextInput:
		if !bound {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(key)
			return m, cmd
		}
	}
	if !bound {
		return m, nil
	}
	return m, m.runCommand(command)
}

// handleConfirm answers the delete dialog.
func (m *Model) handleConfirm(command string) tea.Cmd {
	switch command {
	case keymap.CmdConfirm:
		return m.answerDelete(m.pendingDelete, true)
	case keymap.CmdCancel:
		return m.answerDelete(m.pendingDelete, false)
	case keymap.CmdActivate:
		return m.activateDialog()
	case keymap.CmdNextButton:
		m.dialog.CycleFocus()
	case keymap.CmdQuit:
		return tea.Quit
	}
	return nil
}

// activateDialog answers the dialog with its focused button.
func (m *Model) activateDialog() tea.Cmd {
	return m.answerDelete(m.pendingDelete, m.dialog.Focus() == ui.ActionConfirm)
}

// runCommand executes a named command outside the confirm dialog.
func (m *Model) runCommand(command string) tea.Cmd {
	if _, ok := m.commands[command]; ok {
		n, ok := m.selected()
		if !ok {
			return nil
		}
		return m.dispatch(command, n.ID)
	}

	switch command {
	case keymap.CmdQuit:
		return tea.Quit
	case keymap.CmdLogout:
		return m.logout()
	case keymap.CmdToggleFooter:
		m.showFooter = !m.showFooter
		if err := state.SetShowFooter(m.showFooter); err != nil {
			m.logger.Warn("save footer preference", "error", err)
		}
	case keymap.CmdFocusInput:
		m.focus = focusInput
		return m.input.Focus()
	case keymap.CmdBlurInput:
		if _, editing := m.store.Editing(); editing {
			m.store.CancelEdit()
			m.input.SetValue("")
		}
		m.focus = focusBoard
		m.input.Blur()
	case keymap.CmdSubmit:
		return m.submit()
	case keymap.CmdCyclePriority:
		m.priority = m.priority.Next()
	case keymap.CmdCursorDown:
		m.moveCursor(1)
	case keymap.CmdCursorUp:
		m.moveCursor(-1)
	case keymap.CmdCursorTop:
		m.moveCursor(-len(m.projection()))
	case keymap.CmdCursorBottom:
		m.moveCursor(len(m.projection()))
	case keymap.CmdNextFilter:
		m.setFilter(m.store.Filter().Next())
	case keymap.CmdPrevFilter:
		m.setFilter(m.store.Filter().Prev())
	default:
		if f, ok := filterCommands[command]; ok {
			m.setFilter(f)
		}
	}
	return nil
}

var filterCommands = map[string]notes.Filter{
	keymap.CmdFilterAll:     notes.FilterAll,
	keymap.CmdFilterPending: notes.FilterPending,
	keymap.CmdFilterDone:    notes.FilterCompleted,
	keymap.CmdFilterHigh:    notes.FilterHigh,
	keymap.CmdFilterMedium:  notes.FilterMedium,
	keymap.CmdFilterLow:     notes.FilterLow,
}

// submit pins a new note or saves the one being edited.
func (m *Model) submit() tea.Cmd {
	res, err := m.store.Add(m.input.Value(), m.priority)
	if res.Action == notes.ActionRejected {
		if err != nil {
			return msg.ShowError("Cannot pin note", err)
		}
		// Empty text: stay in the field.
		m.focus = focusInput
		return m.input.Focus()
	}

	m.input.SetValue("")
	m.selectID(res.Note.ID)
	if err != nil {
		m.logger.Error("save failed", "op", res.Action.String(), "id", res.Note.ID, "error", err)
		return msg.ShowError("Save failed", err)
	}
	m.logger.Debug("note saved", "action", res.Action.String(), "id", res.Note.ID)
	if res.Action == notes.ActionUpdated {
		return msg.ShowToast("Note updated", msg.ToastShort)
	}
	return msg.ShowToast("Note pinned", msg.ToastShort)
}

func (m *Model) setFilter(f notes.Filter) {
	m.store.SetFilter(f)
	m.cursor = 0
	m.scroll = 0
}

// resetInput empties the field after edit mode ended elsewhere.
func (m *Model) resetInput() {
	m.input.SetValue("")
	p, err := notes.ParsePriority(m.cfg.Notes.DefaultPriority)
	if err != nil {
		p = notes.PriorityMedium
	}
	m.priority = p
}

// handleMouse routes clicks and wheel events through the hit map built by
// the last View.
func (m Model) handleMouse(ev tea.MouseMsg) (tea.Model, tea.Cmd) {
	action := m.mouse.HandleMouse(ev)

	if m.dialog != nil {
		switch action.Type {
		case mouse.ActionClick:
			m.dialog.SetFocus(action.Region.ID)
			return m, m.activateDialog()
		case mouse.ActionHover:
			if action.Region != nil {
				m.dialog.SetFocus(action.Region.ID)
			}
		}
		return m, nil
	}

	switch action.Type {
	case mouse.ActionScrollUp, mouse.ActionScrollDown:
		m.scrollBy(action.Delta)
		return m, nil
	case mouse.ActionClick:
		return m, m.handleClick(action.Region)
	}
	return m, nil
}

// Hit region ids registered by View.
const (
	regionNote     = "note"
	regionEdit     = "edit"
	regionDelete   = "delete"
	regionFilter   = "filter"
	regionInput    = "input"
	regionPriority = "priority"
	regionSubmit   = "submit"
)

// regionCommands maps card regions onto note commands.
var regionCommands = map[string]string{
	regionNote:   keymap.CmdToggle,
	regionEdit:   keymap.CmdEdit,
	regionDelete: keymap.CmdDelete,
}

func (m *Model) handleClick(r *mouse.Region) tea.Cmd {
	if command, ok := regionCommands[r.ID]; ok {
		id, ok := r.Data.(int64)
		if !ok {
			return nil
		}
		m.selectID(id)
		return m.dispatch(command, id)
	}

	switch r.ID {
	case regionFilter:
		if f, ok := r.Data.(notes.Filter); ok {
			m.setFilter(f)
		}
	case regionInput:
		m.focus = focusInput
		return m.input.Focus()
	case regionPriority:
		m.priority = m.priority.Next()
	case regionSubmit:
		return m.submit()
	}
	return nil
}

// selectID moves the cursor onto id if it is visible.
func (m *Model) selectID(id int64) {
	for i, n := range m.projection() {
		if n.ID == id {
			m.cursor = i
			m.ensureCursorVisible()
			return
		}
	}
	m.clampCursor()
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := len(m.projection())
	m.cursor = min(max(m.cursor, 0), max(n-1, 0))
	m.ensureCursorVisible()
}

func (m *Model) scrollBy(delta int) {
	n := len(m.projection())
	m.scroll = min(max(m.scroll+delta, 0), max(n-1, 0))
}

// ensureCursorVisible adjusts scroll so the selected card fits the list area.
func (m *Model) ensureCursorVisible() {
	if m.cursor < m.scroll {
		m.scroll = m.cursor
		return
	}
	avail := m.listHeight()
	if avail <= 0 {
		return
	}
	p := m.projection()
	for m.scroll < m.cursor {
		used := 0
		for i := m.scroll; i <= m.cursor && i < len(p); i++ {
			used += m.cardHeight(p[i])
		}
		if used <= avail {
			break
		}
		m.scroll++
	}
}
