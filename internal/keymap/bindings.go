package keymap

// Contexts a binding can belong to. Global bindings apply everywhere unless a
// more specific context binds the same key.
const (
	ContextGlobal  = "global"
	ContextBoard   = "board"
	ContextInput   = "input"
	ContextConfirm = "confirm"
)

// Commands the app understands.
const (
	CmdQuit          = "quit"
	CmdLogout        = "logout"
	CmdToggleFooter  = "toggle-footer"
	CmdFocusInput    = "focus-input"
	CmdCursorDown    = "cursor-down"
	CmdCursorUp      = "cursor-up"
	CmdCursorTop     = "cursor-top"
	CmdCursorBottom  = "cursor-bottom"
	CmdToggle        = "toggle"
	CmdEdit          = "edit"
	CmdDelete        = "delete"
	CmdYank          = "yank"
	CmdCyclePriority = "cycle-priority"
	CmdNextFilter    = "next-filter"
	CmdPrevFilter    = "prev-filter"
	CmdFilterAll     = "filter-all"
	CmdFilterPending = "filter-pending"
	CmdFilterDone    = "filter-completed"
	CmdFilterHigh    = "filter-high"
	CmdFilterMedium  = "filter-medium"
	CmdFilterLow     = "filter-low"
	CmdSubmit        = "submit"
	CmdBlurInput     = "blur-input"
	CmdConfirm       = "confirm"
	CmdCancel        = "cancel"
	CmdActivate      = "activate"
	CmdNextButton    = "next-button"
)

// DefaultBindings returns the default key bindings.
func DefaultBindings() []Binding {
	return []Binding{
		// Global bindings
		{Key: "ctrl+c", Command: CmdQuit, Context: ContextGlobal},
		{Key: "ctrl+l", Command: CmdLogout, Context: ContextGlobal},

		// Board context (note list focused)
		{Key: "q", Command: CmdQuit, Context: ContextBoard},
		{Key: "ctrl+h", Command: CmdToggleFooter, Context: ContextBoard},
		{Key: "a", Command: CmdFocusInput, Context: ContextBoard},
		{Key: "n", Command: CmdFocusInput, Context: ContextBoard},
		{Key: "tab", Command: CmdFocusInput, Context: ContextBoard},
		{Key: "j", Command: CmdCursorDown, Context: ContextBoard},
		{Key: "down", Command: CmdCursorDown, Context: ContextBoard},
		{Key: "k", Command: CmdCursorUp, Context: ContextBoard},
		{Key: "up", Command: CmdCursorUp, Context: ContextBoard},
		{Key: "g", Command: CmdCursorTop, Context: ContextBoard},
		{Key: "G", Command: CmdCursorBottom, Context: ContextBoard},
		{Key: "enter", Command: CmdToggle, Context: ContextBoard},
		{Key: " ", Command: CmdToggle, Context: ContextBoard},
		{Key: "e", Command: CmdEdit, Context: ContextBoard},
		{Key: "d", Command: CmdDelete, Context: ContextBoard},
		{Key: "x", Command: CmdDelete, Context: ContextBoard},
		{Key: "y", Command: CmdYank, Context: ContextBoard},
		{Key: "p", Command: CmdCyclePriority, Context: ContextBoard},
		{Key: "f", Command: CmdNextFilter, Context: ContextBoard},
		{Key: "F", Command: CmdPrevFilter, Context: ContextBoard},
		{Key: "1", Command: CmdFilterAll, Context: ContextBoard},
		{Key: "2", Command: CmdFilterPending, Context: ContextBoard},
		{Key: "3", Command: CmdFilterDone, Context: ContextBoard},
		{Key: "4", Command: CmdFilterHigh, Context: ContextBoard},
		{Key: "5", Command: CmdFilterMedium, Context: ContextBoard},
		{Key: "6", Command: CmdFilterLow, Context: ContextBoard},

		// Input context (note text field focused)
		{Key: "enter", Command: CmdSubmit, Context: ContextInput},
		{Key: "tab", Command: CmdCyclePriority, Context: ContextInput},
		{Key: "esc", Command: CmdBlurInput, Context: ContextInput},

		// Confirm dialog context
		{Key: "y", Command: CmdConfirm, Context: ContextConfirm},
		{Key: "Y", Command: CmdConfirm, Context: ContextConfirm},
		{Key: "n", Command: CmdCancel, Context: ContextConfirm},
		{Key: "N", Command: CmdCancel, Context: ContextConfirm},
		{Key: "esc", Command: CmdCancel, Context: ContextConfirm},
		{Key: "enter", Command: CmdActivate, Context: ContextConfirm},
		{Key: "tab", Command: CmdNextButton, Context: ContextConfirm},
		{Key: "left", Command: CmdNextButton, Context: ContextConfirm},
		{Key: "right", Command: CmdNextButton, Context: ContextConfirm},
	}
}
