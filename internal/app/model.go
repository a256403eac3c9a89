package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/pinboard/internal/config"
	"github.com/marcus/pinboard/internal/keymap"
	"github.com/marcus/pinboard/internal/kv"
	"github.com/marcus/pinboard/internal/mouse"
	"github.com/marcus/pinboard/internal/notes"
	"github.com/marcus/pinboard/internal/state"
	"github.com/marcus/pinboard/internal/ui"
)

// focusArea is the part of the screen receiving key presses.
type focusArea int

const (
	focusBoard focusArea = iota
	focusInput
)

// Submit button labels.
const (
	labelPin    = "Pin Note"
	labelUpdate = "Update Note"
)

// ConfirmDeleteMessage is the question asked before a note is removed.
const ConfirmDeleteMessage = "Are you sure you want to tear off this sticky note?"

// board receives snapshots from the store's render hook. It is shared by
// every copy of the Model.
type board struct {
	snap    notes.Snapshot
	renders int
}

// Options configures New.
type Options struct {
	Config *config.Config
	KV     kv.Store
	Keymap *keymap.Registry
	Logger *slog.Logger
	// StoreOptions are appended to the note store options. Used by tests to
	// pin the clock and random source.
	StoreOptions []notes.Option
}

// Model is the root Bubble Tea model of the pinboard TUI.
type Model struct {
	cfg    *config.Config
	kv     kv.Store
	store  *notes.Store
	board  *board
	keymap *keymap.Registry
	logger *slog.Logger
	mouse  *mouse.Handler

	// commands is the id-keyed dispatch table for note interactions.
	commands map[string]noteCommand

	// changes reports storage writes by other processes; nil when not watching.
	changes <-chan struct{}

	// UI state
	width, height int
	showFooter    bool
	focus         focusArea
	input         textinput.Model
	priority      notes.Priority
	cursor        int // index into the projection
	scroll        int // first visible card

	// Delete confirmation
	dialog        *ui.ConfirmDialog
	pendingDelete int64

	// Status/toast messages
	statusMsg     string
	statusExpiry  time.Time
	statusIsError bool

	loggedOut bool
}

// New creates the application model and loads the saved notes. Storage
// watching stops when ctx is done.
func New(ctx context.Context, opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	km := opts.Keymap
	if km == nil {
		km = keymap.Default()
		km.ApplyOverrides(cfg.Keymap.Overrides)
	}

	b := &board{}
	storeOpts := []notes.Option{
		notes.WithKey(cfg.Storage.Key),
		notes.WithDateFormat(cfg.Notes.DateFormat),
		notes.WithLogger(logger),
		notes.WithRenderHook(func(s notes.Snapshot) {
			b.snap = s
			b.renders++
		}),
	}
	storeOpts = append(storeOpts, opts.StoreOptions...)

	input := textinput.New()
	input.Placeholder = "Write a note..."
	input.Prompt = "> "

	priority, err := notes.ParsePriority(cfg.Notes.DefaultPriority)
	if err != nil {
		priority = notes.PriorityMedium
	}

	m := Model{
		cfg:        cfg,
		kv:         opts.KV,
		store:      notes.New(opts.KV, storeOpts...),
		board:      b,
		keymap:     km,
		logger:     logger,
		mouse:      mouse.NewHandler(),
		commands:   noteCommands(),
		showFooter: state.GetShowFooter(cfg.UI.ShowFooter),
		focus:      focusBoard,
		input:      input,
		priority:   priority,
	}

	if err := m.store.Rehydrate(); err != nil {
		m.setStatus("Saved notes were unreadable, starting empty", true, 5*time.Second)
	}

	if w, ok := opts.KV.(kv.Watcher); ok && cfg.Storage.Watch {
		changes, err := w.Watch(ctx)
		if err != nil {
			logger.Warn("storage watch disabled", "error", err)
		} else {
			m.changes = changes
		}
	}
	return m
}

// Init starts the clock tick and the storage watcher.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(), textinput.Blink}
	if m.changes != nil {
		cmds = append(cmds, waitForChange(m.changes))
	}
	return tea.Batch(cmds...)
}

// Store returns the note store driving the board.
func (m Model) Store() *notes.Store { return m.store }

// LoggedOut reports whether the session ended through logout.
func (m Model) LoggedOut() bool { return m.loggedOut }

// projection returns the notes currently on screen.
func (m Model) projection() []notes.Note { return m.board.snap.Projection }

// selected returns the note under the cursor.
func (m Model) selected() (notes.Note, bool) {
	p := m.projection()
	if m.cursor < 0 || m.cursor >= len(p) {
		return notes.Note{}, false
	}
	return p[m.cursor], true
}

// submitLabel is the text of the submit button for the current mode.
func (m Model) submitLabel() string {
	if _, editing := m.store.Editing(); editing {
		return labelUpdate
	}
	return labelPin
}

// context returns the keymap context for the current focus.
func (m Model) context() string {
	switch {
	case m.dialog != nil:
		return keymap.ContextConfirm
	case m.focus == focusInput:
		return keymap.ContextInput
	default:
		return keymap.ContextBoard
	}
}

// ShowToast displays a temporary status message.
func (m *Model) ShowToast(msg string, duration time.Duration) {
	m.setStatus(msg, false, duration)
}

func (m *Model) setStatus(msg string, isError bool, duration time.Duration) {
	m.statusMsg = msg
	m.statusIsError = isError
	m.statusExpiry = time.Now().Add(duration)
}

// ClearToast clears any expired toast message.
func (m *Model) ClearToast() {
	if m.statusMsg != "" && time.Now().After(m.statusExpiry) {
		m.statusMsg = ""
		m.statusIsError = false
	}
}
