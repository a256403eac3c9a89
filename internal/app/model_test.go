package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/pinboard/internal/config"
	"github.com/marcus/pinboard/internal/kv"
	"github.com/marcus/pinboard/internal/msg"
	"github.com/marcus/pinboard/internal/notes"
	"github.com/marcus/pinboard/internal/ui"
)

var testNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

const seedText = "Click on any note to mark it as Finished!"

func newTestModel(t *testing.T, store kv.Store, mutate ...func(*config.Config)) Model {
	t.Helper()
	cfg := config.Default()
	cfg.Storage.Watch = false
	for _, fn := range mutate {
		fn(cfg)
	}
	m := New(context.Background(), Options{
		Config: cfg,
		KV:     store,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		StoreOptions: []notes.Option{
			notes.WithClock(func() time.Time { return testNow }),
			notes.WithRand(rand.New(rand.NewPCG(1, 2))),
		},
	})
	return update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
}

func send(t *testing.T, m Model, message tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(message)
	return next.(Model), cmd
}

func update(t *testing.T, m Model, message tea.Msg) Model {
	t.Helper()
	next, _ := send(t, m, message)
	return next
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+l":
		return tea.KeyMsg{Type: tea.KeyCtrlL}
	case "ctrl+h":
		return tea.KeyMsg{Type: tea.KeyCtrlH}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		m = update(t, m, keyMsg(k))
	}
	return m
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func stored(t *testing.T, store kv.Store) (string, bool) {
	t.Helper()
	v, ok, err := store.Get(notes.DefaultKey)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	return v, ok
}

func click(t *testing.T, m Model, id string, data any) Model {
	t.Helper()
	for _, r := range m.mouse.HitMap.Regions() {
		if r.ID == id && (data == nil || r.Data == data) {
			return update(t, m, tea.MouseMsg{
				Action: tea.MouseActionPress,
				Button: tea.MouseButtonLeft,
				X:      r.Rect.X + 1,
				Y:      r.Rect.Y,
			})
		}
	}
	t.Fatalf("no region %q with data %v", id, data)
	return m
}

func TestNew_ShowsSeeds(t *testing.T) {
	store := kv.NewMemory()
	m := newTestModel(t, store)

	view := ansi.Strip(m.View())
	if !strings.Contains(view, seedText) {
		t.Errorf("view should show seed note, got:\n%s", view)
	}
	if !strings.Contains(view, labelPin) {
		t.Errorf("view should show %q button", labelPin)
	}
	if !strings.Contains(view, "3 total") {
		t.Error("view should show stats")
	}
	if _, ok := stored(t, store); ok {
		t.Error("seed notes must not be persisted before a mutation")
	}
	if n, _ := m.selected(); n.ID != 1 {
		t.Errorf("cursor should start on the high priority seed, got id %d", n.ID)
	}
}

func TestSubmit_PinsNote(t *testing.T) {
	store := kv.NewMemory()
	m := newTestModel(t, store)

	m = press(t, m, "a")
	if m.focus != focusInput {
		t.Fatal("a should focus the input")
	}
	m = typeText(t, m, "Buy milk")
	m, cmd := send(t, m, keyMsg("enter"))

	if got := len(m.store.Notes()); got != 4 {
		t.Fatalf("got %d notes, want 4", got)
	}
	if m.input.Value() != "" {
		t.Errorf("input should be cleared, got %q", m.input.Value())
	}
	if n, _ := m.selected(); n.Text != "Buy milk" {
		t.Errorf("cursor should follow the new note, got %q", n.Text)
	}
	v, ok := stored(t, store)
	if !ok || !strings.Contains(v, "Buy milk") {
		t.Errorf("note should be persisted, got %q", v)
	}
	if cmd == nil {
		t.Fatal("expected a toast command")
	}
	if toast, ok := cmd().(msg.ToastMsg); !ok || toast.IsError {
		t.Errorf("expected success toast, got %#v", cmd())
	}
}

func TestSubmit_RejectsBlank(t *testing.T) {
	store := kv.NewMemory()
	m := newTestModel(t, store)

	m = press(t, m, "a")
	m = typeText(t, m, "   ")
	m = press(t, m, "enter")

	if got := len(m.store.Notes()); got != 3 {
		t.Errorf("got %d notes, want 3", got)
	}
	if _, ok := stored(t, store); ok {
		t.Error("rejected submit must not persist")
	}
	if m.focus != focusInput {
		t.Error("input should keep focus after a rejected submit")
	}
}

func TestSubmit_UsesSelectedPriority(t *testing.T) {
	m := newTestModel(t, kv.NewMemory())

	m = press(t, m, "a")
	m = typeText(t, m, "Urgent")
	m = press(t, m, "tab", "tab") // medium -> low -> high
	m = press(t, m, "enter")

	n, _ := m.selected()
	if n.Text != "Urgent" || n.Priority != notes.PriorityHigh {
		t.Errorf("got %q/%s, want Urgent/high", n.Text, n.Priority)
	}
}

func TestToggle_KeepsCursorOnNote(t *testing.T) {
	store := kv.NewMemory()
	m := newTestModel(t, store)

	m = press(t, m, " ")

	n, ok := m.store.Get(1)
	if !ok || !n.Completed {
		t.Fatal("seed 1 should be completed")
	}
	if sel, _ := m.selected(); sel.ID != 1 {
		t.Errorf("cursor should stay on note 1, got %d", sel.ID)
	}
	if _, ok := stored(t, store); !ok {
		t.Error("toggle should persist")
	}

	m = press(t, m, "enter")
	if n, _ := m.store.Get(1); n.Completed {
		t.Error("second toggle should restore pending")
	}
}

func TestDelete_ConfirmFlow(t *testing.T) {
	m := newTestModel(t, kv.NewMemory())

	m = press(t, m, "d")
	if m.dialog == nil {
		t.Fatal("d should open the confirm dialog")
	}
	if m.dialog.Message != ConfirmDeleteMessage {
		t.Errorf("got message %q", m.dialog.Message)
	}

	m = press(t, m, "n")
	if m.dialog != nil {
		t.Error("n should close the dialog")
	}
	if got := len(m.store.Notes()); got != 3 {
		t.Errorf("cancel should keep notes, got %d", got)
	}

	m = press(t, m, "d", "y")
	if _, ok := m.store.Get(1); ok {
		t.Error("confirmed delete should remove note 1")
	}
	if got := len(m.store.Notes()); got != 2 {
		t.Errorf("got %d notes, want 2", got)
	}
}

func TestDelete_EnterActivatesFocusedButton(t *testing.T) {
	m := newTestModel(t, kv.NewMemory())

	m = press(t, m, "d", "enter")
	if got := len(m.store.Notes()); got != 3 {
		t.Fatalf("enter on the default cancel button should keep notes, got %d", got)
	}

	m = press(t, m, "d", "tab")
	if m.dialog.Focus() != ui.ActionConfirm {
		t.Fatalf("tab should focus confirm, got %q", m.dialog.Focus())
	}
	m = press(t, m, "enter")
	if got := len(m.store.Notes()); got != 2 {
		t.Errorf("enter on confirm should delete, got %d notes", got)
	}
}

func TestDelete_WithoutConfirmation(t *testing.T) {
	m := newTestModel(t, kv.NewMemory(), func(c *config.Config) {
		c.Notes.ConfirmDelete = false
	})

	m = press(t, m, "x")
	if m.dialog != nil {
		t.Error("dialog should not open when confirmDelete is off")
	}
	if _, ok := m.store.Get(1); ok {
		t.Error("note 1 should be removed")
	}
}

func TestEdit_UpdatesNote(t *testing.T) {
	store := kv.NewMemory()
	m := newTestModel(t, store)

	m = press(t, m, "e")
	if m.focus != focusInput {
		t.Fatal("edit should focus the input")
	}
	if m.input.Value() != seedText {
		t.Errorf("input should be prefilled, got %q", m.input.Value())
	}
	if m.priority != notes.PriorityHigh {
		t.Errorf("priority should be prefilled, got %s", m.priority)
	}
	if !strings.Contains(ansi.Strip(m.View()), labelUpdate) {
		t.Errorf("submit should read %q while editing", labelUpdate)
	}

	m.input.SetValue("Edited")
	m = press(t, m, "enter")

	n, _ := m.store.Get(1)
	if n.Text != "Edited" || n.Priority != notes.PriorityHigh {
		t.Errorf("got %q/%s, want Edited/high", n.Text, n.Priority)
	}
	if len(m.store.Notes()) != 3 {
		t.Error("edit must not add a note")
	}
	if _, editing := m.store.Editing(); editing {
		t.Error("edit mode should end after submit")
	}
	if m.submitLabel() != labelPin {
		t.Errorf("label should revert to %q", labelPin)
	}
	if v, _ := stored(t, store); !strings.Contains(v, "Edited") {
		t.Error("edit should persist")
	}
}

func TestEdit_EscCancels(t *testing.T) {
	m := newTestModel(t, kv.NewMemory())

	m = press(t, m, "e", "esc")
	if _, editing := m.store.Editing(); editing {
		t.Error("esc should cancel edit mode")
	}
	if m.focus != focusBoard {
		t.Error("esc should return focus to the board")
	}
	if m.input.Value() != "" {
		t.Errorf("input should be cleared, got %q", m.input.Value())
	}
	if n, _ := m.store.Get(1); n.Text != seedText {
		t.Error("cancelled edit must not change the note")
	}
}

func TestFilterKeys(t *testing.T) {
	m := newTestModel(t, kv.NewMemory())

	m = press(t, m, "3")
	if m.store.Filter() != notes.FilterCompleted {
		t.Fatalf("3 should select completed, got %s", m.store.Filter())
	}
	for _, n := range m.projection() {
		if !n.Completed {
			t.Errorf("completed filter shows pending note %d", n.ID)
		}
	}

	m = press(t, m, "f")
	if m.store.Filter() != notes.FilterHigh {
		t.Errorf("f should advance to high, got %s", m.store.Filter())
	}
	m = press(t, m, "F", "F")
	if m.store.Filter() != notes.FilterPending {
		t.Errorf("F should go back to pending, got %s", m.store.Filter())
	}
	m = press(t, m, "1")
	if len(m.projection()) != 3 {
		t.Errorf("all filter should show 3 notes, got %d", len(m.projection()))
	}
}

func TestEmptyState(t *testing.T) {
	store := kv.NewMemory()
	if err := store.Set(notes.DefaultKey, "[]"); err != nil {
		t.Fatal(err)
	}
	m := newTestModel(t, store)

	view := ansi.Strip(m.View())
	if !strings.Contains(view, "No notes pinned yet.") || !strings.Contains(view, notes.EmptyHint) {
		t.Errorf("expected empty state, got:\n%s", view)
	}

	m = press(t, m, "4")
	if !strings.Contains(ansi.Strip(m.View()), "No high notes found.") {
		t.Error("expected filtered empty message")
	}

	// Note commands on an empty board are no-ops.
	m = press(t, m, "d", " ")
	if m.dialog != nil {
		t.Error("delete on empty board should not open a dialog")
	}
}

func TestLogout(t *testing.T) {
	store := kv.NewMemory()
	if err := store.Set(SessionKey, "true"); err != nil {
		t.Fatal(err)
	}
	m := newTestModel(t, store)

	m, cmd := send(t, m, keyMsg("ctrl+l"))
	if cmd == nil {
		t.Fatal("logout should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("logout should quit")
	}
	if !m.LoggedOut() {
		t.Error("model should report logged out")
	}
	if _, ok, _ := store.Get(SessionKey); ok {
		t.Error("logout should remove the session key")
	}
}

func TestYank(t *testing.T) {
	var copied string
	orig := clipboardWrite
	defer func() { clipboardWrite = orig }()

	clipboardWrite = func(s string) error {
		copied = s
		return nil
	}
	m := newTestModel(t, kv.NewMemory())
	m, cmd := send(t, m, keyMsg("y"))
	if copied != seedText {
		t.Errorf("copied %q, want %q", copied, seedText)
	}
	if toast, ok := cmd().(msg.ToastMsg); !ok || toast.IsError {
		t.Errorf("expected success toast, got %#v", cmd())
	}

	clipboardWrite = func(string) error { return errors.New("no clipboard") }
	_, cmd = send(t, m, keyMsg("y"))
	if toast, ok := cmd().(msg.ToastMsg); !ok || !toast.IsError {
		t.Errorf("expected error toast, got %#v", cmd())
	}
}

func TestMouse_ClickCardToggles(t *testing.T) {
	m := newTestModel(t, kv.NewMemory())
	m.View()

	m = click(t, m, regionNote, int64(2))
	if n, _ := m.store.Get(2); !n.Completed {
		t.Error("clicking a card should toggle it")
	}
}

func TestMouse_CardButtons(t *testing.T) {
	m := newTestModel(t, kv.NewMemory())
	m.View()

	m = click(t, m, regionEdit, int64(2))
	if id, editing := m.store.Editing(); !editing || id != 2 {
		t.Errorf("edit button should start editing note 2, got %d/%v", id, editing)
	}

	m.View()
	m = click(t, m, regionDelete, int64(3))
	if m.dialog == nil || m.pendingDelete != 3 {
		t.Fatal("delete button should ask to remove note 3")
	}

	m.View()
	m = click(t, m, ui.ActionConfirm, nil)
	if _, ok := m.store.Get(3); ok {
		t.Error("confirm button should remove note 3")
	}
	if m.dialog != nil {
		t.Error("dialog should close")
	}
}

func TestMouse_FilterChip(t *testing.T) {
	m := newTestModel(t, kv.NewMemory())
	m.View()

	m = click(t, m, regionFilter, notes.FilterPending)
	if m.store.Filter() != notes.FilterPending {
		t.Errorf("got filter %s, want pending", m.store.Filter())
	}
}

func TestStorageChanged_Rehydrates(t *testing.T) {
	store := kv.NewMemory()
	m := newTestModel(t, store)

	data, err := notes.Encode([]notes.Note{{ID: 42, Text: "From the CLI", Priority: notes.PriorityLow, CreatedAt: "10/19/2026"}})
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Set(notes.DefaultKey, data); err != nil {
		t.Fatal(err)
	}

	m = update(t, m, StorageChangedMsg{})
	list := m.store.Notes()
	if len(list) != 1 || list[0].Text != "From the CLI" {
		t.Errorf("got %+v, want the externally written note", list)
	}
	if !strings.Contains(ansi.Strip(m.View()), "From the CLI") {
		t.Error("view should show the reloaded note")
	}
}

func TestCorruptStorage_ShowsError(t *testing.T) {
	store := kv.NewMemory()
	if err := store.Set(notes.DefaultKey, "{not json"); err != nil {
		t.Fatal(err)
	}
	m := newTestModel(t, store)

	if len(m.store.Notes()) != 0 {
		t.Error("corrupt storage should load as empty")
	}
	if !m.statusIsError || m.statusMsg == "" {
		t.Error("corrupt storage should show an error toast")
	}
}

type failingKV struct {
	*kv.Memory
}

func (failingKV) Set(string, string) error { return errors.New("disk full") }

func TestPersistFailure_ShowsError(t *testing.T) {
	m := newTestModel(t, failingKV{kv.NewMemory()})

	m, cmd := send(t, m, keyMsg(" "))
	if n, _ := m.store.Get(1); !n.Completed {
		t.Error("in-memory state should keep the mutation")
	}
	if cmd == nil {
		t.Fatal("expected an error toast")
	}
	toast, ok := cmd().(msg.ToastMsg)
	if !ok || !toast.IsError || !strings.Contains(toast.Message, "disk full") {
		t.Errorf("got %#v", cmd())
	}
}

func TestKeymapOverrides(t *testing.T) {
	m := newTestModel(t, kv.NewMemory(), func(c *config.Config) {
		c.Keymap.Overrides["t"] = "toggle"
	})

	m = press(t, m, "t")
	if n, _ := m.store.Get(1); !n.Completed {
		t.Error("override t should toggle")
	}
}

func TestToastMsg(t *testing.T) {
	m := newTestModel(t, kv.NewMemory())
	m = update(t, m, msg.ToastMsg{Message: "hello", Duration: time.Minute})

	if !strings.Contains(ansi.Strip(m.View()), "hello") {
		t.Error("toast should be rendered in the footer")
	}
}

func TestToggleFooter(t *testing.T) {
	m := newTestModel(t, kv.NewMemory())
	if !strings.Contains(ansi.Strip(m.View()), "quit") {
		t.Fatal("footer hints should be visible by default")
	}

	m = press(t, m, "ctrl+h")
	if strings.Contains(ansi.Strip(m.View()), "quit") {
		t.Error("footer hints should be hidden after ctrl+h")
	}

	m = press(t, m, "ctrl+h")
	if !strings.Contains(ansi.Strip(m.View()), "quit") {
		t.Error("footer hints should be back after a second ctrl+h")
	}
}

func TestView_StripsTerminalEscapesFromNotes(t *testing.T) {
	store := kv.NewMemory()
	blob, err := notes.Encode([]notes.Note{
		{ID: 7, Text: "evil\x1b]52;c;aGFja2Vk\x07\x1b[2J", Priority: notes.PriorityHigh, CreatedAt: "10/19/2026"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Set(notes.DefaultKey, blob); err != nil {
		t.Fatal(err)
	}
	m := newTestModel(t, store)

	view := m.View()
	if strings.Contains(view, "\x1b[2J") {
		t.Error("clear-screen sequence from note text reached the frame")
	}
	if strings.Contains(view, "\x1b]52") {
		t.Error("clipboard sequence from note text reached the frame")
	}
	if !strings.Contains(ansi.Strip(view), "evil") {
		t.Error("the printable part of the note should still render")
	}
}
