package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcus/pinboard/internal/config"
	"github.com/marcus/pinboard/internal/export"
	"github.com/marcus/pinboard/internal/kv"
	"github.com/marcus/pinboard/internal/notes"
)

// harness runs commands against a config and storage file in a temp dir.
type harness struct {
	t       *testing.T
	config  string
	storage string
}

func newHarness(t *testing.T) *harness {
	dir := t.TempDir()
	return &harness{
		t:       t,
		config:  filepath.Join(dir, "config.json"),
		storage: filepath.Join(dir, "data", "storage.json"),
	}
}

func (h *harness) run(stdin string, args ...string) (string, error) {
	h.t.Helper()
	root := newRootCmd(&cli{})
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config", h.config, "--storage", h.storage}, args...))
	err := root.Execute()
	return out.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run("", args...)
	require.NoError(h.t, err, "pinboard %s", strings.Join(args, " "))
	return out
}

func (h *harness) listJSON(args ...string) []notes.Note {
	h.t.Helper()
	out := h.mustRun(append([]string{"list", "--json"}, args...)...)
	list, err := notes.Decode(strings.TrimSpace(out))
	require.NoError(h.t, err)
	return list
}

func TestList_SeedsOnFirstRun(t *testing.T) {
	h := newHarness(t)
	out := h.mustRun("list")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Contains(t, lines[0], "Click on any note to mark it as Finished!")
	assert.True(t, strings.HasPrefix(lines[2], "[x] 3"), "completed seed sorts last, got %q", lines[2])
	assert.Contains(t, out, "3 total, 1 completed, 2 pending")
}

func TestList_UnknownFilter(t *testing.T) {
	h := newHarness(t)
	_, err := h.run("", "list", "--filter", "urgent")
	assert.ErrorIs(t, err, notes.ErrUnknownFilter)
}

func TestList_EmptyProjection(t *testing.T) {
	h := newHarness(t)
	h.mustRun("delete", "3", "--yes")

	out := h.mustRun("list", "--filter", "completed")
	assert.Equal(t, notes.EmptyMessage(notes.FilterCompleted)+"\n", out)
}

func TestAdd(t *testing.T) {
	h := newHarness(t)
	out := h.mustRun("add", "Buy", "milk", "--priority", "high")
	assert.True(t, strings.HasPrefix(out, "Pinned "))

	list := h.listJSON("--filter", "high")
	require.Len(t, list, 2)
	assert.Equal(t, "Buy milk", list[0].Text, "newer high note sorts first")
	assert.Equal(t, int64(1), list[1].ID)

	assert.Len(t, h.listJSON(), 4, "seeds are persisted with the first note")
}

func TestAdd_DefaultPriorityFromConfig(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, os.WriteFile(h.config, []byte(`{"notes": {"defaultPriority": "low"}}`), 0644))

	h.mustRun("add", "Water plants")
	list := h.listJSON("--filter", "low")
	require.NotEmpty(t, list)
	assert.Equal(t, "Water plants", list[0].Text)
}

func TestAdd_Rejects(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("", "add", "   ")
	assert.Error(t, err)

	_, err = h.run("", "add", "x", "--priority", "urgent")
	assert.ErrorIs(t, err, notes.ErrUnknownPriority)

	_, ok, err := readStored(t, h.storage)
	require.NoError(t, err)
	assert.False(t, ok, "rejected adds must not write")
}

func TestEdit(t *testing.T) {
	h := newHarness(t)
	out := h.mustRun("edit", "2", "Pin", "a", "better", "note")
	assert.Equal(t, "Updated 2\n", out)

	list := h.listJSON("--filter", "medium")
	require.Len(t, list, 1)
	assert.Equal(t, "Pin a better note", list[0].Text)
	assert.Equal(t, notes.PriorityMedium, list[0].Priority, "priority is kept without --priority")

	h.mustRun("edit", "2", "Now low", "-p", "low")
	list = h.listJSON("--filter", "low")
	require.Len(t, list, 2)
	assert.Equal(t, int64(2), list[0].ID, "pending sorts before completed")
	assert.Len(t, h.listJSON(), 3, "edit must not create a note")
}

func TestEdit_Errors(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("", "edit", "42", "text")
	assert.ErrorContains(t, err, "not found")

	_, err = h.run("", "edit", "abc", "text")
	assert.ErrorContains(t, err, "invalid note id")

	_, err = h.run("", "edit", "1", " ")
	assert.ErrorContains(t, err, "empty")
}

func TestToggle(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, "Finished 1\n", h.mustRun("toggle", "1"))
	assert.Len(t, h.listJSON("--filter", "completed"), 2)

	assert.Equal(t, "Reopened 1\n", h.mustRun("toggle", "1"))
	assert.Len(t, h.listJSON("--filter", "completed"), 1)

	_, err := h.run("", "toggle", "999")
	assert.ErrorContains(t, err, "not found")
}

func TestDelete_Prompt(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("n\n", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Are you sure you want to tear off this sticky note?")
	assert.Contains(t, out, "Kept.")
	assert.Len(t, h.listJSON(), 3)

	out, err = h.run("", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Kept.", "no answer means no")

	out, err = h.run("y\n", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Tore off 1")

	list := h.listJSON()
	require.Len(t, list, 2)
	for _, n := range list {
		assert.NotEqual(t, int64(1), n.ID)
	}
}

func TestDelete_YesAndMissing(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, "Tore off 2\n", h.mustRun("delete", "2", "--yes"))
	assert.Len(t, h.listJSON(), 2)

	_, err := h.run("", "delete", "2", "--yes")
	assert.ErrorContains(t, err, "not found")
}

func TestExport(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("export", "--format", "csv", "--filter", "pending")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, "id,text,priority,completed,rotation,createdAt", lines[0])
	assert.Len(t, lines, 3)

	pdfPath := filepath.Join(t.TempDir(), "board.pdf")
	h.mustRun("export", "--format", "pdf", "-o", pdfPath)
	data, err := os.ReadFile(pdfPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	_, err = h.run("", "export", "--format", "docx")
	assert.ErrorIs(t, err, export.ErrUnknownFormat)
}

func TestEphemeral(t *testing.T) {
	h := newHarness(t)
	h.mustRun("--ephemeral", "add", "Gone soon")

	for _, n := range h.listJSON() {
		assert.NotEqual(t, "Gone soon", n.Text)
	}
}

func TestLogout(t *testing.T) {
	h := newHarness(t)
	store, err := kv.OpenFile(h.storage, nil)
	require.NoError(t, err)
	require.NoError(t, store.Set("loggedIn", "true"))
	require.NoError(t, store.Set(notes.DefaultKey, "[]"))
	require.NoError(t, store.Close())

	assert.Equal(t, "Logged out.\n", h.mustRun("logout"))

	store, err = kv.OpenFile(h.storage, nil)
	require.NoError(t, err)
	defer store.Close()
	_, ok, err := store.Get("loggedIn")
	require.NoError(t, err)
	assert.False(t, ok)
	v, ok, err := store.Get(notes.DefaultKey)
	require.NoError(t, err)
	assert.True(t, ok, "logout keeps the notes")
	assert.Equal(t, "[]", v)
}

func TestNotesSurviveMalformedSessionFlag(t *testing.T) {
	h := newHarness(t)
	blob, err := notes.Encode([]notes.Note{
		{ID: 10, Text: "keep me", Priority: notes.PriorityHigh, Rotation: 0.1, CreatedAt: "10/19/2026"},
	})
	require.NoError(t, err)
	content, err := json.Marshal(map[string]any{notes.DefaultKey: blob, "loggedIn": true})
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(h.storage), 0755))
	require.NoError(t, os.WriteFile(h.storage, content, 0644))

	list := h.listJSON()
	require.Len(t, list, 1)
	assert.Equal(t, "keep me", list[0].Text)

	h.mustRun("add", "new")
	texts := []string{}
	for _, n := range h.listJSON() {
		texts = append(texts, n.Text)
	}
	assert.ElementsMatch(t, []string{"keep me", "new"}, texts)
}

func TestList_StripsTerminalEscapes(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "evil\x1b[2J\x1b]52;c;aGFja2Vk\x07done")

	out := h.mustRun("list")
	assert.NotContains(t, out, "\x1b")
	assert.NotContains(t, out, "\x07")
	assert.Contains(t, out, "evildone")

	list := h.listJSON("--filter", "medium")
	require.NotEmpty(t, list)
	assert.Contains(t, list[0].Text, "\x1b[2J", "stored text is kept as entered")
}

func TestVersion(t *testing.T) {
	h := newHarness(t)
	assert.True(t, strings.HasPrefix(h.mustRun("version"), "pinboard "))
}

func TestConfig(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, h.config+"\n", h.mustRun("config", "path"))

	h.mustRun("config", "init")
	_, err := h.run("", "config", "init")
	assert.ErrorContains(t, err, "already exists")
	h.mustRun("config", "init", "--force")

	h.mustRun("config", "bind", "t", "toggle")
	cfg, err := config.LoadFrom(h.config)
	require.NoError(t, err)
	assert.Equal(t, "toggle", cfg.Keymap.Overrides["t"])

	_, err = h.run("", "config", "bind", "t", "explode")
	assert.ErrorContains(t, err, "unknown command")
}

func readStored(t *testing.T, path string) (string, bool, error) {
	t.Helper()
	store, err := kv.OpenFile(path, nil)
	require.NoError(t, err)
	defer store.Close()
	return store.Get(notes.DefaultKey)
}
