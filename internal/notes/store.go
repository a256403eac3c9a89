package notes

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"strings"
	"time"
)

const (
	// DefaultKey is the storage key holding the note list.
	DefaultKey = "sticky_tasks"

	// DefaultDateFormat renders creation dates as month/day/year.
	DefaultDateFormat = "1/2/2006"

	// maxRotation bounds the cosmetic tilt in degrees, exclusive.
	maxRotation = 1.5
)

// Storage is the key-value backend the store persists to.
type Storage interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Action describes what Add did.
type Action int

const (
	ActionRejected Action = iota
	ActionCreated
	ActionUpdated
)

// String returns a short label for the action.
func (a Action) String() string {
	switch a {
	case ActionCreated:
		return "created"
	case ActionUpdated:
		return "updated"
	default:
		return "rejected"
	}
}

// SubmitResult is returned by Add.
type SubmitResult struct {
	Action Action
	Note   Note
}

// Stats counts notes across the whole list.
type Stats struct {
	Total     int
	Completed int
	Pending   int
}

// Snapshot is what a render hook receives after each state change.
type Snapshot struct {
	Filter     Filter
	Projection []Note
	Stats      Stats
	EditingID  int64
	Editing    bool
}

// Option configures a Store.
type Option func(*Store)

// WithKey sets the storage key.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithDateFormat sets the time layout used for CreatedAt.
func WithDateFormat(layout string) Option {
	return func(s *Store) {
		if layout != "" {
			s.dateFormat = layout
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithRand overrides the rotation random source.
func WithRand(r *rand.Rand) Option {
	return func(s *Store) { s.rng = r }
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRenderHook registers a function called after every render-triggering operation.
func WithRenderHook(fn func(Snapshot)) Option {
	return func(s *Store) { s.render = fn }
}

// Store owns the note list, the current filter and the edit mode.
// It is not safe for concurrent use.
type Store struct {
	storage    Storage
	key        string
	dateFormat string
	now        func() time.Time
	rng        *rand.Rand
	logger     *slog.Logger
	render     func(Snapshot)

	notes     []Note
	filter    Filter
	editingID int64
	editing   bool
	lastID    int64
}

// New creates a Store backed by storage. Call Rehydrate to load saved notes.
func New(storage Storage, opts ...Option) *Store {
	s := &Store{
		storage:    storage,
		key:        DefaultKey,
		dateFormat: DefaultDateFormat,
		now:        time.Now,
		logger:     slog.Default(),
		filter:     FilterAll,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(uint64(s.now().UnixNano()), 0x9e3779b97f4a7c15))
	}
	return s
}

// Key returns the storage key the store persists under.
func (s *Store) Key() string { return s.key }

// Notes returns a copy of the list in storage order.
func (s *Store) Notes() []Note { return slices.Clone(s.notes) }

// Get returns the note with the given id.
func (s *Store) Get(id int64) (Note, bool) {
	if i := s.index(id); i >= 0 {
		return s.notes[i], true
	}
	return Note{}, false
}

// Filter returns the current filter.
func (s *Store) Filter() Filter { return s.filter }

// Editing returns the id of the note being edited, if any.
func (s *Store) Editing() (int64, bool) { return s.editingID, s.editing }

// Add creates a note, or updates the note being edited when edit mode is
// active. Text that trims to empty is rejected without any state change.
func (s *Store) Add(text string, priority Priority) (SubmitResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return SubmitResult{Action: ActionRejected}, nil
	}
	if !priority.Valid() {
		return SubmitResult{Action: ActionRejected}, fmt.Errorf("%w: %q", ErrUnknownPriority, priority)
	}

	var res SubmitResult
	if s.editing {
		res.Action = ActionUpdated
		s.Update(s.editingID, text, priority)
		res.Note, _ = s.Get(s.editingID)
	} else {
		n := Note{
			ID:        s.nextID(),
			Text:      text,
			Priority:  priority,
			Completed: false,
			Rotation:  s.rng.Float64()*2*maxRotation - maxRotation,
			CreatedAt: s.now().Format(s.dateFormat),
		}
		s.notes = append(s.notes, n)
		res.Action = ActionCreated
		res.Note = n
	}
	s.editing = false
	s.editingID = 0

	return res, s.commit()
}

// Update sets the text and priority of an existing note in place.
// It reports whether the note was found. It does not persist.
func (s *Store) Update(id int64, text string, priority Priority) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.notes[i].Text = text
	s.notes[i].Priority = priority
	return true
}

// BeginEdit switches to edit mode for id and returns the note so the caller
// can prefill its inputs. Unknown ids leave the mode unchanged.
func (s *Store) BeginEdit(id int64) (Note, bool) {
	n, ok := s.Get(id)
	if !ok {
		return Note{}, false
	}
	s.editing = true
	s.editingID = id
	return n, true
}

// CancelEdit returns to idle mode.
func (s *Store) CancelEdit() {
	s.editing = false
	s.editingID = 0
}

// Toggle flips the completed flag of id. Unknown ids are ignored.
func (s *Store) Toggle(id int64) (bool, error) {
	i := s.index(id)
	if i < 0 {
		return false, nil
	}
	s.notes[i].Completed = !s.notes[i].Completed
	return true, s.commit()
}

// Remove deletes id after confirm approves it. Unknown ids are ignored
// without asking.
func (s *Store) Remove(id int64, confirm func(Note) bool) (bool, error) {
	i := s.index(id)
	if i < 0 {
		return false, nil
	}
	if confirm == nil || !confirm(s.notes[i]) {
		return false, nil
	}
	s.notes = slices.DeleteFunc(s.notes, func(n Note) bool { return n.ID == id })
	if s.editing && s.editingID == id {
		s.CancelEdit()
	}
	return true, s.commit()
}

// SetFilter replaces the current filter. The choice is not persisted.
func (s *Store) SetFilter(f Filter) {
	s.filter = f
	s.emit()
}

// Project returns the notes matching the current filter in display order.
func (s *Store) Project() []Note { return Project(s.notes, s.filter) }

// Stats counts notes across the whole list.
func (s *Store) Stats() Stats {
	st := Stats{Total: len(s.notes)}
	for _, n := range s.notes {
		if n.Completed {
			st.Completed++
		}
	}
	st.Pending = st.Total - st.Completed
	return st
}

// Snapshot returns the current render state.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Filter:     s.filter,
		Projection: s.Project(),
		Stats:      s.Stats(),
		EditingID:  s.editingID,
		Editing:    s.editing,
	}
}

// Persist writes the full list to storage, overwriting the previous value.
func (s *Store) Persist() error {
	data, err := Encode(s.notes)
	if err != nil {
		return err
	}
	if err := s.storage.Set(s.key, data); err != nil {
		return fmt.Errorf("persist notes: %w", err)
	}
	return nil
}

// Rehydrate replaces the list with the stored one. A missing key installs
// the seed notes. Unreadable content resets the list to empty and returns an
// error wrapping ErrCorrupt; the store stays usable.
func (s *Store) Rehydrate() error {
	s.CancelEdit()
	defer s.emit()

	data, ok, err := s.storage.Get(s.key)
	if err != nil {
		s.notes = []Note{}
		s.logger.Error("notes: load failed", "key", s.key, "error", err)
		return fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if !ok || data == "" {
		s.notes = Seed(s.now().Format(s.dateFormat))
		s.trackIDs()
		s.logger.Debug("notes: installed seed notes", "key", s.key)
		return nil
	}

	list, err := Decode(data)
	if err != nil {
		s.notes = []Note{}
		s.logger.Error("notes: error loading notes", "key", s.key, "error", err)
		return err
	}
	s.notes = list
	s.trackIDs()
	s.logger.Debug("notes: loaded", "key", s.key, "count", len(list))
	return nil
}

// commit persists and then renders.
func (s *Store) commit() error {
	err := s.Persist()
	s.emit()
	return err
}

func (s *Store) emit() {
	if s.render != nil {
		s.render(s.Snapshot())
	}
}

func (s *Store) index(id int64) int {
	return slices.IndexFunc(s.notes, func(n Note) bool { return n.ID == id })
}

// nextID returns a timestamp id that is larger than any id seen so far.
func (s *Store) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *Store) trackIDs() {
	for _, n := range s.notes {
		if n.ID > s.lastID {
			s.lastID = n.ID
		}
	}
}
