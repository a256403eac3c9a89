package notes

import (
	"errors"
	"fmt"
	"strings"
)

// Note is a single sticky note.
type Note struct {
	ID        int64    `json:"id"`
	Text      string   `json:"text"`
	Priority  Priority `json:"priority"`
	Completed bool     `json:"completed"`
	Rotation  float64  `json:"rotation"`
	CreatedAt string   `json:"createdAt"`
}

// Priority is the note priority level.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Priorities lists the priority levels in selector order.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

var (
	// ErrUnknownPriority is returned when a priority name is not recognized.
	ErrUnknownPriority = errors.New("unknown priority")

	// ErrCorrupt is returned by Rehydrate when stored content cannot be decoded.
	ErrCorrupt = errors.New("stored notes are unreadable")
)

// ParsePriority parses a priority name (case-insensitive).
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownPriority, s)
	}
	return p, nil
}

// Valid reports whether p is one of the known levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Rank returns the ordering weight: high=3, medium=2, low=1, unknown=0.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// Next returns the following priority in selector order, wrapping around.
func (p Priority) Next() Priority {
	for i, q := range Priorities {
		if q == p {
			return Priorities[(i+1)%len(Priorities)]
		}
	}
	return PriorityMedium
}

// String returns the priority name.
func (p Priority) String() string { return string(p) }
