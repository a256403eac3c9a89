package notes

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Filter selects which notes are displayed.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterPending   Filter = "pending"
	FilterCompleted Filter = "completed"
	FilterHigh      Filter = "high"
	FilterMedium    Filter = "medium"
	FilterLow       Filter = "low"
)

// Filters lists every filter in chip order.
var Filters = []Filter{FilterAll, FilterPending, FilterCompleted, FilterHigh, FilterMedium, FilterLow}

// ErrUnknownFilter is returned when a filter name is not recognized.
var ErrUnknownFilter = errors.New("unknown filter")

// ParseFilter parses a filter name (case-insensitive).
func ParseFilter(s string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Filters, f) {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFilter, s)
}

// Matches reports whether n passes the filter. Unrecognized filters match everything.
func (f Filter) Matches(n Note) bool {
	switch f {
	case FilterPending:
		return !n.Completed
	case FilterCompleted:
		return n.Completed
	case FilterHigh, FilterMedium, FilterLow:
		return n.Priority == Priority(f)
	default:
		return true
	}
}

// String returns the filter name.
func (f Filter) String() string { return string(f) }

// Next returns the following filter in chip order, wrapping around.
func (f Filter) Next() Filter {
	i := slices.Index(Filters, f)
	return Filters[(i+1)%len(Filters)]
}

// Prev returns the preceding filter in chip order, wrapping around.
func (f Filter) Prev() Filter {
	i := slices.Index(Filters, f)
	if i <= 0 {
		return Filters[len(Filters)-1]
	}
	return Filters[i-1]
}

// Compare orders notes for display: pending before completed, then higher
// priority rank first, then newer (larger id) first.
func Compare(a, b Note) int {
	if a.Completed != b.Completed {
		if a.Completed {
			return 1
		}
		return -1
	}
	if c := cmp.Compare(b.Priority.Rank(), a.Priority.Rank()); c != 0 {
		return c
	}
	return cmp.Compare(b.ID, a.ID)
}

// Project returns the notes matching f in display order. The input is not modified.
func Project(list []Note, f Filter) []Note {
	out := make([]Note, 0, len(list))
	for _, n := range list {
		if f.Matches(n) {
			out = append(out, n)
		}
	}
	slices.SortStableFunc(out, Compare)
	return out
}
