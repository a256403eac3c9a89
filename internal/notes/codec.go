package notes

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// storedNote mirrors Note with pointer fields so missing keys can be told
// apart from zero values when decoding.
type storedNote struct {
	ID        *int64   `json:"id"`
	Text      *string  `json:"text"`
	Priority  *string  `json:"priority"`
	Completed *bool    `json:"completed"`
	Rotation  *float64 `json:"rotation"`
	CreatedAt *string  `json:"createdAt"`
}

// Encode serializes the note list as a JSON array. A nil list encodes as [].
func Encode(list []Note) (string, error) {
	if list == nil {
		list = []Note{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "", fmt.Errorf("encode notes: %w", err)
	}
	return string(b), nil
}

// Decode parses a stored JSON array of notes. Any deviation from the record
// shape (unknown or missing fields, wrong types, unknown priority, duplicate
// ids, trailing data) is reported as ErrCorrupt.
func Decode(data string) ([]Note, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(data)))
	dec.DisallowUnknownFields()

	var raw []storedNote
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: not an array", ErrCorrupt)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data", ErrCorrupt)
	}

	list := make([]Note, 0, len(raw))
	seen := make(map[int64]struct{}, len(raw))
	for i, r := range raw {
		if r.ID == nil || r.Text == nil || r.Priority == nil || r.Completed == nil ||
			r.Rotation == nil || r.CreatedAt == nil {
			return nil, fmt.Errorf("%w: record %d is missing fields", ErrCorrupt, i)
		}
		p := Priority(*r.Priority)
		if !p.Valid() {
			return nil, fmt.Errorf("%w: record %d has priority %q", ErrCorrupt, i, *r.Priority)
		}
		if _, dup := seen[*r.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %d", ErrCorrupt, *r.ID)
		}
		seen[*r.ID] = struct{}{}
		list = append(list, Note{
			ID:        *r.ID,
			Text:      *r.Text,
			Priority:  p,
			Completed: *r.Completed,
			Rotation:  *r.Rotation,
			CreatedAt: *r.CreatedAt,
		})
	}
	return list, nil
}
