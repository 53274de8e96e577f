package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"sort"
	"time"
)

type Note struct {
	ID        string     `db:"id" json:"id"`
	UserID    string     `db:"user_id" json:"user_id"`
	Title     string     `db:"title" json:"title"`
	Content   string     `db:"content" json:"content"`
	Tags      Tags       `db:"tags" json:"tags"`
	IsPinned  bool       `db:"is_pinned" json:"is_pinned"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// NoteUpdate is a partial update: nil fields are left untouched.
type NoteUpdate struct {
	Title    *string  `json:"title,omitempty"`
	Content  *string  `json:"content,omitempty"`
	Tags     []string `json:"tags"` // nil leaves tags untouched, empty clears them
	IsPinned *bool    `json:"is_pinned,omitempty"`
}

// NewNote is the input for creating a note.
type NewNote struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

func (u NoteUpdate) IsEmpty() bool {
	return u.Title == nil && u.Content == nil && u.Tags == nil && u.IsPinned == nil
}

// SortPinnedFirst stably moves pinned notes ahead of unpinned ones.
// Relative order inside each group is preserved.
func SortPinnedFirst(notes []*Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].IsPinned && !notes[j].IsPinned
	})
}

// Tags is an ordered tag list stored as a JSON array.
type Tags []string

func (t Tags) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(t))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (t *Tags) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*t = Tags{}
		return nil
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return errors.New("tags: unsupported column type")
	}

	var out []string
	err := json.Unmarshal(data, &out)
	if err != nil {
		return err
	}
	if out == nil {
		out = []string{}
	}
	*t = out
	return nil
}

func (t Tags) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(t))
}
