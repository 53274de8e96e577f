package tracker

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/templui/nocturne/internal/model"
)

var ErrUnknownNote = errors.New("note is not in the collection")

// NoteStore is the remote note collection. *client.Client implements it.
type NoteStore interface {
	Notes(ctx context.Context) ([]*model.Note, error)
	CreateNote(ctx context.Context, input model.NewNote) (*model.Note, error)
	UpdateNote(ctx context.Context, id string, update model.NoteUpdate) (*model.Note, error)
	DeleteNote(ctx context.Context, id string) error
}

// NoteManager keeps notes pinned first, newest first.
type NoteManager struct {
	store NoteStore

	mu    sync.Mutex
	notes []*model.Note
}

func NewNoteManager(store NoteStore) *NoteManager {
	return &NoteManager{store: store}
}

// Load replaces the cache with the remote notes, which arrive sorted.
func (m *NoteManager) Load(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	notes, err := m.store.Notes(ctx)
	if err != nil {
		return err
	}

	m.notes = notes
	return nil
}

// Create adds an unpinned note at the head of the list.
func (m *NoteManager) Create(ctx context.Context, title, content string, tags *TagSet) (*model.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	input := model.NewNote{
		Title:   title,
		Content: content,
		Tags:    []string{},
	}
	if tags != nil {
		input.Tags = tags.Values()
	}

	note, err := m.store.CreateNote(ctx, input)
	if err != nil {
		return nil, err
	}

	m.notes = append([]*model.Note{note}, m.notes...)
	return note, nil
}

// TogglePin flips the pin of a cached note and re-sorts by the pin flag
// only, so notes keep their relative order within each group.
func (m *NoteManager) TogglePin(ctx context.Context, id string) (*model.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.index(id)
	if i < 0 {
		return nil, ErrUnknownNote
	}

	pinned := !m.notes[i].IsPinned
	note, err := m.store.UpdateNote(ctx, id, model.NoteUpdate{IsPinned: &pinned})
	if err != nil {
		return nil, err
	}

	m.notes[i] = note
	model.SortPinnedFirst(m.notes)
	return note, nil
}

func (m *NoteManager) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	err := m.store.DeleteNote(ctx, id)
	if err != nil {
		return err
	}

	m.notes = slices.DeleteFunc(m.notes, func(n *model.Note) bool { return n.ID == id })
	return nil
}

func (m *NoteManager) Notes() []*model.Note {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.notes)
}

func (m *NoteManager) index(id string) int {
	return slices.IndexFunc(m.notes, func(n *model.Note) bool { return n.ID == id })
}
