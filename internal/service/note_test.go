package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/nocturne/internal/model"
	"github.com/templui/nocturne/internal/repository"
	"github.com/templui/nocturne/internal/validation"
)

func TestNoteService_CreateDedupesTags(t *testing.T) {
	s := setupServices(t)
	user := s.signup(t, "owl@example.com")

	note, err := s.note.Create(context.Background(), user.ID, model.NewNote{
		Title:   " Dreams ",
		Content: "flying again",
		Tags:    []string{"a", "a", "b"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Dreams", note.Title)
	assert.Equal(t, model.Tags{"a", "b"}, note.Tags)
	assert.False(t, note.IsPinned)
	assert.Equal(t, note.CreatedAt, *note.UpdatedAt)
}

func TestNoteService_CreateRequiresTitle(t *testing.T) {
	s := setupServices(t)
	user := s.signup(t, "owl@example.com")

	_, err := s.note.Create(context.Background(), user.ID, model.NewNote{Title: "  "})
	assert.ErrorIs(t, err, validation.ErrTitleRequired)
}

func TestNoteService_PinOrdering(t *testing.T) {
	s := setupServices(t)
	user := s.signup(t, "owl@example.com")
	ctx := context.Background()

	b, err := s.note.Create(ctx, user.ID, model.NewNote{Title: "B"})
	require.NoError(t, err)
	s.clock.Advance(time.Minute)
	a, err := s.note.Create(ctx, user.ID, model.NewNote{Title: "A"})
	require.NoError(t, err)

	notes, err := s.note.Notes(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID, b.ID}, noteIDs(notes))

	s.clock.Advance(time.Minute)
	pinned, err := s.note.Update(ctx, user.ID, b.ID, model.NoteUpdate{IsPinned: ptr(true)})
	require.NoError(t, err)
	assert.True(t, pinned.IsPinned)
	assert.Equal(t, s.clock.now, *pinned.UpdatedAt)

	notes, err = s.note.Notes(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID, a.ID}, noteIDs(notes))
}

func TestNoteService_PinnedLimitAndOrder(t *testing.T) {
	s := setupServices(t)
	user := s.signup(t, "owl@example.com")
	ctx := context.Background()

	var ids []string
	for _, title := range []string{"one", "two", "three", "four"} {
		s.clock.Advance(time.Minute)
		note, err := s.note.Create(ctx, user.ID, model.NewNote{Title: title})
		require.NoError(t, err)
		_, err = s.note.Update(ctx, user.ID, note.ID, model.NoteUpdate{IsPinned: ptr(true)})
		require.NoError(t, err)
		ids = append(ids, note.ID)
	}

	pinned, err := s.note.Pinned(ctx, user.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{ids[3], ids[2], ids[1]}, noteIDs(pinned))
}

func TestNoteService_UpdateTagsAndContent(t *testing.T) {
	s := setupServices(t)
	user := s.signup(t, "owl@example.com")
	ctx := context.Background()

	note, err := s.note.Create(ctx, user.ID, model.NewNote{Title: "Log", Tags: []string{"x"}})
	require.NoError(t, err)

	updated, err := s.note.Update(ctx, user.ID, note.ID, model.NoteUpdate{Content: ptr("new body"), Tags: []string{}})
	require.NoError(t, err)
	assert.Equal(t, "new body", updated.Content)
	assert.Empty(t, updated.Tags)
	assert.Equal(t, "Log", updated.Title)

	_, err = s.note.Update(ctx, user.ID, note.ID, model.NoteUpdate{})
	assert.ErrorIs(t, err, ErrEmptyUpdate)
}

func TestNoteService_ScopedToOwner(t *testing.T) {
	s := setupServices(t)
	owner := s.signup(t, "owl@example.com")
	other := s.signup(t, "lark@example.com")
	ctx := context.Background()

	note, err := s.note.Create(ctx, owner.ID, model.NewNote{Title: "private"})
	require.NoError(t, err)

	_, err = s.note.Note(ctx, other.ID, note.ID)
	assert.ErrorIs(t, err, repository.ErrNoteNotFound)
	assert.ErrorIs(t, s.note.Delete(ctx, other.ID, note.ID), repository.ErrNoteNotFound)
}

func TestNoteService_RenderHTML(t *testing.T) {
	s := setupServices(t)
	user := s.signup(t, "owl@example.com")
	ctx := context.Background()

	note, err := s.note.Create(ctx, user.ID, model.NewNote{Title: "Dream", Content: "*falling*"})
	require.NoError(t, err)

	html, err := s.note.RenderHTML(ctx, user.ID, note.ID)
	require.NoError(t, err)
	assert.Contains(t, html, "<em>falling</em>")
}

func TestNoteService_Import(t *testing.T) {
	s := setupServices(t)
	user := s.signup(t, "owl@example.com")
	ctx := context.Background()

	source := "---\ntitle: Recurring\ntags: [stairs, stairs, night]\npinned: true\n---\nThe stairs again.\n"
	note, err := s.note.Import(ctx, user.ID, "recurring.md", []byte(source))
	require.NoError(t, err)

	assert.Equal(t, "Recurring", note.Title)
	assert.Equal(t, model.Tags{"stairs", "night"}, note.Tags)
	assert.True(t, note.IsPinned)
	assert.Equal(t, "The stairs again.\n", note.Content)
}

func TestNoteService_ImportTitleFallbacks(t *testing.T) {
	s := setupServices(t)
	user := s.signup(t, "owl@example.com")
	ctx := context.Background()

	fromHeading, err := s.note.Import(ctx, user.ID, "x.md", []byte("# From heading\n\nbody"))
	require.NoError(t, err)
	assert.Equal(t, "From heading", fromHeading.Title)
	assert.False(t, fromHeading.IsPinned)

	fromFile, err := s.note.Import(ctx, user.ID, "dream-log.md", []byte("just text"))
	require.NoError(t, err)
	assert.Equal(t, "dream-log", fromFile.Title)
}

func noteIDs(notes []*model.Note) []string {
	ids := make([]string, len(notes))
	for i, note := range notes {
		ids[i] = note.ID
	}
	return ids
}
