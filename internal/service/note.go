package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/templui/nocturne/internal/markdown"
	"github.com/templui/nocturne/internal/model"
	"github.com/templui/nocturne/internal/repository"
	"github.com/templui/nocturne/internal/validation"
)

var ErrInvalidFrontmatter = errors.New("invalid frontmatter")

// DefaultPinnedLimit is how many pinned notes the dashboard shows.
const DefaultPinnedLimit = 3

type NoteService struct {
	noteRepository repository.NoteRepository
	parser         *markdown.Parser
	now            func() time.Time
}

func NewNoteService(noteRepository repository.NoteRepository) *NoteService {
	return &NoteService{
		noteRepository: noteRepository,
		parser:         markdown.NewParser(),
		now:            time.Now,
	}
}

// Notes returns pinned notes first, newest first within each group.
func (s *NoteService) Notes(ctx context.Context, userID string) ([]*model.Note, error) {
	notes, err := s.noteRepository.Notes(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}

// Pinned returns up to limit pinned notes, most recently updated first.
func (s *NoteService) Pinned(ctx context.Context, userID string, limit int) ([]*model.Note, error) {
	if limit <= 0 {
		limit = DefaultPinnedLimit
	}

	notes, err := s.noteRepository.Pinned(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list pinned notes: %w", err)
	}
	return notes, nil
}

func (s *NoteService) Note(ctx context.Context, userID, noteID string) (*model.Note, error) {
	return s.noteRepository.ByID(ctx, userID, noteID)
}

func (s *NoteService) Create(ctx context.Context, userID string, input model.NewNote) (*model.Note, error) {
	return s.create(ctx, userID, input, false)
}

func (s *NoteService) create(ctx context.Context, userID string, input model.NewNote, pinned bool) (*model.Note, error) {
	title := strings.TrimSpace(input.Title)
	err := validation.ValidateNoteTitle(title)
	if err != nil {
		return nil, err
	}

	tags := validation.NormalizeTags(input.Tags)
	err = validation.ValidateTags(tags)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	note := &model.Note{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Content:   input.Content,
		Tags:      tags,
		IsPinned:  pinned,
		CreatedAt: now,
		UpdatedAt: &now,
	}

	err = s.noteRepository.Create(ctx, note)
	if err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	slog.Info("note created", "user_id", userID, "note_id", note.ID)
	return note, nil
}

// Update applies a partial update and stamps updated_at.
func (s *NoteService) Update(ctx context.Context, userID, noteID string, update model.NoteUpdate) (*model.Note, error) {
	if update.IsEmpty() {
		return nil, ErrEmptyUpdate
	}

	note, err := s.noteRepository.ByID(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		err = validation.ValidateNoteTitle(title)
		if err != nil {
			return nil, err
		}
		note.Title = title
	}

	if update.Content != nil {
		note.Content = *update.Content
	}

	if update.Tags != nil {
		tags := validation.NormalizeTags(update.Tags)
		err = validation.ValidateTags(tags)
		if err != nil {
			return nil, err
		}
		note.Tags = tags
	}

	if update.IsPinned != nil {
		note.IsPinned = *update.IsPinned
	}

	now := s.now().UTC()
	note.UpdatedAt = &now

	err = s.noteRepository.Update(ctx, note)
	if err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	return note, nil
}

func (s *NoteService) Delete(ctx context.Context, userID, noteID string) error {
	err := s.noteRepository.Delete(ctx, userID, noteID)
	if err != nil {
		return err
	}

	slog.Info("note deleted", "user_id", userID, "note_id", noteID)
	return nil
}

// RenderHTML renders the note content from markdown.
func (s *NoteService) RenderHTML(ctx context.Context, userID, noteID string) (string, error) {
	note, err := s.noteRepository.ByID(ctx, userID, noteID)
	if err != nil {
		return "", err
	}

	html, err := s.parser.Render([]byte(note.Content))
	if err != nil {
		return "", fmt.Errorf("failed to render note: %w", err)
	}
	return string(html), nil
}

// Import creates a note from a markdown document. The title comes from the
// frontmatter, then the first heading, then the file name.
// Imported notes keep the frontmatter pinned flag.
func (s *NoteService) Import(ctx context.Context, userID, filename string, source []byte) (*model.Note, error) {
	meta, body, err := s.parser.ParseNote(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFrontmatter, err)
	}

	title := strings.TrimSpace(meta.Title)
	if title == "" {
		title = markdown.FirstHeading(body)
	}
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	if title == "" || title == "." {
		title = "Untitled"
	}

	note, err := s.create(ctx, userID, model.NewNote{
		Title:   title,
		Content: body,
		Tags:    meta.Tags,
	}, meta.Pinned)
	if err != nil {
		return nil, err
	}

	slog.Info("note imported", "user_id", userID, "note_id", note.ID, "filename", filename)
	return note, nil
}
