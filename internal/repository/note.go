package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/templui/nocturne/internal/model"
)

var (
	ErrNoteNotFound = errors.New("note not found")
)

type NoteRepository interface {
	Create(ctx context.Context, note *model.Note) error
	ByID(ctx context.Context, userID, noteID string) (*model.Note, error)
	Notes(ctx context.Context, userID string) ([]*model.Note, error)
	Pinned(ctx context.Context, userID string, limit int) ([]*model.Note, error)
	Update(ctx context.Context, note *model.Note) error
	Delete(ctx context.Context, userID, noteID string) error
}

type noteRepository struct {
	db *sqlx.DB
}

func NewNoteRepository(db *sqlx.DB) NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) Create(ctx context.Context, note *model.Note) error {
	query := `INSERT INTO notes (id, user_id, title, content, tags, is_pinned, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		note.ID,
		note.UserID,
		note.Title,
		note.Content,
		note.Tags,
		note.IsPinned,
		note.CreatedAt,
		note.UpdatedAt,
	)

	return err
}

func (r *noteRepository) ByID(ctx context.Context, userID, noteID string) (*model.Note, error) {
	note := &model.Note{}
	query := `SELECT * FROM notes WHERE id = $1 AND user_id = $2`

	err := r.db.GetContext(ctx, note, query, noteID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoteNotFound
	}
	if err != nil {
		return nil, err
	}

	return note, nil
}

// Notes returns pinned notes first, newest first within each group.
func (r *noteRepository) Notes(ctx context.Context, userID string) ([]*model.Note, error) {
	notes := []*model.Note{}
	query := `SELECT * FROM notes WHERE user_id = $1 ORDER BY is_pinned DESC, created_at DESC`

	err := r.db.SelectContext(ctx, &notes, query, userID)
	if err != nil {
		return nil, err
	}

	return notes, nil
}

func (r *noteRepository) Pinned(ctx context.Context, userID string, limit int) ([]*model.Note, error) {
	notes := []*model.Note{}
	query := `SELECT * FROM notes WHERE user_id = $1 AND is_pinned = $2 ORDER BY updated_at DESC LIMIT $3`

	err := r.db.SelectContext(ctx, &notes, query, userID, true, limit)
	if err != nil {
		return nil, err
	}

	return notes, nil
}

func (r *noteRepository) Update(ctx context.Context, note *model.Note) error {
	query := `UPDATE notes
	          SET title = $1, content = $2, tags = $3, is_pinned = $4, updated_at = $5
	          WHERE id = $6 AND user_id = $7`

	result, err := r.db.ExecContext(ctx, query,
		note.Title,
		note.Content,
		note.Tags,
		note.IsPinned,
		note.UpdatedAt,
		note.ID,
		note.UserID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrNoteNotFound
	}

	return nil
}

func (r *noteRepository) Delete(ctx context.Context, userID, noteID string) error {
	query := `DELETE FROM notes WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, noteID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrNoteNotFound
	}

	return nil
}
