package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/nocturne/internal/model"
)

type ProfileRepository interface {
	ByID(ctx context.Context, id string) (*model.Profile, error)
	Create(ctx context.Context, profile *model.Profile) error
	Update(ctx context.Context, id string, update model.ProfileUpdate) (*model.Profile, error)
	ClearAvatar(ctx context.Context, id string) error
}

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) ByID(ctx context.Context, id string) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.GetContext(ctx, &profile, `SELECT * FROM profiles WHERE id = $1`, id)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *profileRepository) Create(ctx context.Context, profile *model.Profile) error {
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profiles (id, full_name, username, avatar_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, profile.ID, profile.FullName, profile.Username, profile.AvatarURL, profile.CreatedAt, profile.UpdatedAt)

	return err
}

// Update applies the non-nil fields of update and stamps updated_at.
func (r *profileRepository) Update(ctx context.Context, id string, update model.ProfileUpdate) (*model.Profile, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE profiles
		SET full_name = COALESCE($1, full_name),
		    username = COALESCE($2, username),
		    avatar_url = COALESCE($3, avatar_url),
		    updated_at = $4
		WHERE id = $5
	`, update.FullName, update.Username, update.AvatarURL, time.Now().UTC(), id)
	if err != nil {
		return nil, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrProfileNotFound
	}

	return r.ByID(ctx, id)
}

func (r *profileRepository) ClearAvatar(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE profiles
		SET avatar_url = NULL, updated_at = $1
		WHERE id = $2
	`, time.Now().UTC(), id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrProfileNotFound
	}

	return nil
}
