package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/templui/nocturne/internal/model"
)

var (
	ErrSleepLogNotFound = errors.New("sleep log not found")
	ErrSleepLogActive   = errors.New("an active sleep log already exists")
)

type SleepLogRepository interface {
	Create(ctx context.Context, log *model.SleepLog) error
	ByID(ctx context.Context, userID, logID string) (*model.SleepLog, error)
	SleepLogs(ctx context.Context, userID string) ([]*model.SleepLog, error)
	Latest(ctx context.Context, userID string) (*model.SleepLog, error)
	Active(ctx context.Context, userID string) (*model.SleepLog, error)
	Update(ctx context.Context, log *model.SleepLog) error
	Delete(ctx context.Context, userID, logID string) error
}

type sleepLogRepository struct {
	db *sqlx.DB
}

func NewSleepLogRepository(db *sqlx.DB) SleepLogRepository {
	return &sleepLogRepository{db: db}
}

func (r *sleepLogRepository) Create(ctx context.Context, log *model.SleepLog) error {
	query := `INSERT INTO sleep_logs (id, user_id, sleep_start, wake_end, duration_minutes, quality_rating, notes, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		log.ID,
		log.UserID,
		log.SleepStart,
		log.WakeEnd,
		log.DurationMinutes,
		log.QualityRating,
		log.Notes,
		log.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrSleepLogActive
		}
		return err
	}

	return nil
}

func (r *sleepLogRepository) ByID(ctx context.Context, userID, logID string) (*model.SleepLog, error) {
	log := &model.SleepLog{}
	query := `SELECT * FROM sleep_logs WHERE id = $1 AND user_id = $2`

	err := r.db.GetContext(ctx, log, query, logID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSleepLogNotFound
	}
	if err != nil {
		return nil, err
	}

	return log, nil
}

func (r *sleepLogRepository) SleepLogs(ctx context.Context, userID string) ([]*model.SleepLog, error) {
	logs := []*model.SleepLog{}
	query := `SELECT * FROM sleep_logs WHERE user_id = $1 ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &logs, query, userID)
	if err != nil {
		return nil, err
	}

	return logs, nil
}

func (r *sleepLogRepository) Latest(ctx context.Context, userID string) (*model.SleepLog, error) {
	log := &model.SleepLog{}
	query := `SELECT * FROM sleep_logs WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1`

	err := r.db.GetContext(ctx, log, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSleepLogNotFound
	}
	if err != nil {
		return nil, err
	}

	return log, nil
}

func (r *sleepLogRepository) Active(ctx context.Context, userID string) (*model.SleepLog, error) {
	log := &model.SleepLog{}
	query := `SELECT * FROM sleep_logs
	          WHERE user_id = $1 AND sleep_start IS NOT NULL AND wake_end IS NULL
	          ORDER BY created_at DESC LIMIT 1`

	err := r.db.GetContext(ctx, log, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSleepLogNotFound
	}
	if err != nil {
		return nil, err
	}

	return log, nil
}

func (r *sleepLogRepository) Update(ctx context.Context, log *model.SleepLog) error {
	query := `UPDATE sleep_logs
	          SET wake_end = $1, duration_minutes = $2, quality_rating = $3, notes = $4
	          WHERE id = $5 AND user_id = $6`

	result, err := r.db.ExecContext(ctx, query,
		log.WakeEnd,
		log.DurationMinutes,
		log.QualityRating,
		log.Notes,
		log.ID,
		log.UserID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrSleepLogNotFound
	}

	return nil
}

func (r *sleepLogRepository) Delete(ctx context.Context, userID, logID string) error {
	query := `DELETE FROM sleep_logs WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, logID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrSleepLogNotFound
	}

	return nil
}
