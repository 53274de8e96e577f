package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/templui/nocturne/internal/model"
	"github.com/templui/nocturne/internal/repository"
	"github.com/templui/nocturne/internal/validation"
)

var (
	ErrSleepInProgress     = errors.New("a sleep session is already in progress")
	ErrNoActiveSleep       = errors.New("no active sleep session")
	ErrSleepAlreadyStopped = errors.New("sleep session already stopped")
	ErrInvalidWakeTime     = errors.New("wake time must not be before sleep start")
	ErrEmptyUpdate         = errors.New("nothing to update")
)

type SleepService struct {
	sleepLogRepository repository.SleepLogRepository
	now                func() time.Time
}

func NewSleepService(sleepLogRepository repository.SleepLogRepository) *SleepService {
	return &SleepService{
		sleepLogRepository: sleepLogRepository,
		now:                time.Now,
	}
}

// SleepLogs returns the user's logs, newest first.
func (s *SleepService) SleepLogs(ctx context.Context, userID string) ([]*model.SleepLog, error) {
	logs, err := s.sleepLogRepository.SleepLogs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sleep logs: %w", err)
	}
	return logs, nil
}

// Latest returns the most recent log, or nil when the user has none.
func (s *SleepService) Latest(ctx context.Context, userID string) (*model.SleepLog, error) {
	log, err := s.sleepLogRepository.Latest(ctx, userID)
	if errors.Is(err, repository.ErrSleepLogNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest sleep log: %w", err)
	}
	return log, nil
}

// Start opens a new sleep session. A nil start means now.
func (s *SleepService) Start(ctx context.Context, userID string, start *time.Time) (*model.SleepLog, error) {
	_, err := s.sleepLogRepository.Active(ctx, userID)
	if err == nil {
		return nil, ErrSleepInProgress
	}
	if !errors.Is(err, repository.ErrSleepLogNotFound) {
		return nil, fmt.Errorf("failed to check active sleep: %w", err)
	}

	now := s.now().UTC()
	sleepStart := now
	if start != nil {
		sleepStart = start.UTC()
	}

	log := &model.SleepLog{
		ID:         uuid.New().String(),
		UserID:     userID,
		SleepStart: &sleepStart,
		CreatedAt:  now,
	}

	err = s.sleepLogRepository.Create(ctx, log)
	if errors.Is(err, repository.ErrSleepLogActive) {
		return nil, ErrSleepInProgress
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create sleep log: %w", err)
	}

	slog.Info("sleep started", "user_id", userID, "sleep_log_id", log.ID)
	return log, nil
}

// Update applies a partial update. A wake_end stops the session and derives
// duration_minutes from it.
func (s *SleepService) Update(ctx context.Context, userID, logID string, update model.SleepLogUpdate) (*model.SleepLog, error) {
	if update.IsEmpty() {
		return nil, ErrEmptyUpdate
	}

	log, err := s.sleepLogRepository.ByID(ctx, userID, logID)
	if err != nil {
		return nil, err
	}

	if update.WakeEnd != nil {
		if log.SleepStart == nil {
			return nil, ErrNoActiveSleep
		}
		if log.WakeEnd != nil {
			return nil, ErrSleepAlreadyStopped
		}
		wakeEnd := update.WakeEnd.UTC()
		if wakeEnd.Before(*log.SleepStart) {
			return nil, ErrInvalidWakeTime
		}
		log.Finish(wakeEnd)
	}

	if update.QualityRating != nil {
		err = validation.ValidateQualityRating(*update.QualityRating)
		if err != nil {
			return nil, err
		}
		log.QualityRating = update.QualityRating
	}

	if update.Notes != nil {
		log.Notes = update.Notes
	}

	err = s.sleepLogRepository.Update(ctx, log)
	if err != nil {
		return nil, fmt.Errorf("failed to update sleep log: %w", err)
	}

	if update.WakeEnd != nil {
		slog.Info("sleep stopped", "user_id", userID, "sleep_log_id", log.ID, "duration_minutes", *log.DurationMinutes)
	}
	return log, nil
}

// Stop ends the user's active session at the current time.
func (s *SleepService) Stop(ctx context.Context, userID string) (*model.SleepLog, error) {
	active, err := s.sleepLogRepository.Active(ctx, userID)
	if errors.Is(err, repository.ErrSleepLogNotFound) {
		return nil, ErrNoActiveSleep
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check active sleep: %w", err)
	}

	now := s.now()
	return s.Update(ctx, userID, active.ID, model.SleepLogUpdate{WakeEnd: &now})
}

func (s *SleepService) Delete(ctx context.Context, userID, logID string) error {
	err := s.sleepLogRepository.Delete(ctx, userID, logID)
	if err != nil {
		return err
	}

	slog.Info("sleep log deleted", "user_id", userID, "sleep_log_id", logID)
	return nil
}
