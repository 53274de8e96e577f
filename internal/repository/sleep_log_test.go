package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/nocturne/internal/model"
)

func TestSleepLogRepository_OneActivePerUser(t *testing.T) {
	conn := setupDB(t)
	createUser(t, conn, "u1")
	repo := NewSleepLogRepository(conn)
	ctx := context.Background()

	start := time.Date(2025, 3, 1, 22, 0, 0, 0, time.UTC)
	first := &model.SleepLog{ID: "s1", UserID: "u1", SleepStart: &start, CreatedAt: start}
	require.NoError(t, repo.Create(ctx, first))

	second := &model.SleepLog{ID: "s2", UserID: "u1", SleepStart: &start, CreatedAt: start.Add(time.Minute)}
	assert.ErrorIs(t, repo.Create(ctx, second), ErrSleepLogActive)

	active, err := repo.Active(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "s1", active.ID)
	assert.True(t, active.IsActive())
}

func TestSleepLogRepository_FinishAndList(t *testing.T) {
	conn := setupDB(t)
	createUser(t, conn, "u1")
	repo := NewSleepLogRepository(conn)
	ctx := context.Background()

	start := time.Date(2025, 3, 1, 22, 0, 0, 0, time.UTC)
	log := &model.SleepLog{ID: "s1", UserID: "u1", SleepStart: &start, CreatedAt: start}
	require.NoError(t, repo.Create(ctx, log))

	log.Finish(start.Add(90 * time.Minute))
	require.NoError(t, repo.Update(ctx, log))

	_, err := repo.Active(ctx, "u1")
	assert.ErrorIs(t, err, ErrSleepLogNotFound)

	next := start.Add(24 * time.Hour)
	require.NoError(t, repo.Create(ctx, &model.SleepLog{ID: "s2", UserID: "u1", SleepStart: &next, CreatedAt: next}))

	logs, err := repo.SleepLogs(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "s2", logs[0].ID, "newest first")
	assert.Equal(t, "s1", logs[1].ID)
	require.NotNil(t, logs[1].DurationMinutes)
	assert.Equal(t, 90, *logs[1].DurationMinutes)

	latest, err := repo.Latest(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "s2", latest.ID)
}

func TestSleepLogRepository_ScopedToUser(t *testing.T) {
	conn := setupDB(t)
	createUser(t, conn, "u1")
	createUser(t, conn, "u2")
	repo := NewSleepLogRepository(conn)
	ctx := context.Background()

	start := time.Date(2025, 3, 1, 22, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, &model.SleepLog{ID: "s1", UserID: "u1", SleepStart: &start, CreatedAt: start}))

	_, err := repo.ByID(ctx, "u2", "s1")
	assert.ErrorIs(t, err, ErrSleepLogNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "u2", "s1"), ErrSleepLogNotFound)

	require.NoError(t, repo.Delete(ctx, "u1", "s1"))
	_, err = repo.ByID(ctx, "u1", "s1")
	assert.ErrorIs(t, err, ErrSleepLogNotFound)
}
