package tracker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/nocturne/internal/model"
)

func newSleepController(store *fakeSleepStore, now *time.Time) *SleepController {
	c := NewSleepController(store)
	c.now = func() time.Time { return *now }
	return c
}

func TestSleepController_StartStop(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	store := &fakeSleepStore{}
	c := newSleepController(store, &now)

	started, err := c.Start(ctx)
	require.NoError(t, err)
	assert.Equal(t, started, c.Active())
	assert.Equal(t, now, *started.SleepStart)
	require.Len(t, c.Logs(), 1)

	now = now.Add(90 * time.Minute)
	stopped, err := c.Stop(ctx)
	require.NoError(t, err)

	assert.Nil(t, c.Active())
	require.NotNil(t, stopped.WakeEnd)
	assert.Equal(t, time.Date(2025, 3, 2, 1, 30, 0, 0, time.UTC), *stopped.WakeEnd)
	require.NotNil(t, stopped.DurationMinutes)
	assert.Equal(t, 90, *stopped.DurationMinutes)

	logs := c.Logs()
	require.Len(t, logs, 1)
	assert.Equal(t, started.ID, logs[0].ID)
	assert.False(t, logs[0].IsActive())
}

func TestSleepController_StartPrependsLog(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 22, 0, 0, 0, time.UTC)
	c := newSleepController(&fakeSleepStore{}, &now)

	first, err := c.Start(ctx)
	require.NoError(t, err)
	now = now.Add(8 * time.Hour)
	_, err = c.Stop(ctx)
	require.NoError(t, err)

	now = now.Add(14 * time.Hour)
	second, err := c.Start(ctx)
	require.NoError(t, err)

	logs := c.Logs()
	require.Len(t, logs, 2)
	assert.Equal(t, second.ID, logs[0].ID)
	assert.Equal(t, first.ID, logs[1].ID)
}

func TestSleepController_Guards(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 22, 0, 0, 0, time.UTC)
	store := &fakeSleepStore{}
	c := newSleepController(store, &now)

	_, err := c.Stop(ctx)
	assert.ErrorIs(t, err, ErrNoActiveSleep)

	_, err = c.Start(ctx)
	require.NoError(t, err)
	calls := store.calls

	_, err = c.Start(ctx)
	assert.ErrorIs(t, err, ErrSleepInProgress)
	assert.Equal(t, calls, store.calls, "no remote call while sleeping")
	assert.Len(t, c.Logs(), 1)
}

func TestSleepController_ConcurrentStartsCreateOneSession(t *testing.T) {
	now := time.Date(2025, 3, 1, 22, 0, 0, 0, time.UTC)
	store := &fakeSleepStore{}
	c := newSleepController(store, &now)

	var wg sync.WaitGroup
	var succeeded atomic.Int32
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Start(context.Background())
			if err == nil {
				succeeded.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), succeeded.Load())
	assert.Len(t, store.logs, 1)
}

func TestSleepController_Delete(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 22, 0, 0, 0, time.UTC)

	t.Run("deleting the active session clears it", func(t *testing.T) {
		c := newSleepController(&fakeSleepStore{}, &now)
		active, err := c.Start(ctx)
		require.NoError(t, err)

		require.NoError(t, c.Delete(ctx, active.ID))

		assert.Nil(t, c.Active())
		assert.Empty(t, c.Logs())
	})

	t.Run("deleting another log keeps the active session", func(t *testing.T) {
		c := newSleepController(&fakeSleepStore{}, &now)
		old, err := c.Start(ctx)
		require.NoError(t, err)
		_, err = c.Stop(ctx)
		require.NoError(t, err)
		active, err := c.Start(ctx)
		require.NoError(t, err)

		require.NoError(t, c.Delete(ctx, old.ID))

		assert.Equal(t, active, c.Active())
		require.Len(t, c.Logs(), 1)
		assert.Equal(t, active.ID, c.Logs()[0].ID)
	})
}

func TestSleepController_Load(t *testing.T) {
	start := time.Date(2025, 3, 1, 22, 0, 0, 0, time.UTC)
	end := start.Add(8 * time.Hour)

	t.Run("active head", func(t *testing.T) {
		store := &fakeSleepStore{logs: []*model.SleepLog{
			{ID: "s2", SleepStart: &end},
			{ID: "s1", SleepStart: &start, WakeEnd: &end},
		}}
		c := NewSleepController(store)

		require.NoError(t, c.Load(context.Background()))

		require.NotNil(t, c.Active())
		assert.Equal(t, "s2", c.Active().ID)
		assert.Len(t, c.Logs(), 2)
	})

	t.Run("finished head", func(t *testing.T) {
		store := &fakeSleepStore{logs: []*model.SleepLog{
			{ID: "s1", SleepStart: &start, WakeEnd: &end},
		}}
		c := NewSleepController(store)

		require.NoError(t, c.Load(context.Background()))

		assert.Nil(t, c.Active())
	})
}

func TestSleepController_FailureLeavesCacheUnchanged(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 22, 0, 0, 0, time.UTC)
	store := &fakeSleepStore{}
	c := newSleepController(store, &now)

	active, err := c.Start(ctx)
	require.NoError(t, err)
	before := c.Logs()

	store.err = errRemote

	_, err = c.Stop(ctx)
	assert.ErrorIs(t, err, errRemote)
	assert.Equal(t, active, c.Active())

	err = c.Delete(ctx, active.ID)
	assert.ErrorIs(t, err, errRemote)
	assert.Equal(t, before, c.Logs())

	err = c.Load(ctx)
	assert.ErrorIs(t, err, errRemote)
	assert.Equal(t, before, c.Logs())
	assert.Equal(t, active, c.Active())
}
