// Package tracker holds the client-side state for sleep sessions and notes.
// Controllers cache what the server returned and only change the cache after
// a remote call succeeds.
package tracker

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/templui/nocturne/internal/model"
)

var (
	ErrSleepInProgress = errors.New("a sleep session is already in progress")
	ErrNoActiveSleep   = errors.New("no active sleep session")
)

// SleepLogStore is the remote sleep log collection. *client.Client
// implements it.
type SleepLogStore interface {
	SleepLogs(ctx context.Context) ([]*model.SleepLog, error)
	StartSleep(ctx context.Context, start *time.Time) (*model.SleepLog, error)
	UpdateSleepLog(ctx context.Context, id string, update model.SleepLogUpdate) (*model.SleepLog, error)
	DeleteSleepLog(ctx context.Context, id string) error
}

// SleepController drives the Idle -> Sleeping -> Idle lifecycle.
type SleepController struct {
	store SleepLogStore
	now   func() time.Time

	mu     sync.Mutex
	logs   []*model.SleepLog
	active *model.SleepLog
}

func NewSleepController(store SleepLogStore) *SleepController {
	return &SleepController{
		store: store,
		now:   time.Now,
	}
}

// Load replaces the cache with the remote logs, newest first. The head is
// the active session when it has not been stopped.
func (c *SleepController) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	logs, err := c.store.SleepLogs(ctx)
	if err != nil {
		return err
	}

	c.logs = logs
	c.active = nil
	if len(logs) > 0 && logs[0].IsActive() {
		c.active = logs[0]
	}
	return nil
}

// Start opens a session now.
func (c *SleepController) Start(ctx context.Context) (*model.SleepLog, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active != nil {
		return nil, ErrSleepInProgress
	}

	now := c.now().UTC()
	log, err := c.store.StartSleep(ctx, &now)
	if err != nil {
		return nil, err
	}

	c.logs = append([]*model.SleepLog{log}, c.logs...)
	c.active = log
	return log, nil
}

// Stop ends the active session now and replaces it in the list.
func (c *SleepController) Stop(ctx context.Context) (*model.SleepLog, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active == nil {
		return nil, ErrNoActiveSleep
	}

	now := c.now().UTC()
	log, err := c.store.UpdateSleepLog(ctx, c.active.ID, model.SleepLogUpdate{WakeEnd: &now})
	if err != nil {
		return nil, err
	}

	c.replace(log)
	c.active = nil
	return log, nil
}

// Delete removes a log; deleting the active one returns to Idle.
func (c *SleepController) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.store.DeleteSleepLog(ctx, id)
	if err != nil {
		return err
	}

	c.logs = slices.DeleteFunc(c.logs, func(l *model.SleepLog) bool { return l.ID == id })
	if c.active != nil && c.active.ID == id {
		c.active = nil
	}
	return nil
}

func (c *SleepController) Logs() []*model.SleepLog {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.logs)
}

// Active returns the in-progress session, or nil.
func (c *SleepController) Active() *model.SleepLog {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

func (c *SleepController) replace(log *model.SleepLog) {
	i := slices.IndexFunc(c.logs, func(l *model.SleepLog) bool { return l.ID == log.ID })
	if i >= 0 {
		c.logs[i] = log
	}
}
