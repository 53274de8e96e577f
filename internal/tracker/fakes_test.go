package tracker

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/templui/nocturne/internal/model"
)

var errRemote = errors.New("remote unavailable")

// fakeSleepStore is an in-memory SleepLogStore. Setting err fails every call.
type fakeSleepStore struct {
	mu    sync.Mutex
	logs  []*model.SleepLog
	err   error
	calls int
	seq   int
}

func (f *fakeSleepStore) SleepLogs(ctx context.Context) ([]*model.SleepLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*model.SleepLog, len(f.logs))
	for i, l := range f.logs {
		c := *l
		out[i] = &c
	}
	return out, nil
}

func (f *fakeSleepStore) StartSleep(ctx context.Context, start *time.Time) (*model.SleepLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	f.seq++
	log := &model.SleepLog{ID: fmt.Sprintf("s%d", f.seq), UserID: "u1", SleepStart: start, CreatedAt: *start}
	f.logs = append([]*model.SleepLog{log}, f.logs...)
	c := *log
	return &c, nil
}

func (f *fakeSleepStore) UpdateSleepLog(ctx context.Context, id string, update model.SleepLogUpdate) (*model.SleepLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	for _, l := range f.logs {
		if l.ID == id {
			if update.WakeEnd != nil {
				l.Finish(*update.WakeEnd)
			}
			c := *l
			return &c, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeSleepStore) DeleteSleepLog(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.logs = slices.DeleteFunc(f.logs, func(l *model.SleepLog) bool { return l.ID == id })
	return nil
}

// fakeNoteStore is an in-memory NoteStore. Setting err fails every call.
type fakeNoteStore struct {
	notes []*model.Note
	err   error
	seq   int
	clock time.Time
}

func (f *fakeNoteStore) Notes(ctx context.Context) ([]*model.Note, error) {
	if f.err != nil {
		return nil, f.err
	}
	return slices.Clone(f.notes), nil
}

func (f *fakeNoteStore) CreateNote(ctx context.Context, input model.NewNote) (*model.Note, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.seq++
	f.clock = f.clock.Add(time.Minute)
	note := &model.Note{
		ID:        fmt.Sprintf("n%d", f.seq),
		Title:     input.Title,
		Content:   input.Content,
		Tags:      input.Tags,
		CreatedAt: f.clock,
	}
	f.notes = append([]*model.Note{note}, f.notes...)
	return note, nil
}

func (f *fakeNoteStore) UpdateNote(ctx context.Context, id string, update model.NoteUpdate) (*model.Note, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, n := range f.notes {
		if n.ID == id {
			c := *n
			if update.IsPinned != nil {
				c.IsPinned = *update.IsPinned
			}
			return &c, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeNoteStore) DeleteNote(ctx context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	f.notes = slices.DeleteFunc(f.notes, func(n *model.Note) bool { return n.ID == id })
	return nil
}
