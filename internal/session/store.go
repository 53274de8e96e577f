// Package session holds the CLI's authentication state and tells
// subscribers when it changes.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/templui/nocturne/internal/client"
	"github.com/templui/nocturne/internal/model"
)

var (
	ErrClosed      = errors.New("session store is closed")
	ErrNotSignedIn = errors.New("not signed in")
)

// State is a signed-in session. A nil *State means signed out.
type State struct {
	Token     string         `json:"token"`
	ExpiresAt *time.Time     `json:"expires_at,omitempty"`
	User      *model.User    `json:"user"`
	Profile   *model.Profile `json:"profile"`
}

// Authenticator is the remote session provider. *client.Client implements it.
type Authenticator interface {
	Signup(ctx context.Context, email, password, fullName string) (*client.Session, error)
	Login(ctx context.Context, email, password string) (*client.Session, error)
	Logout(ctx context.Context) error
	Session(ctx context.Context) (*client.Session, error)
	UpdateProfile(ctx context.Context, update model.ProfileUpdate) (*model.Profile, error)
	DeleteAccount(ctx context.Context) error
	SetToken(token string)
}

// Persister keeps the state between CLI runs.
type Persister interface {
	Load() (*State, error)
	Save(state *State) error
	Clear() error
}

type subscriber struct {
	id int
	fn func(*State)
}

// Store owns the session state. Every change is delivered once to each
// subscriber, in the order the changes happened.
type Store struct {
	auth    Authenticator
	persist Persister

	// notifyMu serializes change+notify so subscribers see changes in order
	notifyMu sync.Mutex

	mu          sync.Mutex
	state       *State
	subscribers []subscriber
	nextID      int
	initialized bool
	closed      bool
}

func NewStore(auth Authenticator, persist Persister) *Store {
	return &Store{
		auth:    auth,
		persist: persist,
	}
}

// Init restores the persisted session and confirms it with the server. A
// token the server rejects signs the user out; other failures keep the
// stored session and are returned.
func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.mu.Unlock()

	state, err := s.persist.Load()
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	if state == nil || state.Token == "" {
		s.setState(nil)
		return nil
	}

	s.auth.SetToken(state.Token)

	current, err := s.auth.Session(ctx)
	if errors.Is(err, client.ErrUnauthorized) {
		slog.Info("stored session expired")
		s.auth.SetToken("")
		clearErr := s.persist.Clear()
		if clearErr != nil {
			slog.Warn("failed to clear session file", "error", clearErr)
		}
		s.setState(nil)
		return nil
	}
	if err != nil {
		s.setState(state)
		return fmt.Errorf("failed to verify session: %w", err)
	}

	state.User = current.User
	state.Profile = current.Profile
	return s.commit(state)
}

// Close drops all subscribers. The store cannot be used afterwards.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.subscribers = nil
	return nil
}

// Subscribe registers fn for session changes and returns a function that
// removes it. Subscribing after Init immediately delivers the current state.
// fn runs synchronously and must not call Subscribe.
func (s *Store) Subscribe(fn func(*State)) (unsubscribe func()) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return func() {}
	}
	s.nextID++
	id := s.nextID
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})
	initialized := s.initialized
	current := s.state
	s.mu.Unlock()

	if initialized {
		fn(current)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.subscribers {
				if sub.id == id {
					s.subscribers = append(s.subscribers[:i:i], s.subscribers[i+1:]...)
					return
				}
			}
		})
	}
}

// State returns the current session, or nil when signed out.
func (s *Store) State() *State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// User returns the signed-in user or ErrNotSignedIn.
func (s *Store) User() (*model.User, error) {
	state := s.State()
	if state == nil {
		return nil, ErrNotSignedIn
	}
	return state.User, nil
}

func (s *Store) SignIn(ctx context.Context, email, password string) (*State, error) {
	err := s.checkOpen()
	if err != nil {
		return nil, err
	}

	sess, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	state := fromSession(sess)
	return state, s.commit(state)
}

func (s *Store) SignUp(ctx context.Context, email, password, fullName string) (*State, error) {
	err := s.checkOpen()
	if err != nil {
		return nil, err
	}

	sess, err := s.auth.Signup(ctx, email, password, fullName)
	if err != nil {
		return nil, err
	}

	state := fromSession(sess)
	return state, s.commit(state)
}

// SignOut forgets the local session even if the server call fails.
func (s *Store) SignOut(ctx context.Context) error {
	err := s.checkOpen()
	if err != nil {
		return err
	}

	logoutErr := s.auth.Logout(ctx)
	if logoutErr != nil {
		slog.Warn("server logout failed", "error", logoutErr)
	}

	err = s.persist.Clear()
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	s.setState(nil)
	return nil
}

// DeleteAccount removes the account on the server and then signs out
// locally. A failed server call leaves the session in place.
func (s *Store) DeleteAccount(ctx context.Context) error {
	err := s.checkOpen()
	if err != nil {
		return err
	}

	if s.State() == nil {
		return ErrNotSignedIn
	}

	err = s.auth.DeleteAccount(ctx)
	if err != nil {
		return err
	}

	err = s.persist.Clear()
	s.setState(nil)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// UpdateProfile applies a partial profile update and refreshes the session.
func (s *Store) UpdateProfile(ctx context.Context, update model.ProfileUpdate) (*model.Profile, error) {
	err := s.checkOpen()
	if err != nil {
		return nil, err
	}

	current := s.State()
	if current == nil {
		return nil, ErrNotSignedIn
	}

	profile, err := s.auth.UpdateProfile(ctx, update)
	if err != nil {
		return nil, err
	}

	next := *current
	next.Profile = profile
	return profile, s.commit(&next)
}

func (s *Store) checkOpen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	return nil
}

// commit persists state and publishes it.
func (s *Store) commit(state *State) error {
	err := s.persist.Save(state)
	s.setState(state)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *Store) setState(state *State) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	s.state = state
	s.initialized = true
	subscribers := make([]subscriber, len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.mu.Unlock()

	for _, sub := range subscribers {
		sub.fn(state)
	}
}

func fromSession(sess *client.Session) *State {
	return &State{
		Token:     sess.Token,
		ExpiresAt: sess.ExpiresAt,
		User:      sess.User,
		Profile:   sess.Profile,
	}
}
