package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/templui/nocturne/internal/db"
	"github.com/templui/nocturne/internal/model"
	"github.com/templui/nocturne/internal/repository"
)

type testServices struct {
	auth      *AuthService
	profile   *ProfileService
	sleep     *SleepService
	note      *NoteService
	dashboard *DashboardService
	account   *AccountService
	clock     *testClock
}

// testClock is a settable time source shared by all services under test.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func setupServices(t *testing.T) *testServices {
	t.Helper()

	conn, err := db.Init("sqlite", filepath.Join(t.TempDir(), "test.db")+"?_pragma=foreign_keys(1)&_time_format=sqlite")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, db.RunMigrations(conn.DB, "sqlite"))

	clock := &testClock{now: time.Date(2025, 3, 1, 22, 0, 0, 0, time.UTC)}

	userRepo := repository.NewUserRepository(conn)
	profileService := NewProfileService(repository.NewProfileRepository(conn), userRepo)
	profileService.now = clock.Now
	emailService := NewEmailService("", "noreply@example.com", "http://localhost:8090", "Nocturne", true)

	authService := NewAuthService(userRepo, profileService, emailService, "test-secret", time.Hour, false)
	authService.now = clock.Now

	sleepService := NewSleepService(repository.NewSleepLogRepository(conn))
	sleepService.now = clock.Now

	noteService := NewNoteService(repository.NewNoteRepository(conn))
	noteService.now = clock.Now

	dashboardService := NewDashboardService(authService, profileService, sleepService, noteService)
	dashboardService.now = clock.Now

	avatarService := NewAvatarService(nil, profileService)
	accountService := NewAccountService(userRepo, authService, profileService, avatarService, emailService)

	return &testServices{
		auth:      authService,
		profile:   profileService,
		sleep:     sleepService,
		note:      noteService,
		dashboard: dashboardService,
		account:   accountService,
		clock:     clock,
	}
}

func (s *testServices) signup(t *testing.T, email string) *model.User {
	t.Helper()
	user, err := s.auth.Signup(context.Background(), email, "night-owl-42", "")
	require.NoError(t, err)
	return user
}

func ptr[T any](v T) *T {
	return &v
}
