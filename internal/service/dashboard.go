package service

import (
	"context"
	"time"

	"github.com/templui/nocturne/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Dashboard struct {
	Greeting    string          `json:"greeting"`
	Name        string          `json:"name"`
	LastSleep   *model.SleepLog `json:"last_sleep"`
	PinnedNotes []*model.Note   `json:"pinned_notes"`
}

type DashboardService struct {
	authService    *AuthService
	profileService *ProfileService
	sleepService   *SleepService
	noteService    *NoteService
	now            func() time.Time
}

func NewDashboardService(
	authService *AuthService,
	profileService *ProfileService,
	sleepService *SleepService,
	noteService *NoteService,
) *DashboardService {
	return &DashboardService{
		authService:    authService,
		profileService: profileService,
		sleepService:   sleepService,
		noteService:    noteService,
		now:            time.Now,
	}
}

// Dashboard assembles the overview. loc decides which part of the day the
// greeting refers to.
func (s *DashboardService) Dashboard(ctx context.Context, userID string, loc *time.Location) (*Dashboard, error) {
	if loc == nil {
		loc = time.UTC
	}

	user, err := s.authService.User(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile, err := s.profileService.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	lastSleep, err := s.sleepService.Latest(ctx, userID)
	if err != nil {
		return nil, err
	}

	pinned, err := s.noteService.Pinned(ctx, userID, DefaultPinnedLimit)
	if err != nil {
		return nil, err
	}

	name := profile.DisplayName()
	if name == "" {
		name = model.UsernameFromEmail(user.Email)
	}

	return &Dashboard{
		Greeting:    Greeting(s.now().In(loc)),
		Name:        cases.Title(language.English).String(name),
		LastSleep:   lastSleep,
		PinnedNotes: pinned,
	}, nil
}

// Greeting picks the salutation for the hour of t.
func Greeting(t time.Time) string {
	switch hour := t.Hour(); {
	case hour < 12:
		return "Good Morning"
	case hour < 18:
		return "Good Afternoon"
	default:
		return "Good Evening"
	}
}
