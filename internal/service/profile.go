package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/templui/nocturne/internal/model"
	"github.com/templui/nocturne/internal/repository"
	"github.com/templui/nocturne/internal/validation"
)

var ErrInvalidAvatarURL = errors.New("avatar url must be an absolute http(s) url")

type ProfileService struct {
	profileRepository repository.ProfileRepository
	userRepository    repository.UserRepository
	now               func() time.Time
}

func NewProfileService(profileRepository repository.ProfileRepository, userRepository repository.UserRepository) *ProfileService {
	return &ProfileService{
		profileRepository: profileRepository,
		userRepository:    userRepository,
		now:               time.Now,
	}
}

// CreateForUser creates the profile that accompanies a new account. The
// username defaults to the local part of the email.
func (s *ProfileService) CreateForUser(ctx context.Context, user *model.User, fullName string) (*model.Profile, error) {
	username := model.UsernameFromEmail(user.Email)
	profile := &model.Profile{
		ID:        user.ID,
		Username:  &username,
		CreatedAt: s.now().UTC(),
	}

	fullName = strings.TrimSpace(fullName)
	if fullName != "" {
		profile.FullName = &fullName
	}

	err := s.profileRepository.Create(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return profile, nil
}

// Profile returns the user's profile. A profile lost at sign-up is
// recreated here.
func (s *ProfileService) Profile(ctx context.Context, userID string) (*model.Profile, error) {
	profile, err := s.profileRepository.ByID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, repository.ErrProfileNotFound) {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	user, err := s.userRepository.ByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	slog.Warn("profile missing, recreating", "user_id", userID)
	return s.CreateForUser(ctx, user, "")
}

// Update applies the non-nil fields of update.
func (s *ProfileService) Update(ctx context.Context, userID string, update model.ProfileUpdate) (*model.Profile, error) {
	if update.IsEmpty() {
		return nil, ErrEmptyUpdate
	}

	if update.FullName != nil {
		name := strings.TrimSpace(*update.FullName)
		err := validation.ValidateName(name)
		if err != nil {
			return nil, err
		}
		update.FullName = &name
	}

	if update.Username != nil {
		username := strings.TrimSpace(*update.Username)
		err := validation.ValidateUsername(username)
		if err != nil {
			return nil, err
		}
		update.Username = &username
	}

	if update.AvatarURL != nil {
		u, err := url.Parse(*update.AvatarURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, ErrInvalidAvatarURL
		}
	}

	_, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepository.Update(ctx, userID, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	slog.Info("profile updated", "user_id", userID)
	return profile, nil
}
