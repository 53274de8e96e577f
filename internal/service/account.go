package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/templui/nocturne/internal/repository"
	"github.com/templui/nocturne/internal/validation"
)

var ErrInvalidCurrentPassword = errors.New("current password is incorrect")

// AccountService manages the account itself: its password and its removal.
type AccountService struct {
	userRepository repository.UserRepository
	authService    *AuthService
	profileService *ProfileService
	avatarService  *AvatarService
	emailService   *EmailService
}

func NewAccountService(
	userRepository repository.UserRepository,
	authService *AuthService,
	profileService *ProfileService,
	avatarService *AvatarService,
	emailService *EmailService,
) *AccountService {
	return &AccountService{
		userRepository: userRepository,
		authService:    authService,
		profileService: profileService,
		avatarService:  avatarService,
		emailService:   emailService,
	}
}

func (s *AccountService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.userRepository.ByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if !user.HasPassword() {
		return ErrPasswordlessAccount
	}

	err = s.authService.ComparePassword(currentPassword, *user.PasswordHash)
	if err != nil {
		return ErrInvalidCurrentPassword
	}

	err = validation.ValidatePassword(newPassword)
	if err != nil {
		return err
	}

	hash, err := s.authService.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	err = s.userRepository.UpdatePassword(ctx, userID, hash)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	slog.Info("password changed", "user_id", userID)
	return nil
}

// DeleteAccount removes the user with everything they logged. The stored
// avatar and the goodbye email are best effort.
func (s *AccountService) DeleteAccount(ctx context.Context, userID string) error {
	user, err := s.userRepository.ByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	profile, err := s.profileService.profileRepository.ByID(ctx, userID)
	if err != nil {
		slog.Warn("failed to get profile for account deletion", "user_id", userID, "error", err)
	}

	err = s.userRepository.Delete(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if profile != nil {
		s.avatarService.deleteStored(ctx, profile.AvatarURL)
	}

	err = s.emailService.SendAccountDeletedEmail(ctx, user.Email, profile.DisplayName())
	if err != nil {
		slog.Warn("failed to send account deleted email", "user_id", userID, "error", err)
	}

	slog.Info("account deleted", "user_id", userID)
	return nil
}
