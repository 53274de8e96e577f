package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/templui/nocturne/internal/model"
	"github.com/templui/nocturne/internal/storage"
	"github.com/templui/nocturne/internal/validation"
)

var ErrStorageUnavailable = errors.New("avatar storage is not configured")

// AvatarService stores profile pictures. Storage may be nil, in which case
// uploads are refused with ErrStorageUnavailable.
type AvatarService struct {
	storage        storage.Storage
	profileService *ProfileService
}

func NewAvatarService(storage storage.Storage, profileService *ProfileService) *AvatarService {
	return &AvatarService{
		storage:        storage,
		profileService: profileService,
	}
}

func (s *AvatarService) Enabled() bool {
	return s.storage != nil
}

// Upload validates and stores the image, points avatar_url at it and removes
// the previous upload.
func (s *AvatarService) Upload(ctx context.Context, userID string, file multipart.File, header *multipart.FileHeader) (*model.Profile, error) {
	if !s.Enabled() {
		return nil, ErrStorageUnavailable
	}

	err := validation.ValidateFile(header, validation.ImageConstraints)
	if err != nil {
		return nil, err
	}

	previous, err := s.profileService.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	storagePath := path.Join("public", "avatars", userID, uuid.New().String()+ext)

	err = s.storage.Save(ctx, storagePath, file, header.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("failed to save avatar: %w", err)
	}

	avatarURL := s.storage.URL(storagePath)
	profile, err := s.profileService.Update(ctx, userID, model.ProfileUpdate{AvatarURL: &avatarURL})
	if err != nil {
		delErr := s.storage.Delete(ctx, storagePath)
		if delErr != nil {
			slog.Error("failed to delete avatar from storage during cleanup", "error", delErr, "path", storagePath)
		}
		return nil, err
	}

	s.deleteStored(ctx, previous.AvatarURL)

	slog.Info("avatar uploaded", "user_id", userID, "path", storagePath)
	return profile, nil
}

// Remove clears avatar_url and deletes the stored image if we own it.
func (s *AvatarService) Remove(ctx context.Context, userID string) (*model.Profile, error) {
	profile, err := s.profileService.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile.AvatarURL == nil {
		return profile, nil
	}

	err = s.profileService.profileRepository.ClearAvatar(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to clear avatar: %w", err)
	}

	s.deleteStored(ctx, profile.AvatarURL)

	slog.Info("avatar removed", "user_id", userID)
	return s.profileService.Profile(ctx, userID)
}

// deleteStored is best effort; orphaned objects are preferable to a failed request.
func (s *AvatarService) deleteStored(ctx context.Context, avatarURL *string) {
	if s.storage == nil || avatarURL == nil {
		return
	}

	storagePath, ok := s.storage.Path(*avatarURL)
	if !ok {
		return
	}

	err := s.storage.Delete(ctx, storagePath)
	if err != nil {
		slog.Warn("failed to delete avatar from storage", "path", storagePath, "error", err)
	}
}
