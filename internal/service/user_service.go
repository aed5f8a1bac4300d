package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MelDxKviel/reels-downloader-bot/internal/config"
	"github.com/MelDxKviel/reels-downloader-bot/internal/domain"
	"github.com/MelDxKviel/reels-downloader-bot/internal/repository"
)

// UserService manages the allow-list and answers access checks. Admins from
// configuration always pass and cannot be locked out through the API.
type UserService struct {
	userRepo repository.UserRepository
	admins   config.AdminConfig
	logger   *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, admins config.AdminConfig, logger *slog.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		admins:   admins,
		logger:   logger,
	}
}

// Allow grants access to a user. Returns true if the user was newly added
// or reactivated.
func (s *UserService) Allow(ctx context.Context, userID int64) (bool, error) {
	added, err := s.userRepo.Add(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("allow user: %w", err)
	}
	if added {
		s.logger.Info("user allowed", "user_id", userID)
	}
	return added, nil
}

// Revoke removes a user's access. Returns true if the user was active.
func (s *UserService) Revoke(ctx context.Context, userID int64) (bool, error) {
	removed, err := s.userRepo.Remove(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("revoke user: %w", err)
	}
	if removed {
		s.logger.Info("user access revoked", "user_id", userID)
	}
	return removed, nil
}

// List returns all known users, newest first.
func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.List(ctx)
}

// HasAccess reports whether the user may submit downloads. Configured
// admins always have access regardless of allow-list state.
func (s *UserService) HasAccess(ctx context.Context, userID int64) (bool, error) {
	if s.admins.IsAdmin(userID) {
		return true, nil
	}
	return s.userRepo.IsAllowed(ctx, userID)
}

// IsAdmin reports whether the user is a configured administrator.
func (s *UserService) IsAdmin(userID int64) bool {
	return s.admins.IsAdmin(userID)
}
