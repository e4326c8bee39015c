// Copyright (c) 2025 Wisp Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	uuid "github.com/gofrs/uuid"
	"github.com/wisp-social/wisp/internal/apierr"
	usersErrors "github.com/wisp-social/wisp/users/errors"
	"github.com/wisp-social/wisp/users/models"
	"github.com/wisp-social/wisp/users/repository"
	"github.com/wisp-social/wisp/users/validation"
)

// UserService manages local accounts.
type UserService interface {
	// EnsureBySubject returns the account for an external subject, creating it
	// on first contact. Idempotent under concurrent calls for the same subject.
	EnsureBySubject(ctx context.Context, subject string) (*models.User, error)

	// GetByID retrieves an account.
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// UpdateProfile applies the mutable profile fields for the caller's own
	// account and returns the updated row.
	UpdateProfile(ctx context.Context, callerID uuid.UUID, req *models.UpdateProfileRequest) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService wires the user service with its repository.
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) EnsureBySubject(ctx context.Context, subject string) (*models.User, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return nil, apierr.Invalid("external subject is required")
	}

	user, err := s.userRepo.FindBySubject(ctx, subject)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, usersErrors.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user ID: %w", err)
	}

	user = &models.User{
		ID:              id,
		ExternalSubject: subject,
		DisplayName:     defaultDisplayName(subject),
		ProfilePublic:   true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// A concurrent request created the row between our lookup and insert.
		// The caller's intent is idempotent, so re-read and return that row.
		if errors.Is(err, usersErrors.ErrDuplicateSubject) {
			return s.userRepo.FindBySubject(ctx, subject)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.userRepo.FindBySubject(ctx, subject)
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, usersErrors.ErrUserNotFound) {
			return nil, apierr.NotFound("user")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, callerID uuid.UUID, req *models.UpdateProfileRequest) (*models.User, error) {
	if req == nil {
		return nil, apierr.Invalid("update profile request is required")
	}

	current, err := s.userRepo.FindByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, usersErrors.ErrUserNotFound) {
			return nil, apierr.NotFound("user")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	displayName := current.DisplayName
	if req.DisplayName != nil {
		displayName = strings.TrimSpace(*req.DisplayName)
	}
	bio := current.Bio
	if req.Bio != nil {
		bio = *req.Bio
	}

	if err := validation.ValidateProfile(displayName, bio); err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateProfile(ctx, callerID, displayName, bio); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return s.userRepo.FindByID(ctx, callerID)
}

// defaultDisplayName derives an initial display name from the subject. The
// subject is opaque, so only its tail is used when it looks path-like.
func defaultDisplayName(subject string) string {
	if idx := strings.LastIndexAny(subject, "/|:"); idx >= 0 && idx+1 < len(subject) {
		subject = subject[idx+1:]
	}
	if len(subject) > 32 {
		subject = subject[:32]
	}
	return subject
}
