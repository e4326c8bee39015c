// Copyright (c) 2025 Wisp Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"errors"
	"fmt"

	uuid "github.com/gofrs/uuid"
	"github.com/wisp-social/wisp/follows/repository"
	"github.com/wisp-social/wisp/internal/apierr"
	usersErrors "github.com/wisp-social/wisp/users/errors"
	usersRepository "github.com/wisp-social/wisp/users/repository"
)

// FollowService defines the interface for follow operations
type FollowService interface {
	// Follow records follower→followee idempotently.
	Follow(ctx context.Context, followerID, followeeID uuid.UUID) error

	// Unfollow removes follower→followee idempotently.
	Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) error

	// IsFriend reports whether both directed edges exist; the membership test
	// behind friends-only visibility.
	IsFriend(ctx context.Context, a, b uuid.UUID) (bool, error)

	// Counts returns (followers, following) for a user, computed by query.
	Counts(ctx context.Context, userID uuid.UUID) (int64, int64, error)

	// Follows reports whether the single directed edge a→b exists.
	Follows(ctx context.Context, a, b uuid.UUID) (bool, error)
}

type followService struct {
	followRepo repository.FollowRepository
	userRepo   usersRepository.UserRepository
}

// NewFollowService wires the follow service with its dependencies.
func NewFollowService(followRepo repository.FollowRepository, userRepo usersRepository.UserRepository) FollowService {
	return &followService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

func (s *followService) Follow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	if followerID == followeeID {
		return apierr.Invalid("cannot follow yourself")
	}

	if err := s.ensureUserExists(ctx, followeeID); err != nil {
		return err
	}

	if _, err := s.followRepo.Add(ctx, followerID, followeeID); err != nil {
		return fmt.Errorf("failed to follow: %w", err)
	}
	return nil
}

func (s *followService) Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	if followerID == followeeID {
		return apierr.Invalid("cannot unfollow yourself")
	}

	if err := s.ensureUserExists(ctx, followeeID); err != nil {
		return err
	}

	if _, err := s.followRepo.Remove(ctx, followerID, followeeID); err != nil {
		return fmt.Errorf("failed to unfollow: %w", err)
	}
	return nil
}

func (s *followService) IsFriend(ctx context.Context, a, b uuid.UUID) (bool, error) {
	return s.followRepo.AreMutual(ctx, a, b)
}

func (s *followService) Counts(ctx context.Context, userID uuid.UUID) (int64, int64, error) {
	followers, err := s.followRepo.CountFollowers(ctx, userID)
	if err != nil {
		return 0, 0, err
	}

	following, err := s.followRepo.CountFollowing(ctx, userID)
	if err != nil {
		return 0, 0, err
	}

	return followers, following, nil
}

func (s *followService) Follows(ctx context.Context, a, b uuid.UUID) (bool, error) {
	return s.followRepo.Exists(ctx, a, b)
}

func (s *followService) ensureUserExists(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, usersErrors.ErrUserNotFound) {
			return apierr.NotFound("user")
		}
		return fmt.Errorf("failed to find user: %w", err)
	}
	return nil
}
