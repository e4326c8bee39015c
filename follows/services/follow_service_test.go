// Copyright (c) 2025 Wisp Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"testing"
	"time"

	uuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wisp-social/wisp/internal/apierr"
	usersErrors "github.com/wisp-social/wisp/users/errors"
	usersModels "github.com/wisp-social/wisp/users/models"
	usersServices "github.com/wisp-social/wisp/users/services"
)

func existingUser(id uuid.UUID) *usersModels.User {
	return &usersModels.User{
		ID:          id,
		DisplayName: "bob",
		CreatedAt:   time.Now().UTC(),
	}
}

func TestFollowService_Follow(t *testing.T) {
	ctx := context.Background()
	followerID := uuid.Must(uuid.NewV4())
	followeeID := uuid.Must(uuid.NewV4())

	t.Run("follow inserts the edge", func(t *testing.T) {
		followRepo := new(MockFollowRepository)
		userRepo := new(usersServices.MockUserRepository)
		service := NewFollowService(followRepo, userRepo)

		userRepo.On("FindByID", ctx, followeeID).Return(existingUser(followeeID), nil)
		followRepo.On("Add", ctx, followerID, followeeID).Return(true, nil)

		require.NoError(t, service.Follow(ctx, followerID, followeeID))
		followRepo.AssertExpectations(t)
	})

	t.Run("re-follow is idempotent success", func(t *testing.T) {
		followRepo := new(MockFollowRepository)
		userRepo := new(usersServices.MockUserRepository)
		service := NewFollowService(followRepo, userRepo)

		userRepo.On("FindByID", ctx, followeeID).Return(existingUser(followeeID), nil)
		followRepo.On("Add", ctx, followerID, followeeID).Return(false, nil)

		require.NoError(t, service.Follow(ctx, followerID, followeeID))
	})

	t.Run("self-follow is invalid", func(t *testing.T) {
		followRepo := new(MockFollowRepository)
		userRepo := new(usersServices.MockUserRepository)
		service := NewFollowService(followRepo, userRepo)

		err := service.Follow(ctx, followerID, followerID)
		require.Error(t, err)
		assert.Equal(t, apierr.KindInvalidInput, apierr.KindOf(err))
		followRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown followee is not found", func(t *testing.T) {
		followRepo := new(MockFollowRepository)
		userRepo := new(usersServices.MockUserRepository)
		service := NewFollowService(followRepo, userRepo)

		userRepo.On("FindByID", ctx, followeeID).Return(nil, usersErrors.ErrUserNotFound)

		err := service.Follow(ctx, followerID, followeeID)
		require.Error(t, err)
		assert.Equal(t, apierr.KindNotFound, apierr.KindOf(err))
	})

	t.Run("unfollow without an edge is idempotent success", func(t *testing.T) {
		followRepo := new(MockFollowRepository)
		userRepo := new(usersServices.MockUserRepository)
		service := NewFollowService(followRepo, userRepo)

		userRepo.On("FindByID", ctx, followeeID).Return(existingUser(followeeID), nil)
		followRepo.On("Remove", ctx, followerID, followeeID).Return(false, nil)

		require.NoError(t, service.Unfollow(ctx, followerID, followeeID))
	})
}

func TestFollowService_IsFriend(t *testing.T) {
	ctx := context.Background()
	a := uuid.Must(uuid.NewV4())
	b := uuid.Must(uuid.NewV4())

	t.Run("mutual edges make friends", func(t *testing.T) {
		followRepo := new(MockFollowRepository)
		service := NewFollowService(followRepo, new(usersServices.MockUserRepository))

		followRepo.On("AreMutual", ctx, a, b).Return(true, nil)

		friend, err := service.IsFriend(ctx, a, b)
		require.NoError(t, err)
		assert.True(t, friend)
	})

	t.Run("one-way follow is not friendship", func(t *testing.T) {
		followRepo := new(MockFollowRepository)
		service := NewFollowService(followRepo, new(usersServices.MockUserRepository))

		followRepo.On("AreMutual", ctx, a, b).Return(false, nil)

		friend, err := service.IsFriend(ctx, a, b)
		require.NoError(t, err)
		assert.False(t, friend)
	})
}

func TestFollowService_Counts(t *testing.T) {
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())

	followRepo := new(MockFollowRepository)
	service := NewFollowService(followRepo, new(usersServices.MockUserRepository))

	followRepo.On("CountFollowers", ctx, userID).Return(int64(3), nil)
	followRepo.On("CountFollowing", ctx, userID).Return(int64(7), nil)

	followers, following, err := service.Counts(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), followers)
	assert.Equal(t, int64(7), following)
}
