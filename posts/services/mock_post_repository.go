// Copyright (c) 2025 Wisp Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"time"

	uuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/wisp-social/wisp/posts/models"
)

// MockPostRepository is a testify mock of repository.PostRepository, shared by
// every service test that needs a post store.
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) FindByIDForViewer(ctx context.Context, viewerID, postID uuid.UUID) (*models.Projection, error) {
	args := m.Called(ctx, viewerID, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Projection), args.Error(1)
}

func (m *MockPostRepository) FeedForViewer(ctx context.Context, viewerID uuid.UUID, authorID *uuid.UUID, cursor *models.Cursor, limit int) ([]*models.Projection, error) {
	args := m.Called(ctx, viewerID, authorID, cursor, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Projection), args.Error(1)
}

func (m *MockPostRepository) SoftDelete(ctx context.Context, postID uuid.UUID) (bool, error) {
	args := m.Called(ctx, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostRepository) InsertLike(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostRepository) DeleteLike(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostRepository) IncrementLikeCount(ctx context.Context, postID uuid.UUID, delta int) error {
	args := m.Called(ctx, postID, delta)
	return args.Error(0)
}

func (m *MockPostRepository) GetLikeCount(ctx context.Context, postID uuid.UUID) (int64, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPostRepository) InsertViewIfAbsent(ctx context.Context, userID, postID uuid.UUID, window time.Duration) (bool, error) {
	args := m.Called(ctx, userID, postID, window)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostRepository) IncrementViewCount(ctx context.Context, postID uuid.UUID) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

func (m *MockPostRepository) IncrementCommentCount(ctx context.Context, postID uuid.UUID, delta int) error {
	args := m.Called(ctx, postID, delta)
	return args.Error(0)
}

func (m *MockPostRepository) CountLiveByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	args := m.Called(ctx, authorID)
	return args.Get(0).(int64), args.Error(1)
}

// WithTransaction executes fn directly when the expectation allows it, so the
// body's repository calls hit the same mock and its error propagates.
func (m *MockPostRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}
