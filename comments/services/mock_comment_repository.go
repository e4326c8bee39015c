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
	"github.com/wisp-social/wisp/comments/models"
	postsModels "github.com/wisp-social/wisp/posts/models"
)

// MockCommentRepository is a testify mock of repository.CommentRepository,
// shared by every service test that needs a comment store.
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListLiveByPost(ctx context.Context, viewerID, postID uuid.UUID, cursor *postsModels.Cursor, limit int) ([]*models.Projection, error) {
	args := m.Called(ctx, viewerID, postID, cursor, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Projection), args.Error(1)
}

func (m *MockCommentRepository) AdjustVoteCounts(ctx context.Context, id uuid.UUID, upDelta, downDelta int) (*models.Comment, error) {
	args := m.Called(ctx, id, upDelta, downDelta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) SetExpiry(ctx context.Context, id uuid.UUID, expiresAt time.Time) error {
	args := m.Called(ctx, id, expiresAt)
	return args.Error(0)
}

func (m *MockCommentRepository) SoftDelete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// WithTransaction executes fn directly when the expectation allows it, so the
// body's repository calls hit the same mock and its error propagates.
func (m *MockCommentRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}
