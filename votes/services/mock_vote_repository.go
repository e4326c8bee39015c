// Copyright (c) 2025 Wisp Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"

	uuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/wisp-social/wisp/votes/models"
)

// MockVoteRepository is a testify mock of repository.VoteRepository.
type MockVoteRepository struct {
	mock.Mock
}

func (m *MockVoteRepository) FindByUserAndComment(ctx context.Context, userID, commentID uuid.UUID) (*models.Vote, error) {
	args := m.Called(ctx, userID, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vote), args.Error(1)
}

func (m *MockVoteRepository) Upsert(ctx context.Context, vote *models.Vote) (bool, int, error) {
	args := m.Called(ctx, vote)
	return args.Bool(0), args.Int(1), args.Error(2)
}

func (m *MockVoteRepository) Delete(ctx context.Context, userID, commentID uuid.UUID) (bool, int, error) {
	args := m.Called(ctx, userID, commentID)
	return args.Bool(0), args.Int(1), args.Error(2)
}
