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
	commentsErrors "github.com/wisp-social/wisp/comments/errors"
	commentsModels "github.com/wisp-social/wisp/comments/models"
	commentsServices "github.com/wisp-social/wisp/comments/services"
	"github.com/wisp-social/wisp/internal/apierr"
	"github.com/wisp-social/wisp/lifecycle"
	postsServices "github.com/wisp-social/wisp/posts/services"
	votesErrors "github.com/wisp-social/wisp/votes/errors"
	"github.com/wisp-social/wisp/votes/models"
)

func newComment(postID uuid.UUID, upvotes, downvotes int64, softDeleted bool) *commentsModels.Comment {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return &commentsModels.Comment{
		ID:          uuid.Must(uuid.NewV4()),
		PostID:      postID,
		AuthorID:    uuid.Must(uuid.NewV4()),
		Body:        "a comment",
		CreatedAt:   created,
		ExpiresAt:   created.Add(lifecycle.CommentTTL),
		Upvotes:     upvotes,
		Downvotes:   downvotes,
		SoftDeleted: softDeleted,
	}
}

func TestVoteService_Vote(t *testing.T) {
	ctx := context.Background()
	callerID := uuid.Must(uuid.NewV4())
	postID := uuid.Must(uuid.NewV4())

	expectTx := func(commentRepo *commentsServices.MockCommentRepository) {
		commentRepo.On("WithTransaction", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
	}

	t.Run("new upvote extends the lifetime", func(t *testing.T) {
		voteRepo := new(MockVoteRepository)
		commentRepo := new(commentsServices.MockCommentRepository)
		postRepo := new(postsServices.MockPostRepository)
		service := NewVoteService(voteRepo, commentRepo, postRepo)

		comment := newComment(postID, 0, 0, false)
		updated := *comment
		updated.Upvotes = 1

		expectTx(commentRepo)
		commentRepo.On("FindByID", mock.Anything, comment.ID).Return(comment, nil)
		voteRepo.On("FindByUserAndComment", mock.Anything, callerID, comment.ID).Return(nil, votesErrors.ErrVoteNotFound)
		voteRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(v *models.Vote) bool {
			return v.UserID == callerID && v.CommentID == comment.ID && v.Direction == models.DirectionUp
		})).Return(true, models.DirectionNone, nil)
		commentRepo.On("AdjustVoteCounts", mock.Anything, comment.ID, 1, 0).Return(&updated, nil)
		commentRepo.On("SetExpiry", mock.Anything, comment.ID,
			lifecycle.ApplyUpvote(updated.ExpiresAt, updated.CreatedAt)).Return(nil)

		result, err := service.Vote(ctx, callerID, comment.ID, models.ActionUp)

		require.NoError(t, err)
		assert.Equal(t, int64(1), result.Upvotes)
		assert.Equal(t, int64(0), result.Downvotes)
		assert.Equal(t, "up", result.CallerDirection)
		voteRepo.AssertExpectations(t)
		commentRepo.AssertExpectations(t)
	})

	t.Run("same direction twice is a no-op delta", func(t *testing.T) {
		voteRepo := new(MockVoteRepository)
		commentRepo := new(commentsServices.MockCommentRepository)
		postRepo := new(postsServices.MockPostRepository)
		service := NewVoteService(voteRepo, commentRepo, postRepo)

		comment := newComment(postID, 1, 0, false)
		existing := &models.Vote{UserID: callerID, CommentID: comment.ID, Direction: models.DirectionUp}

		expectTx(commentRepo)
		commentRepo.On("FindByID", mock.Anything, comment.ID).Return(comment, nil)
		voteRepo.On("FindByUserAndComment", mock.Anything, callerID, comment.ID).Return(existing, nil)

		result, err := service.Vote(ctx, callerID, comment.ID, models.ActionUp)

		require.NoError(t, err)
		assert.Equal(t, int64(1), result.Upvotes)
		assert.Equal(t, "up", result.CallerDirection)
		voteRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
		commentRepo.AssertNotCalled(t, "AdjustVoteCounts", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		commentRepo.AssertNotCalled(t, "SetExpiry", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("down to up flip counts as a new upvote", func(t *testing.T) {
		voteRepo := new(MockVoteRepository)
		commentRepo := new(commentsServices.MockCommentRepository)
		postRepo := new(postsServices.MockPostRepository)
		service := NewVoteService(voteRepo, commentRepo, postRepo)

		comment := newComment(postID, 0, 1, false)
		existing := &models.Vote{UserID: callerID, CommentID: comment.ID, Direction: models.DirectionDown}
		updated := *comment
		updated.Upvotes = 1
		updated.Downvotes = 0

		expectTx(commentRepo)
		commentRepo.On("FindByID", mock.Anything, comment.ID).Return(comment, nil)
		voteRepo.On("FindByUserAndComment", mock.Anything, callerID, comment.ID).Return(existing, nil)
		voteRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(v *models.Vote) bool {
			return v.Direction == models.DirectionUp
		})).Return(false, models.DirectionDown, nil)
		commentRepo.On("AdjustVoteCounts", mock.Anything, comment.ID, 1, -1).Return(&updated, nil)
		commentRepo.On("SetExpiry", mock.Anything, comment.ID,
			lifecycle.ApplyUpvote(updated.ExpiresAt, updated.CreatedAt)).Return(nil)

		result, err := service.Vote(ctx, callerID, comment.ID, models.ActionUp)

		require.NoError(t, err)
		assert.Equal(t, int64(1), result.Upvotes)
		assert.Equal(t, int64(0), result.Downvotes)
		commentRepo.AssertExpectations(t)
	})

	t.Run("up to down flip never extends", func(t *testing.T) {
		voteRepo := new(MockVoteRepository)
		commentRepo := new(commentsServices.MockCommentRepository)
		postRepo := new(postsServices.MockPostRepository)
		service := NewVoteService(voteRepo, commentRepo, postRepo)

		comment := newComment(postID, 1, 0, false)
		existing := &models.Vote{UserID: callerID, CommentID: comment.ID, Direction: models.DirectionUp}
		updated := *comment
		updated.Upvotes = 0
		updated.Downvotes = 1

		expectTx(commentRepo)
		commentRepo.On("FindByID", mock.Anything, comment.ID).Return(comment, nil)
		voteRepo.On("FindByUserAndComment", mock.Anything, callerID, comment.ID).Return(existing, nil)
		voteRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(v *models.Vote) bool {
			return v.Direction == models.DirectionDown
		})).Return(false, models.DirectionUp, nil)
		commentRepo.On("AdjustVoteCounts", mock.Anything, comment.ID, -1, 1).Return(&updated, nil)

		result, err := service.Vote(ctx, callerID, comment.ID, models.ActionDown)

		require.NoError(t, err)
		assert.Equal(t, "down", result.CallerDirection)
		commentRepo.AssertNotCalled(t, "SetExpiry", mock.Anything, mock.Anything, mock.Anything)
		commentRepo.AssertNotCalled(t, "SoftDelete", mock.Anything, mock.Anything)
	})

	t.Run("removing an upvote reverses the counter but not the lifetime", func(t *testing.T) {
		voteRepo := new(MockVoteRepository)
		commentRepo := new(commentsServices.MockCommentRepository)
		postRepo := new(postsServices.MockPostRepository)
		service := NewVoteService(voteRepo, commentRepo, postRepo)

		comment := newComment(postID, 1, 0, false)
		existing := &models.Vote{UserID: callerID, CommentID: comment.ID, Direction: models.DirectionUp}
		updated := *comment
		updated.Upvotes = 0

		expectTx(commentRepo)
		commentRepo.On("FindByID", mock.Anything, comment.ID).Return(comment, nil)
		voteRepo.On("FindByUserAndComment", mock.Anything, callerID, comment.ID).Return(existing, nil)
		voteRepo.On("Delete", mock.Anything, callerID, comment.ID).Return(true, models.DirectionUp, nil)
		commentRepo.On("AdjustVoteCounts", mock.Anything, comment.ID, -1, 0).Return(&updated, nil)

		result, err := service.Vote(ctx, callerID, comment.ID, models.ActionRemove)

		require.NoError(t, err)
		assert.Equal(t, int64(0), result.Upvotes)
		assert.Equal(t, "", result.CallerDirection)
		commentRepo.AssertNotCalled(t, "SetExpiry", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("removing a nonexistent vote is a no-op", func(t *testing.T) {
		voteRepo := new(MockVoteRepository)
		commentRepo := new(commentsServices.MockCommentRepository)
		postRepo := new(postsServices.MockPostRepository)
		service := NewVoteService(voteRepo, commentRepo, postRepo)

		comment := newComment(postID, 2, 1, false)

		expectTx(commentRepo)
		commentRepo.On("FindByID", mock.Anything, comment.ID).Return(comment, nil)
		voteRepo.On("FindByUserAndComment", mock.Anything, callerID, comment.ID).Return(nil, votesErrors.ErrVoteNotFound)

		result, err := service.Vote(ctx, callerID, comment.ID, models.ActionRemove)

		require.NoError(t, err)
		assert.Equal(t, int64(2), result.Upvotes)
		assert.Equal(t, int64(1), result.Downvotes)
		voteRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("fifth downvote terminates comment and parent post", func(t *testing.T) {
		voteRepo := new(MockVoteRepository)
		commentRepo := new(commentsServices.MockCommentRepository)
		postRepo := new(postsServices.MockPostRepository)
		service := NewVoteService(voteRepo, commentRepo, postRepo)

		comment := newComment(postID, 0, 4, false)
		updated := *comment
		updated.Downvotes = 5

		expectTx(commentRepo)
		commentRepo.On("FindByID", mock.Anything, comment.ID).Return(comment, nil)
		voteRepo.On("FindByUserAndComment", mock.Anything, callerID, comment.ID).Return(nil, votesErrors.ErrVoteNotFound)
		voteRepo.On("Upsert", mock.Anything, mock.Anything).Return(true, models.DirectionNone, nil)
		commentRepo.On("AdjustVoteCounts", mock.Anything, comment.ID, 0, 1).Return(&updated, nil)
		commentRepo.On("SoftDelete", mock.Anything, comment.ID).Return(true, nil)
		postRepo.On("SoftDelete", mock.Anything, postID).Return(true, nil)

		result, err := service.Vote(ctx, callerID, comment.ID, models.ActionDown)

		require.NoError(t, err)
		assert.Equal(t, int64(5), result.Downvotes)
		commentRepo.AssertExpectations(t)
		postRepo.AssertExpectations(t)
	})

	t.Run("sixth downvote after termination does not re-fire", func(t *testing.T) {
		voteRepo := new(MockVoteRepository)
		commentRepo := new(commentsServices.MockCommentRepository)
		postRepo := new(postsServices.MockPostRepository)
		service := NewVoteService(voteRepo, commentRepo, postRepo)

		comment := newComment(postID, 0, 5, true)
		updated := *comment
		updated.Downvotes = 6

		expectTx(commentRepo)
		commentRepo.On("FindByID", mock.Anything, comment.ID).Return(comment, nil)
		voteRepo.On("FindByUserAndComment", mock.Anything, callerID, comment.ID).Return(nil, votesErrors.ErrVoteNotFound)
		voteRepo.On("Upsert", mock.Anything, mock.Anything).Return(true, models.DirectionNone, nil)
		commentRepo.On("AdjustVoteCounts", mock.Anything, comment.ID, 0, 1).Return(&updated, nil)

		result, err := service.Vote(ctx, callerID, comment.ID, models.ActionDown)

		require.NoError(t, err)
		assert.Equal(t, int64(6), result.Downvotes)
		commentRepo.AssertNotCalled(t, "SoftDelete", mock.Anything, mock.Anything)
		postRepo.AssertNotCalled(t, "SoftDelete", mock.Anything, mock.Anything)
	})

	t.Run("comment not found", func(t *testing.T) {
		voteRepo := new(MockVoteRepository)
		commentRepo := new(commentsServices.MockCommentRepository)
		postRepo := new(postsServices.MockPostRepository)
		service := NewVoteService(voteRepo, commentRepo, postRepo)

		commentID := uuid.Must(uuid.NewV4())

		expectTx(commentRepo)
		commentRepo.On("FindByID", mock.Anything, commentID).Return(nil, commentsErrors.ErrCommentNotFound)

		_, err := service.Vote(ctx, callerID, commentID, models.ActionUp)

		require.Error(t, err)
		assert.Equal(t, apierr.KindNotFound, apierr.KindOf(err))
	})
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		input  string
		action models.Action
		ok     bool
	}{
		{"up", models.ActionUp, true},
		{"down", models.ActionDown, true},
		{"remove", models.ActionRemove, true},
		{"sideways", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		action, ok := models.ParseAction(tt.input)
		assert.Equal(t, tt.ok, ok, "input=%q", tt.input)
		if ok {
			assert.Equal(t, tt.action, action, "input=%q", tt.input)
		}
	}
}
