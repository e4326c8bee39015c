// Copyright (c) 2025 Wisp Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"strings"
	"testing"
	"time"

	uuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wisp-social/wisp/comments/models"
	"github.com/wisp-social/wisp/internal/apierr"
	"github.com/wisp-social/wisp/internal/types"
	"github.com/wisp-social/wisp/lifecycle"
	postsErrors "github.com/wisp-social/wisp/posts/errors"
	postsModels "github.com/wisp-social/wisp/posts/models"
	postsServices "github.com/wisp-social/wisp/posts/services"
)

func viewer() *types.UserContext {
	return &types.UserContext{
		UserID:      uuid.Must(uuid.NewV4()),
		Subject:     "subject-1",
		DisplayName: "alice",
	}
}

func visiblePost(id uuid.UUID) *postsModels.Projection {
	created := time.Now().UTC().Add(-time.Hour)
	return &postsModels.Projection{
		Post: postsModels.Post{
			ID:         id,
			AuthorID:   uuid.Must(uuid.NewV4()),
			Visibility: postsModels.VisibilityPublic,
			CreatedAt:  created,
			ExpiresAt:  created.Add(lifecycle.PostTTL),
		},
	}
}

func TestCommentService_CreateComment(t *testing.T) {
	ctx := context.Background()
	author := viewer()
	postID := uuid.Must(uuid.NewV4())

	t.Run("creates with the 7d expiry and bumps the counter atomically", func(t *testing.T) {
		commentRepo := new(MockCommentRepository)
		postRepo := new(postsServices.MockPostRepository)
		service := NewCommentService(commentRepo, postRepo)

		postRepo.On("FindByIDForViewer", ctx, author.UserID, postID).Return(visiblePost(postID), nil)
		commentRepo.On("WithTransaction", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
		commentRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Comment) bool {
			return c.PostID == postID &&
				c.AuthorID == author.UserID &&
				c.Body == "nice clip" &&
				c.ExpiresAt.Equal(c.CreatedAt.Add(lifecycle.CommentTTL))
		})).Return(nil)
		postRepo.On("IncrementCommentCount", mock.Anything, postID, 1).Return(nil)

		response, err := service.CreateComment(ctx, author, postID, &models.CreateCommentRequest{Body: "nice clip"})

		require.NoError(t, err)
		assert.Equal(t, "nice clip", response.Body)
		assert.Equal(t, "alice", response.AuthorDisplayName)
		commentRepo.AssertExpectations(t)
		postRepo.AssertExpectations(t)
	})

	t.Run("invisible post is not found", func(t *testing.T) {
		commentRepo := new(MockCommentRepository)
		postRepo := new(postsServices.MockPostRepository)
		service := NewCommentService(commentRepo, postRepo)

		postRepo.On("FindByIDForViewer", ctx, author.UserID, postID).Return(nil, postsErrors.ErrPostNotFound)

		_, err := service.CreateComment(ctx, author, postID, &models.CreateCommentRequest{Body: "hi"})
		require.Error(t, err)
		assert.Equal(t, apierr.KindNotFound, apierr.KindOf(err))
		commentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("body bounds", func(t *testing.T) {
		commentRepo := new(MockCommentRepository)
		postRepo := new(postsServices.MockPostRepository)
		service := NewCommentService(commentRepo, postRepo)

		_, err := service.CreateComment(ctx, author, postID, &models.CreateCommentRequest{Body: ""})
		require.Error(t, err)
		assert.Equal(t, apierr.KindInvalidInput, apierr.KindOf(err))

		_, err = service.CreateComment(ctx, author, postID, &models.CreateCommentRequest{Body: strings.Repeat("x", 501)})
		require.Error(t, err)
		assert.Equal(t, apierr.KindInvalidInput, apierr.KindOf(err))

		postRepo.AssertNotCalled(t, "FindByIDForViewer", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCommentService_ListComments(t *testing.T) {
	ctx := context.Background()
	viewerID := uuid.Must(uuid.NewV4())
	postID := uuid.Must(uuid.NewV4())

	projection := func(body string, createdAt time.Time) *models.Projection {
		return &models.Projection{
			Comment: models.Comment{
				ID:        uuid.Must(uuid.NewV4()),
				PostID:    postID,
				AuthorID:  uuid.Must(uuid.NewV4()),
				Body:      body,
				CreatedAt: createdAt,
				ExpiresAt: createdAt.Add(lifecycle.CommentTTL),
			},
			AuthorDisplayName: "bob",
			ViewerDirection:   1,
		}
	}

	t.Run("pages with a next cursor", func(t *testing.T) {
		commentRepo := new(MockCommentRepository)
		postRepo := new(postsServices.MockPostRepository)
		service := NewCommentService(commentRepo, postRepo)

		base := time.Now().UTC().Add(-time.Hour)
		rows := []*models.Projection{
			projection("first", base),
			projection("second", base.Add(time.Minute)),
			projection("third", base.Add(2*time.Minute)),
		}

		postRepo.On("FindByIDForViewer", ctx, viewerID, postID).Return(visiblePost(postID), nil)
		// Limit 2 fetches 3 rows: the extra row signals a next page.
		commentRepo.On("ListLiveByPost", ctx, viewerID, postID, (*postsModels.Cursor)(nil), 3).Return(rows, nil)

		response, err := service.ListComments(ctx, viewerID, postID, "", 2)

		require.NoError(t, err)
		require.Len(t, response.Comments, 2)
		assert.True(t, response.HasNext)
		assert.NotEmpty(t, response.NextCursor)
		assert.Equal(t, "first", response.Comments[0].Body)
		assert.Equal(t, "up", response.Comments[0].CallerDirection)
	})

	t.Run("last page has no cursor", func(t *testing.T) {
		commentRepo := new(MockCommentRepository)
		postRepo := new(postsServices.MockPostRepository)
		service := NewCommentService(commentRepo, postRepo)

		rows := []*models.Projection{projection("only", time.Now().UTC())}

		postRepo.On("FindByIDForViewer", ctx, viewerID, postID).Return(visiblePost(postID), nil)
		commentRepo.On("ListLiveByPost", ctx, viewerID, postID, (*postsModels.Cursor)(nil), 21).Return(rows, nil)

		response, err := service.ListComments(ctx, viewerID, postID, "", 0)

		require.NoError(t, err)
		assert.Len(t, response.Comments, 1)
		assert.False(t, response.HasNext)
		assert.Empty(t, response.NextCursor)
	})

	t.Run("limit clamps to 50", func(t *testing.T) {
		commentRepo := new(MockCommentRepository)
		postRepo := new(postsServices.MockPostRepository)
		service := NewCommentService(commentRepo, postRepo)

		postRepo.On("FindByIDForViewer", ctx, viewerID, postID).Return(visiblePost(postID), nil)
		commentRepo.On("ListLiveByPost", ctx, viewerID, postID, (*postsModels.Cursor)(nil), 51).
			Return([]*models.Projection{}, nil)

		_, err := service.ListComments(ctx, viewerID, postID, "", 500)
		require.NoError(t, err)
		commentRepo.AssertExpectations(t)
	})

	t.Run("invisible post is not found", func(t *testing.T) {
		commentRepo := new(MockCommentRepository)
		postRepo := new(postsServices.MockPostRepository)
		service := NewCommentService(commentRepo, postRepo)

		postRepo.On("FindByIDForViewer", ctx, viewerID, postID).Return(nil, postsErrors.ErrPostNotFound)

		_, err := service.ListComments(ctx, viewerID, postID, "", 10)
		require.Error(t, err)
		assert.Equal(t, apierr.KindNotFound, apierr.KindOf(err))
	})
}
