// Copyright (c) 2025 Wisp Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	uuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wisp-social/wisp/internal/apierr"
	"github.com/wisp-social/wisp/lifecycle"
	postsErrors "github.com/wisp-social/wisp/posts/errors"
	"github.com/wisp-social/wisp/posts/models"
	"github.com/wisp-social/wisp/storage/provider"
)

func newProjection(authorID uuid.UUID) *models.Projection {
	created := time.Now().UTC().Add(-time.Hour)
	return &models.Projection{
		Post: models.Post{
			ID:         uuid.Must(uuid.NewV4()),
			AuthorID:   authorID,
			Body:       "hello",
			Visibility: models.VisibilityPublic,
			CreatedAt:  created,
			ExpiresAt:  created.Add(lifecycle.PostTTL),
		},
		AuthorDisplayName: "alice",
	}
}

func TestPostService_CreatePost(t *testing.T) {
	ctx := context.Background()
	authorID := uuid.Must(uuid.NewV4())

	t.Run("text-only post gets the 24h expiry", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		blob := new(provider.MockBlobProvider)
		service := NewPostService(postRepo, blob)

		var createdID uuid.UUID
		postRepo.On("Create", ctx, mock.MatchedBy(func(p *models.Post) bool {
			createdID = p.ID
			return p.AuthorID == authorID &&
				p.Body == "hello" &&
				p.MediaKey == nil &&
				p.ExpiresAt.Equal(p.CreatedAt.Add(lifecycle.PostTTL))
		})).Return(nil)
		postRepo.On("FindByIDForViewer", ctx, authorID, mock.Anything).Return(newProjection(authorID), nil)

		response, err := service.CreatePost(ctx, authorID, &models.CreatePostRequest{
			Body:       "hello",
			Visibility: models.VisibilityPublic,
		})

		require.NoError(t, err)
		assert.Equal(t, "hello", response.Body)
		assert.Nil(t, response.MediaURL)
		assert.NotEqual(t, uuid.Nil, createdID)
		blob.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("media is stored before the row is inserted", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		blob := new(provider.MockBlobProvider)
		service := NewPostService(postRepo, blob)

		var putKey string
		putDone := false
		blob.On("Put", ctx, mock.AnythingOfType("string"), mock.Anything, "video/mp4", int64(1024)).
			Run(func(args mock.Arguments) {
				putKey = args.String(1)
				putDone = true
			}).Return(nil)
		postRepo.On("Create", ctx, mock.MatchedBy(func(p *models.Post) bool {
			return putDone && p.MediaKey != nil && *p.MediaKey == putKey
		})).Return(nil)

		projection := newProjection(authorID)
		projection.MediaKey = &putKey
		postRepo.On("FindByIDForViewer", ctx, authorID, mock.Anything).Return(projection, nil)
		blob.On("URLFor", ctx, mock.AnythingOfType("string")).Return("https://cdn.example.com/x", nil)

		response, err := service.CreatePost(ctx, authorID, &models.CreatePostRequest{
			Body:       "look",
			Visibility: models.VisibilityPublic,
			Media: &models.MediaUpload{
				ContentType: "video/mp4",
				Size:        1024,
				Reader:      strings.NewReader("fake video bytes"),
			},
		})

		require.NoError(t, err)
		require.NotNil(t, response.MediaURL)
		assert.Equal(t, "https://cdn.example.com/x", *response.MediaURL)
		blob.AssertExpectations(t)
		postRepo.AssertExpectations(t)
	})

	t.Run("blob failure surfaces as storage_unavailable and writes no row", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		blob := new(provider.MockBlobProvider)
		service := NewPostService(postRepo, blob)

		blob.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("connection refused"))

		_, err := service.CreatePost(ctx, authorID, &models.CreatePostRequest{
			Body:       "look",
			Visibility: models.VisibilityPublic,
			Media: &models.MediaUpload{
				ContentType: "video/mp4",
				Size:        1024,
				Reader:      strings.NewReader("x"),
			},
		})

		require.Error(t, err)
		assert.Equal(t, apierr.KindStorageUnavailable, apierr.KindOf(err))
		postRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("validation failures", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		blob := new(provider.MockBlobProvider)
		service := NewPostService(postRepo, blob)

		tests := []struct {
			name string
			req  *models.CreatePostRequest
			kind apierr.Kind
		}{
			{
				"body too long",
				&models.CreatePostRequest{Body: strings.Repeat("x", 501), Visibility: models.VisibilityPublic},
				apierr.KindInvalidInput,
			},
			{
				"unknown visibility",
				&models.CreatePostRequest{Body: "ok", Visibility: "everyone"},
				apierr.KindInvalidInput,
			},
			{
				"media too large",
				&models.CreatePostRequest{Body: "ok", Visibility: models.VisibilityPublic, Media: &models.MediaUpload{
					ContentType: "video/mp4", Size: 101 << 20, Reader: strings.NewReader("x"),
				}},
				apierr.KindPayloadTooLarge,
			},
			{
				"non-video media",
				&models.CreatePostRequest{Body: "ok", Visibility: models.VisibilityPublic, Media: &models.MediaUpload{
					ContentType: "image/png", Size: 1024, Reader: strings.NewReader("x"),
				}},
				apierr.KindUnsupportedMedia,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := service.CreatePost(ctx, authorID, tt.req)
				require.Error(t, err)
				assert.Equal(t, tt.kind, apierr.KindOf(err))
			})
		}

		blob.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		postRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestPostService_DeletePost(t *testing.T) {
	ctx := context.Background()
	authorID := uuid.Must(uuid.NewV4())
	strangerID := uuid.Must(uuid.NewV4())

	t.Run("author deletes own post", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		service := NewPostService(postRepo, new(provider.MockBlobProvider))

		projection := newProjection(authorID)
		postRepo.On("FindByIDForViewer", ctx, authorID, projection.ID).Return(projection, nil)
		postRepo.On("SoftDelete", ctx, projection.ID).Return(true, nil)

		require.NoError(t, service.DeletePost(ctx, authorID, projection.ID))
		postRepo.AssertExpectations(t)
	})

	t.Run("non-author gets forbidden", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		service := NewPostService(postRepo, new(provider.MockBlobProvider))

		projection := newProjection(authorID)
		postRepo.On("FindByIDForViewer", ctx, strangerID, projection.ID).Return(projection, nil)

		err := service.DeletePost(ctx, strangerID, projection.ID)
		require.Error(t, err)
		assert.Equal(t, apierr.KindForbidden, apierr.KindOf(err))
		postRepo.AssertNotCalled(t, "SoftDelete", mock.Anything, mock.Anything)
	})

	t.Run("invisible post reads as not found, never forbidden", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		service := NewPostService(postRepo, new(provider.MockBlobProvider))

		postID := uuid.Must(uuid.NewV4())
		postRepo.On("FindByIDForViewer", ctx, strangerID, postID).Return(nil, postsErrors.ErrPostNotFound)

		err := service.DeletePost(ctx, strangerID, postID)
		require.Error(t, err)
		assert.Equal(t, apierr.KindNotFound, apierr.KindOf(err))
	})
}

func TestPostService_LikeUnlike(t *testing.T) {
	ctx := context.Background()
	callerID := uuid.Must(uuid.NewV4())

	t.Run("first like moves the counter", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		service := NewPostService(postRepo, new(provider.MockBlobProvider))

		projection := newProjection(uuid.Must(uuid.NewV4()))
		postRepo.On("FindByIDForViewer", ctx, callerID, projection.ID).Return(projection, nil)
		postRepo.On("WithTransaction", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
		postRepo.On("InsertLike", mock.Anything, callerID, projection.ID).Return(true, nil)
		postRepo.On("IncrementLikeCount", mock.Anything, projection.ID, 1).Return(nil)
		postRepo.On("GetLikeCount", mock.Anything, projection.ID).Return(int64(1), nil)

		result, err := service.Like(ctx, callerID, projection.ID)

		require.NoError(t, err)
		assert.Equal(t, int64(1), result.Likes)
		assert.True(t, result.LikedByViewer)
		postRepo.AssertExpectations(t)
	})

	t.Run("re-like is idempotent and leaves the counter alone", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		service := NewPostService(postRepo, new(provider.MockBlobProvider))

		projection := newProjection(uuid.Must(uuid.NewV4()))
		postRepo.On("FindByIDForViewer", ctx, callerID, projection.ID).Return(projection, nil)
		postRepo.On("WithTransaction", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
		postRepo.On("InsertLike", mock.Anything, callerID, projection.ID).Return(false, nil)
		postRepo.On("GetLikeCount", mock.Anything, projection.ID).Return(int64(1), nil)

		result, err := service.Like(ctx, callerID, projection.ID)

		require.NoError(t, err)
		assert.Equal(t, int64(1), result.Likes)
		assert.True(t, result.LikedByViewer)
		postRepo.AssertNotCalled(t, "IncrementLikeCount", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unlike without a like is idempotent", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		service := NewPostService(postRepo, new(provider.MockBlobProvider))

		projection := newProjection(uuid.Must(uuid.NewV4()))
		postRepo.On("FindByIDForViewer", ctx, callerID, projection.ID).Return(projection, nil)
		postRepo.On("WithTransaction", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
		postRepo.On("DeleteLike", mock.Anything, callerID, projection.ID).Return(false, nil)
		postRepo.On("GetLikeCount", mock.Anything, projection.ID).Return(int64(0), nil)

		result, err := service.Unlike(ctx, callerID, projection.ID)

		require.NoError(t, err)
		assert.Equal(t, int64(0), result.Likes)
		assert.False(t, result.LikedByViewer)
		postRepo.AssertNotCalled(t, "IncrementLikeCount", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("like on an invisible post is not found", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		service := NewPostService(postRepo, new(provider.MockBlobProvider))

		postID := uuid.Must(uuid.NewV4())
		postRepo.On("FindByIDForViewer", ctx, callerID, postID).Return(nil, postsErrors.ErrPostNotFound)

		_, err := service.Like(ctx, callerID, postID)
		require.Error(t, err)
		assert.Equal(t, apierr.KindNotFound, apierr.KindOf(err))
	})
}

func TestPostService_RecordView(t *testing.T) {
	ctx := context.Background()
	callerID := uuid.Must(uuid.NewV4())

	t.Run("first view in the window increments", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		service := NewPostService(postRepo, new(provider.MockBlobProvider))

		projection := newProjection(uuid.Must(uuid.NewV4()))
		postRepo.On("FindByIDForViewer", ctx, callerID, projection.ID).Return(projection, nil)
		postRepo.On("WithTransaction", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
		postRepo.On("InsertViewIfAbsent", mock.Anything, callerID, projection.ID, lifecycle.ViewDedupWindow).Return(true, nil)
		postRepo.On("IncrementViewCount", mock.Anything, projection.ID).Return(nil)

		require.NoError(t, service.RecordView(ctx, callerID, projection.ID))
		postRepo.AssertExpectations(t)
	})

	t.Run("duplicate view inside the window does not increment", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		service := NewPostService(postRepo, new(provider.MockBlobProvider))

		projection := newProjection(uuid.Must(uuid.NewV4()))
		postRepo.On("FindByIDForViewer", ctx, callerID, projection.ID).Return(projection, nil)
		postRepo.On("WithTransaction", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
		postRepo.On("InsertViewIfAbsent", mock.Anything, callerID, projection.ID, lifecycle.ViewDedupWindow).Return(false, nil)

		require.NoError(t, service.RecordView(ctx, callerID, projection.ID))
		postRepo.AssertNotCalled(t, "IncrementViewCount", mock.Anything, mock.Anything)
	})

	t.Run("view of an invisible post succeeds silently", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		service := NewPostService(postRepo, new(provider.MockBlobProvider))

		postID := uuid.Must(uuid.NewV4())
		postRepo.On("FindByIDForViewer", ctx, callerID, postID).Return(nil, postsErrors.ErrPostNotFound)

		require.NoError(t, service.RecordView(ctx, callerID, postID))
		postRepo.AssertNotCalled(t, "WithTransaction", mock.Anything, mock.Anything)
	})
}

func TestPostService_GetPost(t *testing.T) {
	ctx := context.Background()
	viewerID := uuid.Must(uuid.NewV4())

	t.Run("hours remaining reflects the stored expiry", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		service := NewPostService(postRepo, new(provider.MockBlobProvider))

		projection := newProjection(uuid.Must(uuid.NewV4()))
		postRepo.On("FindByIDForViewer", ctx, viewerID, projection.ID).Return(projection, nil)

		response, err := service.GetPost(ctx, viewerID, projection.ID)

		require.NoError(t, err)
		// Created an hour ago with a 24h TTL: about 23 hours left.
		assert.InDelta(t, 23.0, response.HoursRemaining, 0.1)
		assert.Equal(t, "alice", response.AuthorDisplayName)
	})

	t.Run("missing post is not found", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		service := NewPostService(postRepo, new(provider.MockBlobProvider))

		postID := uuid.Must(uuid.NewV4())
		postRepo.On("FindByIDForViewer", ctx, viewerID, postID).Return(nil, postsErrors.ErrPostNotFound)

		_, err := service.GetPost(ctx, viewerID, postID)
		require.Error(t, err)
		assert.Equal(t, apierr.KindNotFound, apierr.KindOf(err))
	})
}
