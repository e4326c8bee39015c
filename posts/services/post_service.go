// Copyright (c) 2025 Wisp Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	uuid "github.com/gofrs/uuid"
	"github.com/wisp-social/wisp/internal/apierr"
	"github.com/wisp-social/wisp/internal/pkg/log"
	"github.com/wisp-social/wisp/lifecycle"
	postsErrors "github.com/wisp-social/wisp/posts/errors"
	"github.com/wisp-social/wisp/posts/models"
	"github.com/wisp-social/wisp/posts/repository"
	"github.com/wisp-social/wisp/posts/validation"
	"github.com/wisp-social/wisp/storage/provider"
)

// postService implements the PostService interface.
type postService struct {
	postRepo repository.PostRepository
	blob     provider.BlobProvider
}

// NewPostService wires the post service with its dependencies.
func NewPostService(postRepo repository.PostRepository, blob provider.BlobProvider) PostService {
	return &postService{
		postRepo: postRepo,
		blob:     blob,
	}
}

func (s *postService) CreatePost(ctx context.Context, authorID uuid.UUID, req *models.CreatePostRequest) (*models.Response, error) {
	if err := validation.ValidateCreatePost(req); err != nil {
		return nil, err
	}

	postID, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate post ID: %w", err)
	}

	// Media goes to the blob store before the row exists, so a committed row
	// never references a missing blob. If the insert below fails the orphan
	// blob is acceptable and reclaimed by a separate sweep.
	var mediaKey *string
	if req.Media != nil {
		key, err := newMediaKey()
		if err != nil {
			return nil, fmt.Errorf("failed to generate media key: %w", err)
		}
		if err := s.blob.Put(ctx, key, req.Media.Reader, req.Media.ContentType, req.Media.Size); err != nil {
			return nil, apierr.Wrap(apierr.KindStorageUnavailable, "blob store unavailable", err)
		}
		mediaKey = &key
	}

	now := time.Now().UTC()
	post := &models.Post{
		ID:         postID,
		AuthorID:   authorID,
		Body:       req.Body,
		MediaKey:   mediaKey,
		Visibility: req.Visibility,
		CreatedAt:  now,
		ExpiresAt:  lifecycle.InitialExpiry(lifecycle.KindPost, now),
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		if mediaKey != nil {
			log.WarnWithContext(ctx, "post insert failed after blob put, orphan key %s: %v", *mediaKey, err)
		}
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return s.GetPost(ctx, authorID, postID)
}

func (s *postService) GetPost(ctx context.Context, viewerID, postID uuid.UUID) (*models.Response, error) {
	projection, err := s.postRepo.FindByIDForViewer(ctx, viewerID, postID)
	if err != nil {
		if errors.Is(err, postsErrors.ErrPostNotFound) {
			return nil, apierr.NotFound("post")
		}
		return nil, fmt.Errorf("failed to find post: %w", err)
	}

	return s.toResponse(ctx, projection)
}

func (s *postService) DeletePost(ctx context.Context, callerID, postID uuid.UUID) error {
	projection, err := s.postRepo.FindByIDForViewer(ctx, callerID, postID)
	if err != nil {
		if errors.Is(err, postsErrors.ErrPostNotFound) {
			return apierr.NotFound("post")
		}
		return fmt.Errorf("failed to find post: %w", err)
	}

	if projection.AuthorID != callerID {
		return apierr.New(apierr.KindForbidden, "only the author can delete a post")
	}

	if _, err := s.postRepo.SoftDelete(ctx, postID); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	return nil
}

func (s *postService) Like(ctx context.Context, callerID, postID uuid.UUID) (*models.LikeResult, error) {
	if _, err := s.postRepo.FindByIDForViewer(ctx, callerID, postID); err != nil {
		if errors.Is(err, postsErrors.ErrPostNotFound) {
			return nil, apierr.NotFound("post")
		}
		return nil, fmt.Errorf("failed to find post: %w", err)
	}

	var likes int64
	err := s.postRepo.WithTransaction(ctx, func(txCtx context.Context) error {
		inserted, err := s.postRepo.InsertLike(txCtx, callerID, postID)
		if err != nil {
			return fmt.Errorf("failed to insert like: %w", err)
		}

		// The counter moves only when the membership actually changed, in the
		// same transaction as the source row.
		if inserted {
			if err := s.postRepo.IncrementLikeCount(txCtx, postID, 1); err != nil {
				return fmt.Errorf("failed to increment like count: %w", err)
			}
		}

		likes, err = s.postRepo.GetLikeCount(txCtx, postID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &models.LikeResult{Likes: likes, LikedByViewer: true}, nil
}

func (s *postService) Unlike(ctx context.Context, callerID, postID uuid.UUID) (*models.LikeResult, error) {
	if _, err := s.postRepo.FindByIDForViewer(ctx, callerID, postID); err != nil {
		if errors.Is(err, postsErrors.ErrPostNotFound) {
			return nil, apierr.NotFound("post")
		}
		return nil, fmt.Errorf("failed to find post: %w", err)
	}

	var likes int64
	err := s.postRepo.WithTransaction(ctx, func(txCtx context.Context) error {
		deleted, err := s.postRepo.DeleteLike(txCtx, callerID, postID)
		if err != nil {
			return fmt.Errorf("failed to delete like: %w", err)
		}

		if deleted {
			if err := s.postRepo.IncrementLikeCount(txCtx, postID, -1); err != nil {
				return fmt.Errorf("failed to decrement like count: %w", err)
			}
		}

		likes, err = s.postRepo.GetLikeCount(txCtx, postID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &models.LikeResult{Likes: likes, LikedByViewer: false}, nil
}

func (s *postService) RecordView(ctx context.Context, callerID, postID uuid.UUID) error {
	if _, err := s.postRepo.FindByIDForViewer(ctx, callerID, postID); err != nil {
		// Viewing a post the caller cannot see is silently ignored so the
		// response never leaks existence.
		if errors.Is(err, postsErrors.ErrPostNotFound) {
			return nil
		}
		return fmt.Errorf("failed to find post: %w", err)
	}

	return s.postRepo.WithTransaction(ctx, func(txCtx context.Context) error {
		inserted, err := s.postRepo.InsertViewIfAbsent(txCtx, callerID, postID, lifecycle.ViewDedupWindow)
		if err != nil {
			return fmt.Errorf("failed to record view: %w", err)
		}

		if inserted {
			if err := s.postRepo.IncrementViewCount(txCtx, postID); err != nil {
				return fmt.Errorf("failed to increment view count: %w", err)
			}
		}

		return nil
	})
}

// toResponse resolves the media URL and serializes the projection.
func (s *postService) toResponse(ctx context.Context, projection *models.Projection) (*models.Response, error) {
	var mediaURL *string
	if projection.MediaKey != nil {
		url, err := s.blob.URLFor(ctx, *projection.MediaKey)
		if err != nil {
			return nil, apierr.Wrap(apierr.KindStorageUnavailable, "blob store unavailable", err)
		}
		mediaURL = &url
	}

	response := projection.ToResponse(time.Now().UTC(), mediaURL)
	return &response, nil
}

// newMediaKey generates a fresh opaque blob key, independent of the post ID so
// keys reveal nothing about the rows referencing them.
func newMediaKey() (string, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	return "media/" + id.String(), nil
}
