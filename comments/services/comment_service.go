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
	"github.com/rivo/uniseg"
	"github.com/wisp-social/wisp/comments/models"
	commentRepository "github.com/wisp-social/wisp/comments/repository"
	"github.com/wisp-social/wisp/internal/apierr"
	"github.com/wisp-social/wisp/internal/types"
	"github.com/wisp-social/wisp/lifecycle"
	postsErrors "github.com/wisp-social/wisp/posts/errors"
	postsModels "github.com/wisp-social/wisp/posts/models"
	postsRepository "github.com/wisp-social/wisp/posts/repository"
)

const (
	defaultCommentLimit = 20
	maxCommentLimit     = 50
	maxBodyGraphemes    = 500
)

// commentService implements the CommentService interface.
type commentService struct {
	commentRepo commentRepository.CommentRepository
	postRepo    postsRepository.PostRepository
}

// NewCommentService wires the comment service with its dependencies.
func NewCommentService(commentRepo commentRepository.CommentRepository, postRepo postsRepository.PostRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// CreateComment creates a new comment entity.
// Uses a transaction to atomically create the comment and increment the post's
// comment counter.
func (s *commentService) CreateComment(ctx context.Context, author *types.UserContext, postID uuid.UUID, req *models.CreateCommentRequest) (*models.Response, error) {
	if req == nil {
		return nil, apierr.Invalid("create comment request is required")
	}
	if author == nil {
		return nil, apierr.New(apierr.KindUnauthenticated, "user context is required")
	}
	authorID := author.UserID

	bodyLen := uniseg.GraphemeClusterCount(req.Body)
	if bodyLen == 0 {
		return nil, apierr.Invalid("body is required")
	}
	if bodyLen > maxBodyGraphemes {
		return nil, apierr.Invalid("body exceeds 500 characters")
	}

	// The parent post must be visible to the author; an invisible post reads
	// as absent.
	post, err := s.postRepo.FindByIDForViewer(ctx, authorID, postID)
	if err != nil {
		if errors.Is(err, postsErrors.ErrPostNotFound) {
			return nil, apierr.NotFound("post")
		}
		return nil, fmt.Errorf("failed to find post: %w", err)
	}

	commentID, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate comment ID: %w", err)
	}

	now := time.Now().UTC()
	comment := &models.Comment{
		ID:        commentID,
		PostID:    post.ID,
		AuthorID:  authorID,
		Body:      req.Body,
		CreatedAt: now,
		ExpiresAt: lifecycle.InitialExpiry(lifecycle.KindComment, now),
	}

	err = s.commentRepo.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.commentRepo.Create(txCtx, comment); err != nil {
			return fmt.Errorf("failed to create comment: %w", err)
		}

		if err := s.postRepo.IncrementCommentCount(txCtx, post.ID, 1); err != nil {
			return fmt.Errorf("failed to increment comment count: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	response := models.Response{
		ID:                comment.ID.String(),
		PostID:            comment.PostID.String(),
		AuthorID:          comment.AuthorID.String(),
		AuthorDisplayName: author.DisplayName,
		Body:              comment.Body,
		CreatedAt:         comment.CreatedAt,
		ExpiresAt:         comment.ExpiresAt,
	}
	return &response, nil
}

// ListComments returns the live comments for a post the viewer can see.
func (s *commentService) ListComments(ctx context.Context, viewerID, postID uuid.UUID, cursor string, limit int) (*models.ListResponse, error) {
	if _, err := s.postRepo.FindByIDForViewer(ctx, viewerID, postID); err != nil {
		if errors.Is(err, postsErrors.ErrPostNotFound) {
			return nil, apierr.NotFound("post")
		}
		return nil, fmt.Errorf("failed to find post: %w", err)
	}

	decoded, err := postsModels.DecodeCursor(cursor)
	if err != nil {
		return nil, apierr.Invalid("invalid cursor")
	}

	if limit <= 0 {
		limit = defaultCommentLimit
	}
	if limit > maxCommentLimit {
		limit = maxCommentLimit
	}

	// Fetch one extra row to detect a next page without a count query.
	rows, err := s.commentRepo.ListLiveByPost(ctx, viewerID, postID, decoded, limit+1)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	hasNext := len(rows) > limit
	if hasNext {
		rows = rows[:limit]
	}

	response := &models.ListResponse{
		Comments: make([]models.Response, 0, len(rows)),
		HasNext:  hasNext,
	}
	for _, row := range rows {
		response.Comments = append(response.Comments, row.ToResponse())
	}

	if hasNext && len(rows) > 0 {
		last := rows[len(rows)-1]
		next, err := postsModels.EncodeCursor(&postsModels.Cursor{
			CreatedAtMillis: last.CreatedAt.UnixMilli(),
			ID:              last.ID.String(),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to encode cursor: %w", err)
		}
		response.NextCursor = next
	}

	return response, nil
}
