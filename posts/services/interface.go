package services

import (
	"context"

	uuid "github.com/gofrs/uuid"
	"github.com/wisp-social/wisp/posts/models"
)

// PostService defines the interface for post operations
type PostService interface {
	// CreatePost validates the request, stores media when present (blob PUT
	// strictly before the DB insert), and returns the author's projection of
	// the new post.
	CreatePost(ctx context.Context, authorID uuid.UUID, req *models.CreatePostRequest) (*models.Response, error)

	// GetPost returns the per-viewer projection of one live post.
	GetPost(ctx context.Context, viewerID, postID uuid.UUID) (*models.Response, error)

	// DeletePost soft-deletes the caller's own post.
	DeletePost(ctx context.Context, callerID, postID uuid.UUID) error

	// Like records a like idempotently and returns the current state.
	Like(ctx context.Context, callerID, postID uuid.UUID) (*models.LikeResult, error)

	// Unlike removes a like idempotently and returns the current state.
	Unlike(ctx context.Context, callerID, postID uuid.UUID) (*models.LikeResult, error)

	// RecordView appends to the view log with duplicate suppression. Views of
	// posts the caller cannot see succeed silently without mutation.
	RecordView(ctx context.Context, callerID, postID uuid.UUID) error
}
