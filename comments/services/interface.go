package services

import (
	"context"

	uuid "github.com/gofrs/uuid"
	"github.com/wisp-social/wisp/comments/models"
	"github.com/wisp-social/wisp/internal/types"
)

// CommentService defines the interface for comment operations
type CommentService interface {
	// CreateComment attaches a new comment to a post visible to the author.
	CreateComment(ctx context.Context, author *types.UserContext, postID uuid.UUID, req *models.CreateCommentRequest) (*models.Response, error)

	// ListComments returns the live comments of a post visible to the viewer,
	// oldest first, cursor-paginated.
	ListComments(ctx context.Context, viewerID, postID uuid.UUID, cursor string, limit int) (*models.ListResponse, error)
}
