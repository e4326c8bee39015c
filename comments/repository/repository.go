// Copyright (c) 2025 Wisp Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"
	"time"

	uuid "github.com/gofrs/uuid"
	"github.com/wisp-social/wisp/comments/models"
	postsModels "github.com/wisp-social/wisp/posts/models"
)

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	// Create inserts a new comment row.
	Create(ctx context.Context, comment *models.Comment) error

	// FindByID retrieves a comment row regardless of its deleted state: the
	// vote path must keep accepting rows for terminated comments.
	FindByID(ctx context.Context, id uuid.UUID) (*models.Comment, error)

	// ListLiveByPost retrieves live comments for a post in chronological order
	// as per-viewer projections, starting strictly after the cursor.
	ListLiveByPost(ctx context.Context, viewerID, postID uuid.UUID, cursor *postsModels.Cursor, limit int) ([]*models.Projection, error)

	// AdjustVoteCounts applies counter deltas and returns the updated row.
	AdjustVoteCounts(ctx context.Context, id uuid.UUID, upDelta, downDelta int) (*models.Comment, error)

	// SetExpiry overwrites the comment's expiry.
	SetExpiry(ctx context.Context, id uuid.UUID, expiresAt time.Time) error

	// SoftDelete marks a comment soft-deleted. Reports whether a live row was
	// transitioned.
	SoftDelete(ctx context.Context, id uuid.UUID) (bool, error)

	// WithTransaction executes fn within a database transaction shared by all
	// repositories on the same client.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
