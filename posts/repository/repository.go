// Copyright (c) 2025 Wisp Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"
	"time"

	uuid "github.com/gofrs/uuid"
	"github.com/wisp-social/wisp/posts/models"
)

// PostRepository defines persistence operations for posts, their likes, and
// their view log. Counter columns are only ever touched together with their
// source rows inside a caller-owned transaction.
type PostRepository interface {
	// Create inserts a new post row.
	Create(ctx context.Context, post *models.Post) error

	// FindByIDForViewer retrieves one live post as a per-viewer projection.
	// Returns ErrPostNotFound when the post is absent, expired, soft-deleted,
	// or not visible to the viewer — the cases are indistinguishable by design.
	FindByIDForViewer(ctx context.Context, viewerID, postID uuid.UUID) (*models.Projection, error)

	// FeedForViewer retrieves live posts visible to the viewer in reverse
	// chronological order, optionally restricted to a single author, starting
	// strictly after the cursor position. Returns up to limit rows.
	FeedForViewer(ctx context.Context, viewerID uuid.UUID, authorID *uuid.UUID, cursor *models.Cursor, limit int) ([]*models.Projection, error)

	// SoftDelete marks a post soft-deleted. Reports whether a live row was
	// transitioned; already-deleted rows are left untouched.
	SoftDelete(ctx context.Context, postID uuid.UUID) (bool, error)

	// InsertLike records a like membership idempotently. Reports whether a new
	// row was inserted.
	InsertLike(ctx context.Context, userID, postID uuid.UUID) (bool, error)

	// DeleteLike removes a like membership. Reports whether a row existed.
	DeleteLike(ctx context.Context, userID, postID uuid.UUID) (bool, error)

	// IncrementLikeCount adjusts the denormalized like counter.
	IncrementLikeCount(ctx context.Context, postID uuid.UUID, delta int) error

	// GetLikeCount reads the denormalized like counter.
	GetLikeCount(ctx context.Context, postID uuid.UUID) (int64, error)

	// InsertViewIfAbsent appends a view-log row unless the viewer already has
	// one for this post inside the dedup window. Reports whether a row was
	// inserted.
	InsertViewIfAbsent(ctx context.Context, userID, postID uuid.UUID, window time.Duration) (bool, error)

	// IncrementViewCount adjusts the denormalized view counter.
	IncrementViewCount(ctx context.Context, postID uuid.UUID) error

	// IncrementCommentCount adjusts the denormalized comment counter.
	IncrementCommentCount(ctx context.Context, postID uuid.UUID, delta int) error

	// CountLiveByAuthor counts the author's live posts.
	CountLiveByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error)

	// WithTransaction executes fn within a database transaction shared by all
	// repositories on the same client.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
