// Copyright (c) 2025 Wisp Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	uuid "github.com/gofrs/uuid"
	"github.com/jmoiron/sqlx"
	commentsErrors "github.com/wisp-social/wisp/comments/errors"
	"github.com/wisp-social/wisp/comments/models"
	"github.com/wisp-social/wisp/internal/database/postgres"
	postsModels "github.com/wisp-social/wisp/posts/models"
)

// postgresRepository implements CommentRepository using raw SQL queries
type postgresRepository struct {
	client *postgres.Client
}

// NewPostgresRepository creates a new PostgreSQL repository for comments
func NewPostgresRepository(client *postgres.Client) CommentRepository {
	return &postgresRepository{client: client}
}

// Create inserts a new comment
func (r *postgresRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (
			id, post_id, author_id, body, created_at, expires_at,
			upvotes, downvotes, soft_deleted
		) VALUES (
			:id, :post_id, :author_id, :body, :created_at, :expires_at,
			:upvotes, :downvotes, :soft_deleted
		)`

	_, err := sqlx.NamedExecContext(ctx, r.client.Executor(ctx), query, comment)
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}
	return nil
}

// FindByID retrieves a comment row regardless of deleted state
func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	query := `
		SELECT id, post_id, author_id, body, created_at, expires_at,
			upvotes, downvotes, soft_deleted
		FROM comments
		WHERE id = $1`

	var comment models.Comment
	err := sqlx.GetContext(ctx, r.client.Executor(ctx), &comment, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, commentsErrors.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}

	return &comment, nil
}

// ListLiveByPost retrieves live comments for a post, oldest first
func (r *postgresRepository) ListLiveByPost(ctx context.Context, viewerID, postID uuid.UUID, cursor *postsModels.Cursor, limit int) ([]*models.Projection, error) {
	query := `
		SELECT c.id, c.post_id, c.author_id, c.body, c.created_at, c.expires_at,
			c.upvotes, c.downvotes, c.soft_deleted,
			u.display_name AS author_display_name,
			COALESCE(v.direction, 0) AS viewer_direction
		FROM comments c
		JOIN users u ON u.id = c.author_id
		LEFT JOIN votes v ON v.comment_id = c.id AND v.user_id = $1
		WHERE c.post_id = $2
			AND c.soft_deleted = FALSE
			AND c.expires_at > NOW()`

	args := []interface{}{viewerID, postID}
	argIndex := 3

	if cursor != nil {
		query += fmt.Sprintf(" AND (c.created_at, c.id) > ($%d, $%d)", argIndex, argIndex+1)
		args = append(args, cursor.CreatedAt(), cursor.ID)
		argIndex += 2
	}

	query += fmt.Sprintf(" ORDER BY c.created_at ASC, c.id ASC LIMIT $%d", argIndex)
	args = append(args, limit)

	var rows []models.Projection
	err := sqlx.SelectContext(ctx, r.client.Executor(ctx), &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	result := make([]*models.Projection, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}

// AdjustVoteCounts applies counter deltas and returns the updated row
func (r *postgresRepository) AdjustVoteCounts(ctx context.Context, id uuid.UUID, upDelta, downDelta int) (*models.Comment, error) {
	query := `
		UPDATE comments
		SET upvotes = upvotes + $1, downvotes = downvotes + $2
		WHERE id = $3
		RETURNING id, post_id, author_id, body, created_at, expires_at,
			upvotes, downvotes, soft_deleted`

	var comment models.Comment
	err := sqlx.GetContext(ctx, r.client.Executor(ctx), &comment, query, upDelta, downDelta, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, commentsErrors.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to adjust vote counts: %w", err)
	}

	return &comment, nil
}

// SetExpiry overwrites the comment's expiry
func (r *postgresRepository) SetExpiry(ctx context.Context, id uuid.UUID, expiresAt time.Time) error {
	query := `UPDATE comments SET expires_at = $1 WHERE id = $2`

	result, err := r.client.Executor(ctx).ExecContext(ctx, query, expiresAt, id)
	if err != nil {
		return fmt.Errorf("failed to set expiry: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return commentsErrors.ErrCommentNotFound
	}

	return nil
}

// SoftDelete marks a comment soft-deleted
func (r *postgresRepository) SoftDelete(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `UPDATE comments SET soft_deleted = TRUE WHERE id = $1 AND soft_deleted = FALSE`

	result, err := r.client.Executor(ctx).ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to soft delete comment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// WithTransaction executes a function within a database transaction
func (r *postgresRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.client.WithTransaction(ctx, fn)
}
