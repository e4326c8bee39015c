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
	"github.com/wisp-social/wisp/internal/database/postgres"
	postsErrors "github.com/wisp-social/wisp/posts/errors"
	"github.com/wisp-social/wisp/posts/models"
)

// visibilityPredicate gates every read on the viewer: public posts, the
// viewer's own posts, and friends-only posts where a mutual follow exists.
// The viewer placeholder must be bound as $1 by every query embedding it.
const visibilityPredicate = `(
		p.visibility = 'public'
		OR p.author_id = $1
		OR (
			p.visibility = 'friends'
			AND EXISTS (SELECT 1 FROM follows fa WHERE fa.follower_id = $1 AND fa.followee_id = p.author_id)
			AND EXISTS (SELECT 1 FROM follows fb WHERE fb.follower_id = p.author_id AND fb.followee_id = $1)
		)
	)`

// projectionColumns is the shared select list for per-viewer reads; the
// viewer's like state rides along in the same round trip.
const projectionColumns = `
		p.id, p.author_id, p.body, p.media_key, p.visibility,
		p.created_at, p.expires_at, p.soft_deleted,
		p.view_count, p.like_count, p.comment_count,
		u.display_name AS author_display_name,
		EXISTS (SELECT 1 FROM likes l WHERE l.post_id = p.id AND l.user_id = $1) AS liked_by_viewer`

// postgresRepository implements PostRepository using raw SQL queries
type postgresRepository struct {
	client *postgres.Client
}

// NewPostgresRepository creates a new PostgreSQL repository for posts
func NewPostgresRepository(client *postgres.Client) PostRepository {
	return &postgresRepository{client: client}
}

// Create inserts a new post
func (r *postgresRepository) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (
			id, author_id, body, media_key, visibility,
			created_at, expires_at, soft_deleted,
			view_count, like_count, comment_count
		) VALUES (
			:id, :author_id, :body, :media_key, :visibility,
			:created_at, :expires_at, :soft_deleted,
			:view_count, :like_count, :comment_count
		)`

	_, err := sqlx.NamedExecContext(ctx, r.client.Executor(ctx), query, post)
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}
	return nil
}

// FindByIDForViewer retrieves a live post as a per-viewer projection
func (r *postgresRepository) FindByIDForViewer(ctx context.Context, viewerID, postID uuid.UUID) (*models.Projection, error) {
	query := `
		SELECT ` + projectionColumns + `
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.id = $2
			AND p.soft_deleted = FALSE
			AND p.expires_at > NOW()
			AND ` + visibilityPredicate

	var projection models.Projection
	err := sqlx.GetContext(ctx, r.client.Executor(ctx), &projection, query, viewerID, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, postsErrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to find post: %w", err)
	}

	return &projection, nil
}

// FeedForViewer retrieves live posts visible to the viewer, newest first
func (r *postgresRepository) FeedForViewer(ctx context.Context, viewerID uuid.UUID, authorID *uuid.UUID, cursor *models.Cursor, limit int) ([]*models.Projection, error) {
	query := `
		SELECT ` + projectionColumns + `
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.soft_deleted = FALSE
			AND p.expires_at > NOW()
			AND ` + visibilityPredicate

	args := []interface{}{viewerID}
	argIndex := 2

	if authorID != nil {
		query += fmt.Sprintf(" AND p.author_id = $%d", argIndex)
		args = append(args, *authorID)
		argIndex++
	}

	if cursor != nil {
		// Row comparison keeps the page stable under head insertion and makes
		// (created_at, id) the total order the index serves.
		query += fmt.Sprintf(" AND (p.created_at, p.id) < ($%d, $%d)", argIndex, argIndex+1)
		args = append(args, cursor.CreatedAt(), cursor.ID)
		argIndex += 2
	}

	query += fmt.Sprintf(" ORDER BY p.created_at DESC, p.id DESC LIMIT $%d", argIndex)
	args = append(args, limit)

	var rows []models.Projection
	err := sqlx.SelectContext(ctx, r.client.Executor(ctx), &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query feed: %w", err)
	}

	result := make([]*models.Projection, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}

// SoftDelete marks a post soft-deleted
func (r *postgresRepository) SoftDelete(ctx context.Context, postID uuid.UUID) (bool, error) {
	query := `UPDATE posts SET soft_deleted = TRUE WHERE id = $1 AND soft_deleted = FALSE`

	result, err := r.client.Executor(ctx).ExecContext(ctx, query, postID)
	if err != nil {
		return false, fmt.Errorf("failed to soft delete post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// InsertLike records a like membership idempotently
func (r *postgresRepository) InsertLike(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	query := `
		INSERT INTO likes (user_id, post_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, post_id) DO NOTHING`

	result, err := r.client.Executor(ctx).ExecContext(ctx, query, userID, postID)
	if err != nil {
		return false, fmt.Errorf("failed to insert like: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// DeleteLike removes a like membership
func (r *postgresRepository) DeleteLike(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	query := `DELETE FROM likes WHERE user_id = $1 AND post_id = $2`

	result, err := r.client.Executor(ctx).ExecContext(ctx, query, userID, postID)
	if err != nil {
		return false, fmt.Errorf("failed to delete like: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// IncrementLikeCount atomically adjusts the like counter
func (r *postgresRepository) IncrementLikeCount(ctx context.Context, postID uuid.UUID, delta int) error {
	query := `UPDATE posts SET like_count = like_count + $1 WHERE id = $2`

	result, err := r.client.Executor(ctx).ExecContext(ctx, query, delta, postID)
	if err != nil {
		return fmt.Errorf("failed to increment like count: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return postsErrors.ErrPostNotFound
	}

	return nil
}

// GetLikeCount reads the denormalized like counter
func (r *postgresRepository) GetLikeCount(ctx context.Context, postID uuid.UUID) (int64, error) {
	query := `SELECT like_count FROM posts WHERE id = $1`

	var count int64
	err := sqlx.GetContext(ctx, r.client.Executor(ctx), &count, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, postsErrors.ErrPostNotFound
		}
		return 0, fmt.Errorf("failed to get like count: %w", err)
	}

	return count, nil
}

// InsertViewIfAbsent appends a view-log row unless one exists in the window
func (r *postgresRepository) InsertViewIfAbsent(ctx context.Context, userID, postID uuid.UUID, window time.Duration) (bool, error) {
	query := `
		INSERT INTO post_views (user_id, post_id, observed_at)
		SELECT $1, $2, NOW()
		WHERE NOT EXISTS (
			SELECT 1 FROM post_views
			WHERE user_id = $1 AND post_id = $2 AND observed_at > NOW() - make_interval(secs => $3)
		)`

	result, err := r.client.Executor(ctx).ExecContext(ctx, query, userID, postID, window.Seconds())
	if err != nil {
		return false, fmt.Errorf("failed to insert view: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// IncrementViewCount atomically adjusts the view counter
func (r *postgresRepository) IncrementViewCount(ctx context.Context, postID uuid.UUID) error {
	query := `UPDATE posts SET view_count = view_count + 1 WHERE id = $1 AND soft_deleted = FALSE`

	if _, err := r.client.Executor(ctx).ExecContext(ctx, query, postID); err != nil {
		return fmt.Errorf("failed to increment view count: %w", err)
	}
	return nil
}

// IncrementCommentCount atomically adjusts the comment counter
func (r *postgresRepository) IncrementCommentCount(ctx context.Context, postID uuid.UUID, delta int) error {
	query := `UPDATE posts SET comment_count = comment_count + $1 WHERE id = $2 AND soft_deleted = FALSE`

	result, err := r.client.Executor(ctx).ExecContext(ctx, query, delta, postID)
	if err != nil {
		return fmt.Errorf("failed to increment comment count: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return postsErrors.ErrPostNotFound
	}

	return nil
}

// CountLiveByAuthor counts the author's live posts
func (r *postgresRepository) CountLiveByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	query := `
		SELECT COUNT(*) FROM posts
		WHERE author_id = $1 AND soft_deleted = FALSE AND expires_at > NOW()`

	var count int64
	err := sqlx.GetContext(ctx, r.client.Executor(ctx), &count, query, authorID)
	if err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}

	return count, nil
}

// WithTransaction executes a function within a database transaction
func (r *postgresRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.client.WithTransaction(ctx, fn)
}
