// Copyright (c) 2025 Wisp Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package reaper

import (
	"context"
	"fmt"
	"time"

	"github.com/wisp-social/wisp/internal/database/postgres"
)

// SweepRepository applies expiry transitions in bounded batches. Each call is
// one unconditional UPDATE guarded on soft_deleted = FALSE, so sweeps never
// un-delete and interleave safely with request-path writes.
type SweepRepository interface {
	// ExpirePostsBatch soft-deletes up to batchSize expired posts and returns
	// how many rows transitioned.
	ExpirePostsBatch(ctx context.Context, now time.Time, batchSize int) (int64, error)

	// ExpireCommentsBatch soft-deletes up to batchSize expired comments and
	// returns how many rows transitioned.
	ExpireCommentsBatch(ctx context.Context, now time.Time, batchSize int) (int64, error)
}

type postgresSweepRepository struct {
	client *postgres.Client
}

// NewPostgresSweepRepository creates a new PostgreSQL sweep repository
func NewPostgresSweepRepository(client *postgres.Client) SweepRepository {
	return &postgresSweepRepository{client: client}
}

func (r *postgresSweepRepository) ExpirePostsBatch(ctx context.Context, now time.Time, batchSize int) (int64, error) {
	query := `
		UPDATE posts SET soft_deleted = TRUE
		WHERE id IN (
			SELECT id FROM posts
			WHERE soft_deleted = FALSE AND expires_at <= $1
			LIMIT $2
			FOR UPDATE SKIP LOCKED
		)`

	result, err := r.client.Executor(ctx).ExecContext(ctx, query, now, batchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to expire posts: %w", err)
	}

	return result.RowsAffected()
}

func (r *postgresSweepRepository) ExpireCommentsBatch(ctx context.Context, now time.Time, batchSize int) (int64, error) {
	query := `
		UPDATE comments SET soft_deleted = TRUE
		WHERE id IN (
			SELECT id FROM comments
			WHERE soft_deleted = FALSE AND expires_at <= $1
			LIMIT $2
			FOR UPDATE SKIP LOCKED
		)`

	result, err := r.client.Executor(ctx).ExecContext(ctx, query, now, batchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to expire comments: %w", err)
	}

	return result.RowsAffected()
}
