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
	votesErrors "github.com/wisp-social/wisp/votes/errors"
	"github.com/wisp-social/wisp/votes/models"
)

// postgresVoteRepository implements VoteRepository using raw SQL queries
type postgresVoteRepository struct {
	client *postgres.Client
}

// NewPostgresVoteRepository creates a new PostgreSQL repository for votes
func NewPostgresVoteRepository(client *postgres.Client) VoteRepository {
	return &postgresVoteRepository{client: client}
}

// FindByUserAndComment retrieves a user's vote on a specific comment
func (r *postgresVoteRepository) FindByUserAndComment(ctx context.Context, userID, commentID uuid.UUID) (*models.Vote, error) {
	query := `
		SELECT user_id, comment_id, direction, created_at
		FROM votes
		WHERE user_id = $1 AND comment_id = $2`

	var vote models.Vote
	err := sqlx.GetContext(ctx, r.client.Executor(ctx), &vote, query, userID, commentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, votesErrors.ErrVoteNotFound
		}
		return nil, fmt.Errorf("failed to find vote: %w", err)
	}

	return &vote, nil
}

// Upsert inserts a new vote or updates an existing vote's direction.
// Returns (created, previousDirection).
func (r *postgresVoteRepository) Upsert(ctx context.Context, vote *models.Vote) (bool, int, error) {
	if vote.CreatedAt.IsZero() {
		vote.CreatedAt = time.Now().UTC()
	}

	existing, err := r.FindByUserAndComment(ctx, vote.UserID, vote.CommentID)
	if err != nil {
		if !errors.Is(err, votesErrors.ErrVoteNotFound) {
			return false, models.DirectionNone, fmt.Errorf("failed to check existing vote: %w", err)
		}

		query := `
			INSERT INTO votes (user_id, comment_id, direction, created_at)
			VALUES (:user_id, :comment_id, :direction, :created_at)`

		if _, err := sqlx.NamedExecContext(ctx, r.client.Executor(ctx), query, vote); err != nil {
			return false, models.DirectionNone, fmt.Errorf("failed to insert vote: %w", err)
		}

		return true, models.DirectionNone, nil
	}

	query := `
		UPDATE votes
		SET direction = $1
		WHERE user_id = $2 AND comment_id = $3`

	result, err := r.client.Executor(ctx).ExecContext(ctx, query, vote.Direction, vote.UserID, vote.CommentID)
	if err != nil {
		return false, existing.Direction, fmt.Errorf("failed to update vote: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, existing.Direction, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return false, existing.Direction, fmt.Errorf("vote not found for update")
	}

	return false, existing.Direction, nil
}

// Delete removes a vote. Returns (deleted, previousDirection).
func (r *postgresVoteRepository) Delete(ctx context.Context, userID, commentID uuid.UUID) (bool, int, error) {
	existing, err := r.FindByUserAndComment(ctx, userID, commentID)
	if err != nil {
		if errors.Is(err, votesErrors.ErrVoteNotFound) {
			return false, models.DirectionNone, nil
		}
		return false, models.DirectionNone, fmt.Errorf("failed to find vote: %w", err)
	}

	query := `DELETE FROM votes WHERE user_id = $1 AND comment_id = $2`

	result, err := r.client.Executor(ctx).ExecContext(ctx, query, userID, commentID)
	if err != nil {
		return false, existing.Direction, fmt.Errorf("failed to delete vote: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, existing.Direction, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return false, existing.Direction, fmt.Errorf("vote not found for deletion")
	}

	return true, existing.Direction, nil
}
