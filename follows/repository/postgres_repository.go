// Copyright (c) 2025 Wisp Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"
	"fmt"

	uuid "github.com/gofrs/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/wisp-social/wisp/internal/database/postgres"
)

// postgresRepository implements FollowRepository using raw SQL queries
type postgresRepository struct {
	client *postgres.Client
}

// NewPostgresRepository creates a new PostgreSQL repository for follows
func NewPostgresRepository(client *postgres.Client) FollowRepository {
	return &postgresRepository{client: client}
}

// Add records a follow edge idempotently
func (r *postgresRepository) Add(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	query := `
		INSERT INTO follows (follower_id, followee_id)
		VALUES ($1, $2)
		ON CONFLICT (follower_id, followee_id) DO NOTHING`

	result, err := r.client.Executor(ctx).ExecContext(ctx, query, followerID, followeeID)
	if err != nil {
		return false, fmt.Errorf("insert follow: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}

	return rows > 0, nil
}

// Remove deletes a follow edge
func (r *postgresRepository) Remove(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	query := `DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2`

	result, err := r.client.Executor(ctx).ExecContext(ctx, query, followerID, followeeID)
	if err != nil {
		return false, fmt.Errorf("delete follow: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}

	return rows > 0, nil
}

// Exists reports whether the directed edge exists
func (r *postgresRepository) Exists(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM follows WHERE follower_id = $1 AND followee_id = $2)`

	var exists bool
	err := sqlx.GetContext(ctx, r.client.Executor(ctx), &exists, query, followerID, followeeID)
	if err != nil {
		return false, fmt.Errorf("check follow: %w", err)
	}

	return exists, nil
}

// AreMutual reports whether both directed edges exist
func (r *postgresRepository) AreMutual(ctx context.Context, a, b uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM follows WHERE follower_id = $1 AND followee_id = $2)
			AND EXISTS (SELECT 1 FROM follows WHERE follower_id = $2 AND followee_id = $1)`

	var mutual bool
	err := sqlx.GetContext(ctx, r.client.Executor(ctx), &mutual, query, a, b)
	if err != nil {
		return false, fmt.Errorf("check mutual follow: %w", err)
	}

	return mutual, nil
}

// CountFollowers counts edges pointing at the user
func (r *postgresRepository) CountFollowers(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM follows WHERE followee_id = $1`

	var count int64
	err := sqlx.GetContext(ctx, r.client.Executor(ctx), &count, query, userID)
	if err != nil {
		return 0, fmt.Errorf("count followers: %w", err)
	}

	return count, nil
}

// CountFollowing counts edges leaving the user
func (r *postgresRepository) CountFollowing(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM follows WHERE follower_id = $1`

	var count int64
	err := sqlx.GetContext(ctx, r.client.Executor(ctx), &count, query, userID)
	if err != nil {
		return 0, fmt.Errorf("count following: %w", err)
	}

	return count, nil
}
