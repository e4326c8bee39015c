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

	uuid "github.com/gofrs/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/wisp-social/wisp/internal/database/postgres"
	usersErrors "github.com/wisp-social/wisp/users/errors"
	"github.com/wisp-social/wisp/users/models"
)

// postgresRepository implements UserRepository using raw SQL queries
type postgresRepository struct {
	client *postgres.Client
}

// NewPostgresRepository creates a new PostgreSQL repository for users
func NewPostgresRepository(client *postgres.Client) UserRepository {
	return &postgresRepository{client: client}
}

// Create inserts a new user row
func (r *postgresRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, external_subject, display_name, bio, profile_public, created_at)
		VALUES (:id, :external_subject, :display_name, :bio, :profile_public, :created_at)
	`

	_, err := sqlx.NamedExecContext(ctx, r.client.Executor(ctx), query, user)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return usersErrors.ErrDuplicateSubject
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// FindByID retrieves a user by its ID
func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `
		SELECT id, external_subject, display_name, bio, profile_public, created_at
		FROM users
		WHERE id = $1
	`

	var user models.User
	err := sqlx.GetContext(ctx, r.client.Executor(ctx), &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, usersErrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &user, nil
}

// FindBySubject retrieves a user by its external subject
func (r *postgresRepository) FindBySubject(ctx context.Context, subject string) (*models.User, error) {
	query := `
		SELECT id, external_subject, display_name, bio, profile_public, created_at
		FROM users
		WHERE external_subject = $1
	`

	var user models.User
	err := sqlx.GetContext(ctx, r.client.Executor(ctx), &user, query, subject)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, usersErrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user by subject: %w", err)
	}

	return &user, nil
}

// UpdateProfile applies the mutable profile fields
func (r *postgresRepository) UpdateProfile(ctx context.Context, id uuid.UUID, displayName, bio string) error {
	query := `
		UPDATE users
		SET display_name = $1, bio = $2
		WHERE id = $3
	`

	result, err := r.client.Executor(ctx).ExecContext(ctx, query, displayName, bio, id)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return usersErrors.ErrUserNotFound
	}

	return nil
}
