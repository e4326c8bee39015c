// Copyright (c) 2025 Wisp Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"

	uuid "github.com/gofrs/uuid"
	"github.com/wisp-social/wisp/users/models"
)

// UserRepository defines persistence operations for local accounts.
type UserRepository interface {
	// Create inserts a user row. Returns ErrDuplicateSubject if the external
	// subject already has an account.
	Create(ctx context.Context, user *models.User) error

	// FindByID retrieves a user by primary key.
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// FindBySubject retrieves a user by external subject.
	FindBySubject(ctx context.Context, subject string) (*models.User, error)

	// UpdateProfile applies the mutable profile fields.
	UpdateProfile(ctx context.Context, id uuid.UUID, displayName, bio string) error
}
