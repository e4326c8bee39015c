// Copyright (c) 2025 Wisp Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"

	uuid "github.com/gofrs/uuid"
	"github.com/wisp-social/wisp/votes/models"
)

// VoteRepository defines persistence operations for comment votes.
type VoteRepository interface {
	// FindByUserAndComment retrieves a user's vote on a specific comment.
	// Returns ErrVoteNotFound when no vote exists.
	FindByUserAndComment(ctx context.Context, userID, commentID uuid.UUID) (*models.Vote, error)

	// Upsert inserts a new vote or updates an existing vote's direction.
	// Returns (created, previousDirection): created=true means a new row was
	// inserted; previousDirection is DirectionNone when none existed.
	Upsert(ctx context.Context, vote *models.Vote) (bool, int, error)

	// Delete removes a vote. Returns (deleted, previousDirection):
	// deleted=false means no vote existed.
	Delete(ctx context.Context, userID, commentID uuid.UUID) (bool, int, error)
}
