// Copyright (c) 2025 Wisp Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"

	uuid "github.com/gofrs/uuid"
)

// FollowRepository defines persistence operations for the directed follow
// relation.
type FollowRepository interface {
	// Add records a follow edge idempotently. Reports whether a new edge was
	// inserted.
	Add(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error)

	// Remove deletes a follow edge. Reports whether an edge existed.
	Remove(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error)

	// Exists reports whether the directed edge follower→followee exists.
	Exists(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error)

	// AreMutual reports whether both directed edges exist.
	AreMutual(ctx context.Context, a, b uuid.UUID) (bool, error)

	// CountFollowers counts edges pointing at the user.
	CountFollowers(ctx context.Context, userID uuid.UUID) (int64, error)

	// CountFollowing counts edges leaving the user.
	CountFollowing(ctx context.Context, userID uuid.UUID) (int64, error)
}
