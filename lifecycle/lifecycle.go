// Copyright (c) 2025 Wisp Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package lifecycle centralizes the expiry and termination policy for posts
// and comments. Every function is pure: callers pass the entity snapshot and
// the current time, and are responsible for persisting the decision.
package lifecycle

import "time"

// Policy constants. Extensions are applied at vote time, never recomputed at
// read time, so a stored expires_at always reflects all historical votes.
const (
	PostTTL           = 24 * time.Hour
	CommentTTL        = 7 * 24 * time.Hour
	UpvoteExtension   = 6 * time.Hour
	ToxicityThreshold = 5
	MaxLifetime       = 30 * 24 * time.Hour
	ViewDedupWindow   = time.Hour
)

// Kind distinguishes the two entity families the policy covers.
type Kind int

const (
	KindPost Kind = iota
	KindComment
)

// InitialExpiry returns the expiry assigned at creation time.
func InitialExpiry(kind Kind, createdAt time.Time) time.Time {
	if kind == KindComment {
		return createdAt.Add(CommentTTL)
	}
	return createdAt.Add(PostTTL)
}

// ApplyUpvote returns the expiry after one upvote event: the current expiry
// shifted by UpvoteExtension, capped at MaxLifetime from creation. One call
// per upvote event.
func ApplyUpvote(expiresAt, createdAt time.Time) time.Time {
	extended := expiresAt.Add(UpvoteExtension)
	cap := createdAt.Add(MaxLifetime)
	if extended.After(cap) {
		return cap
	}
	return extended
}

// ApplyDownvote reports whether the comment must terminate, given its downvote
// count after the increment.
func ApplyDownvote(downvotes int64) bool {
	return downvotes >= ToxicityThreshold
}

// ShouldReap reports whether the reaper must soft-delete the entity now.
func ShouldReap(expiresAt time.Time, softDeleted bool, now time.Time) bool {
	return !softDeleted && !now.Before(expiresAt)
}
