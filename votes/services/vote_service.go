// Copyright (c) 2025 Wisp Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"errors"
	"fmt"

	uuid "github.com/gofrs/uuid"
	commentsErrors "github.com/wisp-social/wisp/comments/errors"
	commentsModels "github.com/wisp-social/wisp/comments/models"
	commentRepository "github.com/wisp-social/wisp/comments/repository"
	"github.com/wisp-social/wisp/internal/apierr"
	"github.com/wisp-social/wisp/lifecycle"
	postsRepository "github.com/wisp-social/wisp/posts/repository"
	votesErrors "github.com/wisp-social/wisp/votes/errors"
	"github.com/wisp-social/wisp/votes/models"
	voteRepository "github.com/wisp-social/wisp/votes/repository"
)

// VoteService defines the interface for vote operations
type VoteService interface {
	// Vote creates, flips, or removes a vote on a comment. All vote
	// transitions, counter deltas, lifetime extension, and toxicity
	// termination commit in one transaction.
	Vote(ctx context.Context, callerID, commentID uuid.UUID, action models.Action) (*models.Result, error)
}

// voteService implements the VoteService interface
type voteService struct {
	voteRepo    voteRepository.VoteRepository
	commentRepo commentRepository.CommentRepository
	postRepo    postsRepository.PostRepository
}

// NewVoteService creates a new instance of the vote service
func NewVoteService(voteRepo voteRepository.VoteRepository, commentRepo commentRepository.CommentRepository, postRepo postsRepository.PostRepository) VoteService {
	return &voteService{
		voteRepo:    voteRepo,
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// Vote handles all vote transitions atomically:
//   - new vote: insert row, apply counter delta
//   - same direction again: no-op delta, safe for client retries
//   - flip: update row, apply both counter deltas
//   - remove: delete row, reverse the prior counter
//
// A transition that nets a new upvote extends the comment's lifetime; one that
// raises downvotes to the toxicity threshold terminates the comment and its
// parent post in the same transaction.
func (s *voteService) Vote(ctx context.Context, callerID, commentID uuid.UUID, action models.Action) (*models.Result, error) {
	var result *models.Result

	err := s.commentRepo.WithTransaction(ctx, func(txCtx context.Context) error {
		// 1. The comment must exist; terminated comments still accept votes.
		comment, err := s.commentRepo.FindByID(txCtx, commentID)
		if err != nil {
			if errors.Is(err, commentsErrors.ErrCommentNotFound) {
				return apierr.NotFound("comment")
			}
			return fmt.Errorf("failed to find comment: %w", err)
		}

		// 2. Determine the prior direction, if any.
		prior := models.DirectionNone
		existing, err := s.voteRepo.FindByUserAndComment(txCtx, callerID, commentID)
		if err != nil {
			if !errors.Is(err, votesErrors.ErrVoteNotFound) {
				return fmt.Errorf("failed to find existing vote: %w", err)
			}
		} else {
			prior = existing.Direction
		}

		// 3. Apply the vote-row mutation and work out the counter deltas.
		upDelta, downDelta := 0, 0
		newUpvote := false
		caller := models.DirectionNone

		switch action {
		case models.ActionRemove:
			if prior != models.DirectionNone {
				deleted, previous, err := s.voteRepo.Delete(txCtx, callerID, commentID)
				if err != nil {
					return fmt.Errorf("failed to delete vote: %w", err)
				}
				if deleted {
					// Removing an up does not shorten the lifetime; only the
					// counter reverses.
					if previous == models.DirectionUp {
						upDelta = -1
					} else {
						downDelta = -1
					}
				}
			}

		case models.ActionUp, models.ActionDown:
			direction := action.Direction()
			caller = direction

			if prior == direction {
				// Same direction twice in succession: identical terminal
				// state, no-op delta.
				break
			}

			vote := &models.Vote{
				UserID:    callerID,
				CommentID: commentID,
				Direction: direction,
			}
			_, previous, err := s.voteRepo.Upsert(txCtx, vote)
			if err != nil {
				return fmt.Errorf("failed to upsert vote: %w", err)
			}

			if direction == models.DirectionUp {
				// A fresh upvote and a down-to-up flip both count as a new
				// upvote event.
				upDelta = 1
				newUpvote = true
				if previous == models.DirectionDown {
					downDelta = -1
				}
			} else {
				downDelta = 1
				if previous == models.DirectionUp {
					upDelta = -1
				}
			}

		default:
			return apierr.Invalid("direction must be up, down, or remove")
		}

		// 4. Apply counter deltas in the same transaction as the vote row.
		if upDelta != 0 || downDelta != 0 {
			comment, err = s.commentRepo.AdjustVoteCounts(txCtx, commentID, upDelta, downDelta)
			if err != nil {
				return fmt.Errorf("failed to update comment counters: %w", err)
			}
		}

		// 5. A net new upvote extends the lifetime, applied at vote time so
		// readers always see the effect of all historical votes.
		if newUpvote {
			extended := lifecycle.ApplyUpvote(comment.ExpiresAt, comment.CreatedAt)
			if err := s.commentRepo.SetExpiry(txCtx, commentID, extended); err != nil {
				return fmt.Errorf("failed to extend comment expiry: %w", err)
			}
		}

		// 6. Crossing the toxicity threshold terminates the comment and its
		// parent post. Votes after termination are still recorded above but
		// never re-fire the transition.
		if downDelta > 0 && lifecycle.ApplyDownvote(comment.Downvotes) && !comment.SoftDeleted {
			if _, err := s.commentRepo.SoftDelete(txCtx, commentID); err != nil {
				return fmt.Errorf("failed to terminate comment: %w", err)
			}
			if _, err := s.postRepo.SoftDelete(txCtx, comment.PostID); err != nil {
				return fmt.Errorf("failed to terminate parent post: %w", err)
			}
		}

		result = &models.Result{
			Upvotes:         comment.Upvotes,
			Downvotes:       comment.Downvotes,
			CallerDirection: commentsModels.DirectionString(caller),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
