// Copyright (c) 2025 Wisp Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"fmt"
	"time"

	uuid "github.com/gofrs/uuid"
	"github.com/wisp-social/wisp/feed/models"
	followsServices "github.com/wisp-social/wisp/follows/services"
	"github.com/wisp-social/wisp/internal/apierr"
	postsModels "github.com/wisp-social/wisp/posts/models"
	postsRepository "github.com/wisp-social/wisp/posts/repository"
	"github.com/wisp-social/wisp/storage/provider"
	usersServices "github.com/wisp-social/wisp/users/services"
)

const (
	defaultFeedLimit = 20
	maxFeedLimit     = 50
)

// FeedService exposes the feed projections and profile reads.
type FeedService interface {
	// HomeFeed returns live posts visible to the viewer, newest first.
	HomeFeed(ctx context.Context, viewerID uuid.UUID, query *models.FeedQuery) (*models.FeedResponse, error)

	// UserFeed returns the target user's live posts visible to the viewer.
	UserFeed(ctx context.Context, viewerID, targetID uuid.UUID, query *models.FeedQuery) (*models.FeedResponse, error)

	// UserProfile returns the per-viewer profile projection.
	UserProfile(ctx context.Context, viewerID, targetID uuid.UUID) (*models.ProfileResponse, error)
}

type feedService struct {
	postRepo      postsRepository.PostRepository
	userService   usersServices.UserService
	followService followsServices.FollowService
	blob          provider.BlobProvider
}

// NewFeedService wires the feed service with its dependencies.
func NewFeedService(postRepo postsRepository.PostRepository, userService usersServices.UserService, followService followsServices.FollowService, blob provider.BlobProvider) FeedService {
	return &feedService{
		postRepo:      postRepo,
		userService:   userService,
		followService: followService,
		blob:          blob,
	}
}

func (s *feedService) HomeFeed(ctx context.Context, viewerID uuid.UUID, query *models.FeedQuery) (*models.FeedResponse, error) {
	return s.feed(ctx, viewerID, nil, query)
}

func (s *feedService) UserFeed(ctx context.Context, viewerID, targetID uuid.UUID, query *models.FeedQuery) (*models.FeedResponse, error) {
	// Resolve the target first so an unknown user reads as not_found rather
	// than an empty feed.
	if _, err := s.userService.GetByID(ctx, targetID); err != nil {
		return nil, err
	}

	return s.feed(ctx, viewerID, &targetID, query)
}

// feed runs one visibility-filtered query and serializes the page. The
// projection rows already carry the viewer-dependent fields; only media URLs
// need resolving afterwards.
func (s *feedService) feed(ctx context.Context, viewerID uuid.UUID, authorID *uuid.UUID, query *models.FeedQuery) (*models.FeedResponse, error) {
	cursor, err := postsModels.DecodeCursor(query.Cursor)
	if err != nil {
		return nil, apierr.Invalid("invalid cursor")
	}

	limit := query.Limit
	if limit <= 0 {
		limit = defaultFeedLimit
	}
	if limit > maxFeedLimit {
		limit = maxFeedLimit
	}

	// One extra row detects the next page without a count query.
	rows, err := s.postRepo.FeedForViewer(ctx, viewerID, authorID, cursor, limit+1)
	if err != nil {
		return nil, fmt.Errorf("failed to query feed: %w", err)
	}

	hasNext := len(rows) > limit
	if hasNext {
		rows = rows[:limit]
	}

	now := time.Now().UTC()
	response := &models.FeedResponse{
		Items:   make([]postsModels.Response, 0, len(rows)),
		HasNext: hasNext,
	}

	for _, row := range rows {
		var mediaURL *string
		if row.MediaKey != nil {
			url, err := s.blob.URLFor(ctx, *row.MediaKey)
			if err != nil {
				return nil, apierr.Wrap(apierr.KindStorageUnavailable, "blob store unavailable", err)
			}
			mediaURL = &url
		}
		response.Items = append(response.Items, row.ToResponse(now, mediaURL))
	}

	if hasNext && len(rows) > 0 {
		last := rows[len(rows)-1]
		next, err := postsModels.EncodeCursor(postsModels.CursorFromPost(&last.Post))
		if err != nil {
			return nil, fmt.Errorf("failed to encode cursor: %w", err)
		}
		response.NextCursor = next
	}

	return response, nil
}

func (s *feedService) UserProfile(ctx context.Context, viewerID, targetID uuid.UUID) (*models.ProfileResponse, error) {
	user, err := s.userService.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.CountLiveByAuthor(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to count posts: %w", err)
	}

	followers, following, err := s.followService.Counts(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to count follows: %w", err)
	}

	followedByViewer := false
	if viewerID != targetID {
		followedByViewer, err = s.followService.Follows(ctx, viewerID, targetID)
		if err != nil {
			return nil, fmt.Errorf("failed to check follow state: %w", err)
		}
	}

	response := &models.ProfileResponse{
		ID:               user.ID.String(),
		DisplayName:      user.DisplayName,
		CreatedAt:        user.CreatedAt,
		Posts:            posts,
		Followers:        followers,
		Following:        following,
		FollowedByViewer: followedByViewer,
	}

	// Editable fields are only disclosed to their owner.
	if viewerID == targetID {
		bio := user.Bio
		response.Bio = &bio
	}

	return response, nil
}
