package models

import (
	"time"

	postsModels "github.com/wisp-social/wisp/posts/models"
)

// FeedQuery is the decoded query string of a feed request.
type FeedQuery struct {
	Cursor string `schema:"cursor"`
	Limit  int    `schema:"limit"`
}

// FeedResponse is a page of per-viewer post projections.
type FeedResponse struct {
	Items      []postsModels.Response `json:"items"`
	NextCursor string                 `json:"nextCursor,omitempty"`
	HasNext    bool                   `json:"hasNext"`
}

// ProfileResponse is the per-viewer projection of a user profile. Bio is
// included only when the viewer is the target; the display name always is.
type ProfileResponse struct {
	ID               string    `json:"id"`
	DisplayName      string    `json:"displayName"`
	CreatedAt        time.Time `json:"createdAt"`
	Posts            int64     `json:"posts"`
	Followers        int64     `json:"followers"`
	Following        int64     `json:"following"`
	FollowedByViewer bool      `json:"followedByViewer"`
	Bio              *string   `json:"bio,omitempty"`
}
