package models

import (
	"io"
	"time"

	uuid "github.com/gofrs/uuid"
)

// Visibility is the access class of a post.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityFriends Visibility = "friends"
)

// Valid reports whether the value is one of the known access classes.
func (v Visibility) Valid() bool {
	return v == VisibilityPublic || v == VisibilityFriends
}

// Post is the stored post row. Counters are denormalized and maintained in the
// same transaction as their source rows.
type Post struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	AuthorID     uuid.UUID  `json:"authorId" db:"author_id"`
	Body         string     `json:"body" db:"body"`
	MediaKey     *string    `json:"-" db:"media_key"`
	Visibility   Visibility `json:"visibility" db:"visibility"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	ExpiresAt    time.Time  `json:"expiresAt" db:"expires_at"`
	SoftDeleted  bool       `json:"-" db:"soft_deleted"`
	ViewCount    int64      `json:"views" db:"view_count"`
	LikeCount    int64      `json:"likes" db:"like_count"`
	CommentCount int64      `json:"commentCount" db:"comment_count"`
}

// Projection is a post row joined with the viewer-dependent fields the read
// path needs: author display name and the viewer's like state, resolved in the
// same query as the row itself.
type Projection struct {
	Post
	AuthorDisplayName string `db:"author_display_name"`
	LikedByViewer     bool   `db:"liked_by_viewer"`
}

// Response is the wire shape of a post for a given viewer.
type Response struct {
	ID                string     `json:"id"`
	AuthorID          string     `json:"authorId"`
	AuthorDisplayName string     `json:"authorDisplayName"`
	Body              string     `json:"body"`
	Visibility        Visibility `json:"visibility"`
	CreatedAt         time.Time  `json:"createdAt"`
	ExpiresAt         time.Time  `json:"expiresAt"`
	HoursRemaining    float64    `json:"hoursRemaining"`
	Views             int64      `json:"views"`
	Likes             int64      `json:"likes"`
	CommentCount      int64      `json:"commentCount"`
	LikedByViewer     bool       `json:"likedByViewer"`
	MediaURL          *string    `json:"mediaUrl"`
}

// ToResponse builds the wire shape. mediaURL is resolved by the caller from
// the blob store; hours remaining is computed at serialization time.
func (p *Projection) ToResponse(now time.Time, mediaURL *string) Response {
	return Response{
		ID:                p.ID.String(),
		AuthorID:          p.AuthorID.String(),
		AuthorDisplayName: p.AuthorDisplayName,
		Body:              p.Body,
		Visibility:        p.Visibility,
		CreatedAt:         p.CreatedAt,
		ExpiresAt:         p.ExpiresAt,
		HoursRemaining:    p.ExpiresAt.Sub(now).Hours(),
		Views:             p.ViewCount,
		Likes:             p.LikeCount,
		CommentCount:      p.CommentCount,
		LikedByViewer:     p.LikedByViewer,
		MediaURL:          mediaURL,
	}
}

// MediaUpload carries an uploaded media stream into the service.
type MediaUpload struct {
	ContentType string
	Size        int64
	Reader      io.Reader
}

// CreatePostRequest represents the request payload for creating a post.
type CreatePostRequest struct {
	Body       string
	Visibility Visibility
	Media      *MediaUpload
}

// LikeResult is the outcome of a like or unlike: the current counter plus the
// caller's like state after the operation.
type LikeResult struct {
	Likes         int64 `json:"likes"`
	LikedByViewer bool  `json:"likedByViewer"`
}
