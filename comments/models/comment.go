package models

import (
	"time"

	uuid "github.com/gofrs/uuid"
)

// Comment is a stored reply attached to exactly one post. Vote counters are
// denormalized and must equal the vote-table projection at all times.
type Comment struct {
	ID          uuid.UUID `json:"id" db:"id"`
	PostID      uuid.UUID `json:"postId" db:"post_id"`
	AuthorID    uuid.UUID `json:"authorId" db:"author_id"`
	Body        string    `json:"body" db:"body"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	ExpiresAt   time.Time `json:"expiresAt" db:"expires_at"`
	Upvotes     int64     `json:"upvotes" db:"upvotes"`
	Downvotes   int64     `json:"downvotes" db:"downvotes"`
	SoftDeleted bool      `json:"-" db:"soft_deleted"`
}

// Projection is a comment row joined with viewer-dependent fields: the author
// display name and the viewer's own vote direction (0 when none).
type Projection struct {
	Comment
	AuthorDisplayName string `db:"author_display_name"`
	ViewerDirection   int    `db:"viewer_direction"`
}

// Response is the wire shape of a comment for a given viewer.
type Response struct {
	ID                string    `json:"id"`
	PostID            string    `json:"postId"`
	AuthorID          string    `json:"authorId"`
	AuthorDisplayName string    `json:"authorDisplayName"`
	Body              string    `json:"body"`
	CreatedAt         time.Time `json:"createdAt"`
	ExpiresAt         time.Time `json:"expiresAt"`
	Upvotes           int64     `json:"upvotes"`
	Downvotes         int64     `json:"downvotes"`
	CallerDirection   string    `json:"callerDirection"`
}

// ToResponse builds the wire shape.
func (p *Projection) ToResponse() Response {
	return Response{
		ID:                p.ID.String(),
		PostID:            p.PostID.String(),
		AuthorID:          p.AuthorID.String(),
		AuthorDisplayName: p.AuthorDisplayName,
		Body:              p.Body,
		CreatedAt:         p.CreatedAt,
		ExpiresAt:         p.ExpiresAt,
		Upvotes:           p.Upvotes,
		Downvotes:         p.Downvotes,
		CallerDirection:   DirectionString(p.ViewerDirection),
	}
}

// DirectionString renders a stored vote direction for the wire.
func DirectionString(direction int) string {
	switch direction {
	case 1:
		return "up"
	case 2:
		return "down"
	default:
		return ""
	}
}

// CreateCommentRequest represents the request payload for creating a comment.
type CreateCommentRequest struct {
	Body string `json:"body" form:"body"`
}

// ListResponse is a page of comments.
type ListResponse struct {
	Comments   []Response `json:"comments"`
	NextCursor string     `json:"nextCursor,omitempty"`
	HasNext    bool       `json:"hasNext"`
}
