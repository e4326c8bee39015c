package models

import (
	"time"

	uuid "github.com/gofrs/uuid"
)

// Vote direction values as stored.
const (
	DirectionNone = 0
	DirectionUp   = 1
	DirectionDown = 2
)

// Vote is a (user, comment, direction) tuple, unique on (user, comment).
type Vote struct {
	UserID    uuid.UUID `json:"userId" db:"user_id"`
	CommentID uuid.UUID `json:"commentId" db:"comment_id"`
	Direction int       `json:"direction" db:"direction"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Action is a parsed vote request: up, down, or remove.
type Action int

const (
	ActionUp Action = iota
	ActionDown
	ActionRemove
)

// ParseAction maps the wire direction field to an action.
func ParseAction(direction string) (Action, bool) {
	switch direction {
	case "up":
		return ActionUp, true
	case "down":
		return ActionDown, true
	case "remove":
		return ActionRemove, true
	default:
		return 0, false
	}
}

// Direction returns the stored direction an action writes, or DirectionNone
// for remove.
func (a Action) Direction() int {
	switch a {
	case ActionUp:
		return DirectionUp
	case ActionDown:
		return DirectionDown
	default:
		return DirectionNone
	}
}

// Result is the post-update vote state of a comment.
type Result struct {
	Upvotes         int64  `json:"upvotes"`
	Downvotes       int64  `json:"downvotes"`
	CallerDirection string `json:"callerDirection"`
}
