package errors

import "errors"

// Post service specific errors
var (
	ErrPostNotFound  = errors.New("post not found")
	ErrNotPostAuthor = errors.New("caller is not the post author")
	ErrInvalidCursor = errors.New("invalid cursor")
)
