package errors

import "errors"

// Comment service specific errors
var (
	ErrCommentNotFound = errors.New("comment not found")
)
