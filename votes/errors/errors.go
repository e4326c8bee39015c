package errors

import "errors"

// Vote service specific errors
var (
	ErrVoteNotFound = errors.New("vote not found")
)
