package errors

import "errors"

// User service specific errors
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrDuplicateSubject = errors.New("external subject already registered")
)
