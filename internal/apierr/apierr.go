// Copyright (c) 2025 Wisp Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package apierr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Kind is the stable error taxonomy shared by every endpoint. The wire value
// is the snake_case string; the HTTP status is derived from it and nowhere else.
type Kind string

const (
	KindInvalidInput       Kind = "invalid_input"
	KindUnauthenticated    Kind = "unauthenticated"
	KindForbidden          Kind = "forbidden"
	KindNotFound           Kind = "not_found"
	KindConflict           Kind = "conflict"
	KindPayloadTooLarge    Kind = "payload_too_large"
	KindUnsupportedMedia   Kind = "unsupported_media"
	KindRateLimited        Kind = "rate_limited"
	KindInternal           Kind = "internal"
	KindStorageUnavailable Kind = "storage_unavailable"
)

// HTTPStatus maps a kind to its status code.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case KindUnsupportedMedia:
		return http.StatusUnsupportedMediaType
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindStorageUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error is a typed service error carrying a taxonomy kind and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a typed error with the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates a typed error wrapping a cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// NotFound is a shorthand for the most common service error.
func NotFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Message: entity + " not found"}
}

// Invalid is a shorthand for validation failures.
func Invalid(message string) *Error {
	return &Error{Kind: KindInvalidInput, Message: message}
}

// KindOf extracts the taxonomy kind from any error in the chain,
// defaulting to internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// body matches the uniform error envelope {"error":{"kind","message"}}.
type body struct {
	Error payload `json:"error"`
}

type payload struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// Handle serializes a service error onto the fiber response. Unknown errors
// surface as internal with a generic message so internals never leak.
func Handle(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}

	var e *Error
	if !errors.As(err, &e) {
		e = &Error{Kind: KindInternal, Message: "an unexpected error occurred", Cause: err}
	}

	return c.Status(e.Kind.HTTPStatus()).JSON(body{Error: payload{Kind: e.Kind, Message: e.Message}})
}
