package models

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	uuid "github.com/gofrs/uuid"
)

// Cursor encodes a stable feed position: the (created_at, id) pair of the last
// item returned. Chronological feeds paginate strictly below this pair, so the
// page stays stable under insertion at the head.
type Cursor struct {
	CreatedAtMillis int64  `json:"t"`
	ID              string `json:"id"`
}

// Validate checks the cursor fields.
func (c *Cursor) Validate() error {
	if c.CreatedAtMillis <= 0 {
		return errors.New("cursor timestamp must be positive")
	}
	if _, err := uuid.FromString(c.ID); err != nil {
		return errors.New("cursor id must be a valid UUID")
	}
	return nil
}

// CreatedAt returns the cursor position as a UTC timestamp.
func (c *Cursor) CreatedAt() time.Time {
	return time.UnixMilli(c.CreatedAtMillis).UTC()
}

// EncodeCursor encodes cursor data into an opaque base64 string.
func EncodeCursor(c *Cursor) (string, error) {
	if c == nil {
		return "", nil
	}

	if err := c.Validate(); err != nil {
		return "", fmt.Errorf("invalid cursor data: %w", err)
	}

	jsonData, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal cursor data: %w", err)
	}

	return base64.URLEncoding.EncodeToString(jsonData), nil
}

// DecodeCursor decodes an opaque cursor string. An empty string decodes to nil
// (start of feed).
func DecodeCursor(cursor string) (*Cursor, error) {
	if cursor == "" {
		return nil, nil
	}

	decoded, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return nil, fmt.Errorf("failed to decode cursor: %w", err)
	}

	var c Cursor
	if err := json.Unmarshal(decoded, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cursor data: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid cursor data: %w", err)
	}

	return &c, nil
}

// CursorFromPost creates a cursor pointing at a post.
func CursorFromPost(p *Post) *Cursor {
	return &Cursor{
		CreatedAtMillis: p.CreatedAt.UnixMilli(),
		ID:              p.ID.String(),
	}
}
