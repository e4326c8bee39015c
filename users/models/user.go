package models

import (
	"time"

	uuid "github.com/gofrs/uuid"
)

// User is a local account row. One exists per distinct external subject; it is
// created on first authenticated contact and looked up on every request after.
type User struct {
	ID              uuid.UUID `json:"id" db:"id"`
	ExternalSubject string    `json:"-" db:"external_subject"`
	DisplayName     string    `json:"displayName" db:"display_name"`
	Bio             string    `json:"bio" db:"bio"`
	ProfilePublic   bool      `json:"-" db:"profile_public"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
}

// UpdateProfileRequest carries the mutable profile fields. Nil means "leave
// unchanged".
type UpdateProfileRequest struct {
	DisplayName *string `json:"displayName,omitempty"`
	Bio         *string `json:"bio,omitempty"`
}
