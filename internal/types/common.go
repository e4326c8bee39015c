package types

import uuid "github.com/gofrs/uuid"

// HTTP Header Constants
const (
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderRequestID     = "X-Request-ID"
)

// Authentication Constants
const (
	BearerPrefix = "Bearer "
)

// UserCtxKey is the fiber locals key the auth middleware stores the viewer under.
const UserCtxKey = "viewer"

// UserContext is the authenticated viewer identity attached to every request
// after bearer resolution. UserID is the local account row; Subject is the
// stable identifier issued by the external identity provider.
type UserContext struct {
	UserID      uuid.UUID
	Subject     string
	DisplayName string
}
