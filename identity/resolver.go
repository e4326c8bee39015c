// Copyright (c) 2025 Wisp Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	platformconfig "github.com/wisp-social/wisp/internal/platform/config"
)

// Identity is the result of resolving a bearer credential: a stable opaque
// subject string from the identity provider, plus an optional email the core
// does not depend on.
type Identity struct {
	Subject string `json:"subject"`
	Email   string `json:"email,omitempty"`
}

// Resolver validates a bearer credential against the external identity
// provider and returns the subject it identifies.
type Resolver interface {
	Resolve(ctx context.Context, bearer string) (*Identity, error)
}

var (
	// ErrInvalidToken means the bearer is missing, malformed, expired, or
	// signed for the wrong issuer/audience. Maps to 401.
	ErrInvalidToken = errors.New("invalid bearer token")

	// ErrUnavailable means the provider could not be consulted. Maps to 503.
	ErrUnavailable = errors.New("identity provider unavailable")
)

// jwtResolver validates provider-issued ES256 tokens locally against the
// provider's published public key.
type jwtResolver struct {
	publicKey interface{}
	issuer    string
	audience  string
}

// NewJWTResolver parses the PEM public key once at startup and returns a
// resolver enforcing the configured issuer and audience.
func NewJWTResolver(cfg *platformconfig.IdentityConfig) (Resolver, error) {
	publicKey, err := jwt.ParseECPublicKeyFromPEM([]byte(cfg.PublicKey))
	if err != nil {
		return nil, fmt.Errorf("failed to parse EC public key: %w", err)
	}

	return &jwtResolver{
		publicKey: publicKey,
		issuer:    cfg.Issuer,
		audience:  cfg.Audience,
	}, nil
}

func (r *jwtResolver) Resolve(_ context.Context, bearer string) (*Identity, error) {
	if bearer == "" {
		return nil, ErrInvalidToken
	}

	opts := []jwt.ParserOption{
		jwt.WithIssuer(r.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{"ES256"}),
	}
	if r.audience != "" {
		opts = append(opts, jwt.WithAudience(r.audience))
	}

	token, err := jwt.Parse(bearer, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodECDSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return r.publicKey, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return nil, fmt.Errorf("%w: missing subject claim", ErrInvalidToken)
	}

	identity := &Identity{Subject: subject}
	if email, ok := claims["email"].(string); ok {
		identity.Email = email
	}

	return identity, nil
}
