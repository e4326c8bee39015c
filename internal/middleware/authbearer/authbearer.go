// Copyright (c) 2025 Wisp Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package authbearer

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/wisp-social/wisp/identity"
	"github.com/wisp-social/wisp/internal/apierr"
	"github.com/wisp-social/wisp/internal/pkg/log"
	"github.com/wisp-social/wisp/internal/types"
	"github.com/wisp-social/wisp/users/models"
)

// UserEnsurer provisions the local account backing an external subject.
// Satisfied by the users service.
type UserEnsurer interface {
	EnsureBySubject(ctx context.Context, subject string) (*models.User, error)
}

// Config defines the config for the bearer-auth middleware.
type Config struct {
	Resolver identity.Resolver
	Users    UserEnsurer
}

// New creates a middleware that authenticates every request: it extracts the
// bearer credential, resolves it to an external subject, ensures a local user
// row exists, and stores the viewer identity in the request locals.
func New(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		bearer := extractBearer(c)
		if bearer == "" {
			return apierr.Handle(c, apierr.New(apierr.KindUnauthenticated, "missing or invalid bearer"))
		}

		resolved, err := cfg.Resolver.Resolve(c.UserContext(), bearer)
		if err != nil {
			if errors.Is(err, identity.ErrUnavailable) {
				return apierr.Handle(c, apierr.Wrap(apierr.KindStorageUnavailable, "identity provider unavailable", err))
			}
			return apierr.Handle(c, apierr.Wrap(apierr.KindUnauthenticated, "invalid bearer", err))
		}

		user, err := cfg.Users.EnsureBySubject(c.UserContext(), resolved.Subject)
		if err != nil {
			log.ErrorWithContext(c.UserContext(), "failed to ensure user for subject: %v", err)
			return apierr.Handle(c, apierr.Wrap(apierr.KindInternal, "failed to resolve viewer", err))
		}

		c.Locals(types.UserCtxKey, types.UserContext{
			UserID:      user.ID,
			Subject:     user.ExternalSubject,
			DisplayName: user.DisplayName,
		})

		return c.Next()
	}
}

// Viewer retrieves the authenticated viewer from the request locals. It only
// fails when a handler is mounted outside the auth middleware.
func Viewer(c *fiber.Ctx) (types.UserContext, error) {
	viewer, ok := c.Locals(types.UserCtxKey).(types.UserContext)
	if !ok {
		return types.UserContext{}, apierr.New(apierr.KindUnauthenticated, "missing viewer context")
	}
	return viewer, nil
}

func extractBearer(c *fiber.Ctx) string {
	authHeader := c.Get(types.HeaderAuthorization)
	if authHeader == "" || !strings.HasPrefix(authHeader, types.BearerPrefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, types.BearerPrefix))
}
