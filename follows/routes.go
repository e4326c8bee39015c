package follows

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wisp-social/wisp/follows/handlers"
)

// FollowsHandlers holds all the handlers this router needs.
type FollowsHandlers struct {
	FollowHandler *handlers.FollowHandler
}

// RegisterRoutes is the single entry point for setting up follow routes.
// The auth middleware is applied by the caller at the API group level.
func RegisterRoutes(router fiber.Router, h *FollowsHandlers) {
	router.Post("/users/:userId/follow", h.FollowHandler.Follow)
	router.Delete("/users/:userId/follow", h.FollowHandler.Unfollow)
}
