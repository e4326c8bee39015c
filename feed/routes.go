package feed

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wisp-social/wisp/feed/handlers"
)

// FeedHandlers holds all the handlers this router needs.
type FeedHandlers struct {
	FeedHandler *handlers.FeedHandler
}

// RegisterRoutes is the single entry point for setting up feed routes.
// The auth middleware is applied by the caller at the API group level.
func RegisterRoutes(router fiber.Router, h *FeedHandlers) {
	router.Get("/feed", h.FeedHandler.HomeFeed)

	// "me" must register before the parameterized routes.
	router.Get("/users/me/profile", h.FeedHandler.MyProfile)
	router.Get("/users/:userId/profile", h.FeedHandler.UserProfile)
	router.Get("/users/:userId/posts", h.FeedHandler.UserFeed)
}
