package users

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wisp-social/wisp/users/handlers"
)

// UsersHandlers holds all the handlers this router needs.
type UsersHandlers struct {
	UserHandler *handlers.UserHandler
}

// RegisterRoutes is the single entry point for setting up account routes.
// The auth middleware is applied by the caller at the API group level.
func RegisterRoutes(router fiber.Router, h *UsersHandlers) {
	router.Patch("/users/me", h.UserHandler.UpdateMe)
}
