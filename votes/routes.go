package votes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wisp-social/wisp/votes/handlers"
)

// VotesHandlers holds all the handlers this router needs.
type VotesHandlers struct {
	VoteHandler *handlers.VoteHandler
}

// RegisterRoutes is the single entry point for setting up vote routes.
// The auth middleware is applied by the caller at the API group level.
func RegisterRoutes(router fiber.Router, h *VotesHandlers) {
	router.Post("/comments/:commentId/vote", h.VoteHandler.Vote)
}
