package comments

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wisp-social/wisp/comments/handlers"
)

// CommentsHandlers holds all the handlers this router needs.
type CommentsHandlers struct {
	CommentHandler *handlers.CommentHandler
}

// RegisterRoutes is the single entry point for setting up comment routes.
// Comments are a sub-resource of posts; the auth middleware is applied by the
// caller at the API group level.
func RegisterRoutes(router fiber.Router, h *CommentsHandlers) {
	router.Get("/posts/:postId/comments", h.CommentHandler.ListComments)
	router.Post("/posts/:postId/comments", h.CommentHandler.CreateComment)
}
