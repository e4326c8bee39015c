package posts

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wisp-social/wisp/posts/handlers"
)

// PostsHandlers holds all the handlers this router needs.
type PostsHandlers struct {
	PostHandler *handlers.PostHandler
}

// RegisterRoutes is the single entry point for setting up post routes.
// The auth middleware is applied by the caller at the API group level.
func RegisterRoutes(router fiber.Router, h *PostsHandlers) {
	group := router.Group("/posts")

	group.Post("/", h.PostHandler.CreatePost)

	group.Get("/:postId", h.PostHandler.GetPost)
	group.Delete("/:postId", h.PostHandler.DeletePost)

	group.Post("/:postId/like", h.PostHandler.Like)
	group.Delete("/:postId/like", h.PostHandler.Unlike)
	group.Post("/:postId/view", h.PostHandler.RecordView)
}
