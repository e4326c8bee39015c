// Copyright (c) 2025 Wisp Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package handlers

import (
	"github.com/gofiber/fiber/v2"
	uuid "github.com/gofrs/uuid"
	"github.com/wisp-social/wisp/comments/models"
	"github.com/wisp-social/wisp/comments/services"
	"github.com/wisp-social/wisp/internal/apierr"
	"github.com/wisp-social/wisp/internal/middleware/authbearer"
)

// CommentHandler handles HTTP requests for comment operations
type CommentHandler struct {
	commentService services.CommentService
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(commentService services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// CreateComment handles POST /posts/:postId/comments (form field body)
func (h *CommentHandler) CreateComment(c *fiber.Ctx) error {
	viewer, err := authbearer.Viewer(c)
	if err != nil {
		return apierr.Handle(c, err)
	}

	postID, err := uuid.FromString(c.Params("postId"))
	if err != nil {
		return apierr.Handle(c, apierr.Invalid("postId must be a valid UUID"))
	}

	req := &models.CreateCommentRequest{Body: c.FormValue("body")}

	response, err := h.commentService.CreateComment(c.UserContext(), &viewer, postID, req)
	if err != nil {
		return apierr.Handle(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}

// ListComments handles GET /posts/:postId/comments
func (h *CommentHandler) ListComments(c *fiber.Ctx) error {
	viewer, err := authbearer.Viewer(c)
	if err != nil {
		return apierr.Handle(c, err)
	}

	postID, err := uuid.FromString(c.Params("postId"))
	if err != nil {
		return apierr.Handle(c, apierr.Invalid("postId must be a valid UUID"))
	}

	response, err := h.commentService.ListComments(
		c.UserContext(), viewer.UserID, postID,
		c.Query("cursor"), c.QueryInt("limit"),
	)
	if err != nil {
		return apierr.Handle(c, err)
	}

	return c.JSON(response)
}
