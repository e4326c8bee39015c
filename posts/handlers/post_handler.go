// Copyright (c) 2025 Wisp Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package handlers

import (
	"github.com/gofiber/fiber/v2"
	uuid "github.com/gofrs/uuid"
	"github.com/wisp-social/wisp/internal/apierr"
	"github.com/wisp-social/wisp/internal/middleware/authbearer"
	"github.com/wisp-social/wisp/posts/models"
	"github.com/wisp-social/wisp/posts/services"
)

// PostHandler handles HTTP requests for post operations
type PostHandler struct {
	postService services.PostService
}

// NewPostHandler creates a new post handler
func NewPostHandler(postService services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// CreatePost handles POST /posts (multipart/form-data: body, visibility, media)
func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
	viewer, err := authbearer.Viewer(c)
	if err != nil {
		return apierr.Handle(c, err)
	}

	req := &models.CreatePostRequest{
		Body:       c.FormValue("body"),
		Visibility: models.Visibility(c.FormValue("visibility", string(models.VisibilityPublic))),
	}

	if fileHeader, err := c.FormFile("media"); err == nil && fileHeader != nil {
		file, err := fileHeader.Open()
		if err != nil {
			return apierr.Handle(c, apierr.Invalid("media file is unreadable"))
		}
		defer file.Close()

		req.Media = &models.MediaUpload{
			ContentType: fileHeader.Header.Get("Content-Type"),
			Size:        fileHeader.Size,
			Reader:      file,
		}
	}

	response, err := h.postService.CreatePost(c.UserContext(), viewer.UserID, req)
	if err != nil {
		return apierr.Handle(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}

// GetPost handles GET /posts/:postId
func (h *PostHandler) GetPost(c *fiber.Ctx) error {
	viewer, err := authbearer.Viewer(c)
	if err != nil {
		return apierr.Handle(c, err)
	}

	postID, err := parsePostID(c)
	if err != nil {
		return apierr.Handle(c, err)
	}

	response, err := h.postService.GetPost(c.UserContext(), viewer.UserID, postID)
	if err != nil {
		return apierr.Handle(c, err)
	}

	return c.JSON(response)
}

// DeletePost handles DELETE /posts/:postId
func (h *PostHandler) DeletePost(c *fiber.Ctx) error {
	viewer, err := authbearer.Viewer(c)
	if err != nil {
		return apierr.Handle(c, err)
	}

	postID, err := parsePostID(c)
	if err != nil {
		return apierr.Handle(c, err)
	}

	if err := h.postService.DeletePost(c.UserContext(), viewer.UserID, postID); err != nil {
		return apierr.Handle(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Like handles POST /posts/:postId/like
func (h *PostHandler) Like(c *fiber.Ctx) error {
	viewer, err := authbearer.Viewer(c)
	if err != nil {
		return apierr.Handle(c, err)
	}

	postID, err := parsePostID(c)
	if err != nil {
		return apierr.Handle(c, err)
	}

	result, err := h.postService.Like(c.UserContext(), viewer.UserID, postID)
	if err != nil {
		return apierr.Handle(c, err)
	}

	return c.JSON(result)
}

// Unlike handles DELETE /posts/:postId/like
func (h *PostHandler) Unlike(c *fiber.Ctx) error {
	viewer, err := authbearer.Viewer(c)
	if err != nil {
		return apierr.Handle(c, err)
	}

	postID, err := parsePostID(c)
	if err != nil {
		return apierr.Handle(c, err)
	}

	result, err := h.postService.Unlike(c.UserContext(), viewer.UserID, postID)
	if err != nil {
		return apierr.Handle(c, err)
	}

	return c.JSON(result)
}

// RecordView handles POST /posts/:postId/view
func (h *PostHandler) RecordView(c *fiber.Ctx) error {
	viewer, err := authbearer.Viewer(c)
	if err != nil {
		return apierr.Handle(c, err)
	}

	postID, err := parsePostID(c)
	if err != nil {
		return apierr.Handle(c, err)
	}

	if err := h.postService.RecordView(c.UserContext(), viewer.UserID, postID); err != nil {
		return apierr.Handle(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func parsePostID(c *fiber.Ctx) (uuid.UUID, error) {
	postID, err := uuid.FromString(c.Params("postId"))
	if err != nil {
		return uuid.Nil, apierr.Invalid("postId must be a valid UUID")
	}
	return postID, nil
}
