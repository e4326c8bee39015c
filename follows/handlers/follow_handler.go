// Copyright (c) 2025 Wisp Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package handlers

import (
	"github.com/gofiber/fiber/v2"
	uuid "github.com/gofrs/uuid"
	"github.com/wisp-social/wisp/follows/services"
	"github.com/wisp-social/wisp/internal/apierr"
	"github.com/wisp-social/wisp/internal/middleware/authbearer"
)

// FollowHandler handles HTTP requests for follow operations
type FollowHandler struct {
	followService services.FollowService
}

// NewFollowHandler creates a new follow handler
func NewFollowHandler(followService services.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

// Follow handles POST /users/:userId/follow
func (h *FollowHandler) Follow(c *fiber.Ctx) error {
	viewer, err := authbearer.Viewer(c)
	if err != nil {
		return apierr.Handle(c, err)
	}

	followeeID, err := uuid.FromString(c.Params("userId"))
	if err != nil {
		return apierr.Handle(c, apierr.Invalid("userId must be a valid UUID"))
	}

	if err := h.followService.Follow(c.UserContext(), viewer.UserID, followeeID); err != nil {
		return apierr.Handle(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Unfollow handles DELETE /users/:userId/follow
func (h *FollowHandler) Unfollow(c *fiber.Ctx) error {
	viewer, err := authbearer.Viewer(c)
	if err != nil {
		return apierr.Handle(c, err)
	}

	followeeID, err := uuid.FromString(c.Params("userId"))
	if err != nil {
		return apierr.Handle(c, apierr.Invalid("userId must be a valid UUID"))
	}

	if err := h.followService.Unfollow(c.UserContext(), viewer.UserID, followeeID); err != nil {
		return apierr.Handle(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
