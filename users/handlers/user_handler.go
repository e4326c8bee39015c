// Copyright (c) 2025 Wisp Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wisp-social/wisp/internal/apierr"
	"github.com/wisp-social/wisp/internal/middleware/authbearer"
	"github.com/wisp-social/wisp/users/models"
	"github.com/wisp-social/wisp/users/services"
)

// UserHandler handles HTTP requests for account operations
type UserHandler struct {
	userService services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UpdateMe handles PATCH /users/me (editable profile fields)
func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	viewer, err := authbearer.Viewer(c)
	if err != nil {
		return apierr.Handle(c, err)
	}

	var req models.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apierr.Handle(c, apierr.Invalid("malformed request body"))
	}

	user, err := h.userService.UpdateProfile(c.UserContext(), viewer.UserID, &req)
	if err != nil {
		return apierr.Handle(c, err)
	}

	return c.JSON(user)
}
