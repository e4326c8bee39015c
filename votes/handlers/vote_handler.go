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
	"github.com/wisp-social/wisp/votes/models"
	"github.com/wisp-social/wisp/votes/services"
)

// VoteHandler handles HTTP requests for vote operations
type VoteHandler struct {
	voteService services.VoteService
}

// NewVoteHandler creates a new vote handler
func NewVoteHandler(voteService services.VoteService) *VoteHandler {
	return &VoteHandler{voteService: voteService}
}

// Vote handles POST /comments/:commentId/vote (form field direction)
func (h *VoteHandler) Vote(c *fiber.Ctx) error {
	viewer, err := authbearer.Viewer(c)
	if err != nil {
		return apierr.Handle(c, err)
	}

	commentID, err := uuid.FromString(c.Params("commentId"))
	if err != nil {
		return apierr.Handle(c, apierr.Invalid("commentId must be a valid UUID"))
	}

	action, ok := models.ParseAction(c.FormValue("direction"))
	if !ok {
		return apierr.Handle(c, apierr.Invalid("direction must be up, down, or remove"))
	}

	result, err := h.voteService.Vote(c.UserContext(), viewer.UserID, commentID, action)
	if err != nil {
		return apierr.Handle(c, err)
	}

	return c.JSON(result)
}
