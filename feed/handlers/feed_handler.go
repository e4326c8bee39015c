// Copyright (c) 2025 Wisp Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	uuid "github.com/gofrs/uuid"
	"github.com/gorilla/schema"
	"github.com/wisp-social/wisp/feed/models"
	"github.com/wisp-social/wisp/feed/services"
	"github.com/wisp-social/wisp/internal/apierr"
	"github.com/wisp-social/wisp/internal/middleware/authbearer"
)

// FeedHandler handles HTTP requests for feed and profile reads
type FeedHandler struct {
	feedService services.FeedService
	decoder     *schema.Decoder
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(feedService services.FeedService) *FeedHandler {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	return &FeedHandler{
		feedService: feedService,
		decoder:     decoder,
	}
}

// HomeFeed handles GET /feed
func (h *FeedHandler) HomeFeed(c *fiber.Ctx) error {
	viewer, err := authbearer.Viewer(c)
	if err != nil {
		return apierr.Handle(c, err)
	}

	query, err := h.parseFeedQuery(c)
	if err != nil {
		return apierr.Handle(c, err)
	}

	response, err := h.feedService.HomeFeed(c.UserContext(), viewer.UserID, query)
	if err != nil {
		return apierr.Handle(c, err)
	}

	return c.JSON(response)
}

// UserFeed handles GET /users/:userId/posts
func (h *FeedHandler) UserFeed(c *fiber.Ctx) error {
	viewer, err := authbearer.Viewer(c)
	if err != nil {
		return apierr.Handle(c, err)
	}

	targetID, err := parseUserID(c)
	if err != nil {
		return apierr.Handle(c, err)
	}

	query, err := h.parseFeedQuery(c)
	if err != nil {
		return apierr.Handle(c, err)
	}

	response, err := h.feedService.UserFeed(c.UserContext(), viewer.UserID, targetID, query)
	if err != nil {
		return apierr.Handle(c, err)
	}

	return c.JSON(response)
}

// UserProfile handles GET /users/:userId/profile
func (h *FeedHandler) UserProfile(c *fiber.Ctx) error {
	viewer, err := authbearer.Viewer(c)
	if err != nil {
		return apierr.Handle(c, err)
	}

	targetID, err := parseUserID(c)
	if err != nil {
		return apierr.Handle(c, err)
	}

	response, err := h.feedService.UserProfile(c.UserContext(), viewer.UserID, targetID)
	if err != nil {
		return apierr.Handle(c, err)
	}

	return c.JSON(response)
}

// MyProfile handles GET /users/me/profile
func (h *FeedHandler) MyProfile(c *fiber.Ctx) error {
	viewer, err := authbearer.Viewer(c)
	if err != nil {
		return apierr.Handle(c, err)
	}

	response, err := h.feedService.UserProfile(c.UserContext(), viewer.UserID, viewer.UserID)
	if err != nil {
		return apierr.Handle(c, err)
	}

	return c.JSON(response)
}

// parseFeedQuery decodes the query string into a FeedQuery.
func (h *FeedHandler) parseFeedQuery(c *fiber.Ctx) (*models.FeedQuery, error) {
	values, err := url.ParseQuery(string(c.Request().URI().QueryString()))
	if err != nil {
		return nil, apierr.Invalid("malformed query string")
	}

	var query models.FeedQuery
	if err := h.decoder.Decode(&query, values); err != nil {
		return nil, apierr.Invalid("malformed feed query")
	}

	return &query, nil
}

func parseUserID(c *fiber.Ctx) (uuid.UUID, error) {
	userID, err := uuid.FromString(c.Params("userId"))
	if err != nil {
		return uuid.Nil, apierr.Invalid("userId must be a valid UUID")
	}
	return userID, nil
}
