// Copyright (c) 2025 Wisp Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package server

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/wisp-social/wisp/internal/database/postgres"
	"github.com/wisp-social/wisp/storage/provider"
)

// HealthHandler reports service liveness and dependency reachability.
// Unauthenticated by design.
type HealthHandler struct {
	version string
	db      *postgres.Client
	blob    provider.BlobProvider
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(version string, db *postgres.Client, blob provider.BlobProvider) *HealthHandler {
	return &HealthHandler{version: version, db: db, blob: blob}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	deps := fiber.Map{}
	status := "ok"

	if err := h.db.Ping(ctx); err != nil {
		deps["database"] = "unreachable"
		status = "degraded"
	} else {
		deps["database"] = "ok"
	}

	if h.blob != nil {
		if err := h.blob.Ping(ctx); err != nil {
			deps["blobstore"] = "unreachable"
			status = "degraded"
		} else {
			deps["blobstore"] = "ok"
		}
	}

	code := fiber.StatusOK
	if status != "ok" {
		code = fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"status":  status,
		"version": h.version,
		"deps":    deps,
	})
}
