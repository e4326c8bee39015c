// Copyright (c) 2025 Wisp Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/wisp-social/wisp/internal/apierr"
	"github.com/wisp-social/wisp/internal/middleware/requestid"
	"github.com/wisp-social/wisp/internal/pkg/log"
	platformconfig "github.com/wisp-social/wisp/internal/platform/config"
	"github.com/wisp-social/wisp/posts/validation"
)

// NewApp constructs the fiber application with the shared middleware stack.
// Route registration is left to the feature modules.
func NewApp(cfg *platformconfig.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
		// Multipart uploads carry up to 100 MiB of media plus form overhead.
		BodyLimit: validation.MaxMediaBytes + (1 << 20),
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Handlers serialize their own errors; anything reaching here is
			// framework-level (routing, body limits, panic recovery).
			if e, ok := err.(*fiber.Error); ok {
				switch e.Code {
				case fiber.StatusNotFound:
					return apierr.Handle(c, apierr.NotFound("route"))
				case fiber.StatusMethodNotAllowed:
					return apierr.Handle(c, apierr.Invalid("method not allowed"))
				case fiber.StatusRequestEntityTooLarge:
					return apierr.Handle(c, apierr.New(apierr.KindPayloadTooLarge, "request body too large"))
				}
			}
			log.Error("unhandled error on %s: %v", c.Path(), err)
			return apierr.Handle(c, err)
		},
	})

	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.WebDomain,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, PATCH, OPTIONS",
	}))

	return app
}
