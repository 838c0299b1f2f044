// Package webapi provides the HTTP surface of both services. It is organized
// into sub-packages per resource:
//   - account: account endpoints of the movement service
//   - movement: ledger and report endpoints of the movement service
//   - customer: customer endpoints of the identity service
package webapi

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/amirasaad/corebank/pkg/app"
	"github.com/amirasaad/corebank/pkg/config"
	accountweb "github.com/amirasaad/corebank/webapi/account"
	"github.com/amirasaad/corebank/webapi/common"
	customerweb "github.com/amirasaad/corebank/webapi/customer"
	movementweb "github.com/amirasaad/corebank/webapi/movement"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// SetupMovementApp builds the fiber app of the financial-movement service.
func SetupMovementApp(a *app.Movement) *fiber.App {
	fiberApp := newFiberApp(a.Config, a.Deps.Logger)
	accountweb.Routes(fiberApp, a.AccountService, a.Deps.Logger)
	movementweb.Routes(fiberApp, a.MovementService, a.Deps.Logger)
	return fiberApp
}

// SetupIdentityApp builds the fiber app of the identity service.
func SetupIdentityApp(a *app.Identity) *fiber.App {
	fiberApp := newFiberApp(a.Config, a.Deps.Logger)
	customerweb.Routes(fiberApp, a.CustomerService, a.Deps.Logger)
	return fiberApp
}

func newFiberApp(cfg *config.App, log *slog.Logger) *fiber.App {
	name := "corebank"
	if cfg != nil && cfg.ServiceName != "" {
		name = cfg.ServiceName
	}
	fiberApp := fiber.New(fiber.Config{
		AppName: name,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				switch fe.Code {
				case fiber.StatusNotFound:
					return common.ResponseJSON(c, common.ApplicationResponse{
						Code: common.DefaultError.Code, Message: "Resource not found", Status: fe.Code,
					}, "")
				case fiber.StatusMethodNotAllowed:
					return common.ResponseJSON(c, common.NotAllowed, "")
				}
			}
			return common.ErrorJSON(c, log, err)
		},
	})

	maxRequests, window := 100, time.Minute
	if cfg != nil && cfg.RateLimit != nil {
		maxRequests, window = cfg.RateLimit.MaxRequests, cfg.RateLimit.Window
	}
	// Uses X-Forwarded-For header when behind a proxy
	fiberApp.Use(limiter.New(limiter.Config{
		Max:        maxRequests,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
					return strings.TrimSpace(forwardedFor[:commaIndex])
				}
				return strings.TrimSpace(forwardedFor)
			}
			if realIP := c.Get("X-Real-IP"); realIP != "" {
				return realIP
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ResponseJSON(c, common.ApplicationResponse{
				Code:    common.NotAllowed.Code,
				Message: "Too many requests",
				Status:  fiber.StatusTooManyRequests,
			}, "rate limit exceeded")
		},
	}))
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())

	// Health check endpoint
	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return common.SuccessJSON(c, fiber.StatusOK, fiber.Map{"service": name, "status": "UP"})
	})
	return fiberApp
}
