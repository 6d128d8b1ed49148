package middleware

import (
	"socialhub/internal/models"
	"socialhub/internal/session"

	"github.com/gofiber/fiber/v2"
)

// RequireSession enforces that somebody is logged in before a mutating route
// runs. The acting username is stored in c.Locals("username") for handlers,
// logging and tracing. The interaction engine re-checks the session itself, so
// this middleware is a fast path, not the only guard.
func RequireSession(sess *session.Context) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := sess.Current()
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthenticatedError())
		}
		c.Locals("username", user)
		return c.Next()
	}
}

// OptionalSession records the acting username when a session is active and
// lets the request through either way. Read-only routes use it so projections
// can be viewer-specific for logged-in callers and neutral for everyone else.
func OptionalSession(sess *session.Context) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if user, ok := sess.Current(); ok {
			c.Locals("username", user)
		}
		return c.Next()
	}
}
