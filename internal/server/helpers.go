package server

import (
	"errors"

	"socialhub/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parsePostID extracts the :id route parameter as a positive post id.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parsePostID(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid post ID"))
		return 0, errResponseWritten
	}
	return int64(id), nil
}

// viewer returns the acting username for this request, or empty string when
// nobody is logged in. Set by the session middleware.
func viewer(c *fiber.Ctx) string {
	if user, ok := c.Locals("username").(string); ok {
		return user
	}
	return ""
}
