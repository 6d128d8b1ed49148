package server

import (
	"log/slog"

	"socialhub/internal/middleware"
	"socialhub/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Signup handles POST /api/auth/signup.
// Registering does not start a session; the caller logs in afterwards, the
// same flow the reference UI uses.
func (s *Server) Signup(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Username == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username and password are required"))
	}

	account, err := s.accounts.Signup(req.Username, req.Password)
	if err != nil {
		return models.RespondWithError(c, models.StatusFor(err), err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "account registered",
		slog.String("new_username", account.Username))

	return c.Status(fiber.StatusCreated).JSON(account)
}

// Login handles POST /api/auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	account, err := s.accounts.Authenticate(req.Username, req.Password)
	if err != nil {
		return models.RespondWithError(c, models.StatusFor(err), err)
	}

	s.session.Login(account.Username)

	return c.JSON(fiber.Map{
		"username": account.Username,
	})
}

// SwitchAccount handles POST /api/auth/switch.
// Switching needs no credentials, only a registered username. That is the
// system's deliberate convenience behavior, not a missing check.
func (s *Server) SwitchAccount(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.session.SwitchTo(req.Username); err != nil {
		return models.RespondWithError(c, models.StatusFor(err), err)
	}

	return c.JSON(fiber.Map{
		"username": req.Username,
	})
}

// Logout handles POST /api/auth/logout
func (s *Server) Logout(c *fiber.Ctx) error {
	s.session.Logout()
	return c.JSON(fiber.Map{
		"status": "logged out",
	})
}

// CurrentSession handles GET /api/auth/session
func (s *Server) CurrentSession(c *fiber.Ctx) error {
	username, active := s.session.Current()
	return c.JSON(fiber.Map{
		"active":   active,
		"username": username,
	})
}

// ListAccounts handles GET /api/accounts. With ?others=1 the current user is
// excluded, which is how the share dialog builds its candidate list; the
// interaction engine itself allows sharing to anyone registered, including
// yourself.
func (s *Server) ListAccounts(c *fiber.Ctx) error {
	accounts := s.accounts.List()

	if c.QueryBool("others") {
		current := viewer(c)
		filtered := accounts[:0:0]
		for _, account := range accounts {
			if account.Username != current {
				filtered = append(filtered, account)
			}
		}
		accounts = filtered
	}

	return c.JSON(accounts)
}
