package middleware

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

// windowEntry tracks the request count for one key inside the current window.
type windowEntry struct {
	count int
	reset time.Time
}

// limiterStore is a process-local fixed-window counter. All application state
// is in-memory by design, so the rate limit store is too.
type limiterStore struct {
	mu      sync.Mutex
	windows map[string]*windowEntry
}

var store = &limiterStore{windows: make(map[string]*windowEntry)}

// CheckRateLimit checks if a resource has exceeded its rate limit.
// Returns true if allowed, false if limit exceeded.
// Rate limiting is disabled when APP_ENV is "test" or "development" so dev and
// test workflows are not throttled.
func CheckRateLimit(resource, id string, limit int, window time.Duration) bool {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	switch env {
	case "test", "development":
		return true
	}

	key := fmt.Sprintf("rl:%s:%s", resource, id)
	now := time.Now()

	store.mu.Lock()
	defer store.mu.Unlock()

	entry, ok := store.windows[key]
	if !ok || now.After(entry.reset) {
		store.windows[key] = &windowEntry{count: 1, reset: now.Add(window)}
		return true
	}
	entry.count++
	return entry.count <= limit
}

// RateLimit returns a Fiber middleware enforcing `limit` requests per `window`.
// It keys by the acting username (if set in c.Locals("username")) otherwise by
// remote IP. An optional name scopes the limit to a route group.
func RateLimit(limit int, window time.Duration, name ...string) fiber.Handler {
	resource := "global"
	if len(name) > 0 {
		resource = name[0]
	}

	return func(c *fiber.Ctx) error {
		id := c.IP()
		if user, ok := c.Locals("username").(string); ok && user != "" {
			id = user
		}

		if !CheckRateLimit(resource, id, limit, window) {
			Logger.WarnContext(c.UserContext(), "rate limit exceeded",
				slog.String("resource", resource),
				slog.String("id", id),
			)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		}
		return c.Next()
	}
}
