// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"context"
	"time"

	"socialhub/internal/config"
	"socialhub/internal/middleware"
	"socialhub/internal/notifications"
	"socialhub/internal/repository"
	"socialhub/internal/service"
	"socialhub/internal/session"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	accounts       repository.AccountDirectory
	feed           repository.FeedStore
	session        *session.Context
	engine         *service.InteractionEngine
	projector      *service.FeedProjector
	hub            *notifications.Hub
	promMiddleware *fiberprometheus.FiberPrometheus
	startedAt      time.Time
}

// NewServer creates a new server instance with all dependencies. Everything
// lives in process memory; building a server is cheap and never fails on I/O.
func NewServer(cfg *config.Config) *Server {
	accounts := repository.NewAccountDirectory()
	feed := repository.NewFeedStore()
	sess := session.NewContext(accounts)

	return &Server{
		config:         cfg,
		accounts:       accounts,
		feed:           feed,
		session:        sess,
		engine:         service.NewInteractionEngine(feed, accounts, sess),
		projector:      service.NewFeedProjector(feed),
		hub:            notifications.NewHub(),
		promMiddleware: middleware.InitMetrics("socialhub-api"),
		startedAt:      time.Now(),
	}
}

// Accounts exposes the account directory, used by bootstrap seeding.
func (s *Server) Accounts() repository.AccountDirectory { return s.accounts }

// Feed exposes the feed store, used by bootstrap seeding.
func (s *Server) Feed() repository.FeedStore { return s.feed }

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and acting username
	app.Use(middleware.ContextMiddleware())

	// OpenTelemetry tracing
	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit
	// (e.g. limiter) so browser clients still receive CORS headers on error
	// responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Upgrade, Connection, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "SocialHub Metrics Dashboard",
	}))

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(10, time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(20, time.Minute, "login"), s.Login)
	auth.Post("/switch", s.SwitchAccount)
	auth.Post("/logout", s.Logout)
	auth.Get("/session", s.CurrentSession)

	// Account directory (switch and share-target choices)
	api.Get("/accounts", middleware.OptionalSession(s.session), s.ListAccounts)

	// Feed routes
	posts := api.Group("/posts")
	posts.Get("/", middleware.OptionalSession(s.session), s.GetFeed)
	posts.Get("/:id", middleware.OptionalSession(s.session), s.GetPost)
	posts.Post("/", middleware.RequireSession(s.session), s.CreatePost)
	posts.Post("/:id/like", middleware.RequireSession(s.session), s.ToggleLike)
	posts.Post("/:id/comments", middleware.RequireSession(s.session), s.AddComment)
	posts.Post("/:id/share", middleware.RequireSession(s.session), s.SharePost)

	// Live feed events
	s.setupFeedEventRoutes(app)
}

// publishFeedEvent broadcasts a feed event to websocket subscribers.
func (s *Server) publishFeedEvent(event notifications.Event) {
	if s.hub != nil {
		s.hub.Publish(event)
	}
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests. With no external
// dependencies the process is ready as soon as it serves; the body reports
// store sizes for operators.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":      "healthy",
		"uptime":      time.Since(s.startedAt).String(),
		"accounts":    s.accounts.Count(),
		"posts":       s.feed.Len(),
		"subscribers": s.hub.ClientCount(),
	})
}

// Shutdown releases server resources.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.hub.Shutdown(ctx)
}
