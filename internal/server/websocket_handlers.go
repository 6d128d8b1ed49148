package server

import (
	"log/slog"

	"socialhub/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// setupFeedEventRoutes registers the websocket upgrade gate and the feed
// event stream endpoint.
func (s *Server) setupFeedEventRoutes(app *fiber.App) {
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/feed", s.FeedEventsHandler())
}

// FeedEventsHandler streams feed events (post_created, post_liked,
// comment_added, post_shared) to any connected client. Subscribing requires
// no session: the feed is visible to everyone, exactly like the read-only
// feed endpoint.
func (s *Server) FeedEventsHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		client, err := s.hub.Register(conn)
		if err != nil {
			middleware.Logger.Warn("feed subscriber rejected",
				slog.String("error", err.Error()))
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}

		middleware.Logger.Info("feed subscriber connected",
			slog.String("client_id", client.ID))

		go client.WritePump()
		client.ReadPump()

		middleware.Logger.Info("feed subscriber disconnected",
			slog.String("client_id", client.ID))
	})
}
