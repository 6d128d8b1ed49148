package server

import (
	"socialhub/internal/models"
	"socialhub/internal/notifications"
	"socialhub/internal/observability"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/attribute"
)

// CreatePost handles POST /api/posts.
// The image field is an opaque reference: the server stores and echoes it,
// never fetches or decodes it. Image ingestion is the client's concern.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Content string `json:"content"`
		Image   string `json:"image,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	span, _ := observability.NewSpan(c.UserContext(), "engine.CreatePost")
	defer span.End()

	post, err := s.engine.CreatePost(req.Content, req.Image)
	if err != nil {
		span.SetError(err)
		return models.RespondWithError(c, models.StatusFor(err), err)
	}
	span.AddAttributes(attribute.Int64("post.id", post.ID))

	s.publishFeedEvent(notifications.Event{
		Type:   notifications.EventPostCreated,
		PostID: post.ID,
		Actor:  post.Author,
	})

	return c.Status(fiber.StatusCreated).JSON(s.projector.Project(post, viewer(c)))
}

// GetFeed handles GET /api/posts
func (s *Server) GetFeed(c *fiber.Ctx) error {
	return c.JSON(s.projector.ListPosts(viewer(c)))
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parsePostID(c)
	if err != nil {
		return nil
	}

	post, ok := s.feed.Find(id)
	if !ok {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewPostNotFoundError(id))
	}

	return c.JSON(s.projector.Project(post, viewer(c)))
}

// ToggleLike handles POST /api/posts/:id/like
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	id, err := s.parsePostID(c)
	if err != nil {
		return nil
	}

	liked, count, err := s.engine.ToggleLike(id)
	if err != nil {
		return models.RespondWithError(c, models.StatusFor(err), err)
	}

	s.publishFeedEvent(notifications.Event{
		Type:   notifications.EventPostLiked,
		PostID: id,
		Actor:  viewer(c),
		Data:   map[string]any{"liked": liked, "like_count": count},
	})

	return c.JSON(fiber.Map{
		"liked":      liked,
		"like_count": count,
	})
}

// AddComment handles POST /api/posts/:id/comments
func (s *Server) AddComment(c *fiber.Ctx) error {
	id, err := s.parsePostID(c)
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.engine.AddComment(id, req.Text)
	if err != nil {
		return models.RespondWithError(c, models.StatusFor(err), err)
	}

	s.publishFeedEvent(notifications.Event{
		Type:   notifications.EventCommentAdded,
		PostID: id,
		Actor:  comment.User,
	})

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// SharePost handles POST /api/posts/:id/share.
// Re-sharing to the same recipient responds 200 with already_shared set; the
// operation is idempotent, not an error.
func (s *Server) SharePost(c *fiber.Ctx) error {
	id, err := s.parsePostID(c)
	if err != nil {
		return nil
	}

	var req struct {
		Target string `json:"target"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Target == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Share target is required"))
	}

	span, _ := observability.NewSpan(c.UserContext(), "engine.SharePost")
	defer span.End()

	added, err := s.engine.SharePost(id, req.Target)
	if err != nil {
		span.SetError(err)
		return models.RespondWithError(c, models.StatusFor(err), err)
	}
	span.AddAttributes(
		attribute.Int64("post.id", id),
		attribute.Bool("share.new_recipient", added),
	)

	if added {
		s.publishFeedEvent(notifications.Event{
			Type:   notifications.EventPostShared,
			PostID: id,
			Actor:  viewer(c),
			Data:   map[string]any{"target": req.Target},
		})
	}

	return c.JSON(fiber.Map{
		"shared":         true,
		"target":         req.Target,
		"already_shared": !added,
	})
}
