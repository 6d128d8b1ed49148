// Package observability provides metrics and tracing for the application.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PostsCreated counts posts added to the feed.
	PostsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "socialhub_posts_created_total",
		Help: "Total number of posts created",
	})

	// LikesToggled counts like toggles, both likes and un-likes.
	LikesToggled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "socialhub_likes_toggled_total",
		Help: "Total number of like toggles applied",
	})

	// CommentsAdded counts comments appended to posts.
	CommentsAdded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "socialhub_comments_added_total",
		Help: "Total number of comments appended",
	})

	// SharesRecorded counts new share recipients. Idempotent re-shares are
	// not counted.
	SharesRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "socialhub_shares_recorded_total",
		Help: "Total number of new share recipients recorded",
	})

	// WebSocketConnections is the gauge of active feed-event subscribers.
	WebSocketConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "socialhub_websocket_connections",
		Help: "Number of active feed event WebSocket connections",
	})

	// FeedEventsPublished counts feed events broadcast to subscribers, by type.
	FeedEventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "socialhub_feed_events_published_total",
		Help: "Total feed events broadcast by event type",
	}, []string{"event_type"})
)
