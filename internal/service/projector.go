package service

import (
	"socialhub/internal/models"
	"socialhub/internal/repository"
)

// FeedProjector derives read-only, viewer-specific views of posts for
// presentation. It mutates nothing and caches nothing: every call reads the
// post's state at that moment, so a projection taken after a like or a share
// always reflects it.
type FeedProjector struct {
	feed repository.FeedStore
}

// NewFeedProjector returns a projector over the given feed store.
func NewFeedProjector(feed repository.FeedStore) *FeedProjector {
	return &FeedProjector{feed: feed}
}

// Project computes the viewer-specific annotation of a single post. The
// "shared with you" indicator is true only for viewers other than the author
// who are in the post's share set. An empty viewer (nobody logged in) sees
// like counts and comments but never a liked or shared-with-you flag.
func (p *FeedProjector) Project(post *models.Post, viewer string) models.PostView {
	snap := post.Snapshot()

	_, liked := snap.Likes[viewer]
	_, shared := snap.SharedWith[viewer]

	return models.PostView{
		ID:            snap.ID,
		Author:        snap.Author,
		Content:       snap.Content,
		ImageRef:      snap.ImageRef,
		LikeCount:     len(snap.Likes),
		Liked:         viewer != "" && liked,
		SharedWithYou: viewer != "" && viewer != snap.Author && shared,
		Comments:      snap.Comments,
		CreatedAt:     snap.CreatedAt,
	}
}

// ListPosts projects the whole feed for one viewer, newest post first.
func (p *FeedProjector) ListPosts(viewer string) []models.PostView {
	posts := p.feed.All()
	views := make([]models.PostView, 0, len(posts))
	for _, post := range posts {
		views = append(views, p.Project(post, viewer))
	}
	return views
}
