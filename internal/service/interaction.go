// Package service provides the application's business logic on top of the
// in-memory stores.
package service

import (
	"socialhub/internal/models"
	"socialhub/internal/observability"
	"socialhub/internal/repository"
	"socialhub/internal/session"
)

// InteractionEngine applies every mutation of the social graph: creating
// posts, toggling likes, appending comments and propagating shares. The
// acting identity always comes from the session context; with no active
// session every operation fails with UNAUTHENTICATED and touches nothing.
// A failed operation of any kind leaves all entities exactly as they were.
type InteractionEngine struct {
	feed     repository.FeedStore
	accounts repository.AccountDirectory
	session  *session.Context
}

// NewInteractionEngine returns an engine bound to the given stores and session.
func NewInteractionEngine(feed repository.FeedStore, accounts repository.AccountDirectory, sess *session.Context) *InteractionEngine {
	return &InteractionEngine{
		feed:     feed,
		accounts: accounts,
		session:  sess,
	}
}

// CreatePost creates a post authored by the active user. Content may be empty
// only when an image reference is present; the reference itself is opaque to
// the engine and stored untouched.
func (e *InteractionEngine) CreatePost(content, imageRef string) (*models.Post, error) {
	author, ok := e.session.Current()
	if !ok {
		return nil, models.NewUnauthenticatedError()
	}

	post, err := e.feed.Create(author, content, imageRef)
	if err != nil {
		return nil, err
	}
	observability.PostsCreated.Inc()
	return post, nil
}

// ToggleLike flips the active user's membership in the post's like set and
// returns the resulting state. Toggling twice in a row restores the like set
// to what it was before the first call.
func (e *InteractionEngine) ToggleLike(postID int64) (liked bool, count int, err error) {
	actor, ok := e.session.Current()
	if !ok {
		return false, 0, models.NewUnauthenticatedError()
	}

	post, ok := e.feed.Find(postID)
	if !ok {
		return false, 0, models.NewPostNotFoundError(postID)
	}

	liked, count = post.ToggleLike(actor)
	observability.LikesToggled.Inc()
	return liked, count, nil
}

// AddComment appends a comment by the active user to the post. Empty text is
// rejected here even though the surrounding UI should never submit it.
func (e *InteractionEngine) AddComment(postID int64, text string) (models.Comment, error) {
	actor, ok := e.session.Current()
	if !ok {
		return models.Comment{}, models.NewUnauthenticatedError()
	}

	post, ok := e.feed.Find(postID)
	if !ok {
		return models.Comment{}, models.NewPostNotFoundError(postID)
	}

	if text == "" {
		return models.Comment{}, models.NewEmptyCommentError()
	}

	comment := post.AddComment(actor, text)
	observability.CommentsAdded.Inc()
	return comment, nil
}

// SharePost records target as a recipient of the post. Sharing to someone who
// already received it is a no-op, not an error. The target must be a
// registered account; the engine places no restriction on sharing a post back
// to its author or to oneself, that filtering belongs to the caller.
func (e *InteractionEngine) SharePost(postID int64, target string) (added bool, err error) {
	if _, ok := e.session.Current(); !ok {
		return false, models.NewUnauthenticatedError()
	}

	post, ok := e.feed.Find(postID)
	if !ok {
		return false, models.NewPostNotFoundError(postID)
	}

	if _, ok := e.accounts.Get(target); !ok {
		return false, models.NewUnknownAccountError(target)
	}

	added = post.Share(target)
	if added {
		observability.SharesRecorded.Inc()
	}
	return added, nil
}
