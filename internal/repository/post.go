package repository

import (
	"sync"

	"socialhub/internal/models"
)

// FeedStore owns the ordered collection of posts. Retrieval order is the
// display contract: most recently created first.
type FeedStore interface {
	// Create validates and stores a new post. A post with neither content nor
	// an image reference fails with INVALID_POST. The id is allocated under
	// the store lock, so ids stay unique and strictly increasing even under
	// concurrent creation.
	Create(author, content, imageRef string) (*models.Post, error)

	// All returns a snapshot of the feed, newest first. The slice is a copy;
	// the posts themselves are shared and guard their own mutable state.
	All() []*models.Post

	// Find looks up a post by id.
	Find(id int64) (*models.Post, bool)

	// Len returns the number of posts in the feed.
	Len() int
}

type feedStore struct {
	mu     sync.RWMutex
	nextID int64
	posts  []*models.Post // insertion order, oldest first
	byID   map[int64]*models.Post
}

// NewFeedStore creates an empty feed store.
func NewFeedStore() FeedStore {
	return &feedStore{
		byID: make(map[int64]*models.Post),
	}
}

func (s *feedStore) Create(author, content, imageRef string) (*models.Post, error) {
	if content == "" && imageRef == "" {
		return nil, models.NewInvalidPostError()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	post := models.NewPost(s.nextID, author, content, imageRef)
	s.posts = append(s.posts, post)
	s.byID[post.ID] = post
	return post, nil
}

func (s *feedStore) All() []*models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Post, 0, len(s.posts))
	for i := len(s.posts) - 1; i >= 0; i-- {
		out = append(out, s.posts[i])
	}
	return out
}

func (s *feedStore) Find(id int64) (*models.Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	post, ok := s.byID[id]
	return post, ok
}

func (s *feedStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.posts)
}
