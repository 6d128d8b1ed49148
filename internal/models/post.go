package models

import (
	"sync"
	"time"
)

// Comment is a single comment on a post. The comment sequence of a post is
// append-only and keeps insertion order forever.
type Comment struct {
	User      string    `json:"user"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Post represents a post in the SocialHub feed.
//
// ID, Author, Content and ImageRef are immutable after creation and safe to
// read without locking. Likes, comments and share recipients are guarded by
// the post's own mutex: every mutation and every snapshot of one post
// serializes on it, while distinct posts never contend with each other.
// The collections are unexported so all access goes through the guarded
// methods, which is what keeps the set semantics and comment ordering intact.
type Post struct {
	ID        int64     `json:"id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	ImageRef  string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	mu         sync.Mutex
	likes      map[string]struct{}
	comments   []Comment
	sharedWith map[string]struct{}
}

// NewPost builds a post with empty likes, comments and share recipients.
func NewPost(id int64, author, content, imageRef string) *Post {
	return &Post{
		ID:         id,
		Author:     author,
		Content:    content,
		ImageRef:   imageRef,
		CreatedAt:  time.Now().UTC(),
		likes:      make(map[string]struct{}),
		sharedWith: make(map[string]struct{}),
	}
}

// ToggleLike flips membership of user in the like set. It returns whether the
// user likes the post after the call, plus the resulting like count. Applying
// it twice in a row for the same user restores the prior like set exactly.
func (p *Post) ToggleLike(user string) (liked bool, count int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.likes[user]; ok {
		delete(p.likes, user)
	} else {
		p.likes[user] = struct{}{}
		liked = true
	}
	return liked, len(p.likes)
}

// AddComment appends a comment to the end of the post's comment sequence and
// returns it. Prior comments are never modified, reordered or removed.
func (p *Post) AddComment(user, text string) Comment {
	comment := Comment{User: user, Text: text, CreatedAt: time.Now().UTC()}

	p.mu.Lock()
	p.comments = append(p.comments, comment)
	p.mu.Unlock()

	return comment
}

// Share records target as a share recipient. It reports whether the recipient
// is new; sharing to someone already in the set is a no-op, not an error.
func (p *Post) Share(target string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.sharedWith[target]; ok {
		return false
	}
	p.sharedWith[target] = struct{}{}
	return true
}

// PostSnapshot is a consistent copy of a post's mutable state, taken under the
// post lock. Projections are computed from snapshots so they always reflect a
// single point in time and never a half-applied mutation.
type PostSnapshot struct {
	ID         int64
	Author     string
	Content    string
	ImageRef   string
	CreatedAt  time.Time
	Likes      map[string]struct{}
	Comments   []Comment
	SharedWith map[string]struct{}
}

// Snapshot copies the post's current state under its lock.
func (p *Post) Snapshot() PostSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	likes := make(map[string]struct{}, len(p.likes))
	for u := range p.likes {
		likes[u] = struct{}{}
	}
	shared := make(map[string]struct{}, len(p.sharedWith))
	for u := range p.sharedWith {
		shared[u] = struct{}{}
	}
	comments := make([]Comment, len(p.comments))
	copy(comments, p.comments)

	return PostSnapshot{
		ID:         p.ID,
		Author:     p.Author,
		Content:    p.Content,
		ImageRef:   p.ImageRef,
		CreatedAt:  p.CreatedAt,
		Likes:      likes,
		Comments:   comments,
		SharedWith: shared,
	}
}

// PostView is the viewer-specific, read-only projection of a post used by the
// presentation layer. LikeCount, Liked and SharedWithYou are computed per
// viewer at projection time; nothing in a view is cached between calls.
type PostView struct {
	ID            int64     `json:"id"`
	Author        string    `json:"author"`
	Content       string    `json:"content"`
	ImageRef      string    `json:"image,omitempty"`
	LikeCount     int       `json:"like_count"`
	Liked         bool      `json:"liked"`
	SharedWithYou bool      `json:"shared_with_you"`
	Comments      []Comment `json:"comments"`
	CreatedAt     time.Time `json:"created_at"`
}
