package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedProjector_ViewerFlags(t *testing.T) {
	f := newFixture(t, "alice", "bob", "charlie")
	post := f.mustCreatePost(t, "alice", "hello")

	f.session.Login("bob")
	_, _, err := f.engine.ToggleLike(post.ID)
	require.NoError(t, err)
	_, err = f.engine.SharePost(post.ID, "charlie")
	require.NoError(t, err)

	tests := []struct {
		name          string
		viewer        string
		liked         bool
		sharedWithYou bool
	}{
		{name: "author", viewer: "alice", liked: false, sharedWithYou: false},
		{name: "liker", viewer: "bob", liked: true, sharedWithYou: false},
		{name: "share recipient", viewer: "charlie", liked: false, sharedWithYou: true},
		{name: "anonymous", viewer: "", liked: false, sharedWithYou: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := f.projector.Project(post, tt.viewer)
			assert.Equal(t, tt.liked, view.Liked)
			assert.Equal(t, tt.sharedWithYou, view.SharedWithYou)
			assert.Equal(t, 1, view.LikeCount)
		})
	}
}

func TestFeedProjector_AuthorNeverSeesSharedWithYou(t *testing.T) {
	f := newFixture(t, "alice", "bob")
	post := f.mustCreatePost(t, "alice", "hello")

	// Shared back to the author: recorded in the set, but the author's own
	// view must not flag it.
	f.session.Login("bob")
	_, err := f.engine.SharePost(post.ID, "alice")
	require.NoError(t, err)
	require.Contains(t, post.Snapshot().SharedWith, "alice")

	assert.False(t, f.projector.Project(post, "alice").SharedWithYou)
}

func TestFeedProjector_NeverStale(t *testing.T) {
	f := newFixture(t, "alice")
	post := f.mustCreatePost(t, "alice", "hello")

	assert.Equal(t, 0, f.projector.Project(post, "alice").LikeCount)

	_, _, err := f.engine.ToggleLike(post.ID)
	require.NoError(t, err)
	view := f.projector.Project(post, "alice")
	assert.Equal(t, 1, view.LikeCount)
	assert.True(t, view.Liked)

	_, err = f.engine.AddComment(post.ID, "still here")
	require.NoError(t, err)
	assert.Len(t, f.projector.Project(post, "alice").Comments, 1)
}

func TestFeedProjector_ListPostsNewestFirst(t *testing.T) {
	f := newFixture(t, "alice")
	first := f.mustCreatePost(t, "alice", "first")
	second := f.mustCreatePost(t, "alice", "second")
	third := f.mustCreatePost(t, "alice", "third")

	views := f.projector.ListPosts("alice")
	require.Len(t, views, 3)
	assert.Equal(t, third.ID, views[0].ID)
	assert.Equal(t, second.ID, views[1].ID)
	assert.Equal(t, first.ID, views[2].ID)
}
