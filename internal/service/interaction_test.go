package service

import (
	"testing"

	"socialhub/internal/models"
	"socialhub/internal/repository"
	"socialhub/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixture bundles the stores, session and engine the way the server wires them.
type fixture struct {
	accounts  repository.AccountDirectory
	feed      repository.FeedStore
	session   *session.Context
	engine    *InteractionEngine
	projector *FeedProjector
}

func newFixture(t *testing.T, usernames ...string) *fixture {
	t.Helper()

	accounts := repository.NewAccountDirectory()
	for _, name := range usernames {
		_, err := accounts.Signup(name, "pw")
		require.NoError(t, err)
	}
	feed := repository.NewFeedStore()
	sess := session.NewContext(accounts)

	return &fixture{
		accounts:  accounts,
		feed:      feed,
		session:   sess,
		engine:    NewInteractionEngine(feed, accounts, sess),
		projector: NewFeedProjector(feed),
	}
}

func (f *fixture) mustCreatePost(t *testing.T, author, content string) *models.Post {
	t.Helper()
	f.session.Login(author)
	post, err := f.engine.CreatePost(content, "")
	require.NoError(t, err)
	return post
}

func TestInteractionEngine_CreatePost(t *testing.T) {
	f := newFixture(t, "alice")
	f.session.Login("alice")

	post, err := f.engine.CreatePost("hello", "")
	require.NoError(t, err)
	assert.Equal(t, "alice", post.Author)
	assert.Equal(t, 1, f.feed.Len())
}

func TestInteractionEngine_CreatePostValidation(t *testing.T) {
	f := newFixture(t, "alice")
	f.session.Login("alice")

	_, err := f.engine.CreatePost("", "")
	require.Error(t, err)
	assert.Equal(t, models.CodeInvalidPost, models.ErrorCode(err))
	assert.Equal(t, 0, f.feed.Len())

	_, err = f.engine.CreatePost("", "img-ref")
	assert.NoError(t, err)

	_, err = f.engine.CreatePost("hello", "")
	assert.NoError(t, err)
}

func TestInteractionEngine_UnauthenticatedOperationsHaveNoEffect(t *testing.T) {
	f := newFixture(t, "alice", "bob")
	post := f.mustCreatePost(t, "alice", "hello")
	f.session.Logout()

	before := post.Snapshot()

	_, err := f.engine.CreatePost("mutation attempt", "")
	assert.Equal(t, models.CodeUnauthenticated, models.ErrorCode(err))

	_, _, err = f.engine.ToggleLike(post.ID)
	assert.Equal(t, models.CodeUnauthenticated, models.ErrorCode(err))

	_, err = f.engine.AddComment(post.ID, "text")
	assert.Equal(t, models.CodeUnauthenticated, models.ErrorCode(err))

	_, err = f.engine.SharePost(post.ID, "bob")
	assert.Equal(t, models.CodeUnauthenticated, models.ErrorCode(err))

	assert.Equal(t, 1, f.feed.Len())
	assert.Equal(t, before, post.Snapshot())
}

func TestInteractionEngine_ToggleLike(t *testing.T) {
	f := newFixture(t, "alice", "bob")
	post := f.mustCreatePost(t, "alice", "hello")

	f.session.Login("bob")

	liked, count, err := f.engine.ToggleLike(post.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 1, count)

	// Toggling again restores the prior like set.
	liked, count, err = f.engine.ToggleLike(post.ID)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, 0, count)
}

func TestInteractionEngine_ToggleLikeUnknownPost(t *testing.T) {
	f := newFixture(t, "alice")
	f.session.Login("alice")

	_, _, err := f.engine.ToggleLike(999)
	require.Error(t, err)
	assert.Equal(t, models.CodePostNotFound, models.ErrorCode(err))
}

func TestInteractionEngine_AddComment(t *testing.T) {
	f := newFixture(t, "alice", "bob")
	post := f.mustCreatePost(t, "alice", "hello")

	f.session.Login("bob")

	comment, err := f.engine.AddComment(post.ID, "nice post")
	require.NoError(t, err)
	assert.Equal(t, "bob", comment.User)
	assert.Equal(t, "nice post", comment.Text)

	snap := post.Snapshot()
	require.Len(t, snap.Comments, 1)
	assert.Equal(t, comment, snap.Comments[0])
}

func TestInteractionEngine_AddCommentPreservesPriorComments(t *testing.T) {
	f := newFixture(t, "alice")
	post := f.mustCreatePost(t, "alice", "hello")

	_, err := f.engine.AddComment(post.ID, "first")
	require.NoError(t, err)
	before := post.Snapshot().Comments

	_, err = f.engine.AddComment(post.ID, "second")
	require.NoError(t, err)

	after := post.Snapshot().Comments
	require.Len(t, after, len(before)+1)
	assert.Equal(t, before, after[:len(before)])
}

func TestInteractionEngine_AddCommentRejectsEmptyText(t *testing.T) {
	f := newFixture(t, "alice")
	post := f.mustCreatePost(t, "alice", "hello")

	_, err := f.engine.AddComment(post.ID, "")
	require.Error(t, err)
	assert.Equal(t, models.CodeEmptyComment, models.ErrorCode(err))
	assert.Empty(t, post.Snapshot().Comments)
}

func TestInteractionEngine_SharePost(t *testing.T) {
	f := newFixture(t, "alice", "bob")
	post := f.mustCreatePost(t, "alice", "hello")

	added, err := f.engine.SharePost(post.ID, "bob")
	require.NoError(t, err)
	assert.True(t, added)

	afterFirst := post.Snapshot().SharedWith

	// Sharing again is a no-op, not an error.
	added, err = f.engine.SharePost(post.ID, "bob")
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, afterFirst, post.Snapshot().SharedWith)
}

func TestInteractionEngine_SharePostToSelfAndAuthorAllowed(t *testing.T) {
	f := newFixture(t, "alice", "bob")
	post := f.mustCreatePost(t, "alice", "hello")

	// Back to the author.
	added, err := f.engine.SharePost(post.ID, "alice")
	require.NoError(t, err)
	assert.True(t, added)

	// To the acting user themselves.
	f.session.Login("bob")
	added, err = f.engine.SharePost(post.ID, "bob")
	require.NoError(t, err)
	assert.True(t, added)
}

func TestInteractionEngine_SharePostUnknownTarget(t *testing.T) {
	f := newFixture(t, "alice")
	post := f.mustCreatePost(t, "alice", "hello")

	_, err := f.engine.SharePost(post.ID, "mallory")
	require.Error(t, err)
	assert.Equal(t, models.CodeUnknownAccount, models.ErrorCode(err))
	assert.Empty(t, post.Snapshot().SharedWith)
}

func TestInteractionEngine_SharePostUnknownPost(t *testing.T) {
	f := newFixture(t, "alice")
	f.session.Login("alice")

	_, err := f.engine.SharePost(42, "alice")
	require.Error(t, err)
	assert.Equal(t, models.CodePostNotFound, models.ErrorCode(err))
}

// TestInteractionEngine_EndToEndScenario walks the full flow: two accounts,
// a post, a like, an account switch and a share, checking the projections
// both viewers see at the end.
func TestInteractionEngine_EndToEndScenario(t *testing.T) {
	f := newFixture(t)

	_, err := f.accounts.Signup("alice", "1")
	require.NoError(t, err)
	_, err = f.accounts.Signup("bob", "2")
	require.NoError(t, err)

	account, err := f.accounts.Authenticate("alice", "1")
	require.NoError(t, err)
	f.session.Login(account.Username)

	post, err := f.engine.CreatePost("hi", "")
	require.NoError(t, err)

	snap := post.Snapshot()
	assert.Empty(t, snap.Likes)
	assert.Empty(t, snap.Comments)
	assert.Empty(t, snap.SharedWith)

	liked, count, err := f.engine.ToggleLike(post.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 1, count)
	assert.Contains(t, post.Snapshot().Likes, "alice")

	require.NoError(t, f.session.SwitchTo("bob"))

	added, err := f.engine.SharePost(post.ID, "bob")
	require.NoError(t, err)
	assert.True(t, added)
	assert.Contains(t, post.Snapshot().SharedWith, "bob")

	assert.True(t, f.projector.Project(post, "bob").SharedWithYou)
	assert.False(t, f.projector.Project(post, "alice").SharedWithYou)
}
