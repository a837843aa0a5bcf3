package graph

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/social-graph/internal/model"
	"github.com/d60-Lab/social-graph/pkg/apperror"
)

func newUser(id string) *model.User {
	return &model.User{
		ID: id, Username: id,
		Posts: []string{}, Likes: []string{}, Followers: []string{},
		Follows: []string{}, Comments: []string{}, LikedComments: []string{},
	}
}

func newPost(id, owner string) *model.Post {
	return &model.Post{ID: id, OwnerID: owner, Text: "hi", Comments: []string{}, Likes: []string{}}
}

func TestToggleLike_IsItsOwnInverse(t *testing.T) {
	u := newUser("u1")
	u.Likes = []string{"other-post"}
	p := newPost("p1", "u2")
	p.Likes = []string{"u3"}
	userBefore, postBefore := slices.Clone(u.Likes), slices.Clone(p.Likes)

	liked := ToggleLike(u, p)
	assert.True(t, liked)
	assert.Contains(t, u.Likes, "p1")
	assert.Contains(t, p.Likes, "u1")

	liked = ToggleLike(u, p)
	assert.False(t, liked)
	assert.ElementsMatch(t, userBefore, u.Likes)
	assert.ElementsMatch(t, postBefore, p.Likes)
}

func TestToggleLike_RepairsOneSidedState(t *testing.T) {
	u := newUser("u1")
	p := newPost("p1", "u2")
	p.Likes = []string{"u1"} // stale back-reference

	assert.True(t, ToggleLike(u, p))
	assert.Equal(t, []string{"u1"}, p.Likes, "no duplicate liker")
	assert.Equal(t, []string{"p1"}, u.Likes)
}

func TestToggleCommentLike(t *testing.T) {
	u := newUser("u1")
	c := &model.Comment{ID: "c1", OwnerID: "u2", PostID: "p1", Text: "nice", Likes: []string{}}

	assert.True(t, ToggleCommentLike(u, c))
	assert.Equal(t, []string{"c1"}, u.LikedComments)
	assert.Equal(t, []string{"u1"}, c.Likes)

	assert.False(t, ToggleCommentLike(u, c))
	assert.Empty(t, u.LikedComments)
	assert.Empty(t, c.Likes)
}

func TestFollowUnfollow_RoundTrip(t *testing.T) {
	a, b := newUser("a"), newUser("b")
	a.Followers = []string{"c"}
	b.Follows = []string{"c"}
	snapshot := func() [4][]string {
		return [4][]string{slices.Clone(a.Follows), slices.Clone(a.Followers), slices.Clone(b.Follows), slices.Clone(b.Followers)}
	}
	before := snapshot()

	created, err := Follow(a, b)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, []string{"b"}, a.Follows)
	assert.Equal(t, []string{"a"}, b.Followers)

	assert.True(t, Unfollow(a, b))
	after := snapshot()
	for i := range before {
		assert.ElementsMatch(t, before[i], after[i])
	}
}

func TestFollow_NoDuplicateEdges(t *testing.T) {
	a, b := newUser("a"), newUser("b")

	created, err := Follow(a, b)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = Follow(a, b)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, []string{"b"}, a.Follows)
	assert.Equal(t, []string{"a"}, b.Followers)
}

func TestFollow_Self(t *testing.T) {
	a := newUser("a")
	_, err := Follow(a, a)
	assert.ErrorIs(t, err, ErrFollowSelf)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	assert.Empty(t, a.Follows)
	assert.Empty(t, a.Followers)
}

func TestUnfollow_WithoutEdge(t *testing.T) {
	a, b := newUser("a"), newUser("b")
	assert.False(t, Unfollow(a, b))
	assert.Empty(t, a.Follows)
	assert.Empty(t, b.Followers)
}

func TestAddComment(t *testing.T) {
	u := newUser("u1")
	p := newPost("p1", "u2")

	c, err := AddComment(u, p, "  first!  ")
	require.NoError(t, err)
	assert.Equal(t, "first!", c.Text)
	assert.Equal(t, "u1", c.OwnerID)
	assert.Equal(t, "p1", c.PostID)
	assert.Equal(t, []string{c.ID}, p.Comments)
	assert.Equal(t, []string{c.ID}, u.Comments)
}

func TestAddComment_EmptyDoesNotMutate(t *testing.T) {
	u := newUser("u1")
	p := newPost("p1", "u2")
	p.Comments = []string{"existing"}

	for _, text := range []string{"", "   ", "\n\t"} {
		c, err := AddComment(u, p, text)
		assert.Nil(t, c)
		assert.ErrorIs(t, err, ErrEmptyComment)
		assert.True(t, apperror.Is(err, apperror.KindValidation))
	}
	assert.Equal(t, []string{"existing"}, p.Comments)
	assert.Empty(t, u.Comments)
}

func TestCreatePost(t *testing.T) {
	u := newUser("u1")

	p, err := CreatePost(u, PostInput{Text: "hello", Category: "news"})
	require.NoError(t, err)
	assert.Equal(t, "u1", p.OwnerID)
	assert.Equal(t, "hello", p.Text)
	assert.Equal(t, "news", p.Category)
	assert.Equal(t, []string{p.ID}, u.Posts)
	assert.False(t, p.CreatedAt.IsZero())

	_, err = CreatePost(u, PostInput{Text: " "})
	assert.ErrorIs(t, err, ErrEmptyPost)
	assert.Len(t, u.Posts, 1)
}

func TestUpdatePost(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	edited := created.Add(time.Hour)
	now = func() time.Time { return edited }
	t.Cleanup(func() { now = time.Now })

	p := newPost("p1", "owner")
	p.Category = "old"
	p.CreatedAt, p.UpdatedAt = created, created

	err := UpdatePost("intruder", p, PostInput{Text: "hacked"})
	assert.ErrorIs(t, err, ErrNotOwner)
	assert.Equal(t, "hi", p.Text)

	err = UpdatePost("owner", p, PostInput{Text: ""})
	assert.ErrorIs(t, err, ErrEmptyPost)

	require.NoError(t, UpdatePost("owner", p, PostInput{Text: "edited", Title: "T"}))
	assert.Equal(t, "edited", p.Text)
	assert.Equal(t, "T", p.Title)
	assert.Equal(t, "old", p.Category)
	assert.Equal(t, "owner", p.OwnerID)
	assert.Equal(t, created, p.CreatedAt)
	assert.Equal(t, edited, p.UpdatedAt)
}
