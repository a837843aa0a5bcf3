package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/social-graph/internal/graph"
	"github.com/d60-Lab/social-graph/pkg/apperror"
)

func TestPostService_CreateLinksOwner(t *testing.T) {
	repos := setupRepos(t)
	svc := NewPostService(repos)
	ctx := context.Background()
	u := createUser(t, repos, "abebe")

	post, err := svc.Create(ctx, u.ID, graph.PostInput{Text: "hello", Title: "hi"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, post.OwnerID)
	assert.Empty(t, post.Likes)

	me, err := NewUserService(repos.Users).Me(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{post.ID}, me.Posts)
}

func TestPostService_CreateRejectsEmptyText(t *testing.T) {
	repos := setupRepos(t)
	svc := NewPostService(repos)
	ctx := context.Background()
	u := createUser(t, repos, "abebe")

	_, err := svc.Create(ctx, u.ID, graph.PostInput{Text: "   "})
	assert.ErrorIs(t, err, graph.ErrEmptyPost)

	page, err := svc.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, page.TotalPosts)
}

func TestPostService_Pagination(t *testing.T) {
	repos := setupRepos(t)
	svc := NewPostService(repos)
	ctx := context.Background()
	u := createUser(t, repos, "abebe")
	for i := 0; i < 25; i++ {
		_, err := svc.Create(ctx, u.ID, graph.PostInput{Text: fmt.Sprintf("post %d", i)})
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, 3, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, page.CurrentPage)
	assert.Equal(t, 3, page.TotalPages)
	assert.EqualValues(t, 25, page.TotalPosts)
	assert.Len(t, page.Items, 5)

	page, err = svc.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultPage, page.CurrentPage)
	assert.Len(t, page.Items, DefaultLimit)

	page, err = svc.ListByOwner(ctx, u.ID, 1, 1000)
	require.NoError(t, err)
	assert.Len(t, page.Items, 25)
	assert.Equal(t, 1, page.TotalPages)

	page, err = svc.List(ctx, 4, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestPostService_ToggleLikeIsItsOwnInverse(t *testing.T) {
	repos := setupRepos(t)
	svc := NewPostService(repos)
	users := NewUserService(repos.Users)
	ctx := context.Background()
	owner := createUser(t, repos, "abebe")
	fan := createUser(t, repos, "kebede")
	post, err := svc.Create(ctx, owner.ID, graph.PostInput{Text: "hello"})
	require.NoError(t, err)

	res, err := svc.ToggleLike(ctx, fan.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, res.Liked)
	assert.Equal(t, []string{fan.ID}, res.Post.Likes)
	me, err := users.Me(ctx, fan.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{post.ID}, me.Likes)

	res, err = svc.ToggleLike(ctx, fan.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, res.Liked)
	assert.Empty(t, res.Post.Likes)
	me, err = users.Me(ctx, fan.ID)
	require.NoError(t, err)
	assert.Empty(t, me.Likes)

	detail, err := svc.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, detail.Post.Likes)
}

func TestPostService_ToggleLikeUnknownPost(t *testing.T) {
	repos := setupRepos(t)
	svc := NewPostService(repos)
	u := createUser(t, repos, "abebe")

	_, err := svc.ToggleLike(context.Background(), u.ID, "missing")
	assert.ErrorIs(t, err, ErrPostNotFound)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestPostService_UpdateOwnerOnly(t *testing.T) {
	repos := setupRepos(t)
	svc := NewPostService(repos)
	ctx := context.Background()
	owner := createUser(t, repos, "abebe")
	other := createUser(t, repos, "kebede")
	post, err := svc.Create(ctx, owner.ID, graph.PostInput{Text: "hello", Category: "news"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, other.ID, post.ID, graph.PostInput{Text: "hijack"})
	assert.ErrorIs(t, err, graph.ErrNotOwner)

	updated, err := svc.Update(ctx, owner.ID, post.ID, graph.PostInput{Text: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Text)
	assert.Equal(t, "news", updated.Category)
	assert.Equal(t, owner.ID, updated.OwnerID)

	detail, err := svc.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", detail.Post.Text)

	_, err = svc.Update(ctx, owner.ID, "missing", graph.PostInput{Text: "x"})
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestPostService_Search(t *testing.T) {
	repos := setupRepos(t)
	svc := NewPostService(repos)
	ctx := context.Background()
	u := createUser(t, repos, "abebe")
	for _, text := range []string{"Hello World", "goodbye", "say hello again"} {
		_, err := svc.Create(ctx, u.ID, graph.PostInput{Text: text})
		require.NoError(t, err)
	}

	page, err := svc.Search(ctx, "HELLO", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.TotalPosts)

	_, err = svc.Search(ctx, " ", 1, 10)
	assert.ErrorIs(t, err, ErrEmptyQuery)
}
