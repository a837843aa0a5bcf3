package service

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/social-graph/internal/graph"
)

func TestNormalizePage(t *testing.T) {
	cases := []struct {
		name               string
		page, limit        int
		wantPage, wantSize int
	}{
		{"defaults", 0, 0, DefaultPage, DefaultLimit},
		{"negative", -3, -1, DefaultPage, DefaultLimit},
		{"limit capped", 2, 1000, 2, MaxLimit},
		{"huge page clamped", 1e18, 10, math.MaxInt / 10, 10},
		{"max int page", math.MaxInt, 1, math.MaxInt, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, limit := normalizePage(tc.page, tc.limit)
			assert.Equal(t, tc.wantPage, page)
			assert.Equal(t, tc.wantSize, limit)
			assert.GreaterOrEqual(t, (page-1)*limit, 0)
		})
	}
}

func TestHugePageReturnsEmptyItems(t *testing.T) {
	repos := setupRepos(t)
	posts := NewPostService(repos)
	rel := NewRelationshipService(repos, nil)
	ctx := context.Background()
	star := createUser(t, repos, "star")
	fan := createUser(t, repos, "fan")
	_, err := posts.Create(ctx, star.ID, graph.PostInput{Text: "hello"})
	require.NoError(t, err)
	_, err = rel.Follow(ctx, fan.ID, star.ID)
	require.NoError(t, err)

	page, err := posts.List(ctx, 1e18, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.EqualValues(t, 1, page.TotalPosts)

	page, err = posts.ListByOwner(ctx, star.ID, 1e18, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Items)

	followers, err := rel.ListFollowers(ctx, star.ID, 1e18, 10)
	require.NoError(t, err)
	assert.Empty(t, followers.List)
	assert.Equal(t, 1, followers.Total)

	following, err := rel.ListFollowing(ctx, fan.ID, 1e18, 10)
	require.NoError(t, err)
	assert.Empty(t, following.List)
}
