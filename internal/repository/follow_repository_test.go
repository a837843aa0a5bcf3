package repository

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowRepository_CreateIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()
	seedUsers(t, db, 2)

	require.NoError(t, repo.Create(ctx, "u0000", "u0001"))
	require.NoError(t, repo.Create(ctx, "u0000", "u0001"))

	followings, err := repo.ListFollowings(ctx, "u0000", 0, 10)
	require.NoError(t, err)
	assert.Len(t, followings, 1)

	ok, err := repo.Exists(ctx, "u0000", "u0001")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Exists(ctx, "u0001", "u0000")
	require.NoError(t, err)
	assert.False(t, ok, "edges are directed")
}

func TestFollowRepository_FollowersDerivedFromFollows(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()
	seedUsers(t, db, 4)

	for _, from := range []string{"u0001", "u0002", "u0003"} {
		require.NoError(t, repo.Create(ctx, from, "u0000"))
	}

	ids, err := repo.FollowerIDs(ctx, "u0000")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"u0001", "u0002", "u0003"}, ids)

	page, err := repo.ListFollowers(ctx, "u0000", 1, 10)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	require.NoError(t, repo.Delete(ctx, "u0002", "u0000"))
	ids, err = repo.FollowerIDs(ctx, "u0000")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"u0001", "u0003"}, ids)

	following, err := repo.FollowingIDs(ctx, "u0001")
	require.NoError(t, err)
	assert.Equal(t, []string{"u0000"}, following)
}

func BenchmarkFollowWrite(b *testing.B) {
	db := setupTestDB(b)
	repo := NewFollowRepository(db)
	ctx := context.Background()
	users := seedUsers(b, db, 1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		from := users[rand.Intn(len(users))].ID
		to := users[rand.Intn(len(users))].ID
		if from == to {
			continue
		}
		_ = repo.Create(ctx, from, to)
	}
}

func BenchmarkQueryFollowersAndFollowing(b *testing.B) {
	db := setupTestDB(b)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	// 构造：u0000 有 N 个粉丝，同时也关注 N 个用户
	const N = 2000
	users := seedUsers(b, db, N+1)
	for i := 1; i <= N; i++ {
		uid := users[i].ID
		_ = repo.Create(ctx, uid, users[0].ID)
		_ = repo.Create(ctx, users[0].ID, uid)
	}

	b.ResetTimer()
	b.Run("ListFollowers", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = repo.ListFollowers(ctx, users[0].ID, 0, 50)
		}
	})
	b.Run("ListFollowings", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = repo.ListFollowings(ctx, users[0].ID, 0, 50)
		}
	})
	b.Run(fmt.Sprintf("FollowerIDs_%d", N), func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = repo.FollowerIDs(ctx, users[0].ID)
		}
	})
}
