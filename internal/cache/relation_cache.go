package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/social-graph/pkg/logger"
)

// Loader returns the full, newest-first id list from the primary store.
type Loader func(ctx context.Context, userID string) ([]string, error)

// RelationCache keeps follower / following id lists as Redis lists.
// The follows table stays authoritative: a miss rebuilds the list from it and
// every committed follow/unfollow invalidates both users' lists.
type RelationCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRelationCache(client *redis.Client, ttl time.Duration) *RelationCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RelationCache{client: client, ttl: ttl}
}

// genTTL 代数计数器的保留时间，远大于一次回源加载的耗时
const genTTL = 24 * time.Hour

var errStale = errors.New("relation cache: generation changed during load")

func followersKey(userID string) string { return fmt.Sprintf("followers:index:%s", userID) }

func followingKey(userID string) string { return fmt.Sprintf("following:index:%s", userID) }

// genKey 每次失效自增；回填前后代数不一致说明加载期间关系已变更
func genKey(userID string) string { return fmt.Sprintf("relation:gen:%s", userID) }

// Followers returns one page of userID's follower ids.
func (c *RelationCache) Followers(ctx context.Context, userID string, page, size int, load Loader) ([]string, int, error) {
	return c.page(ctx, followersKey(userID), userID, page, size, load)
}

// Following returns one page of the ids userID follows.
func (c *RelationCache) Following(ctx context.Context, userID string, page, size int, load Loader) ([]string, int, error) {
	return c.page(ctx, followingKey(userID), userID, page, size, load)
}

// Invalidate drops both lists of every given user and bumps their generation,
// so a fill that started before the change is discarded.
func (c *RelationCache) Invalidate(ctx context.Context, userIDs ...string) error {
	if len(userIDs) == 0 {
		return nil
	}
	pipe := c.client.TxPipeline()
	for _, id := range userIDs {
		pipe.Del(ctx, followersKey(id), followingKey(id))
		pipe.Incr(ctx, genKey(id))
		pipe.Expire(ctx, genKey(id), genTTL)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (c *RelationCache) page(ctx context.Context, key, userID string, page, size int, load Loader) ([]string, int, error) {
	start := (page - 1) * size

	// Use LRANGE to get only the needed ids
	if n, err := c.client.LLen(ctx, key).Result(); err == nil && n > 0 {
		if start < 0 || int64(start) >= n {
			return []string{}, int(n), nil
		}
		ids, err := c.client.LRange(ctx, key, int64(start), int64(start+size-1)).Result()
		if err == nil {
			return ids, int(n), nil
		}
	} else if err != nil {
		logger.Warn("relation cache read failed, falling back to store", zap.String("key", key), zap.Error(err))
	}

	// 代数必须在回源之前读取
	gen, genErr := c.generation(ctx, userID)
	all, err := load(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	if genErr == nil {
		c.store(ctx, key, userID, gen, all)
	}
	return window(all, start, size), len(all), nil
}

func (c *RelationCache) generation(ctx context.Context, userID string) (int64, error) {
	gen, err := c.client.Get(ctx, genKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// store 仅当代数未变时回填，WATCH 保证检查与写入之间没有并发失效
func (c *RelationCache) store(ctx context.Context, key, userID string, gen int64, ids []string) {
	if len(ids) == 0 {
		return
	}
	gk := genKey(userID)
	err := c.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, gk).Int64()
		if errors.Is(err, redis.Nil) {
			cur, err = 0, nil
		}
		if err != nil {
			return err
		}
		if cur != gen {
			return errStale
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			pipe.RPush(ctx, key, interfaceSlice(ids)...)
			pipe.Expire(ctx, key, c.ttl)
			return nil
		})
		return err
	}, gk)

	switch {
	case err == nil:
	case errors.Is(err, errStale), errors.Is(err, redis.TxFailedErr):
		logger.Debug("relation cache fill skipped, relations changed during load", zap.String("key", key))
	default:
		logger.Warn("relation cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// window 越界（含溢出后的负数偏移）返回空页
func window(all []string, start, size int) []string {
	if start < 0 || start >= len(all) {
		return []string{}
	}
	return all[start:min(start+size, len(all))]
}

func interfaceSlice(strs []string) []interface{} {
	result := make([]interface{}, len(strs))
	for i, s := range strs {
		result[i] = s
	}
	return result
}
