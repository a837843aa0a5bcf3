package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/d60-Lab/social-graph/internal/cache"
	"github.com/d60-Lab/social-graph/internal/graph"
	"github.com/d60-Lab/social-graph/internal/model"
	"github.com/d60-Lab/social-graph/internal/repository"
	"github.com/d60-Lab/social-graph/pkg/apperror"
	"github.com/d60-Lab/social-graph/pkg/logger"
	"github.com/d60-Lab/social-graph/pkg/metrics"
)

// FollowResult 关注/取关结果
type FollowResult struct {
	FollowerID string `json:"followerId"`
	FollowedID string `json:"followedId"`
	Following  bool   `json:"following"`
	// Changed 为 false 表示关系本来就是目标状态
	Changed bool `json:"changed"`
}

// IDPage 分页的用户 id 列表
type IDPage struct {
	Page     int      `json:"page"`
	PageSize int      `json:"page_size"`
	Total    int      `json:"total"`
	List     []string `json:"list"`
}

// RelationshipService 关系链服务
type RelationshipService interface {
	Follow(ctx context.Context, followerID, followedID string) (*FollowResult, error)
	Unfollow(ctx context.Context, followerID, followedID string) (*FollowResult, error)
	ListFollowing(ctx context.Context, userID string, page, pageSize int) (*IDPage, error)
	ListFollowers(ctx context.Context, userID string, page, pageSize int) (*IDPage, error)
}

type relationshipService struct {
	repos *repository.Repositories
	cache *cache.RelationCache
}

// NewRelationshipService relCache 可为 nil，此时直接查库
func NewRelationshipService(repos *repository.Repositories, relCache *cache.RelationCache) RelationshipService {
	return &relationshipService{repos: repos, cache: relCache}
}

func (s *relationshipService) Follow(ctx context.Context, followerID, followedID string) (*FollowResult, error) {
	if followerID == followedID {
		return nil, graph.ErrFollowSelf
	}
	res := &FollowResult{FollowerID: followerID, FollowedID: followedID, Following: true}
	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		follower, followed, err := loadPair(ctx, tx, followerID, followedID)
		if err != nil {
			return err
		}
		created, err := graph.Follow(follower, followed)
		if err != nil {
			return err
		}
		res.Changed = created
		if !created {
			return nil
		}
		return tx.Follows.Create(ctx, follower.ID, followed.ID)
	})
	if err != nil {
		return nil, wrapInternal(err)
	}
	if res.Changed {
		metrics.GraphMutations.WithLabelValues("follow").Inc()
		s.invalidate(ctx, followerID, followedID)
	}
	return res, nil
}

func (s *relationshipService) Unfollow(ctx context.Context, followerID, followedID string) (*FollowResult, error) {
	res := &FollowResult{FollowerID: followerID, FollowedID: followedID}
	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		follower, followed, err := loadPair(ctx, tx, followerID, followedID)
		if err != nil {
			return err
		}
		res.Changed = graph.Unfollow(follower, followed)
		if !res.Changed {
			return nil
		}
		return tx.Follows.Delete(ctx, follower.ID, followed.ID)
	})
	if err != nil {
		return nil, wrapInternal(err)
	}
	if res.Changed {
		metrics.GraphMutations.WithLabelValues("unfollow").Inc()
		s.invalidate(ctx, followerID, followedID)
	}
	return res, nil
}

func (s *relationshipService) ListFollowing(ctx context.Context, userID string, page, pageSize int) (*IDPage, error) {
	return s.list(ctx, userID, page, pageSize, s.repos.Follows.FollowingIDs, false)
}

func (s *relationshipService) ListFollowers(ctx context.Context, userID string, page, pageSize int) (*IDPage, error) {
	return s.list(ctx, userID, page, pageSize, s.repos.Follows.FollowerIDs, true)
}

func (s *relationshipService) list(ctx context.Context, userID string, page, pageSize int, load cache.Loader, followers bool) (*IDPage, error) {
	page, pageSize = normalizePage(page, pageSize)

	var (
		ids   []string
		total int
		err   error
	)
	switch {
	case s.cache != nil && followers:
		ids, total, err = s.cache.Followers(ctx, userID, page, pageSize, load)
	case s.cache != nil:
		ids, total, err = s.cache.Following(ctx, userID, page, pageSize, load)
	default:
		ids, total, err = pageIDs(ctx, userID, page, pageSize, load)
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &IDPage{Page: page, PageSize: pageSize, Total: total, List: ids}, nil
}

func pageIDs(ctx context.Context, userID string, page, pageSize int, load cache.Loader) ([]string, int, error) {
	all, err := load(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	start := (page - 1) * pageSize
	if start < 0 || start >= len(all) {
		return []string{}, len(all), nil
	}
	end := min(start+pageSize, len(all))
	return all[start:end], len(all), nil
}

// invalidate 事务提交后清理双方的关系缓存，失败只记日志，缓存随 TTL 过期
func (s *relationshipService) invalidate(ctx context.Context, userIDs ...string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userIDs...); err != nil {
		logger.Warn("relation cache invalidate failed", zap.Strings("users", userIDs), zap.Error(err))
	}
}

func loadPair(ctx context.Context, tx *repository.Repositories, followerID, followedID string) (*model.User, *model.User, error) {
	follower, err := tx.Users.GetByID(ctx, followerID)
	if err != nil {
		return nil, nil, mapNotFound(err, ErrUserNotFound)
	}
	followed, err := tx.Users.GetByID(ctx, followedID)
	if err != nil {
		return nil, nil, mapNotFound(err, ErrUserNotFound)
	}
	return follower, followed, nil
}
