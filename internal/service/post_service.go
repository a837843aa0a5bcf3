package service

import (
	"context"
	"errors"
	"strings"

	"github.com/d60-Lab/social-graph/internal/graph"
	"github.com/d60-Lab/social-graph/internal/model"
	"github.com/d60-Lab/social-graph/internal/repository"
	"github.com/d60-Lab/social-graph/pkg/apperror"
	"github.com/d60-Lab/social-graph/pkg/metrics"
)

var (
	ErrPostNotFound = apperror.NotFound("post not found")
	ErrUserNotFound = apperror.NotFound("user not found")
	ErrEmptyQuery   = apperror.Validation("please provide a search query")
)

// LikeResult 点赞切换结果
type LikeResult struct {
	Liked bool        `json:"liked"`
	Post  *model.Post `json:"post"`
}

// PostService 帖子服务
type PostService interface {
	Create(ctx context.Context, userID string, in graph.PostInput) (*model.Post, error)
	Update(ctx context.Context, userID, postID string, in graph.PostInput) (*model.Post, error)
	Get(ctx context.Context, postID string) (*model.PostDetail, error)
	// List 全站动态，最新在前
	List(ctx context.Context, page, limit int) (*model.PostPage, error)
	ListByOwner(ctx context.Context, ownerID string, page, limit int) (*model.PostPage, error)
	Search(ctx context.Context, query string, page, limit int) (*model.PostPage, error)
	ToggleLike(ctx context.Context, userID, postID string) (*LikeResult, error)
}

type postService struct {
	repos *repository.Repositories
}

func NewPostService(repos *repository.Repositories) PostService {
	return &postService{repos: repos}
}

func (s *postService) Create(ctx context.Context, userID string, in graph.PostInput) (*model.Post, error) {
	var post *model.Post
	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		user, err := tx.Users.GetByID(ctx, userID)
		if err != nil {
			return mapNotFound(err, ErrUserNotFound)
		}
		post, err = graph.CreatePost(user, in)
		if err != nil {
			return err
		}
		return tx.Posts.Create(ctx, post)
	})
	if err != nil {
		return nil, wrapInternal(err)
	}
	metrics.GraphMutations.WithLabelValues("post").Inc()
	return post, nil
}

func (s *postService) Update(ctx context.Context, userID, postID string, in graph.PostInput) (*model.Post, error) {
	var post *model.Post
	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		var err error
		post, err = tx.Posts.GetByID(ctx, postID)
		if err != nil {
			return mapNotFound(err, ErrPostNotFound)
		}
		if err := graph.UpdatePost(userID, post, in); err != nil {
			return err
		}
		return tx.Posts.Update(ctx, post)
	})
	if err != nil {
		return nil, wrapInternal(err)
	}
	return post, nil
}

func (s *postService) Get(ctx context.Context, postID string) (*model.PostDetail, error) {
	return loadPostDetail(ctx, s.repos, postID)
}

func (s *postService) List(ctx context.Context, page, limit int) (*model.PostPage, error) {
	return s.list(ctx, repository.PostFilter{}, page, limit)
}

func (s *postService) ListByOwner(ctx context.Context, ownerID string, page, limit int) (*model.PostPage, error) {
	return s.list(ctx, repository.PostFilter{OwnerID: ownerID}, page, limit)
}

func (s *postService) Search(ctx context.Context, query string, page, limit int) (*model.PostPage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	return s.list(ctx, repository.PostFilter{Query: query}, page, limit)
}

func (s *postService) list(ctx context.Context, f repository.PostFilter, page, limit int) (*model.PostPage, error) {
	page, limit = normalizePage(page, limit)
	items, total, err := s.repos.Posts.List(ctx, f, (page-1)*limit, limit)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return newPostPage(page, limit, total, items), nil
}

// ToggleLike 在同一事务内切换点赞并写入关系表
func (s *postService) ToggleLike(ctx context.Context, userID, postID string) (*LikeResult, error) {
	var res LikeResult
	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		post, err := tx.Posts.GetByID(ctx, postID)
		if err != nil {
			return mapNotFound(err, ErrPostNotFound)
		}
		user, err := tx.Users.GetByID(ctx, userID)
		if err != nil {
			return mapNotFound(err, ErrUserNotFound)
		}

		liked := graph.ToggleLike(user, post)
		if liked {
			err = tx.Likes.LikePost(ctx, user.ID, post.ID)
		} else {
			err = tx.Likes.UnlikePost(ctx, user.ID, post.ID)
		}
		if err != nil {
			return err
		}
		res = LikeResult{Liked: liked, Post: post}
		return nil
	})
	if err != nil {
		return nil, wrapInternal(err)
	}
	metrics.GraphMutations.WithLabelValues(likeOp(res.Liked)).Inc()
	return &res, nil
}

func loadPostDetail(ctx context.Context, repos *repository.Repositories, postID string) (*model.PostDetail, error) {
	post, err := repos.Posts.GetByID(ctx, postID)
	if err != nil {
		return nil, wrapInternal(mapNotFound(err, ErrPostNotFound))
	}
	comments, err := repos.Comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &model.PostDetail{Post: post, Comments: comments}, nil
}

func likeOp(liked bool) string {
	if liked {
		return "like"
	}
	return "unlike"
}

// mapNotFound 把仓储层 ErrNotFound 转为业务错误
func mapNotFound(err, notFound error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFound
	}
	return err
}

// wrapInternal 未分类的错误统一视为内部错误
func wrapInternal(err error) error {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.Internal(err)
}
