package service

import (
	"context"
	"strings"

	"github.com/d60-Lab/social-graph/internal/graph"
	"github.com/d60-Lab/social-graph/internal/model"
	"github.com/d60-Lab/social-graph/internal/repository"
	"github.com/d60-Lab/social-graph/pkg/apperror"
	"github.com/d60-Lab/social-graph/pkg/metrics"
)

var ErrCommentNotFound = apperror.NotFound("comment not found")

// CommentLikeResult 评论点赞切换结果
type CommentLikeResult struct {
	Liked   bool           `json:"liked"`
	Comment *model.Comment `json:"comment"`
}

// CommentService 评论服务
type CommentService interface {
	// Add 发表评论，返回带评论列表的帖子
	Add(ctx context.Context, userID, postID, text string) (*model.PostDetail, error)
	ToggleLike(ctx context.Context, userID, commentID string) (*CommentLikeResult, error)
}

type commentService struct {
	repos *repository.Repositories
}

func NewCommentService(repos *repository.Repositories) CommentService {
	return &commentService{repos: repos}
}

func (s *commentService) Add(ctx context.Context, userID, postID, text string) (*model.PostDetail, error) {
	if strings.TrimSpace(text) == "" {
		return nil, graph.ErrEmptyComment
	}
	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		post, err := tx.Posts.GetByID(ctx, postID)
		if err != nil {
			return mapNotFound(err, ErrPostNotFound)
		}
		user, err := tx.Users.GetByID(ctx, userID)
		if err != nil {
			return mapNotFound(err, ErrUserNotFound)
		}
		comment, err := graph.AddComment(user, post, text)
		if err != nil {
			return err
		}
		return tx.Comments.Create(ctx, comment)
	})
	if err != nil {
		return nil, wrapInternal(err)
	}
	metrics.GraphMutations.WithLabelValues("comment").Inc()
	return loadPostDetail(ctx, s.repos, postID)
}

func (s *commentService) ToggleLike(ctx context.Context, userID, commentID string) (*CommentLikeResult, error) {
	var res CommentLikeResult
	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		comment, err := tx.Comments.GetByID(ctx, commentID)
		if err != nil {
			return mapNotFound(err, ErrCommentNotFound)
		}
		user, err := tx.Users.GetByID(ctx, userID)
		if err != nil {
			return mapNotFound(err, ErrUserNotFound)
		}

		liked := graph.ToggleCommentLike(user, comment)
		if liked {
			err = tx.Likes.LikeComment(ctx, user.ID, comment.ID)
		} else {
			err = tx.Likes.UnlikeComment(ctx, user.ID, comment.ID)
		}
		if err != nil {
			return err
		}
		res = CommentLikeResult{Liked: liked, Comment: comment}
		return nil
	})
	if err != nil {
		return nil, wrapInternal(err)
	}
	metrics.GraphMutations.WithLabelValues("comment_" + likeOp(res.Liked)).Inc()
	return &res, nil
}
