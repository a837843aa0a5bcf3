package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/social-graph/internal/model"
)

type CommentRepository interface {
	Create(ctx context.Context, c *model.Comment) error
	GetByID(ctx context.Context, id string) (*model.Comment, error)
	// ListByPost 按创建时间正序返回帖子的全部评论
	ListByPost(ctx context.Context, postID string) ([]*model.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository { return &commentRepository{db: db} }

func (r *commentRepository) Create(ctx context.Context, c *model.Comment) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*model.Comment, error) {
	var c model.Comment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, notFound(err)
	}
	if err := r.attachLikes(ctx, []*model.Comment{&c}); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID string) ([]*model.Comment, error) {
	comments := []*model.Comment{}
	if err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	if err := r.attachLikes(ctx, comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) attachLikes(ctx context.Context, comments []*model.Comment) error {
	if len(comments) == 0 {
		return nil
	}
	ids := make([]string, len(comments))
	byID := make(map[string]*model.Comment, len(comments))
	for i, c := range comments {
		ids[i] = c.ID
		byID[c.ID] = c
		c.Likes = []string{}
	}

	var likes []model.CommentLike
	if err := r.db.WithContext(ctx).
		Where("comment_id IN ?", ids).
		Order("created_at ASC, id ASC").
		Find(&likes).Error; err != nil {
		return err
	}
	for _, l := range likes {
		c := byID[l.CommentID]
		c.Likes = append(c.Likes, l.UserID)
	}
	return nil
}
