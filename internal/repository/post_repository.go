package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/d60-Lab/social-graph/internal/model"
)

// PostFilter 列表过滤条件，零值表示不过滤
type PostFilter struct {
	OwnerID string
	Query   string // 文本模糊匹配，大小写不敏感
}

type PostRepository interface {
	Create(ctx context.Context, p *model.Post) error
	// Update 只更新可编辑字段，owner_id 不可变
	Update(ctx context.Context, p *model.Post) error
	GetByID(ctx context.Context, id string) (*model.Post, error)
	// List 按创建时间倒序分页，同时返回符合条件的总数
	List(ctx context.Context, f PostFilter, offset, limit int) ([]*model.Post, int64, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) Create(ctx context.Context, p *model.Post) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *postRepository) Update(ctx context.Context, p *model.Post) error {
	return r.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"text":       p.Text,
			"category":   p.Category,
			"title":      p.Title,
			"updated_at": p.UpdatedAt,
		}).Error
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
	var p model.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, notFound(err)
	}
	if err := r.attachRelations(ctx, []*model.Post{&p}); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postRepository) List(ctx context.Context, f PostFilter, offset, limit int) ([]*model.Post, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		if f.OwnerID != "" {
			db = db.Where("owner_id = ?", f.OwnerID)
		}
		if q := strings.TrimSpace(f.Query); q != "" {
			db = db.Where("LOWER(text) LIKE ?", "%"+strings.ToLower(q)+"%")
		}
		return db
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Post{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	posts := []*model.Post{}
	err := r.db.WithContext(ctx).
		Scopes(scope).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	if err := r.attachRelations(ctx, posts); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// attachRelations 批量加载点赞用户与评论 ID
func (r *postRepository) attachRelations(ctx context.Context, posts []*model.Post) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make([]string, len(posts))
	byID := make(map[string]*model.Post, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
		byID[p.ID] = p
		p.Likes = []string{}
		p.Comments = []string{}
	}

	var likes []model.PostLike
	if err := r.db.WithContext(ctx).
		Where("post_id IN ?", ids).
		Order("created_at ASC, id ASC").
		Find(&likes).Error; err != nil {
		return err
	}
	for _, l := range likes {
		p := byID[l.PostID]
		p.Likes = append(p.Likes, l.UserID)
	}

	var comments []struct {
		ID     string
		PostID string
	}
	if err := r.db.WithContext(ctx).
		Model(&model.Comment{}).
		Select("id", "post_id").
		Where("post_id IN ?", ids).
		Order("created_at ASC, id ASC").
		Scan(&comments).Error; err != nil {
		return err
	}
	for _, c := range comments {
		p := byID[c.PostID]
		p.Comments = append(p.Comments, c.ID)
	}
	return nil
}
