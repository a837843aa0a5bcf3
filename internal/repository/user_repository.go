package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/social-graph/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	// GetByID 返回用户及其全部引用集合
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByPhone(ctx context.Context, phoneNumber string) (*model.User, error)
	ExistsByPhone(ctx context.Context, phoneNumber string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepository{db: db} }

func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	if err := r.loadRelations(ctx, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByPhone(ctx context.Context, phoneNumber string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("phone_number = ?", phoneNumber).First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *userRepository) ExistsByPhone(ctx context.Context, phoneNumber string) (bool, error) {
	return r.exists(ctx, "phone_number = ?", phoneNumber)
}

func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "username = ?", username)
}

func (r *userRepository) exists(ctx context.Context, query string, arg interface{}) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where(query, arg).Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// loadRelations 从关系表派生用户的各个引用集合
func (r *userRepository) loadRelations(ctx context.Context, u *model.User) error {
	views := []struct {
		dst    *[]string
		model  interface{}
		where  string
		column string
	}{
		{&u.Posts, &model.Post{}, "owner_id = ?", "id"},
		{&u.Likes, &model.PostLike{}, "user_id = ?", "post_id"},
		{&u.Followers, &model.Follow{}, "followee_id = ?", "follower_id"},
		{&u.Follows, &model.Follow{}, "follower_id = ?", "followee_id"},
		{&u.Comments, &model.Comment{}, "owner_id = ?", "id"},
		{&u.LikedComments, &model.CommentLike{}, "user_id = ?", "comment_id"},
	}
	for _, v := range views {
		ids := []string{}
		err := r.db.WithContext(ctx).
			Model(v.model).
			Where(v.where, u.ID).
			Order("created_at ASC, id ASC").
			Pluck(v.column, &ids).Error
		if err != nil {
			return err
		}
		*v.dst = ids
	}
	return nil
}
