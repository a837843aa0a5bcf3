package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound 记录不存在
var ErrNotFound = errors.New("record not found")

// Repositories 聚合所有仓储，便于在同一事务内使用
type Repositories struct {
	db *gorm.DB

	Users    UserRepository
	Posts    PostRepository
	Comments CommentRepository
	Follows  FollowRepository
	Likes    LikeRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:       db,
		Users:    NewUserRepository(db),
		Posts:    NewPostRepository(db),
		Comments: NewCommentRepository(db),
		Follows:  NewFollowRepository(db),
		Likes:    NewLikeRepository(db),
	}
}

// Transaction 在单个数据库事务内执行 fn；fn 返回错误则回滚
func (r *Repositories) Transaction(ctx context.Context, fn func(tx *Repositories) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
