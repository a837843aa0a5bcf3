package service

import (
	"context"

	"github.com/d60-Lab/social-graph/internal/model"
	"github.com/d60-Lab/social-graph/internal/repository"
)

// UserService 用户资料
type UserService interface {
	// Me 当前用户及其全部引用集合
	Me(ctx context.Context, userID string) (*model.User, error)
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) Me(ctx context.Context, userID string) (*model.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, wrapInternal(mapNotFound(err, ErrUserNotFound))
	}
	return u, nil
}
