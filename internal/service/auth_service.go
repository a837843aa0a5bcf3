package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/d60-Lab/social-graph/internal/model"
	"github.com/d60-Lab/social-graph/internal/repository"
	"github.com/d60-Lab/social-graph/pkg/apperror"
	"github.com/d60-Lab/social-graph/pkg/jwt"
	"github.com/d60-Lab/social-graph/pkg/logger"
	"github.com/d60-Lab/social-graph/pkg/metrics"
	"github.com/d60-Lab/social-graph/pkg/phone"
)

// BcryptCost 密码哈希固定成本
const BcryptCost = 10

var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-password"), BcryptCost)

var (
	ErrMissingFields      = apperror.Validation("please fill all the required fields")
	ErrMissingCredentials = apperror.Validation("please provide phone number and password")
	ErrInvalidPhone       = apperror.Validation("please provide a valid phone number")
	ErrPhoneTaken         = apperror.Conflict("phone number has already been used")
	ErrUsernameTaken      = apperror.Conflict("user name has already been used")
	ErrInvalidCredentials = apperror.Auth("invalid phone number or password")
	ErrNotAuthorized      = apperror.Auth("not authorized, please login")
	ErrSessionExpired     = apperror.Auth("session expired, please login again")
)

// AuthResult 注册/登录结果
type AuthResult struct {
	UserID      string    `json:"id"`
	PhoneNumber string    `json:"phoneNumber"`
	Token       string    `json:"token"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// RegisterInput 注册参数
type RegisterInput struct {
	Username    string
	PhoneNumber string
	Password    string
}

// AuthService 凭证管理：注册、登录、校验 token。服务端不保存会话
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, phoneNumber, password string) (*AuthResult, error)
	Verify(ctx context.Context, token string) (string, error)
	// SessionTTL 会话有效期，cookie 与 token 共用
	SessionTTL() time.Duration
}

type authService struct {
	users  repository.UserRepository
	tokens *jwt.Manager
}

func NewAuthService(users repository.UserRepository, tokens *jwt.Manager) AuthService {
	return &authService{users: users, tokens: tokens}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || strings.TrimSpace(in.PhoneNumber) == "" || in.Password == "" {
		return nil, ErrMissingFields
	}
	phoneNumber, err := phone.Normalize(in.PhoneNumber)
	if err != nil {
		return nil, ErrInvalidPhone
	}

	taken, err := s.users.ExistsByPhone(ctx, phoneNumber)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if taken {
		return nil, ErrPhoneTaken
	}
	taken, err = s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), BcryptCost)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	user := &model.User{
		ID:          uuid.New().String(),
		Username:    username,
		PhoneNumber: phoneNumber,
		Password:    string(hashed),
	}
	if err := s.users.Create(ctx, user); err != nil {
		// 并发注册由唯一索引兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.duplicateConflict(ctx, phoneNumber, username)
		}
		return nil, apperror.Internal(err)
	}
	logger.Info("user registered", zap.String("user_id", user.ID))
	metrics.AuthAttempts.WithLabelValues("register", "success").Inc()

	return s.issue(user)
}

// duplicateConflict 唯一索引冲突后重新判断是哪一列被占用
func (s *authService) duplicateConflict(ctx context.Context, phoneNumber, username string) error {
	if taken, err := s.users.ExistsByPhone(ctx, phoneNumber); err == nil && taken {
		return ErrPhoneTaken
	}
	if taken, err := s.users.ExistsByUsername(ctx, username); err == nil && taken {
		return ErrUsernameTaken
	}
	return ErrPhoneTaken
}

func (s *authService) Login(ctx context.Context, phoneNumber, password string) (*AuthResult, error) {
	if strings.TrimSpace(phoneNumber) == "" || password == "" {
		return nil, ErrMissingCredentials
	}
	normalized, err := phone.Normalize(phoneNumber)
	if err != nil {
		return nil, ErrInvalidPhone
	}

	user, err := s.users.GetByPhone(ctx, normalized)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// 与密码错误耗时一致，避免枚举手机号
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			metrics.AuthAttempts.WithLabelValues("login", "failure").Inc()
			return nil, ErrInvalidCredentials
		}
		return nil, apperror.Internal(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		metrics.AuthAttempts.WithLabelValues("login", "failure").Inc()
		return nil, ErrInvalidCredentials
	}
	metrics.AuthAttempts.WithLabelValues("login", "success").Inc()
	return s.issue(user)
}

func (s *authService) Verify(_ context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrNotAuthorized
	}
	userID, err := s.tokens.Parse(token)
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			return "", ErrSessionExpired
		}
		return "", ErrNotAuthorized
	}
	return userID, nil
}

func (s *authService) SessionTTL() time.Duration { return s.tokens.TTL() }

func (s *authService) issue(user *model.User) (*AuthResult, error) {
	token, exp, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &AuthResult{UserID: user.ID, PhoneNumber: user.PhoneNumber, Token: token, ExpiresAt: exp}, nil
}
