package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/social-graph/internal/repository"
	"github.com/d60-Lab/social-graph/pkg/apperror"
	"github.com/d60-Lab/social-graph/pkg/jwt"
)

func newAuthService(t *testing.T, ttl time.Duration) (AuthService, *repository.Repositories) {
	repos := setupRepos(t)
	return NewAuthService(repos.Users, jwt.NewManager("test-secret", ttl, "social-graph")), repos
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc, repos := newAuthService(t, time.Hour)
	ctx := context.Background()

	reg, err := svc.Register(ctx, RegisterInput{Username: "abebe", PhoneNumber: "0911223344", Password: "p@ss"})
	require.NoError(t, err)
	assert.Equal(t, "+251911223344", reg.PhoneNumber)
	assert.NotEmpty(t, reg.Token)

	stored, err := repos.Users.GetByID(ctx, reg.UserID)
	require.NoError(t, err)
	assert.NotEqual(t, "p@ss", stored.Password)

	login, err := svc.Login(ctx, "+251 911 223 344", "p@ss")
	require.NoError(t, err)
	assert.Equal(t, reg.UserID, login.UserID)

	userID, err := svc.Verify(ctx, login.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.UserID, userID)
	assert.Equal(t, time.Hour, svc.SessionTTL())
}

func TestAuthService_RegisterConflicts(t *testing.T) {
	svc, _ := newAuthService(t, time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Username: "abebe", PhoneNumber: "0911223344", Password: "p@ss"})
	require.NoError(t, err)

	// 同一号码的不同写法
	_, err = svc.Register(ctx, RegisterInput{Username: "kebede", PhoneNumber: "+251911223344", Password: "x"})
	assert.ErrorIs(t, err, ErrPhoneTaken)
	assert.True(t, apperror.Is(err, apperror.KindConflict))

	_, err = svc.Register(ctx, RegisterInput{Username: "abebe", PhoneNumber: "0922334455", Password: "x"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	svc, _ := newAuthService(t, time.Hour)
	ctx := context.Background()

	cases := []struct {
		name string
		in   RegisterInput
		want error
	}{
		{"missing username", RegisterInput{PhoneNumber: "0911223344", Password: "x"}, ErrMissingFields},
		{"missing password", RegisterInput{Username: "a", PhoneNumber: "0911223344"}, ErrMissingFields},
		{"bad phone", RegisterInput{Username: "a", PhoneNumber: "12345", Password: "x"}, ErrInvalidPhone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.in)
			assert.ErrorIs(t, err, tc.want)
			assert.True(t, apperror.Is(err, apperror.KindValidation))
		})
	}
}

func TestAuthService_LoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newAuthService(t, time.Hour)
	ctx := context.Background()
	_, err := svc.Register(ctx, RegisterInput{Username: "abebe", PhoneNumber: "0911223344", Password: "p@ss"})
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, "0911223344", "nope")
	_, unknownPhone := svc.Login(ctx, "0933445566", "p@ss")

	require.Error(t, wrongPassword)
	require.Error(t, unknownPhone)
	assert.Equal(t, wrongPassword.Error(), unknownPhone.Error())
	assert.True(t, apperror.Is(wrongPassword, apperror.KindAuth))
	assert.True(t, apperror.Is(unknownPhone, apperror.KindAuth))

	_, err = svc.Login(ctx, "", "p@ss")
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestAuthService_Verify(t *testing.T) {
	svc, _ := newAuthService(t, time.Hour)
	ctx := context.Background()

	_, err := svc.Verify(ctx, "")
	assert.ErrorIs(t, err, ErrNotAuthorized)
	_, err = svc.Verify(ctx, "not-a-token")
	assert.ErrorIs(t, err, ErrNotAuthorized)

	expired, _ := newAuthService(t, -time.Minute)
	res, err := expired.Register(ctx, RegisterInput{Username: "abebe", PhoneNumber: "0911223344", Password: "p@ss"})
	require.NoError(t, err)
	_, err = expired.Verify(ctx, res.Token)
	assert.ErrorIs(t, err, ErrSessionExpired)
}

// racyUsers 让第一次存在性检查看不到并发插入的行
type racyUsers struct {
	repository.UserRepository
	phoneChecks    int
	usernameChecks int
}

func (r *racyUsers) ExistsByPhone(ctx context.Context, phoneNumber string) (bool, error) {
	r.phoneChecks++
	if r.phoneChecks == 1 {
		return false, nil
	}
	return r.UserRepository.ExistsByPhone(ctx, phoneNumber)
}

func (r *racyUsers) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	r.usernameChecks++
	if r.usernameChecks == 1 {
		return false, nil
	}
	return r.UserRepository.ExistsByUsername(ctx, username)
}

func TestAuthService_RegisterRaceReportsViolatedColumn(t *testing.T) {
	ctx := context.Background()
	tokens := jwt.NewManager("test-secret", time.Hour, "social-graph")

	t.Run("username", func(t *testing.T) {
		repos := setupRepos(t)
		createUser(t, repos, "abebe")
		svc := NewAuthService(&racyUsers{UserRepository: repos.Users}, tokens)

		_, err := svc.Register(ctx, RegisterInput{Username: "abebe", PhoneNumber: "0944556677", Password: "p@ss"})
		assert.ErrorIs(t, err, ErrUsernameTaken)
		assert.True(t, apperror.Is(err, apperror.KindConflict))
	})

	t.Run("phone", func(t *testing.T) {
		repos := setupRepos(t)
		plain := NewAuthService(repos.Users, tokens)
		_, err := plain.Register(ctx, RegisterInput{Username: "abebe", PhoneNumber: "0944556677", Password: "p@ss"})
		require.NoError(t, err)
		svc := NewAuthService(&racyUsers{UserRepository: repos.Users}, tokens)

		_, err = svc.Register(ctx, RegisterInput{Username: "kebede", PhoneNumber: "+251 944 556 677", Password: "p@ss"})
		assert.ErrorIs(t, err, ErrPhoneTaken)
		assert.True(t, apperror.Is(err, apperror.KindConflict))
	})
}
