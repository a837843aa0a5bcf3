package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/d60-Lab/social-graph/internal/model"
	"github.com/d60-Lab/social-graph/internal/repository"
)

func setupRepos(t *testing.T) *repository.Repositories {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(model.All()...))
	t.Cleanup(func() { _ = sqlDB.Close() })
	return repository.NewRepositories(db)
}

var phoneSeq atomic.Int64

// createUser 直接落库，跳过 bcrypt
func createUser(t *testing.T, repos *repository.Repositories, name string) *model.User {
	t.Helper()
	u := &model.User{
		ID:          uuid.NewString(),
		Username:    name,
		PhoneNumber: fmt.Sprintf("+2519%08d", phoneSeq.Add(1)),
		Password:    "x",
	}
	require.NoError(t, repos.Users.Create(context.Background(), u))
	return u
}
