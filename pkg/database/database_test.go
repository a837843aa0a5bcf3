package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/social-graph/config"
)

func TestInitDB_SQLite(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{
		Driver:       "sqlite",
		DSN:          "file:initdb_test?mode=memory&cache=shared",
		MaxOpenConns: 1,
		AutoMigrate:  true,
	}}

	db, err := InitDB(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	for _, table := range []string{"users", "posts", "comments", "follows", "post_likes", "comment_likes"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestInitDB_UnsupportedDriver(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{Driver: "oracle"}}
	_, err := InitDB(cfg)
	assert.ErrorContains(t, err, "unsupported driver")
}

func TestInitDB_PostgresRequiresDSN(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{Driver: "postgres"}}
	_, err := InitDB(cfg)
	assert.ErrorContains(t, err, "dsn is required")
}
