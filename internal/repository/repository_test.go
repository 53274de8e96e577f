package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"github.com/templui/nocturne/internal/db"
	"github.com/templui/nocturne/internal/model"
)

func setupDB(t *testing.T) *sqlx.DB {
	t.Helper()
	conn, err := db.Init("sqlite", filepath.Join(t.TempDir(), "test.db")+"?_pragma=foreign_keys(1)&_time_format=sqlite")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, db.RunMigrations(conn.DB, "sqlite"))
	return conn
}

func createUser(t *testing.T, conn *sqlx.DB, id string) *model.User {
	t.Helper()
	user := &model.User{ID: id, Email: id + "@example.com", CreatedAt: time.Now().UTC()}
	require.NoError(t, NewUserRepository(conn).Create(context.Background(), user))
	return user
}

func ptr[T any](v T) *T {
	return &v
}
