package repository

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/post-api/internal/config"
	"github.com/deppfellow/post-api/internal/database"
	"github.com/deppfellow/post-api/internal/model/post"
	"github.com/deppfellow/post-api/internal/model/user"
	"github.com/deppfellow/post-api/internal/server"
)

// newTestRepositories connects to the database described by the usual
// POSTAPI_ env vars. Tests are skipped unless POSTAPI_INTEGRATION=1.
func newTestRepositories(t *testing.T) *Repositories {
	t.Helper()

	if os.Getenv("POSTAPI_INTEGRATION") != "1" {
		t.Skip("set POSTAPI_INTEGRATION=1 to run against PostgreSQL")
	}

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	logger := zerolog.Nop()
	ctx := context.Background()

	require.NoError(t, database.Migrate(ctx, &logger, cfg))

	db, err := database.New(cfg, &logger, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Pool.Exec(ctx, "TRUNCATE posts, users RESTART IDENTITY")
	require.NoError(t, err)

	return NewRepositories(&server.Server{Config: cfg, Logger: &logger, DB: db})
}

func TestPostRepository(t *testing.T) {
	repos := newTestRepositories(t)
	ctx := context.Background()

	posts, err := repos.Post.ListAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)

	created, err := repos.Post.Insert(ctx, &post.CreatePostPayload{Title: "a", Content: "b"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	found, err := repos.Post.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "a", found.Title)

	updated, err := repos.Post.UpsertByID(ctx, &post.UpdatePostPayload{ID: created.ID, Title: "c", Content: "d"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "c", updated.Title)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	require.NoError(t, repos.Post.DeleteByID(ctx, created.ID))

	_, err = repos.Post.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, pgx.ErrNoRows)

	assert.ErrorIs(t, repos.Post.DeleteByID(ctx, created.ID), ErrNotFound)
}

func TestPostRepositoryLogsThroughContext(t *testing.T) {
	repos := newTestRepositories(t)

	var buf bytes.Buffer
	ctx := zerolog.New(&buf).With().Str("request_id", "req-7").Logger().WithContext(context.Background())

	_, err := repos.Post.FindByID(ctx, 42)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, repos.Post.DeleteByID(ctx, 42), ErrNotFound)

	out := buf.String()
	assert.Contains(t, out, "post lookup matched no rows")
	assert.Contains(t, out, "post delete matched no rows")
	assert.Contains(t, out, `"request_id":"req-7"`)
	assert.Contains(t, out, `"post_id":42`)
}

func TestUserRepositoryDuplicateEmail(t *testing.T) {
	repos := newTestRepositories(t)
	ctx := context.Background()

	_, err := repos.User.Insert(ctx, &user.RegisterPayload{Username: "alice", Email: "a@example.com"}, "hash")
	require.NoError(t, err)

	_, err = repos.User.Insert(ctx, &user.RegisterPayload{Username: "bob", Email: "a@example.com"}, "hash")

	var pgErr *pgconn.PgError
	require.True(t, errors.As(err, &pgErr))
	assert.Equal(t, "23505", pgErr.Code)
	assert.Equal(t, "users_email_key", pgErr.ConstraintName)
}
