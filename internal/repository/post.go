package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/deppfellow/post-api/internal/model/post"
	"github.com/deppfellow/post-api/internal/server"
)

const postColumns = "id, title, content, created_at, updated_at"

type PostRepository struct {
	server *server.Server
}

func NewPostRepository(s *server.Server) *PostRepository {
	return &PostRepository{server: s}
}

func (r *PostRepository) FindByID(ctx context.Context, id int64) (*post.Post, error) {
	stmt := `
		SELECT ` + postColumns + `
		FROM posts
		WHERE id = @id
	`

	rows, err := r.server.DB.Pool.Query(ctx, stmt, pgx.NamedArgs{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to execute get post by id query for id=%d: %w", id, err)
	}

	p, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[post.Post])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			zerolog.Ctx(ctx).Debug().Int64("post_id", id).Msg("post lookup matched no rows")
			return nil, fmt.Errorf("table:posts: id=%d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to collect row from table:posts for id=%d: %w", id, err)
	}

	return &p, nil
}

// ListAll returns every post ordered by id. The result is never nil.
func (r *PostRepository) ListAll(ctx context.Context) ([]post.Post, error) {
	stmt := `
		SELECT ` + postColumns + `
		FROM posts
		ORDER BY id ASC
	`

	rows, err := r.server.DB.Pool.Query(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("failed to execute list posts query: %w", err)
	}

	posts, err := pgx.CollectRows(rows, pgx.RowToStructByName[post.Post])
	if err != nil {
		return nil, fmt.Errorf("failed to collect rows from table:posts: %w", err)
	}

	if posts == nil {
		posts = []post.Post{}
	}

	return posts, nil
}

func (r *PostRepository) Insert(ctx context.Context, payload *post.CreatePostPayload) (*post.Post, error) {
	stmt := `
		INSERT INTO posts (title, content)
		VALUES (@title, @content)
		RETURNING ` + postColumns

	rows, err := r.server.DB.Pool.Query(ctx, stmt, pgx.NamedArgs{
		"title":   payload.Title,
		"content": payload.Content,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute create post query: %w", err)
	}

	p, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[post.Post])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:posts: %w", err)
	}

	return &p, nil
}

// UpsertByID updates title and content of the post with the payload's id, or
// inserts it under that id when no such row exists.
func (r *PostRepository) UpsertByID(ctx context.Context, payload *post.UpdatePostPayload) (*post.Post, error) {
	stmt := `
		INSERT INTO posts (id, title, content)
		VALUES (@id, @title, @content)
		ON CONFLICT (id) DO UPDATE
		SET title = EXCLUDED.title,
			content = EXCLUDED.content,
			updated_at = NOW()
		RETURNING ` + postColumns

	rows, err := r.server.DB.Pool.Query(ctx, stmt, pgx.NamedArgs{
		"id":      payload.ID,
		"title":   payload.Title,
		"content": payload.Content,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute upsert post query for id=%d: %w", payload.ID, err)
	}

	p, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[post.Post])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:posts for id=%d: %w", payload.ID, err)
	}

	zerolog.Ctx(ctx).Debug().Int64("post_id", p.ID).Msg("post upserted")

	return &p, nil
}

func (r *PostRepository) DeleteByID(ctx context.Context, id int64) error {
	stmt := `
		DELETE FROM posts
		WHERE id = @id
	`

	result, err := r.server.DB.Pool.Exec(ctx, stmt, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("failed to execute delete post query for id=%d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		zerolog.Ctx(ctx).Debug().Int64("post_id", id).Msg("post delete matched no rows")
		return fmt.Errorf("table:posts: id=%d: %w", id, ErrNotFound)
	}

	return nil
}
