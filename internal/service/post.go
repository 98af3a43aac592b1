package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/post-api/internal/errs"
	"github.com/deppfellow/post-api/internal/middleware"
	"github.com/deppfellow/post-api/internal/model/post"
	"github.com/deppfellow/post-api/internal/repository"
	"github.com/deppfellow/post-api/internal/server"
)

// PostRepository is the persistence the post service needs. Lookups of a
// missing id return an error wrapping repository.ErrNotFound.
type PostRepository interface {
	FindByID(ctx context.Context, id int64) (*post.Post, error)
	ListAll(ctx context.Context) ([]post.Post, error)
	Insert(ctx context.Context, payload *post.CreatePostPayload) (*post.Post, error)
	UpsertByID(ctx context.Context, payload *post.UpdatePostPayload) (*post.Post, error)
	DeleteByID(ctx context.Context, id int64) error
}

type PostService struct {
	server   *server.Server
	postRepo PostRepository
}

func NewPostService(s *server.Server, postRepo PostRepository) *PostService {
	return &PostService{
		server:   s,
		postRepo: postRepo,
	}
}

func errPostNotFound() *errs.HTTPError {
	return errs.NewNotFoundError("Post not found", false, nil)
}

// GetPost returns the post with id, or a 404 "Post not found".
func (s *PostService) GetPost(c echo.Context, id int64) (*post.Post, error) {
	p, err := s.postRepo.FindByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errPostNotFound()
		}
		return nil, fmt.Errorf("failed to fetch post: %w", err)
	}

	return p, nil
}

// ListPosts returns every post ordered by id. The slice is empty, not nil,
// when there are none.
func (s *PostService) ListPosts(c echo.Context) ([]post.Post, error) {
	posts, err := s.postRepo.ListAll(c.Request().Context())
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	if posts == nil {
		posts = []post.Post{}
	}

	return posts, nil
}

func (s *PostService) CreatePost(c echo.Context, payload *post.CreatePostPayload) (*post.Post, error) {
	logger := middleware.GetLogger(c)

	p, err := s.postRepo.Insert(c.Request().Context(), payload)
	if err != nil {
		logger.Error().Err(err).Msg("failed to create post")
		return nil, err
	}

	logger.Info().Int64("post_id", p.ID).Msg("post created")

	return p, nil
}

// UpdatePost replaces the title and content of an existing post.
//
// A missing post is a 404 and nothing is written; the request body is
// only read after the lookup succeeds. The write itself is an
// upsert keyed on id, so a delete landing between the lookup and the write
// re-creates the row; no transaction guards that window.
func (s *PostService) UpdatePost(c echo.Context, payload *post.UpdatePostPayload) (*post.Post, error) {
	ctx := c.Request().Context()
	logger := middleware.GetLogger(c)

	if _, err := s.postRepo.FindByID(ctx, payload.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errPostNotFound()
		}
		return nil, fmt.Errorf("failed to fetch post: %w", err)
	}

	if err := payload.BindBody(c); err != nil {
		return nil, err
	}

	p, err := s.postRepo.UpsertByID(ctx, payload)
	if err != nil {
		logger.Error().Err(err).Int64("post_id", payload.ID).Msg("failed to update post")
		return nil, err
	}

	logger.Info().Int64("post_id", p.ID).Msg("post updated")

	return p, nil
}

// DeletePost removes the post with id, or returns a 404 "Post not found".
// A concurrent delete that wins the race still counts as success.
func (s *PostService) DeletePost(c echo.Context, id int64) error {
	ctx := c.Request().Context()
	logger := middleware.GetLogger(c)

	if _, err := s.postRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errPostNotFound()
		}
		return fmt.Errorf("failed to fetch post: %w", err)
	}

	if err := s.postRepo.DeleteByID(ctx, id); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			logger.Error().Err(err).Int64("post_id", id).Msg("failed to delete post")
			return err
		}
		logger.Warn().Int64("post_id", id).Msg("post already deleted")
	}

	logger.Info().Int64("post_id", id).Msg("post deleted")

	return nil
}
