package testutil

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/deppfellow/post-api/internal/model"
	"github.com/deppfellow/post-api/internal/model/post"
	"github.com/deppfellow/post-api/internal/repository"
)

// PostRepository is a concurrency-safe in-memory post store with
// auto-increment ids starting at 1.
type PostRepository struct {
	mu     sync.Mutex
	posts  map[int64]post.Post
	nextID int64

	// Err, when set, is returned by every method.
	Err error
}

func NewPostRepository() *PostRepository {
	return &PostRepository{
		posts:  make(map[int64]post.Post),
		nextID: 1,
	}
}

func notFound(id int64) error {
	return fmt.Errorf("table:posts: id=%d: %w", id, repository.ErrNotFound)
}

func (r *PostRepository) FindByID(_ context.Context, id int64) (*post.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}

	p, ok := r.posts[id]
	if !ok {
		return nil, notFound(id)
	}
	return &p, nil
}

func (r *PostRepository) ListAll(_ context.Context) ([]post.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}

	posts := make([]post.Post, 0, len(r.posts))
	for _, p := range r.posts {
		posts = append(posts, p)
	}
	slices.SortFunc(posts, func(a, b post.Post) int {
		return int(a.ID - b.ID)
	})
	return posts, nil
}

func (r *PostRepository) Insert(_ context.Context, payload *post.CreatePostPayload) (*post.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}

	now := time.Now().UTC()
	p := post.Post{
		Base:    model.Base{ID: r.nextID, CreatedAt: now, UpdatedAt: now},
		Title:   payload.Title,
		Content: payload.Content,
	}
	r.posts[p.ID] = p
	r.nextID++

	return &p, nil
}

func (r *PostRepository) UpsertByID(_ context.Context, payload *post.UpdatePostPayload) (*post.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}

	now := time.Now().UTC()
	p, ok := r.posts[payload.ID]
	if !ok {
		p.ID = payload.ID
		p.CreatedAt = now
		if payload.ID >= r.nextID {
			r.nextID = payload.ID + 1
		}
	}
	p.Title = payload.Title
	p.Content = payload.Content
	p.UpdatedAt = now
	r.posts[p.ID] = p

	return &p, nil
}

func (r *PostRepository) DeleteByID(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return r.Err
	}

	if _, ok := r.posts[id]; !ok {
		return notFound(id)
	}
	delete(r.posts, id)
	return nil
}

// Len reports how many posts are stored.
func (r *PostRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.posts)
}
