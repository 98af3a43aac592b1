package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/post-api/internal/model/post"
	"github.com/deppfellow/post-api/internal/server"
	"github.com/deppfellow/post-api/internal/service"
)

type PostHandler struct {
	Handler
	postService *service.PostService
}

func NewPostHandler(s *server.Server, postService *service.PostService) *PostHandler {
	return &PostHandler{
		Handler:     NewHandler(s),
		postService: postService,
	}
}

func (h *PostHandler) GetPost(c echo.Context, payload *post.GetPostPayload) (*post.Post, error) {
	return h.postService.GetPost(c, payload.ID)
}

func (h *PostHandler) ListPosts(c echo.Context, _ *post.ListPostsPayload) ([]post.Post, error) {
	return h.postService.ListPosts(c)
}

func (h *PostHandler) CreatePost(c echo.Context, payload *post.CreatePostPayload) (*post.Post, error) {
	return h.postService.CreatePost(c, payload)
}

func (h *PostHandler) UpdatePost(c echo.Context, payload *post.UpdatePostPayload) (*post.Post, error) {
	return h.postService.UpdatePost(c, payload)
}

// DeletePost responds with an empty JSON object.
func (h *PostHandler) DeletePost(c echo.Context, payload *post.DeletePostPayload) (struct{}, error) {
	return struct{}{}, h.postService.DeletePost(c, payload.ID)
}
