package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/post-api/internal/handler"
)

func registerPostRoutes(r *echo.Echo, h *handler.Handlers) {
	posts := r.Group("/post")

	posts.GET("", handler.Handle(h.Post.Handler, h.Post.ListPosts, http.StatusOK))
	posts.POST("", handler.Handle(h.Post.Handler, h.Post.CreatePost, http.StatusOK))
	posts.GET("/:id", handler.Handle(h.Post.Handler, h.Post.GetPost, http.StatusOK))
	posts.PUT("/:id", handler.Handle(h.Post.Handler, h.Post.UpdatePost, http.StatusOK))
	posts.DELETE("/:id", handler.Handle(h.Post.Handler, h.Post.DeletePost, http.StatusOK))
}
