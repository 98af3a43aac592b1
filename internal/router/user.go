package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/post-api/internal/handler"
)

func registerUserRoutes(r *echo.Echo, h *handler.Handlers) {
	r.POST("/register", handler.Handle(h.User.Handler, h.User.Register, http.StatusOK))
}
