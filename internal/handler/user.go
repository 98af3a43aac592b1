package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/post-api/internal/model/user"
	"github.com/deppfellow/post-api/internal/server"
	"github.com/deppfellow/post-api/internal/service"
)

type UserHandler struct {
	Handler
	userService *service.UserService
}

func NewUserHandler(s *server.Server, userService *service.UserService) *UserHandler {
	return &UserHandler{
		Handler:     NewHandler(s),
		userService: userService,
	}
}

func (h *UserHandler) Register(c echo.Context, payload *user.RegisterPayload) (*user.User, error) {
	return h.userService.Register(c, payload)
}
