package service

import (
	"github.com/deppfellow/post-api/internal/repository"
	"github.com/deppfellow/post-api/internal/server"
)

type Services struct {
	Post *PostService
	User *UserService
}

func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	return &Services{
		Post: NewPostService(s, repos.Post),
		User: NewUserService(s, repos.User),
	}
}
