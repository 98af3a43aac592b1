package service

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/deppfellow/post-api/internal/middleware"
	"github.com/deppfellow/post-api/internal/model/user"
	"github.com/deppfellow/post-api/internal/server"
)

// UserRepository is the persistence the user service needs. A duplicate
// username or email surfaces as a unique-violation *pgconn.PgError, which
// the global error handler maps to 400.
type UserRepository interface {
	Insert(ctx context.Context, payload *user.RegisterPayload, passwordHash string) (*user.User, error)
}

type UserService struct {
	server   *server.Server
	userRepo UserRepository
	cost     int
}

func NewUserService(s *server.Server, userRepo UserRepository) *UserService {
	return &UserService{
		server:   s,
		userRepo: userRepo,
		cost:     bcrypt.DefaultCost,
	}
}

// Register hashes the password with bcrypt and stores the new user.
func (s *UserService) Register(c echo.Context, payload *user.RegisterPayload) (*user.User, error) {
	logger := middleware.GetLogger(c)

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u, err := s.userRepo.Insert(c.Request().Context(), payload, string(hash))
	if err != nil {
		logger.Error().Err(err).Str("username", payload.Username).Msg("failed to register user")
		return nil, err
	}

	logger.Info().Int64("user_id", u.ID).Msg("user registered")

	return u, nil
}
