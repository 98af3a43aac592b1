package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/deppfellow/post-api/internal/model/user"
	"github.com/deppfellow/post-api/internal/server"
)

type UserRepository struct {
	server *server.Server
}

func NewUserRepository(s *server.Server) *UserRepository {
	return &UserRepository{server: s}
}

// Insert stores a new user. A duplicate username or email surfaces as a
// *pgconn.PgError unique violation, translated later by sqlerr.
func (r *UserRepository) Insert(ctx context.Context, payload *user.RegisterPayload, passwordHash string) (*user.User, error) {
	stmt := `
		INSERT INTO users (username, email, password_hash)
		VALUES (@username, @email, @password_hash)
		RETURNING id, username, email, password_hash, created_at, updated_at
	`

	rows, err := r.server.DB.Pool.Query(ctx, stmt, pgx.NamedArgs{
		"username":      payload.Username,
		"email":         payload.Email,
		"password_hash": passwordHash,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute create user query: %w", err)
	}

	u, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[user.User])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:users: %w", err)
	}

	return &u, nil
}
