// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch, persist,
// or update data, abstracting SQL logic away from the service layer.
package repository

import (
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/deppfellow/post-api/internal/server"
)

// ErrNotFound is returned (wrapped) when the requested row does not exist.
// It wraps pgx.ErrNoRows so sqlerr.HandleError maps it to a 404 when it
// reaches the error handler unconverted.
var ErrNotFound = fmt.Errorf("record not found: %w", pgx.ErrNoRows)

// Repositories is a container for all repository instances.
type Repositories struct {
	Post *PostRepository
	User *UserRepository
}

// NewRepositories constructs every repository on top of the server's pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Post: NewPostRepository(s),
		User: NewUserRepository(s),
	}
}
