package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/deppfellow/post-api/internal/model"
	"github.com/deppfellow/post-api/internal/model/user"
)

// UserRepository is an in-memory user store enforcing the same unique
// constraints as the users table. Violations are reported as the
// *pgconn.PgError Postgres would return.
type UserRepository struct {
	mu     sync.Mutex
	users  []user.User
	nextID int64
}

func NewUserRepository() *UserRepository {
	return &UserRepository{nextID: 1}
}

func (r *UserRepository) Insert(_ context.Context, payload *user.RegisterPayload, passwordHash string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == payload.Username {
			return nil, uniqueViolation("users_username_key")
		}
		if u.Email == payload.Email {
			return nil, uniqueViolation("users_email_key")
		}
	}

	now := time.Now().UTC()
	u := user.User{
		Base:         model.Base{ID: r.nextID, CreatedAt: now, UpdatedAt: now},
		Username:     payload.Username,
		Email:        payload.Email,
		PasswordHash: passwordHash,
	}
	r.users = append(r.users, u)
	r.nextID++

	return &u, nil
}

// Get returns the stored user with id.
func (r *UserRepository) Get(id int64) (user.User, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.ID == id {
			return u, true
		}
	}
	return user.User{}, false
}

func uniqueViolation(constraint string) *pgconn.PgError {
	return &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23505",
		Message:        "duplicate key value violates unique constraint \"" + constraint + "\"",
		TableName:      "users",
		ConstraintName: constraint,
	}
}
