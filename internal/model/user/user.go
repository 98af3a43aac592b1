package user

import (
	"github.com/deppfellow/post-api/internal/model"
)

// User is a row of the users table. The password hash never leaves the
// service in a response.
type User struct {
	model.Base
	Username     string `json:"username" db:"username"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`
}
