package user

import (
	"strings"

	"github.com/deppfellow/post-api/internal/validation"
)

// RegisterPayload is the body of POST /register.
type RegisterPayload struct {
	Username string `json:"username" validate:"required,min=3,max=50,alphanum"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// Validate normalizes the email before running the tag rules.
func (p *RegisterPayload) Validate() error {
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	return validation.Struct(p)
}
