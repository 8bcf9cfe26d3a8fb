package ports

import (
	"context"

	"github.com/userhub/account-service/internal/core/domain"
)

// RegisterInput carries the registration payload. All fields are required;
// BirthDate must parse as a YYYY-MM-DD calendar date.
type RegisterInput struct {
	FullName  string
	BirthDate string
	Email     string
	Password  string
}

// LoginResult is what a successful login returns to the caller.
type LoginResult struct {
	Token  string
	UserID string
	Role   domain.Role
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}
