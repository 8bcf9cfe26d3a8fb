package service

import (
	"context"
	"errors"
	"time"

	"github.com/userhub/account-service/internal/core/domain"
	"github.com/userhub/account-service/internal/core/ports"
	"github.com/userhub/account-service/internal/pkg/hash"
	"github.com/userhub/account-service/internal/pkg/token"
)

const birthDateLayout = "2006-01-02"

// AuthService implements registration and login.
type AuthService struct {
	repo   ports.UserRepository
	tokens *token.Service
}

func NewAuthService(repo ports.UserRepository, tokens *token.Service) *AuthService {
	return &AuthService{repo: repo, tokens: tokens}
}

// Register creates a new account with role USER and status ACTIVE. No
// token is issued on registration.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.FullName == "" || in.BirthDate == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	birthDate, err := time.Parse(birthDateLayout, in.BirthDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	// The pre-check gives a friendly failure for the common case; the
	// store's unique email index settles concurrent duplicates.
	if _, err := s.repo.FindByEmail(ctx, in.Email); err == nil {
		return nil, domain.ErrEmailExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	passwordHash, err := hash.Password(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		FullName:     in.FullName,
		BirthDate:    birthDate,
		Email:        in.Email,
		PasswordHash: passwordHash,
		Role:         domain.RoleUser,
		Status:       domain.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return s.repo.Create(ctx, user)
}

// Login validates the credentials, rejects blocked accounts, and issues a
// session token. Nothing is written to the store.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if !hash.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	if user.Status == domain.StatusBlocked {
		return nil, domain.ErrAccountBlocked
	}

	signed, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	return &ports.LoginResult{Token: signed, UserID: user.ID, Role: user.Role}, nil
}
