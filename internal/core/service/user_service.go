package service

import (
	"context"

	"github.com/userhub/account-service/internal/core/domain"
	"github.com/userhub/account-service/internal/core/ports"
)

// UserService implements the protected account operations. Ownership and
// role checks run before any repository call; a denial never reaches the
// store.
type UserService struct {
	repo  ports.UserRepository
	cache ports.ProfileCache
}

// NewUserService wires the repository and an optional profile cache; pass a
// nil cache to disable caching.
func NewUserService(repo ports.UserRepository, cache ports.ProfileCache) *UserService {
	return &UserService{repo: repo, cache: cache}
}

func (s *UserService) Profile(ctx context.Context, identity domain.Identity) (*domain.User, error) {
	return s.repo.FindByID(ctx, identity.UserID)
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.FindAll(ctx)
}

func (s *UserService) Get(ctx context.Context, identity domain.Identity, targetID string) (*domain.User, error) {
	if !identity.CanActOn(targetID) {
		return nil, domain.ErrForbidden
	}

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, targetID); err == nil && cached != nil {
			return cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, user)
	}
	return user, nil
}

func (s *UserService) Block(ctx context.Context, identity domain.Identity, targetID string) (*domain.User, error) {
	if !identity.CanActOn(targetID) {
		return nil, domain.ErrForbidden
	}

	user, err := s.repo.UpdateStatus(ctx, targetID, domain.StatusBlocked)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, targetID)
	}
	return user, nil
}
