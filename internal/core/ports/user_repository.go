package ports

import (
	"context"

	"github.com/userhub/account-service/internal/core/domain"
)

// UserRepository defines the persistence contract for user accounts. The
// store is responsible for enforcing email uniqueness atomically: when two
// concurrent creates race on the same email, exactly one succeeds and the
// other observes domain.ErrEmailExists.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.User, error)
}

// ProfileCache is an optional read cache for fetch-by-id lookups. A miss is
// (nil, nil); cache errors are advisory and callers fall through to the
// repository.
type ProfileCache interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	Set(ctx context.Context, user *domain.User) error
	Invalidate(ctx context.Context, id string) error
}
