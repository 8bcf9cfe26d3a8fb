package ports

import (
	"context"

	"github.com/userhub/account-service/internal/core/domain"
)

// UserService exposes the protected read/write operations. Authorization
// decisions over the caller identity happen here, before any store access.
type UserService interface {
	// Profile resolves the caller's own record.
	Profile(ctx context.Context, identity domain.Identity) (*domain.User, error)
	// List returns every user. Role gating for this operation is handled
	// at the route level (admin only).
	List(ctx context.Context) ([]domain.User, error)
	// Get fetches a user by id; allowed for admins and for the user itself.
	Get(ctx context.Context, identity domain.Identity, targetID string) (*domain.User, error)
	// Block sets the target's status to BLOCKED; allowed for admins and
	// for the user itself. The transition is one-way.
	Block(ctx context.Context, identity domain.Identity, targetID string) (*domain.User, error)
}
