package service

import (
	"context"
	"errors"
	"testing"

	"github.com/userhub/account-service/internal/core/domain"
)

// trackingRepo wraps stubUserRepo and records store access, so tests can
// assert that a denied request never reaches the repository.
type trackingRepo struct {
	*stubUserRepo
	findByIDCalls     int
	updateStatusCalls int
}

func (r *trackingRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	r.findByIDCalls++
	return r.stubUserRepo.FindByID(ctx, id)
}

func (r *trackingRepo) UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.User, error) {
	r.updateStatusCalls++
	return r.stubUserRepo.UpdateStatus(ctx, id, status)
}

type stubCache struct {
	entries     map[string]*domain.User
	sets        int
	invalidated []string
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[string]*domain.User)}
}

func (c *stubCache) Get(_ context.Context, id string) (*domain.User, error) {
	if u, ok := c.entries[id]; ok {
		return cloneUser(u), nil
	}
	return nil, nil
}

func (c *stubCache) Set(_ context.Context, user *domain.User) error {
	c.sets++
	c.entries[user.ID] = cloneUser(user)
	return nil
}

func (c *stubCache) Invalidate(_ context.Context, id string) error {
	c.invalidated = append(c.invalidated, id)
	delete(c.entries, id)
	return nil
}

func seedUser(t *testing.T, repo *stubUserRepo, email string, role domain.Role) *domain.User {
	t.Helper()
	user, err := repo.Create(context.Background(), &domain.User{
		FullName:     "Test User",
		Email:        email,
		PasswordHash: "hash",
		Role:         role,
		Status:       domain.StatusActive,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func asIdentity(u *domain.User) domain.Identity {
	return domain.Identity{UserID: u.ID, Role: u.Role}
}

func TestUserService_Profile(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, nil)
	alice := seedUser(t, repo, "alice@x.com", domain.RoleUser)

	got, err := svc.Profile(context.Background(), asIdentity(alice))
	if err != nil {
		t.Fatalf("profile failed: %v", err)
	}
	if got.Email != "alice@x.com" {
		t.Fatalf("expected own record, got %s", got.Email)
	}
}

func TestUserService_Profile_Missing(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, nil)

	identity := domain.Identity{UserID: "gone", Role: domain.RoleUser}
	if _, err := svc.Profile(context.Background(), identity); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_List(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, nil)
	seedUser(t, repo, "alice@x.com", domain.RoleUser)
	seedUser(t, repo, "bob@x.com", domain.RoleAdmin)

	users, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
}

func TestUserService_Get_Self(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, nil)
	alice := seedUser(t, repo, "alice@x.com", domain.RoleUser)

	got, err := svc.Get(context.Background(), asIdentity(alice), alice.ID)
	if err != nil {
		t.Fatalf("get self failed: %v", err)
	}
	if got.ID != alice.ID {
		t.Fatalf("expected own record, got %s", got.ID)
	}
}

func TestUserService_Get_OtherAsUser_Denied(t *testing.T) {
	stub := newStubUserRepo()
	repo := &trackingRepo{stubUserRepo: stub}
	svc := NewUserService(repo, nil)
	alice := seedUser(t, stub, "alice@x.com", domain.RoleUser)
	bob := seedUser(t, stub, "bob@x.com", domain.RoleUser)

	if _, err := svc.Get(context.Background(), asIdentity(alice), bob.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	// Denial must short-circuit before any store read.
	if repo.findByIDCalls != 0 {
		t.Fatalf("repository accessed after denial (%d calls)", repo.findByIDCalls)
	}
}

func TestUserService_Get_OtherAsAdmin(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, nil)
	admin := seedUser(t, repo, "admin@x.com", domain.RoleAdmin)
	bob := seedUser(t, repo, "bob@x.com", domain.RoleUser)

	got, err := svc.Get(context.Background(), asIdentity(admin), bob.ID)
	if err != nil {
		t.Fatalf("admin get failed: %v", err)
	}
	if got.ID != bob.ID {
		t.Fatalf("expected bob, got %s", got.ID)
	}
}

func TestUserService_Get_PopulatesCache(t *testing.T) {
	repo := newStubUserRepo()
	cache := newStubCache()
	svc := NewUserService(repo, cache)
	alice := seedUser(t, repo, "alice@x.com", domain.RoleUser)

	if _, err := svc.Get(context.Background(), asIdentity(alice), alice.ID); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if cache.sets != 1 {
		t.Fatalf("expected 1 cache set, got %d", cache.sets)
	}

	// Second read is served from the cache.
	tracking := &trackingRepo{stubUserRepo: repo}
	svc = NewUserService(tracking, cache)
	if _, err := svc.Get(context.Background(), asIdentity(alice), alice.ID); err != nil {
		t.Fatalf("cached get failed: %v", err)
	}
	if tracking.findByIDCalls != 0 {
		t.Fatalf("expected cache hit, repository was read %d times", tracking.findByIDCalls)
	}
}

func TestUserService_Block_Self(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, nil)
	alice := seedUser(t, repo, "alice@x.com", domain.RoleUser)

	blocked, err := svc.Block(context.Background(), asIdentity(alice), alice.ID)
	if err != nil {
		t.Fatalf("block self failed: %v", err)
	}
	if blocked.Status != domain.StatusBlocked {
		t.Fatalf("expected BLOCKED, got %s", blocked.Status)
	}
}

func TestUserService_Block_OtherAsUser_Denied(t *testing.T) {
	stub := newStubUserRepo()
	repo := &trackingRepo{stubUserRepo: stub}
	svc := NewUserService(repo, nil)
	alice := seedUser(t, stub, "alice@x.com", domain.RoleUser)
	bob := seedUser(t, stub, "bob@x.com", domain.RoleUser)

	if _, err := svc.Block(context.Background(), asIdentity(alice), bob.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if repo.updateStatusCalls != 0 {
		t.Fatalf("repository written after denial (%d calls)", repo.updateStatusCalls)
	}
	if got, _ := stub.FindByID(context.Background(), bob.ID); got.Status != domain.StatusActive {
		t.Fatalf("target status changed after denial: %s", got.Status)
	}
}

func TestUserService_Block_AnyAsAdmin(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, nil)
	admin := seedUser(t, repo, "admin@x.com", domain.RoleAdmin)
	bob := seedUser(t, repo, "bob@x.com", domain.RoleUser)

	blocked, err := svc.Block(context.Background(), asIdentity(admin), bob.ID)
	if err != nil {
		t.Fatalf("admin block failed: %v", err)
	}
	if blocked.Status != domain.StatusBlocked {
		t.Fatalf("expected BLOCKED, got %s", blocked.Status)
	}
}

func TestUserService_Block_InvalidatesCache(t *testing.T) {
	repo := newStubUserRepo()
	cache := newStubCache()
	svc := NewUserService(repo, cache)
	alice := seedUser(t, repo, "alice@x.com", domain.RoleUser)

	if _, err := svc.Get(context.Background(), asIdentity(alice), alice.ID); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if _, err := svc.Block(context.Background(), asIdentity(alice), alice.ID); err != nil {
		t.Fatalf("block failed: %v", err)
	}
	if len(cache.invalidated) != 1 || cache.invalidated[0] != alice.ID {
		t.Fatalf("expected cache invalidation for %s, got %v", alice.ID, cache.invalidated)
	}
}
