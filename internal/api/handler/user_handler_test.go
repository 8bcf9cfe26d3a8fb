package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/userhub/account-service/internal/api/middleware"
	"github.com/userhub/account-service/internal/core/domain"
)

type stubUserService struct {
	profileFn func(ctx context.Context, identity domain.Identity) (*domain.User, error)
	listFn    func(ctx context.Context) ([]domain.User, error)
	getFn     func(ctx context.Context, identity domain.Identity, targetID string) (*domain.User, error)
	blockFn   func(ctx context.Context, identity domain.Identity, targetID string) (*domain.User, error)
}

func (s *stubUserService) Profile(ctx context.Context, identity domain.Identity) (*domain.User, error) {
	return s.profileFn(ctx, identity)
}

func (s *stubUserService) List(ctx context.Context) ([]domain.User, error) {
	return s.listFn(ctx)
}

func (s *stubUserService) Get(ctx context.Context, identity domain.Identity, targetID string) (*domain.User, error) {
	return s.getFn(ctx, identity, targetID)
}

func (s *stubUserService) Block(ctx context.Context, identity domain.Identity, targetID string) (*domain.User, error) {
	return s.blockFn(ctx, identity, targetID)
}

func testUser() *domain.User {
	return &domain.User{
		ID:           "user-1",
		FullName:     "A B",
		BirthDate:    time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Email:        "a@x.com",
		PasswordHash: "$2a$10$secret-hash",
		Role:         domain.RoleUser,
		Status:       domain.StatusActive,
		CreatedAt:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func authedContext(t *testing.T, method, path, userID string, role domain.Role) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextKeyUserID, userID)
	c.Set(middleware.ContextKeyRole, role)
	return c, rec
}

func TestUserHandler_Me(t *testing.T) {
	stub := &stubUserService{
		profileFn: func(ctx context.Context, identity domain.Identity) (*domain.User, error) {
			if identity.UserID != "user-1" {
				t.Fatalf("unexpected identity: %+v", identity)
			}
			return testUser(), nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := authedContext(t, http.MethodGet, "/me", "user-1", domain.RoleUser)

	if err := handler.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["email"] != "a@x.com" || resp["birthDate"] != "1990-01-01" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	// The stored hash must never appear in any outward response.
	if _, present := resp["passwordHash"]; present {
		t.Fatalf("password hash leaked in response")
	}
}

func TestUserHandler_Me_NotFound(t *testing.T) {
	stub := &stubUserService{
		profileFn: func(ctx context.Context, identity domain.Identity) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	handler := NewUserHandler(stub)

	c, rec := authedContext(t, http.MethodGet, "/me", "user-1", domain.RoleUser)

	_ = handler.Me(c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestUserHandler_Me_MissingClaims(t *testing.T) {
	stub := &stubUserService{
		profileFn: func(ctx context.Context, identity domain.Identity) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewUserHandler(stub)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Me(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestUserHandler_List(t *testing.T) {
	stub := &stubUserService{
		listFn: func(ctx context.Context) ([]domain.User, error) {
			return []domain.User{*testUser()}, nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := authedContext(t, http.MethodGet, "/users", "admin-1", domain.RoleAdmin)

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0]["id"] != "user-1" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, present := resp[0]["passwordHash"]; present {
		t.Fatalf("password hash leaked in list response")
	}
}

func TestUserHandler_Get_Forbidden(t *testing.T) {
	stub := &stubUserService{
		getFn: func(ctx context.Context, identity domain.Identity, targetID string) (*domain.User, error) {
			return nil, domain.ErrForbidden
		},
	}
	handler := NewUserHandler(stub)

	c, rec := authedContext(t, http.MethodGet, "/users/user-2", "user-1", domain.RoleUser)
	c.SetParamNames("id")
	c.SetParamValues("user-2")

	_ = handler.Get(c)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	// The denial response must be the only body written.
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("expected a single json body, got %q: %v", rec.Body.String(), err)
	}
	if resp["error"] == nil {
		t.Fatalf("expected error envelope, got %+v", resp)
	}
}

func TestUserHandler_Get_Self(t *testing.T) {
	stub := &stubUserService{
		getFn: func(ctx context.Context, identity domain.Identity, targetID string) (*domain.User, error) {
			if targetID != "user-1" {
				t.Fatalf("unexpected target: %s", targetID)
			}
			return testUser(), nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := authedContext(t, http.MethodGet, "/users/user-1", "user-1", domain.RoleUser)
	c.SetParamNames("id")
	c.SetParamValues("user-1")

	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_Get_NotFound(t *testing.T) {
	stub := &stubUserService{
		getFn: func(ctx context.Context, identity domain.Identity, targetID string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	handler := NewUserHandler(stub)

	c, rec := authedContext(t, http.MethodGet, "/users/ghost", "admin-1", domain.RoleAdmin)
	c.SetParamNames("id")
	c.SetParamValues("ghost")

	_ = handler.Get(c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestUserHandler_Block_Success(t *testing.T) {
	stub := &stubUserService{
		blockFn: func(ctx context.Context, identity domain.Identity, targetID string) (*domain.User, error) {
			blocked := testUser()
			blocked.Status = domain.StatusBlocked
			return blocked, nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := authedContext(t, http.MethodPatch, "/block/user-1", "user-1", domain.RoleUser)
	c.SetParamNames("id")
	c.SetParamValues("user-1")

	if err := handler.Block(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "user a@x.com blocked" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
}

func TestUserHandler_Block_Forbidden(t *testing.T) {
	stub := &stubUserService{
		blockFn: func(ctx context.Context, identity domain.Identity, targetID string) (*domain.User, error) {
			return nil, domain.ErrForbidden
		},
	}
	handler := NewUserHandler(stub)

	c, rec := authedContext(t, http.MethodPatch, "/block/user-2", "user-1", domain.RoleUser)
	c.SetParamNames("id")
	c.SetParamValues("user-2")

	_ = handler.Block(c)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}
