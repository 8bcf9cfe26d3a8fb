package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/userhub/account-service/internal/api/metrics"
	"github.com/userhub/account-service/internal/core/domain"
	"github.com/userhub/account-service/internal/core/ports"
)

// UserHandler handles the protected account endpoints.
type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Me returns the caller's own record.
//
// @Summary      Get the authenticated user's profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /me [get]
func (h *UserHandler) Me(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.userService.Profile(c.Request().Context(), identity)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "user not found"})
		}
		return err
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

// List returns all users. The route is admin-only (RBAC middleware).
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   userResponse
// @Failure      403  {object}  errorResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponses(users))
}

// Get returns a user by id; allowed for admins and for the user itself.
// A denial terminates the request before any store access.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.userService.Get(c.Request().Context(), identity, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			metrics.AuthDeniedTotal.WithLabelValues("forbidden").Inc()
			return c.JSON(http.StatusForbidden, errorResponse{Error: "access forbidden"})
		case errors.Is(err, domain.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, errorResponse{Error: "user not found"})
		}
		return err
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Block sets a user's status to BLOCKED; allowed for admins and for the
// user itself.
//
// @Summary      Block a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /block/{id} [patch]
func (h *UserHandler) Block(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.userService.Block(c.Request().Context(), identity, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			metrics.AuthDeniedTotal.WithLabelValues("forbidden").Inc()
			return c.JSON(http.StatusForbidden, errorResponse{Error: "access forbidden"})
		case errors.Is(err, domain.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, errorResponse{Error: "user not found"})
		}
		return err
	}

	metrics.UsersBlockedTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: fmt.Sprintf("user %s blocked", user.Email)})
}
