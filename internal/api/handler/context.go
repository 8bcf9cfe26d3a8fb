package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/userhub/account-service/internal/api/middleware"
	"github.com/userhub/account-service/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Auth middleware and
// performs a fast-fail check before any service call: both claims must be
// present, and the role must be a known member. Presence proves the
// middleware ran.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	userID, _ := c.Get(middleware.ContextKeyUserID).(string)
	role, _ := c.Get(middleware.ContextKeyRole).(domain.Role)

	if userID == "" || !role.Valid() {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	return domain.Identity{UserID: userID, Role: role}, nil
}
