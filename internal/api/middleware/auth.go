package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/userhub/account-service/internal/api/metrics"
	"github.com/userhub/account-service/internal/pkg/token"
)

// Context keys under which the decoded identity is stored.
const (
	ContextKeyUserID = "user_id"
	ContextKeyRole   = "role"
)

// Auth validates the bearer token and injects the decoded identity into the
// request context. A missing or non-bearer credential is unauthorized (401);
// a credential that fails verification, including an expired one, is
// forbidden (403).
func Auth(tokens *token.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.AuthDeniedTotal.WithLabelValues("missing_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "no token provided")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.AuthDeniedTotal.WithLabelValues("missing_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "no token provided")
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				reason := "invalid_token"
				if errors.Is(err, token.ErrExpired) {
					reason = "expired_token"
				}
				metrics.AuthDeniedTotal.WithLabelValues(reason).Inc()
				return echo.NewHTTPError(http.StatusForbidden, "invalid token")
			}

			c.Set(ContextKeyUserID, claims.UserID)
			c.Set(ContextKeyRole, claims.Role)

			return next(c)
		}
	}
}
