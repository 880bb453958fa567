package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/MarkRamington/silvanum-ink-terminal/internal/core/domain"
	"github.com/MarkRamington/silvanum-ink-terminal/internal/core/ports"
)

// Context keys set by the middleware chain.
const (
	CtxSessionUserID = "session_user_id"
	CtxEmployeeID    = "employee_id"
	CtxDisplayName   = "display_name"
	CtxRole          = "role"
)

// Session validates the bearer session token against the session provider
// and injects the session user id into context. The token itself is not
// stored in context and never logged.
func Session(sessions ports.SessionProvider) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := BearerToken(c)
			if err != nil {
				return err
			}

			suid, err := sessions.Lookup(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, domain.ErrNotAuthenticated) {
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired session")
				}
				return echo.NewHTTPError(http.StatusServiceUnavailable, "session check unavailable")
			}

			c.Set(CtxSessionUserID, suid)
			return next(c)
		}
	}
}

// BearerToken extracts the bearer token from the Authorization header.
func BearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}
	return parts[1], nil
}
