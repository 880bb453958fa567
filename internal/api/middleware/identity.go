package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/MarkRamington/silvanum-ink-terminal/internal/core/ports"
)

// Identity resolves the session user's bound employee and injects the
// resolved identity into context. An unbound session, or one bound to an
// employee the access rules filter out, gets a uniform 401: this middleware
// is the gate every data route sits behind. Resolution runs per request so
// a deactivation takes effect on the next call, not retroactively.
func Identity(identity ports.IdentityService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			suid, _ := c.Get(CtxSessionUserID).(string)
			if suid == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing session")
			}

			resolved, err := identity.Resolve(c.Request().Context(), suid)
			if err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "identity resolution unavailable")
			}
			if resolved == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "not logged in")
			}

			c.Set(CtxEmployeeID, resolved.EmployeeID)
			c.Set(CtxDisplayName, resolved.DisplayName)
			c.Set(CtxRole, resolved.Role)
			return next(c)
		}
	}
}
