package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/MarkRamington/silvanum-ink-terminal/internal/api/middleware"
	"github.com/MarkRamington/silvanum-ink-terminal/internal/core/domain"
)

// ctxSessionUser extracts the session user id injected by the Session
// middleware; its presence proves the middleware ran.
func ctxSessionUser(c echo.Context) (string, error) {
	suid, _ := c.Get(middleware.CtxSessionUserID).(string)
	if suid == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return suid, nil
}

// ctxIdentity rebuilds the resolved identity injected by the Identity
// middleware. An empty employee id means the middleware did not run on this
// route, which is a wiring bug surfaced as 401 rather than a panic.
func ctxIdentity(c echo.Context) (*domain.ResolvedIdentity, error) {
	employeeID, _ := c.Get(middleware.CtxEmployeeID).(string)
	if employeeID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing identity")
	}
	displayName, _ := c.Get(middleware.CtxDisplayName).(string)
	role, _ := c.Get(middleware.CtxRole).(string)
	return &domain.ResolvedIdentity{
		EmployeeID:  employeeID,
		DisplayName: displayName,
		Role:        role,
	}, nil
}
