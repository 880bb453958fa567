package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/MarkRamington/silvanum-ink-terminal/internal/api/middleware"
	"github.com/MarkRamington/silvanum-ink-terminal/internal/core/ports"
)

// SessionHandler drives the terminal bootstrap: session establishment,
// login, identity inspection, and logout.
type SessionHandler struct {
	bootstrap ports.BootstrapService
	identity  ports.IdentityService
}

func NewSessionHandler(bootstrap ports.BootstrapService, identity ports.IdentityService) *SessionHandler {
	return &SessionHandler{bootstrap: bootstrap, identity: identity}
}

type startSessionRequest struct {
	// Token is the previously persisted session token, if the terminal has
	// one. Empty on first visit.
	Token string `json:"token,omitempty"`
}

type loginRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	PIN        string `json:"pin" validate:"required"`
}

// Start handles POST /v1/sessions — create-or-resume plus resolution.
//
// @Summary      Establish (or resume) an anonymous session
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        body  body      startSessionRequest  false  "Previously persisted token"
// @Success      200   {object}  ports.BootstrapResult
// @Failure      503   {object}  map[string]string
// @Router       /v1/sessions [post]
func (h *SessionHandler) Start(c echo.Context) error {
	var req startSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	result, err := h.bootstrap.Start(c.Request().Context(), req.Token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// Login handles POST /v1/sessions/login — the verify→bind→resolve handshake.
//
// @Summary      Log an employee in on this terminal
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      loginRequest  true  "Employee id and PIN"
// @Success      200   {object}  ports.BootstrapResult
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /v1/sessions/login [post]
func (h *SessionHandler) Login(c echo.Context) error {
	suid, err := ctxSessionUser(c)
	if err != nil {
		return err
	}

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.bootstrap.Login(c.Request().Context(), suid, req.EmployeeID, req.PIN)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// Identity handles GET /v1/sessions/identity — the read-only resolver.
//
// @Summary      Resolve the identity bound to this session
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.BootstrapResult
// @Failure      401  {object}  map[string]string
// @Router       /v1/sessions/identity [get]
func (h *SessionHandler) Identity(c echo.Context) error {
	suid, err := ctxSessionUser(c)
	if err != nil {
		return err
	}

	resolved, err := h.identity.Resolve(c.Request().Context(), suid)
	if err != nil {
		return err
	}

	result := ports.BootstrapResult{State: ports.StateAnonymousOnly}
	if resolved != nil {
		result.State = ports.StateBoundLoggedIn
		result.Identity = resolved
	}
	return c.JSON(http.StatusOK, result)
}

// Logout handles DELETE /v1/sessions — invalidates the anonymous session.
//
// @Summary      Log out and invalidate the session
// @Tags         sessions
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  map[string]string
// @Router       /v1/sessions [delete]
func (h *SessionHandler) Logout(c echo.Context) error {
	token, err := middleware.BearerToken(c)
	if err != nil {
		return err
	}

	if err := h.bootstrap.Logout(c.Request().Context(), token); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
