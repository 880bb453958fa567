package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/MarkRamington/silvanum-ink-terminal/internal/api/middleware"
	"github.com/MarkRamington/silvanum-ink-terminal/internal/core/domain"
	"github.com/MarkRamington/silvanum-ink-terminal/internal/core/ports"
)

type stubBootstrapService struct {
	startFn  func(ctx context.Context, priorToken string) (*ports.BootstrapResult, error)
	loginFn  func(ctx context.Context, sessionUserID, employeeID, pin string) (*ports.BootstrapResult, error)
	logoutFn func(ctx context.Context, token string) error
}

func (s *stubBootstrapService) Start(ctx context.Context, priorToken string) (*ports.BootstrapResult, error) {
	return s.startFn(ctx, priorToken)
}

func (s *stubBootstrapService) Login(ctx context.Context, sessionUserID, employeeID, pin string) (*ports.BootstrapResult, error) {
	return s.loginFn(ctx, sessionUserID, employeeID, pin)
}

func (s *stubBootstrapService) Logout(ctx context.Context, token string) error {
	return s.logoutFn(ctx, token)
}

type stubIdentityService struct {
	resolveFn func(ctx context.Context, sessionUserID string) (*domain.ResolvedIdentity, error)
}

func (s *stubIdentityService) VerifyPIN(ctx context.Context, employeeID, pin string) (bool, error) {
	return false, nil
}

func (s *stubIdentityService) Bind(ctx context.Context, sessionUserID, employeeID string) (domain.BindOutcome, error) {
	return domain.BindCreated, nil
}

func (s *stubIdentityService) Resolve(ctx context.Context, sessionUserID string) (*domain.ResolvedIdentity, error) {
	return s.resolveFn(ctx, sessionUserID)
}

func newSessionContext(e *echo.Echo, method, target, body, sessionUserID string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if sessionUserID != "" {
		c.Set(middleware.CtxSessionUserID, sessionUserID)
	}
	return c, rec
}

func TestSessionHandler_Start_FreshSession(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubBootstrapService{
		startFn: func(ctx context.Context, priorToken string) (*ports.BootstrapResult, error) {
			if priorToken != "" {
				t.Fatalf("expected empty prior token, got %q", priorToken)
			}
			return &ports.BootstrapResult{
				State:   ports.StateAnonymousOnly,
				Session: ports.SessionHandle{Token: "tok-1", SessionUserID: "su-1"},
			}, nil
		},
	}
	handler := NewSessionHandler(stub, &stubIdentityService{})

	c, rec := newSessionContext(e, http.MethodPost, "/v1/sessions", `{}`, "")
	if err := handler.Start(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["state"] != "anonymous_only" {
		t.Fatalf("unexpected state: %v", resp["state"])
	}
	if _, ok := resp["identity"]; ok {
		t.Fatalf("identity must be omitted while anonymous")
	}
}

func TestSessionHandler_Start_ResumesWithToken(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubBootstrapService{
		startFn: func(ctx context.Context, priorToken string) (*ports.BootstrapResult, error) {
			if priorToken != "tok-old" {
				t.Fatalf("expected tok-old, got %q", priorToken)
			}
			return &ports.BootstrapResult{
				State:    ports.StateBoundLoggedIn,
				Session:  ports.SessionHandle{Token: "tok-old", SessionUserID: "su-1"},
				Identity: &domain.ResolvedIdentity{EmployeeID: "Luna-id", DisplayName: "Luna", Role: domain.RoleArtist},
			}, nil
		},
	}
	handler := NewSessionHandler(stub, &stubIdentityService{})

	c, rec := newSessionContext(e, http.MethodPost, "/v1/sessions", `{"token":"tok-old"}`, "")
	if err := handler.Start(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["state"] != "bound_logged_in" {
		t.Fatalf("unexpected state: %v", resp["state"])
	}
	identity, ok := resp["identity"].(map[string]any)
	if !ok {
		t.Fatalf("expected identity in response")
	}
	if identity["display_name"] != "Luna" {
		t.Fatalf("unexpected identity payload: %+v", identity)
	}
}

func TestSessionHandler_Login_Success(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubBootstrapService{
		loginFn: func(ctx context.Context, sessionUserID, employeeID, pin string) (*ports.BootstrapResult, error) {
			if sessionUserID != "su-1" || employeeID != "Luna-id" || pin != "4471" {
				t.Fatalf("unexpected args: %s %s %s", sessionUserID, employeeID, pin)
			}
			return &ports.BootstrapResult{
				State:    ports.StateBoundLoggedIn,
				Identity: &domain.ResolvedIdentity{EmployeeID: employeeID, DisplayName: "Luna", Role: domain.RoleArtist},
			}, nil
		},
	}
	handler := NewSessionHandler(stub, &stubIdentityService{})

	c, rec := newSessionContext(e, http.MethodPost, "/v1/sessions/login", `{"employee_id":"Luna-id","pin":"4471"}`, "su-1")
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSessionHandler_Login_InvalidCredentials(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubBootstrapService{
		loginFn: func(ctx context.Context, sessionUserID, employeeID, pin string) (*ports.BootstrapResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewSessionHandler(stub, &stubIdentityService{})

	c, _ := newSessionContext(e, http.MethodPost, "/v1/sessions/login", `{"employee_id":"Luna-id","pin":"0000"}`, "su-1")
	err := handler.Login(c)
	if err == nil {
		t.Fatalf("expected error")
	}
	if err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSessionHandler_Login_RejectsMissingFields(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubBootstrapService{
		loginFn: func(ctx context.Context, sessionUserID, employeeID, pin string) (*ports.BootstrapResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewSessionHandler(stub, &stubIdentityService{})

	c, _ := newSessionContext(e, http.MethodPost, "/v1/sessions/login", `{"employee_id":"Luna-id"}`, "su-1")
	err := handler.Login(c)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}

func TestSessionHandler_Login_MissingSession(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	handler := NewSessionHandler(&stubBootstrapService{}, &stubIdentityService{})

	c, _ := newSessionContext(e, http.MethodPost, "/v1/sessions/login", `{"employee_id":"Luna-id","pin":"4471"}`, "")
	err := handler.Login(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestSessionHandler_Identity_Anonymous(t *testing.T) {
	e := echo.New()
	identity := &stubIdentityService{
		resolveFn: func(ctx context.Context, sessionUserID string) (*domain.ResolvedIdentity, error) {
			return nil, nil
		},
	}
	handler := NewSessionHandler(&stubBootstrapService{}, identity)

	c, rec := newSessionContext(e, http.MethodGet, "/v1/sessions/identity", "", "su-1")
	if err := handler.Identity(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["state"] != "anonymous_only" {
		t.Fatalf("unexpected state: %v", resp["state"])
	}
}

func TestSessionHandler_Logout(t *testing.T) {
	e := echo.New()
	var invalidated string
	stub := &stubBootstrapService{
		logoutFn: func(ctx context.Context, token string) error {
			invalidated = token
			return nil
		},
	}
	handler := NewSessionHandler(stub, &stubIdentityService{})

	c, rec := newSessionContext(e, http.MethodDelete, "/v1/sessions", "", "su-1")
	c.Request().Header.Set(echo.HeaderAuthorization, "Bearer tok-1")
	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if invalidated != "tok-1" {
		t.Fatalf("expected tok-1 invalidated, got %q", invalidated)
	}
}
