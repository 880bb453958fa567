package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/MarkRamington/silvanum-ink-terminal/internal/core/domain"
	"github.com/MarkRamington/silvanum-ink-terminal/internal/core/ports"
)

type stubSessions struct {
	lookupFn func(ctx context.Context, token string) (string, error)
}

func (s *stubSessions) CreateOrResume(context.Context, string) (ports.SessionHandle, error) {
	return ports.SessionHandle{}, nil
}

func (s *stubSessions) Invalidate(context.Context, string) error { return nil }

func (s *stubSessions) Lookup(ctx context.Context, token string) (string, error) {
	return s.lookupFn(ctx, token)
}

func TestSessionMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer device-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	sessions := &stubSessions{
		lookupFn: func(_ context.Context, token string) (string, error) {
			if token != "device-token" {
				t.Fatalf("unexpected token: %s", token)
			}
			return "su-1", nil
		},
	}

	called := false
	handler := Session(sessions)(func(c echo.Context) error {
		called = true
		if c.Get(CtxSessionUserID) != "su-1" {
			t.Fatalf("session user id not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestSessionMiddleware_MissingHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	sessions := &stubSessions{lookupFn: func(context.Context, string) (string, error) {
		t.Fatalf("lookup must not run without a header")
		return "", nil
	}}

	err := Session(sessions)(func(c echo.Context) error { return nil })(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestSessionMiddleware_RevokedToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer stale")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	sessions := &stubSessions{lookupFn: func(context.Context, string) (string, error) {
		return "", domain.ErrNotAuthenticated
	}}

	err := Session(sessions)(func(c echo.Context) error { return nil })(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestSessionMiddleware_ProviderDown(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer device-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	sessions := &stubSessions{lookupFn: func(context.Context, string) (string, error) {
		return "", errors.New("redis down")
	}}

	err := Session(sessions)(func(c echo.Context) error { return nil })(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 when the provider is down, got %v", err)
	}
}
