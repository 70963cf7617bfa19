package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func runLimited(t *testing.T, mw echo.MiddlewareFunc, ip string) error {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/user/login", nil)
	req.RemoteAddr = ip + ":12345"
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	return mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})(c)
}

func TestRateLimit_DeniesAfterBurst(t *testing.T) {
	mw := RateLimit(0.001, 2)

	for i := 0; i < 2; i++ {
		if err := runLimited(t, mw, "10.0.0.1"); err != nil {
			t.Fatalf("request %d unexpectedly limited: %v", i, err)
		}
	}

	err := runLimited(t, mw, "10.0.0.1")
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %v", err)
	}

	if err := runLimited(t, mw, "10.0.0.2"); err != nil {
		t.Fatalf("other clients must have their own bucket: %v", err)
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	mw := RateLimit(0, 0)
	for i := 0; i < 50; i++ {
		if err := runLimited(t, mw, "10.0.0.1"); err != nil {
			t.Fatalf("limiter should be disabled: %v", err)
		}
	}
}
