package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/saintdavies/property-console/internal/core/domain"
	"github.com/saintdavies/property-console/internal/core/service"
)

func sessionFor(t *testing.T, sessions *service.SessionManager, sid, email string) *service.AccessService {
	t.Helper()
	loggedIn(t, sessions, sid, email)
	s := sessions.Open(sid)
	if err := s.RestoreSession(context.Background()); err != nil {
		t.Fatalf("restore: %v", err)
	}
	return s
}

func TestGuard_Allows(t *testing.T) {
	sessions, _ := newSessions()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(ContextSession, sessionFor(t, sessions, "a", "landlord@saintdavies.com"))

	called := false
	handler := Guard("users", domain.RequireAny(domain.PermManageUsers, domain.PermInviteUsers))(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestGuard_Forbids(t *testing.T) {
	sessions, _ := newSessions()
	tenant := sessionFor(t, sessions, "b", "tenant@saintdavies.com")

	cases := map[string]struct {
		session *service.AccessService
		req     domain.Requirement
	}{
		"missing permission": {tenant, domain.Require(domain.PermViewFinancials)},
		"all policy":         {tenant, domain.RequireAll(domain.PermViewDashboard, domain.PermViewAnalytics)},
		"empty requirement":  {tenant, domain.Requirement{}},
		"no session":         {nil, domain.Require(domain.PermViewDashboard)},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tc.session != nil {
				c.Set(ContextSession, tc.session)
			}

			handler := Guard(name, tc.req)(func(c echo.Context) error {
				t.Fatalf("should not reach next handler")
				return nil
			})

			_ = handler(c)
			if rec.Code != http.StatusForbidden {
				t.Fatalf("expected 403, got %d", rec.Code)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body["error"] != "Access Denied" {
				t.Fatalf("unexpected body: %v", body)
			}
		})
	}
}

func TestViewGuard(t *testing.T) {
	sessions, _ := newSessions()
	tenant := sessionFor(t, sessions, "c", "tenant@saintdavies.com")

	cases := []struct {
		view string
		want int
	}{
		{"dashboard", http.StatusOK},
		{"maintenance", http.StatusOK},
		{"properties", http.StatusOK},
		{"payments", http.StatusForbidden},
		{"users", http.StatusForbidden},
		{"nowhere", http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.view, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/v1/views/"+tc.view, nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.SetParamNames("view")
			c.SetParamValues(tc.view)
			c.Set(ContextSession, tenant)

			handler := ViewGuard("view")(func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			})
			if err := handler(c); err != nil {
				e.HTTPErrorHandler(err, c)
			}
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
		})
	}
}
