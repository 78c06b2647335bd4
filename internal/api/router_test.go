package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/saintdavies/property-console/internal/core/ports"
	"github.com/saintdavies/property-console/internal/core/service"
	"github.com/saintdavies/property-console/internal/infrastructure/memory"
)

const secret = "router-secret"

func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()
	repo := memory.NewAccountRepository()
	accounts := service.NewAccountService(repo)
	for _, in := range []ports.RegisterAccountInput{
		{Name: "Lara", Email: "landlord@saintdavies.com", Password: "password123", Role: "landlord"},
		{Name: "Tomi", Email: "tenant@saintdavies.com", Password: "password123", Role: "tenant", PropertyIDs: []string{"prop-001"}},
	} {
		if _, err := accounts.Register(context.Background(), in); err != nil {
			t.Fatalf("register: %v", err)
		}
	}

	return NewRouter(Dependencies{
		Sessions:  service.NewSessionManager(service.NewDirectoryAuthenticator(repo), memory.NewSessionStore(), zerolog.Nop()),
		Tokens:    service.NewTokenService(secret, time.Hour),
		Accounts:  accounts,
		Activity:  memory.NewActivityRepository(),
		JWTSecret: secret,
		Metrics:   prometheus.NewRegistry(),
		Log:       zerolog.Nop(),
	})
}

func do(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, e *echo.Echo, email string) string {
	t.Helper()
	rec := do(e, http.MethodPost, "/auth/login", "", `{"email":"`+email+`","password":"password123"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: %d %s", email, rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp.Token == "" {
		t.Fatalf("login response: %v %s", err, rec.Body.String())
	}
	return resp.Token
}

func TestRouter_SessionLifecycle(t *testing.T) {
	e := newTestRouter(t)
	token := login(t, e, "tenant@saintdavies.com")

	if rec := do(e, http.MethodGet, "/auth/session", token, ""); rec.Code != http.StatusOK {
		t.Fatalf("session: expected 200, got %d", rec.Code)
	}
	if rec := do(e, http.MethodPost, "/auth/logout", token, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("logout: expected 204, got %d", rec.Code)
	}
	if rec := do(e, http.MethodGet, "/auth/session", token, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("after logout: expected 401, got %d", rec.Code)
	}
}

func TestRouter_LoginRejected(t *testing.T) {
	e := newTestRouter(t)
	rec := do(e, http.MethodPost, "/auth/login", "", `{"email":"tenant@saintdavies.com","password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid email or password") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestRouter_Guards(t *testing.T) {
	e := newTestRouter(t)
	tenant := login(t, e, "tenant@saintdavies.com")
	landlord := login(t, e, "landlord@saintdavies.com")

	cases := []struct {
		name   string
		method string
		path   string
		token  string
		body   string
		want   int
	}{
		{"tenant views maintenance", http.MethodGet, "/v1/views/maintenance", tenant, "", http.StatusOK},
		{"tenant denied payments", http.MethodGet, "/v1/views/payments", tenant, "", http.StatusForbidden},
		{"unknown view", http.MethodGet, "/v1/views/nowhere", tenant, "", http.StatusNotFound},
		{"tenant denied roles", http.MethodGet, "/v1/roles", tenant, "", http.StatusForbidden},
		{"landlord reads roles", http.MethodGet, "/v1/roles", landlord, "", http.StatusOK},
		{"tenant denied activity", http.MethodGet, "/v1/activity", tenant, "", http.StatusForbidden},
		{"landlord reads activity", http.MethodGet, "/v1/activity", landlord, "", http.StatusOK},
		{"landlord registers", http.MethodPost, "/v1/users", landlord,
			`{"name":"Ade","email":"agent@saintdavies.com","password":"password123","role":"agent"}`, http.StatusCreated},
		{"duplicate register", http.MethodPost, "/v1/users", landlord,
			`{"name":"Ade","email":"agent@saintdavies.com","password":"password123","role":"agent"}`, http.StatusConflict},
		{"unknown role", http.MethodPost, "/v1/users", landlord,
			`{"name":"X","email":"x@saintdavies.com","password":"password123","role":"janitor"}`, http.StatusBadRequest},
		{"no token", http.MethodGet, "/v1/navigation", "", "", http.StatusUnauthorized},
		{"onboarding is public", http.MethodGet, "/v1/onboarding/screens", "", "", http.StatusOK},
		{"liveness", http.MethodGet, "/health", "", "", http.StatusOK},
		{"readiness", http.MethodGet, "/health/ready", "", "", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", "", "", http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(e, tc.method, tc.path, tc.token, tc.body)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d: %s", tc.want, rec.Code, rec.Body.String())
			}
			if tc.want == http.StatusForbidden && !strings.Contains(rec.Body.String(), "Access Denied") {
				t.Fatalf("unexpected denial body: %s", rec.Body.String())
			}
		})
	}
}
