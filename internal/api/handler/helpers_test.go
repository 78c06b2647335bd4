package handler

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/saintdavies/property-console/internal/api/middleware"
	"github.com/saintdavies/property-console/internal/core/domain"
	"github.com/saintdavies/property-console/internal/core/ports"
	"github.com/saintdavies/property-console/internal/core/service"
	"github.com/saintdavies/property-console/internal/infrastructure/memory"
)

const demoPassword = "password123"

type fixture struct {
	accounts *service.AccountService
	auth     *service.DirectoryAuthenticator
	sessions *service.SessionManager
	store    *memory.SessionStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := memory.NewAccountRepository()
	accounts := service.NewAccountService(repo)
	for _, in := range []ports.RegisterAccountInput{
		{Name: "Lara", Email: "landlord@saintdavies.com", Password: demoPassword, Role: "landlord"},
		{Name: "Priya", Email: "manager@saintdavies.com", Password: demoPassword, Role: "property_manager"},
		{Name: "Tomi", Email: "tenant@saintdavies.com", Password: demoPassword, Role: "tenant", PropertyIDs: []string{"prop-001"}},
	} {
		if _, err := accounts.Register(context.Background(), in); err != nil {
			t.Fatalf("register %s: %v", in.Email, err)
		}
	}
	store := memory.NewSessionStore()
	auth := service.NewDirectoryAuthenticator(repo)
	sessions := service.NewSessionManager(auth, store, zerolog.Nop())
	return &fixture{accounts: accounts, auth: auth, sessions: sessions, store: store}
}

// session logs email in under sid and returns the restored session, as the
// Auth middleware would hand it to a handler.
func (f *fixture) session(t *testing.T, sid, email string) *service.AccessService {
	t.Helper()
	ok, err := f.sessions.Open(sid).Login(context.Background(), email, demoPassword)
	if err != nil || !ok {
		t.Fatalf("login %s: ok=%v err=%v", email, ok, err)
	}
	s := f.sessions.Open(sid)
	if err := s.RestoreSession(context.Background()); err != nil {
		t.Fatalf("restore: %v", err)
	}
	return s
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func newContext(e *echo.Echo, method, target, body string, session *service.AccessService) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if session != nil {
		c.Set(middleware.ContextSession, session)
	}
	return c, rec
}

type stubTokens struct {
	err error
}

func (s *stubTokens) Issue(sessionID string, _ *domain.AuthenticatedUser) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "token-" + sessionID, nil
}
