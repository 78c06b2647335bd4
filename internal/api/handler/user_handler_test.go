package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/saintdavies/property-console/internal/core/domain"
)

func TestUserHandler_Register_Success(t *testing.T) {
	f := newFixture(t)
	e := newEcho()
	handler := NewUserHandler(f.accounts)

	body := `{"name":"Ade","email":"Agent@SaintDavies.com","password":"password123","role":"agent"}`
	c, rec := newContext(e, http.MethodPost, "/v1/users", body, f.session(t, "l", "landlord@saintdavies.com"))
	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("response leaks the password hash: %s", rec.Body.String())
	}

	var account domain.Account
	if err := json.Unmarshal(rec.Body.Bytes(), &account); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if account.Email != "agent@saintdavies.com" || account.Role != domain.RoleAgent || account.ID == "" {
		t.Fatalf("unexpected account: %+v", account)
	}
}

func TestUserHandler_Register_InviteOnlyCreatesTenants(t *testing.T) {
	f := newFixture(t)
	e := newEcho()
	handler := NewUserHandler(f.accounts)
	manager := f.session(t, "m", "manager@saintdavies.com")

	c, rec := newContext(e, http.MethodPost, "/v1/users",
		`{"name":"New","email":"new-tenant@saintdavies.com","password":"password123","role":"tenant","property_ids":["prop-002"]}`, manager)
	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	c, _ = newContext(e, http.MethodPost, "/v1/users",
		`{"name":"Boss","email":"boss@saintdavies.com","password":"password123","role":"admin"}`, manager)
	if err := handler.Register(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUserHandler_Register_Errors(t *testing.T) {
	f := newFixture(t)
	e := newEcho()
	handler := NewUserHandler(f.accounts)
	landlord := f.session(t, "l", "landlord@saintdavies.com")

	c, _ := newContext(e, http.MethodPost, "/v1/users",
		`{"name":"Dup","email":"tenant@saintdavies.com","password":"password123","role":"tenant"}`, landlord)
	if err := handler.Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	c, _ = newContext(e, http.MethodPost, "/v1/users",
		`{"name":"Odd","email":"odd@saintdavies.com","password":"password123","role":"janitor"}`, landlord)
	if err := handler.Register(c); !errors.Is(err, domain.ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}

	c, rec := newContext(e, http.MethodPost, "/v1/users",
		`{"name":"Short","email":"short@saintdavies.com","password":"pw","role":"tenant"}`, landlord)
	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
