package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/saintdavies/property-console/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
		msg  string
	}{
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid email or password"},
		{domain.ErrUnauthenticated, http.StatusUnauthorized, "authentication required"},
		{domain.ErrForbidden, http.StatusForbidden, "Access Denied"},
		{domain.ErrUserExists, http.StatusConflict, "user already exists"},
		{domain.ErrLoginInProgress, http.StatusConflict, "login already in progress"},
		{fmt.Errorf("parse: %w", domain.ErrUnknownRole), http.StatusBadRequest, "parse: unknown role"},
		{fmt.Errorf("login: %w: %w", domain.ErrAuthUnavailable, errors.New("dial tcp")), http.StatusServiceUnavailable, "service temporarily unavailable"},
		{fmt.Errorf("login: %w: %w", domain.ErrAuthUnavailable, domain.ErrUnknownRole), http.StatusServiceUnavailable, "service temporarily unavailable"},
		{fmt.Errorf("register: %w", domain.ErrInvalidAccount), http.StatusBadRequest, "name, email and password are required"},
		{fmt.Errorf("restore: %w", domain.ErrStoreUnavailable), http.StatusServiceUnavailable, "service temporarily unavailable"},
		{echo.NewHTTPError(http.StatusNotFound, "view not found"), http.StatusNotFound, "view not found"},
		{errors.New("boom"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.msg, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			NewHTTPErrorHandler(zerolog.Nop())(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.Error != tc.msg {
				t.Fatalf("message = %q, want %q", body.Error, tc.msg)
			}
		})
	}
}
