package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/saintdavies/property-console/internal/api/middleware"
	"github.com/saintdavies/property-console/internal/core/domain"
	"github.com/saintdavies/property-console/internal/core/service"
)

// ctxSession returns the session restored by the Auth middleware together
// with its user. A missing or anonymous session is a 401; handlers behind
// Auth should never see one, so this is a fast-fail check only.
func ctxSession(c echo.Context) (*service.AccessService, *domain.AuthenticatedUser, error) {
	session := middleware.SessionFrom(c)
	if session == nil {
		return nil, nil, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	user, ok := session.CurrentUser()
	if !ok {
		return nil, nil, echo.NewHTTPError(http.StatusUnauthorized, "session expired")
	}
	return session, user, nil
}
