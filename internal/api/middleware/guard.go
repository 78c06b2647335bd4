package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/saintdavies/property-console/internal/core/domain"
	"github.com/saintdavies/property-console/internal/pkg/metrics"
)

// accessDenied is the fixed body rendered in place of a guarded view.
var accessDenied = map[string]string{"error": "Access Denied"}

// Guard lets the request through only when the session satisfies req.
// Denials render 403 in place and never redirect.
func Guard(name string, req domain.Requirement) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !allow(c, name, req) {
				return c.JSON(http.StatusForbidden, accessDenied)
			}
			return next(c)
		}
	}
}

// ViewGuard guards /views/:view with the requirement of the named
// navigation entry. Unknown views are 404.
func ViewGuard(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			item, ok := domain.FindView(c.Param(param))
			if !ok {
				return echo.NewHTTPError(http.StatusNotFound, "view not found")
			}
			if !allow(c, item.Key, item.Requirement) {
				return c.JSON(http.StatusForbidden, accessDenied)
			}
			return next(c)
		}
	}
}

func allow(c echo.Context, name string, req domain.Requirement) bool {
	session := SessionFrom(c)
	allowed := session != nil && req.Allows(session)

	result := "denied"
	if allowed {
		result = "allowed"
	}
	metrics.GuardDecisionsTotal.WithLabelValues(name, result).Inc()
	return allowed
}
