package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/saintdavies/property-console/internal/core/service"
)

// Context keys set by Auth.
const (
	ContextSession   = "session"
	ContextSessionID = "session_id"
)

// Auth validates the bearer JWT, restores the session it points at and
// injects that session into the context. A valid token whose session was
// logged out or expired is rejected.
func Auth(jwtSecret string, sessions *service.SessionManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			sid, _ := claims["sid"].(string)
			if sid == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing session")
			}

			session := sessions.Open(sid)
			if err := session.RestoreSession(c.Request().Context()); err != nil {
				return err
			}
			if !session.Authenticated() {
				return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
			}

			c.Set(ContextSessionID, sid)
			c.Set(ContextSession, session)

			return next(c)
		}
	}
}

// SessionFrom returns the session injected by Auth, or nil.
func SessionFrom(c echo.Context) *service.AccessService {
	s, _ := c.Get(ContextSession).(*service.AccessService)
	return s
}
