package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/saintdavies/property-console/internal/core/domain"
	"github.com/saintdavies/property-console/internal/core/ports"
	"github.com/saintdavies/property-console/internal/core/service"
)

type AuthHandler struct {
	sessions *service.SessionManager
	tokens   ports.TokenIssuer
}

func NewAuthHandler(sessions *service.SessionManager, tokens ports.TokenIssuer) *AuthHandler {
	return &AuthHandler{sessions: sessions, tokens: tokens}
}

// Login opens a new session and authenticates it.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	sid := uuid.NewString()
	session := h.sessions.Open(sid)

	ok, err := session.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: domain.ErrInvalidCredentials.Error()})
	}

	user, _ := session.CurrentUser()
	token, err := h.tokens.Issue(sid, user)
	if err != nil {
		if lerr := session.Logout(c.Request().Context()); lerr != nil {
			return errors.Join(fmt.Errorf("issue token: %w", err), lerr)
		}
		return fmt.Errorf("issue token: %w", err)
	}

	return c.JSON(http.StatusOK, loginResponse{
		Token:     token,
		SessionID: sid,
		User:      toSessionUser(user),
	})
}

// Logout ends the caller's session.
//
// @Summary      Logout
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	session, _, err := ctxSession(c)
	if err != nil {
		return err
	}
	if err := session.Logout(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Session returns the caller's user, role, properties and permissions.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  sessionResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	session, user, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{
		Status: session.Status(),
		User:   toSessionUser(user),
	})
}
