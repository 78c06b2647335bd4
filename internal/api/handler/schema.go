package handler

import (
	"time"

	"github.com/saintdavies/property-console/internal/core/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string       `json:"token"`
	SessionID string       `json:"session_id"`
	User      *sessionUser `json:"user"`
}

// sessionUser is the client view of an authenticated user.
type sessionUser struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Email       string              `json:"email"`
	Role        domain.Role         `json:"role"`
	Permissions []domain.Permission `json:"permissions"`
	PropertyIDs []string            `json:"property_ids,omitempty"`
	LastLogin   *time.Time          `json:"last_login,omitempty"`
}

type sessionResponse struct {
	Status domain.SessionStatus `json:"status"`
	User   *sessionUser         `json:"user"`
}

type checkRequest struct {
	Permissions []string `json:"permissions" validate:"required,min=1"`
	Policy      string   `json:"policy"      validate:"omitempty,oneof=all any"`
}

type checkResponse struct {
	Allowed bool `json:"allowed"`
}

type navigationResponse struct {
	Items []domain.NavItem `json:"items"`
}

type viewResponse struct {
	View    domain.NavItem `json:"view"`
	Allowed bool           `json:"allowed"`
}

type rolesResponse struct {
	Roles map[domain.Role][]domain.Permission `json:"roles"`
}

type registerRequest struct {
	Name        string   `json:"name"         validate:"required"`
	Email       string   `json:"email"        validate:"required,email"`
	Password    string   `json:"password"     validate:"required,min=8"`
	Role        string   `json:"role"         validate:"required"`
	PropertyIDs []string `json:"property_ids"`
}

type activityResponse struct {
	Items []domain.Activity `json:"items"`
}

type screensResponse struct {
	Initial     domain.Screen                     `json:"initial"`
	Screens     []domain.Screen                   `json:"screens"`
	Transitions map[domain.Screen][]domain.Screen `json:"transitions"`
}

func toSessionUser(u *domain.AuthenticatedUser) *sessionUser {
	return &sessionUser{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		Permissions: u.Permissions.Slice(),
		PropertyIDs: u.PropertyIDs,
		LastLogin:   u.LastLogin,
	}
}
