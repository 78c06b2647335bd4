package domain

import (
	"fmt"
	"time"
)

// Account is a directory entry that can sign in to the dashboard.
type Account struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	PropertyIDs  []string  `json:"property_ids,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AuthenticatedUser is the identity held by a live session. Permissions are
// resolved once at login and carried on the record.
type AuthenticatedUser struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Email       string        `json:"email"`
	Role        Role          `json:"role"`
	Permissions PermissionSet `json:"permissions"`
	PropertyIDs []string      `json:"property_ids,omitempty"`
	LastLogin   *time.Time    `json:"last_login,omitempty"`
}

// NewAuthenticatedUser resolves the account's role into a user record.
func NewAuthenticatedUser(a *Account, loggedInAt time.Time) *AuthenticatedUser {
	ts := loggedInAt.UTC()
	u := &AuthenticatedUser{
		ID:          a.ID,
		Name:        a.Name,
		Email:       a.Email,
		Role:        a.Role,
		Permissions: PermissionsFor(a.Role),
		LastLogin:   &ts,
	}
	if len(a.PropertyIDs) > 0 {
		u.PropertyIDs = append([]string(nil), a.PropertyIDs...)
	}
	return u
}

// Clone returns a deep copy so callers cannot mutate the session's record.
func (u *AuthenticatedUser) Clone() *AuthenticatedUser {
	if u == nil {
		return nil
	}
	c := *u
	c.Permissions = u.Permissions.Clone()
	if u.PropertyIDs != nil {
		c.PropertyIDs = append([]string(nil), u.PropertyIDs...)
	}
	if u.LastLogin != nil {
		ts := *u.LastLogin
		c.LastLogin = &ts
	}
	return &c
}

// Validate checks a record read back from storage. Anything that does not
// describe a known role and known permissions is rejected. Every role grants
// at least one permission, so an empty set means the record predates the
// current shape.
func (u *AuthenticatedUser) Validate() error {
	if u.ID == "" || u.Email == "" {
		return ErrMalformedSession
	}
	if !u.Role.Valid() {
		return ErrUnknownRole
	}
	if len(u.Permissions) == 0 {
		return fmt.Errorf("%w: no permissions", ErrMalformedSession)
	}
	for p := range u.Permissions {
		if !p.Valid() {
			return ErrUnknownPermission
		}
	}
	return nil
}
